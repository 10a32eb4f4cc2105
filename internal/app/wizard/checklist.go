package wizard

import (
	"errors"

	"github.com/ikkim/permit-backend/internal/app/model"
)

var (
	ErrUnknownOffice      = errors.New("office is not an optional reviewer")
	ErrOfficeAlreadyAdded = errors.New("office review already added")
	ErrRequiredOffice     = errors.New("required office reviews cannot be removed")
	ErrOfficeNotFound     = errors.New("office review not found")
)

// EnsureRequiredOffices appends a blank entry for every required office not
// already present. Existing entries are returned untouched and in order.
func EnsureRequiredOffices(reviews []model.OfficeReview) []model.OfficeReview {
	missing := MissingRequiredOffices(reviews)
	out := make([]model.OfficeReview, len(reviews), len(reviews)+len(missing))
	copy(out, reviews)
	for _, office := range missing {
		out = append(out, model.OfficeReview{OfficeName: office})
	}
	return out
}

// InitializeReviews seeds the checklist when the review step is first shown.
// A list that already has entries, even an incomplete one, is left alone.
func InitializeReviews(reviews []model.OfficeReview) []model.OfficeReview {
	if len(reviews) > 0 {
		return reviews
	}
	return EnsureRequiredOffices(nil)
}

// MissingRequiredOffices returns the required offices absent from reviews, in display order.
func MissingRequiredOffices(reviews []model.OfficeReview) []string {
	present := officeSet(reviews)
	var missing []string
	for _, office := range model.RequiredOffices() {
		if !present[office] {
			missing = append(missing, office)
		}
	}
	return missing
}

// AvailableOptionalOffices returns the optional offices that can still be added.
func AvailableOptionalOffices(reviews []model.OfficeReview) []string {
	present := officeSet(reviews)
	available := []string{}
	for _, office := range model.OptionalOffices() {
		if !present[office] {
			available = append(available, office)
		}
	}
	return available
}

// AddOptionalOffice appends a blank review for an optional office.
func AddOptionalOffice(reviews []model.OfficeReview, office string) ([]model.OfficeReview, error) {
	if !model.IsOptionalOffice(office) {
		return reviews, ErrUnknownOffice
	}
	if officeSet(reviews)[office] {
		return reviews, ErrOfficeAlreadyAdded
	}
	return append(reviews, model.OfficeReview{OfficeName: office}), nil
}

// RemoveOptionalOffice drops an optional office's review. Required offices stay.
func RemoveOptionalOffice(reviews []model.OfficeReview, office string) ([]model.OfficeReview, error) {
	if model.IsRequiredOffice(office) {
		return reviews, ErrRequiredOffice
	}
	out := make([]model.OfficeReview, 0, len(reviews))
	found := false
	for _, r := range reviews {
		if r.OfficeName == office {
			found = true
			continue
		}
		out = append(out, r)
	}
	if !found {
		return reviews, ErrOfficeNotFound
	}
	return out, nil
}

func officeSet(reviews []model.OfficeReview) map[string]bool {
	set := make(map[string]bool, len(reviews))
	for _, r := range reviews {
		set[r.OfficeName] = true
	}
	return set
}
