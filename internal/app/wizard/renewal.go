package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/internal/app/validation"
)

var ErrMissingBusinessAccount = errors.New("business account number is required to renew")

// RenewalSubmitter sends a renewal for an existing business account.
type RenewalSubmitter interface {
	RenewApplication(ctx context.Context, businessAccountNo string, form *model.ApplicationForm) (*model.SubmissionResult, error)
}

// RenewalForm is the single-page renewal: taxpayer and business carry over,
// application details and office reviews are filled again.
type RenewalForm struct {
	BusinessAccountNo string                  `json:"businessAccountNo"`
	Draft             model.ApplicationForm   `json:"draft"`
	Errors            []string                `json:"errors"`
	Submitted         bool                    `json:"submitted"`
	Result            *model.SubmissionResult `json:"result,omitempty"`
}

// NewRenewal prepares a renewal from the renew-search result for a business.
// Documents and permit details from the previous cycle are cleared so they
// must be supplied again.
func NewRenewal(prior model.ApplicationForm) *RenewalForm {
	draft := prior.Clone()

	app := &draft.ApplicationInfo
	app.ClearSystemFields()
	app.BarangayClearanceFileURL = ""
	app.MayorPermitNo = ""
	app.MayorPermitReceivedBy = ""
	app.MayorPermitDate = ""
	app.MayorPermitFileURL = ""

	draft.OfficeReviews = InitializeReviews(nil)

	return &RenewalForm{
		BusinessAccountNo: prior.BusinessInfo.BusinessAccountNo,
		Draft:             draft,
		Errors:            []string{},
	}
}

// Validate checks application details and office reviews together and
// records the result on the form.
func (r *RenewalForm) Validate() validation.Errors {
	errs := validation.RenewalForm(&r.Draft.ApplicationInfo, r.Draft.OfficeReviews)
	if len(errs) > 0 {
		r.Errors = errs
	} else {
		r.Errors = []string{}
	}
	return errs
}

func (r *RenewalForm) SetApplicationDetails(a model.Application) {
	owned, leased := a.IsOwnedProperty, a.IsLeasedProperty
	r.Draft.ApplicationInfo = a
	r.Draft.ApplicationInfo.SelectOwnedProperty(owned)
	if leased {
		r.Draft.ApplicationInfo.SelectLeasedProperty(true)
	}
}

func (r *RenewalForm) SetOfficeReviews(reviews []model.OfficeReview) {
	if reviews == nil {
		reviews = []model.OfficeReview{}
	}
	r.Draft.OfficeReviews = reviews
}

func (r *RenewalForm) AddOptionalOffice(office string) error {
	reviews, err := AddOptionalOffice(r.Draft.OfficeReviews, office)
	if err != nil {
		return err
	}
	r.Draft.OfficeReviews = reviews
	return nil
}

func (r *RenewalForm) RemoveOptionalOffice(office string) error {
	reviews, err := RemoveOptionalOffice(r.Draft.OfficeReviews, office)
	if err != nil {
		return err
	}
	r.Draft.OfficeReviews = reviews
	return nil
}

// Submit validates the whole form and sends it to s.
func (r *RenewalForm) Submit(ctx context.Context, s RenewalSubmitter) error {
	if r.Submitted {
		return ErrAlreadySubmitted
	}
	if r.BusinessAccountNo == "" {
		r.Errors = []string{ErrMissingBusinessAccount.Error()}
		return ErrMissingBusinessAccount
	}
	if errs := r.Validate(); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	payload := r.Draft.Clone()
	payload.ApplicationInfo.ClearSystemFields()
	payload.BusinessInfo.BusinessAccountNo = r.BusinessAccountNo

	result, err := s.RenewApplication(ctx, r.BusinessAccountNo, &payload)
	if err != nil {
		r.Errors = []string{err.Error()}
		return err
	}
	r.Errors = []string{}
	r.Submitted = true
	r.Result = result
	return nil
}
