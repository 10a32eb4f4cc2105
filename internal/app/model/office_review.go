package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// required
	OfficeCityPlanning   = "City Planning & Dev't Office"
	OfficeCityEngineer   = "City Engineer's Office"
	OfficeFireMarshal    = "City Fire Marshal's Office"
	OfficeCityHealth     = "City Health Office"
	OfficeBusinessPermit = "Business Permit & License Office"

	// optional
	OfficeTourism           = "Tourism & Cultural Office"
	OfficeTrafficManagement = "Traffic Management Office"
	OfficeCityVeterinarian  = "City Veterinarian Office"
)

// RequiredOffices returns the five mandatory reviewers in display order.
func RequiredOffices() []string {
	return []string{
		OfficeCityPlanning,
		OfficeCityEngineer,
		OfficeFireMarshal,
		OfficeCityHealth,
		OfficeBusinessPermit,
	}
}

// OptionalOffices returns the offices an applicant may add.
func OptionalOffices() []string {
	return []string{
		OfficeTourism,
		OfficeTrafficManagement,
		OfficeCityVeterinarian,
	}
}

func IsRequiredOffice(name string) bool {
	for _, office := range RequiredOffices() {
		if office == name {
			return true
		}
	}
	return false
}

func IsOptionalOffice(name string) bool {
	for _, office := range OptionalOffices() {
		if office == name {
			return true
		}
	}
	return false
}

// officeRank orders reviews: required offices, then optional, then anything else.
func officeRank(name string) int {
	for i, office := range RequiredOffices() {
		if office == name {
			return i
		}
	}
	for i, office := range OptionalOffices() {
		if office == name {
			return len(RequiredOffices()) + i
		}
	}
	return len(RequiredOffices()) + len(OptionalOffices())
}

// SortOfficeReviews orders reviews in checklist display order, in place.
func SortOfficeReviews(reviews []OfficeReview) {
	sort.SliceStable(reviews, func(i, j int) bool {
		return officeRank(reviews[i].OfficeName) < officeRank(reviews[j].OfficeName)
	})
}

// OfficeReview is one office's attestation for an application.
type OfficeReview struct {
	ReviewedByOfficeID       string    `gorm:"primaryKey;type:varchar(36)" json:"reviewed_by_office_id,omitempty"`
	ApplicationID            string    `gorm:"type:varchar(36);not null;index" json:"application_id,omitempty"`
	OfficeName               string    `gorm:"type:varchar(100);not null" json:"office_name"`
	RemarksAndRecommendation string    `gorm:"type:text" json:"remarks_and_recommendation"`
	OfficeReviewedBy         string    `gorm:"type:varchar(255)" json:"office_reviewed_by"`
	OfficeReviewedDate       string    `gorm:"type:varchar(10)" json:"office_reviewed_date"`
	CreatedAt                time.Time `json:"-"`
}

func (OfficeReview) TableName() string {
	return "reviewed_by_office"
}

func (r *OfficeReview) BeforeCreate(tx *gorm.DB) error {
	if r.ReviewedByOfficeID == "" {
		r.ReviewedByOfficeID = uuid.NewString()
	}
	return nil
}
