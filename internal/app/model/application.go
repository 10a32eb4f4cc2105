package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationFee is charged for every new application and renewal.
const ApplicationFee = 1500.0

// DateLayout is the wire and storage format of every calendar date.
const DateLayout = "2006-01-02"

// Application is one application cycle for a business.
type Application struct {
	ApplicationID       string  `gorm:"primaryKey;type:varchar(36)" json:"application_id,omitempty"`
	BusinessAccountNo   string  `gorm:"type:varchar(20);not null;index" json:"business_account_no,omitempty"`
	DateOfApplication   string  `gorm:"type:varchar(10);index" json:"date_of_application,omitempty"`
	OfficialReceiptDate string  `gorm:"type:varchar(10)" json:"official_receipt_date,omitempty"`
	AmountPaid          float64 `gorm:"type:decimal(10,2)" json:"amount_paid,omitempty"`

	BarangayClearanceFileURL string `gorm:"type:text" json:"barangay_clearance_file_url"`
	InsuranceIssuingCompany  string `gorm:"type:varchar(255)" json:"insurance_issuing_company"`
	InsuranceDate            string `gorm:"type:varchar(10)" json:"insurance_date"`
	ProofOfOwnershipType     string `gorm:"type:varchar(100)" json:"proof_of_ownership_type"`

	IsOwnedProperty              bool   `gorm:"default:false" json:"is_owned_property"`
	PropertyRegisteredName       string `gorm:"type:varchar(255)" json:"property_registered_name"`
	RealPropertyTaxReceiptNo     string `gorm:"type:varchar(100)" json:"real_property_tax_receipt_no"`
	PeriodDate                   string `gorm:"type:varchar(10)" json:"period_date"`
	OwnedPropertyDocumentFileURL string `gorm:"type:text" json:"owned_property_document_file_url"`

	IsLeasedProperty              bool    `gorm:"default:false" json:"is_leased_property"`
	LessorName                    string  `gorm:"type:varchar(255)" json:"lessor_name"`
	LeasedAreaSqMeter             float64 `gorm:"type:decimal(10,2)" json:"leased_area_sq_meter"`
	RentPerMonth                  float64 `gorm:"type:decimal(12,2)" json:"rent_per_month"`
	LeasedPropertyDocumentFileURL string  `gorm:"type:text" json:"leased_property_document_file_url"`

	ApplicantName     string `gorm:"type:varchar(255)" json:"applicant_name"`
	ApplicantPosition string `gorm:"type:varchar(255)" json:"applicant_position"`

	BusinessPlateNo   string `gorm:"type:varchar(20);index" json:"business_plate_no,omitempty"`
	BusinessPlateDate string `gorm:"type:varchar(10)" json:"business_plate_date,omitempty"`

	MayorPermitNo         string `gorm:"type:varchar(100);index" json:"mayor_permit_no"`
	MayorPermitReceivedBy string `gorm:"type:varchar(255)" json:"mayor_permit_received_by"`
	MayorPermitDate       string `gorm:"type:varchar(10)" json:"mayor_permit_date"`
	MayorPermitFileURL    string `gorm:"type:text" json:"mayor_permit_file_url"`

	// Release tracking stays NULL until staff action.
	PermitDateOfRelease *string `gorm:"type:varchar(10)" json:"permit_date_of_release"`
	PermitTimeOfRelease *string `gorm:"type:varchar(10)" json:"permit_time_of_release"`
	PermitReleasedBy    *string `gorm:"type:varchar(255)" json:"permit_released_by"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Business      *Business      `gorm:"foreignKey:BusinessAccountNo;references:BusinessAccountNo;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"business_info,omitempty"`
	OfficeReviews []OfficeReview `gorm:"foreignKey:ApplicationID;references:ApplicationID;constraint:OnDelete:CASCADE" json:"reviewed_by_office,omitempty"`
}

func (Application) TableName() string {
	return "business_application_info"
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ApplicationID == "" {
		a.ApplicationID = uuid.NewString()
	}
	return nil
}

// SystemColumns are assigned by the server and never taken from a modification payload.
var SystemColumns = []string{
	"application_id",
	"business_account_no",
	"date_of_application",
	"official_receipt_date",
	"amount_paid",
	"business_plate_no",
	"business_plate_date",
	"permit_date_of_release",
	"permit_time_of_release",
	"permit_released_by",
	"created_at",
}

// ClearSystemFields zeroes every server-assigned field.
func (a *Application) ClearSystemFields() {
	a.ApplicationID = ""
	a.BusinessAccountNo = ""
	a.DateOfApplication = ""
	a.OfficialReceiptDate = ""
	a.AmountPaid = 0
	a.BusinessPlateNo = ""
	a.BusinessPlateDate = ""
	a.ClearRelease()
}

// ClearRelease resets the release tracking fields to NULL.
func (a *Application) ClearRelease() {
	a.PermitDateOfRelease = nil
	a.PermitTimeOfRelease = nil
	a.PermitReleasedBy = nil
}

// SelectOwnedProperty sets the owned flag. Checking it clears the leased flag.
func (a *Application) SelectOwnedProperty(checked bool) {
	a.IsOwnedProperty = checked
	if checked {
		a.IsLeasedProperty = false
	}
}

// SelectLeasedProperty sets the leased flag. Checking it clears the owned flag.
func (a *Application) SelectLeasedProperty(checked bool) {
	a.IsLeasedProperty = checked
	if checked {
		a.IsOwnedProperty = false
	}
}

// Today formats t in DateLayout.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}

// StringPtr returns nil for an empty string so optional columns store NULL.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
