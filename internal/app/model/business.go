package model

import (
	"time"

	"github.com/ikkim/permit-backend/pkg/util"
	"gorm.io/gorm"
)

type OwnershipType string

const (
	OwnershipSoleProprietorship OwnershipType = "Sole Proprietorship"
	OwnershipPartnership        OwnershipType = "Partnership"
	OwnershipCorporation        OwnershipType = "Corporation"
)

// RequiresSEC reports whether the ownership type registers with the SEC.
func (o OwnershipType) RequiresSEC() bool {
	return o == OwnershipCorporation || o == OwnershipPartnership
}

// RequiresDTI reports whether the ownership type registers with the DTI.
func (o OwnershipType) RequiresDTI() bool {
	return o == OwnershipSoleProprietorship
}

func (o OwnershipType) Valid() bool {
	return o == OwnershipSoleProprietorship || o == OwnershipPartnership || o == OwnershipCorporation
}

// Business is one business entity, persistent across application cycles.
type Business struct {
	BusinessAccountNo             string        `gorm:"primaryKey;type:varchar(20)" json:"business_account_no,omitempty"`
	BusinessCapital               float64       `gorm:"type:decimal(15,2);not null" json:"business_capital"`
	BusinessTradeName             string        `gorm:"type:varchar(255);not null;index" json:"business_trade_name"`
	BusinessTelephoneNo           string        `gorm:"type:varchar(50);not null" json:"business_telephone_no"`
	BusinessFaxNo                 string        `gorm:"type:varchar(50)" json:"business_fax_no"`
	CommercialAddressBuildingName string        `gorm:"type:varchar(255)" json:"commercial_address_building_name"`
	CommercialAddressBuildingNo   string        `gorm:"type:varchar(50)" json:"commercial_address_building_no"`
	CommercialAddressStreet       string        `gorm:"type:varchar(255)" json:"commercial_address_street"`
	CommercialAddressBarangayNo   string        `gorm:"type:varchar(20)" json:"commercial_address_barangay_no"`
	MainLineOfBusiness            string        `gorm:"type:varchar(255)" json:"main_line_of_business"`
	MainProductsServices          string        `gorm:"type:varchar(255)" json:"main_products_services"`
	OtherLinesOfBusiness          string        `gorm:"type:text" json:"other_lines_of_business"`
	OtherProductsServices         string        `gorm:"type:text" json:"other_products_services"`
	BusinessOwnershipType         OwnershipType `gorm:"type:varchar(30);not null" json:"business_ownership_type"`
	NoOfEmployees                 int           `gorm:"default:0" json:"no_of_employees"`
	TaxpayerID                    string        `gorm:"type:varchar(36);not null;index" json:"taxpayer_id,omitempty"`
	SecRegistrationNo             string        `gorm:"type:varchar(100)" json:"sec_registration_no"`
	SecRegistrationFileURL        string        `gorm:"type:text" json:"sec_registration_file_url"`
	DtiRegistrationNo             string        `gorm:"type:varchar(100)" json:"dti_registration_no"`
	DtiRegistrationFileURL        string        `gorm:"type:text" json:"dti_registration_file_url"`
	CreatedAt                     time.Time     `json:"-"`
	UpdatedAt                     time.Time     `json:"-"`

	Taxpayer *Taxpayer `gorm:"foreignKey:TaxpayerID;references:TaxpayerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"taxpayer_info,omitempty"`
}

func (Business) TableName() string {
	return "business_info"
}

// BeforeCreate numbers rows inserted without going through a service.
func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.BusinessAccountNo == "" {
		b.BusinessAccountNo = util.GenerateBusinessAccountNo(time.Now())
	}
	return nil
}
