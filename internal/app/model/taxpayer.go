package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Taxpayer is the individual of record for a business. It is reused across renewals.
type Taxpayer struct {
	TaxpayerID          string    `gorm:"primaryKey;type:varchar(36)" json:"taxpayer_id,omitempty"`
	TaxpayerName        string    `gorm:"type:varchar(255);not null" json:"taxpayer_name"`
	TaxpayerTelephoneNo string    `gorm:"type:varchar(50);not null" json:"taxpayer_telephone_no"`
	TaxpayerAddress     string    `gorm:"type:text;not null" json:"taxpayer_address"`
	TaxpayerBarangayNo  string    `gorm:"type:varchar(20);not null" json:"taxpayer_barangay_no"`
	CreatedAt           time.Time `json:"-"`
	UpdatedAt           time.Time `json:"-"`
}

func (Taxpayer) TableName() string {
	return "taxpayer_info"
}

func (t *Taxpayer) BeforeCreate(tx *gorm.DB) error {
	if t.TaxpayerID == "" {
		t.TaxpayerID = uuid.NewString()
	}
	return nil
}
