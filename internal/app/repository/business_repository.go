package repository

import (
	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BusinessRepository interface {
	Create(business *model.Business) error
	FindByAccountNo(accountNo string) (*model.Business, error)
	Update(business *model.Business) error
}

type businessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(business *model.Business) error {
	logger.Debug("Creating business in database", map[string]interface{}{
		"trade_name":  business.BusinessTradeName,
		"taxpayer_id": business.TaxpayerID,
	})

	if err := r.db.Omit(clause.Associations).Create(business).Error; err != nil {
		logger.Error("Failed to create business in database", err, map[string]interface{}{
			"trade_name": business.BusinessTradeName,
		})
		return err
	}

	logger.Debug("Business created in database", map[string]interface{}{
		"business_account_no": business.BusinessAccountNo,
	})
	return nil
}

// FindByAccountNo loads a business with its taxpayer.
func (r *businessRepository) FindByAccountNo(accountNo string) (*model.Business, error) {
	logger.Debug("Finding business by account number in database", map[string]interface{}{
		"business_account_no": accountNo,
	})

	var business model.Business
	err := r.db.Preload("Taxpayer").
		Where("business_account_no = ?", accountNo).
		First(&business).Error
	if err != nil {
		logger.Error("Failed to find business by account number in database", err, map[string]interface{}{
			"business_account_no": accountNo,
		})
		return nil, err
	}

	logger.Debug("Business found by account number in database", map[string]interface{}{
		"business_account_no": business.BusinessAccountNo,
		"trade_name":          business.BusinessTradeName,
	})
	return &business, nil
}

// Update writes every business column except the key, the taxpayer link and
// the timestamps.
func (r *businessRepository) Update(business *model.Business) error {
	logger.Debug("Updating business in database", map[string]interface{}{
		"business_account_no": business.BusinessAccountNo,
	})

	result := r.db.Model(&model.Business{}).
		Where("business_account_no = ?", business.BusinessAccountNo).
		Select("*").
		Omit("business_account_no", "taxpayer_id", "created_at", clause.Associations).
		Updates(business)
	if result.Error != nil {
		logger.Error("Failed to update business in database", result.Error, map[string]interface{}{
			"business_account_no": business.BusinessAccountNo,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Business updated in database", map[string]interface{}{
		"business_account_no": business.BusinessAccountNo,
	})
	return nil
}
