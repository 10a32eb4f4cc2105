package repository

import (
	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/pkg/logger"
	"gorm.io/gorm"
)

type TaxpayerRepository interface {
	Create(taxpayer *model.Taxpayer) error
	FindByID(id string) (*model.Taxpayer, error)
	Update(taxpayer *model.Taxpayer) error
}

type taxpayerRepository struct {
	db *gorm.DB
}

func NewTaxpayerRepository(db *gorm.DB) TaxpayerRepository {
	return &taxpayerRepository{db: db}
}

func (r *taxpayerRepository) Create(taxpayer *model.Taxpayer) error {
	logger.Debug("Creating taxpayer in database", map[string]interface{}{
		"taxpayer_name": taxpayer.TaxpayerName,
	})

	if err := r.db.Create(taxpayer).Error; err != nil {
		logger.Error("Failed to create taxpayer in database", err, map[string]interface{}{
			"taxpayer_name": taxpayer.TaxpayerName,
		})
		return err
	}

	logger.Debug("Taxpayer created in database", map[string]interface{}{
		"taxpayer_id": taxpayer.TaxpayerID,
	})
	return nil
}

func (r *taxpayerRepository) FindByID(id string) (*model.Taxpayer, error) {
	logger.Debug("Finding taxpayer by ID in database", map[string]interface{}{
		"taxpayer_id": id,
	})

	var taxpayer model.Taxpayer
	if err := r.db.Where("taxpayer_id = ?", id).First(&taxpayer).Error; err != nil {
		logger.Error("Failed to find taxpayer by ID in database", err, map[string]interface{}{
			"taxpayer_id": id,
		})
		return nil, err
	}
	return &taxpayer, nil
}

// Update writes the editable taxpayer columns of the row keyed by TaxpayerID.
func (r *taxpayerRepository) Update(taxpayer *model.Taxpayer) error {
	logger.Debug("Updating taxpayer in database", map[string]interface{}{
		"taxpayer_id": taxpayer.TaxpayerID,
	})

	result := r.db.Model(&model.Taxpayer{}).
		Where("taxpayer_id = ?", taxpayer.TaxpayerID).
		Select("taxpayer_name", "taxpayer_telephone_no", "taxpayer_address", "taxpayer_barangay_no").
		Updates(taxpayer)
	if result.Error != nil {
		logger.Error("Failed to update taxpayer in database", result.Error, map[string]interface{}{
			"taxpayer_id": taxpayer.TaxpayerID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Taxpayer updated in database", map[string]interface{}{
		"taxpayer_id": taxpayer.TaxpayerID,
	})
	return nil
}
