package repository

import (
	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository interface {
	Create(app *model.Application) error
	FindByID(id string) (*model.Application, error)
	FindLatestByBusiness(accountNo string) (*model.Application, error)
	FindAll() ([]model.Application, error)
	FindByCycleDateRange(from, to string) ([]model.Application, error)
	Update(app *model.Application, omit ...string) error
	UpdateColumns(app *model.Application, columns []string) error
	Delete(id string) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) withRelations() *gorm.DB {
	return r.db.Preload("Business.Taxpayer").Preload("OfficeReviews")
}

func sortReviews(apps []model.Application) {
	for i := range apps {
		model.SortOfficeReviews(apps[i].OfficeReviews)
	}
}

func (r *applicationRepository) Create(app *model.Application) error {
	logger.Debug("Creating application in database", map[string]interface{}{
		"business_account_no": app.BusinessAccountNo,
	})

	if err := r.db.Omit(clause.Associations).Create(app).Error; err != nil {
		logger.Error("Failed to create application in database", err, map[string]interface{}{
			"business_account_no": app.BusinessAccountNo,
		})
		return err
	}

	logger.Debug("Application created in database", map[string]interface{}{
		"application_id":      app.ApplicationID,
		"business_account_no": app.BusinessAccountNo,
	})
	return nil
}

// FindByID loads an application with its business, taxpayer and reviews.
func (r *applicationRepository) FindByID(id string) (*model.Application, error) {
	logger.Debug("Finding application by ID in database", map[string]interface{}{
		"application_id": id,
	})

	var app model.Application
	if err := r.withRelations().Where("application_id = ?", id).First(&app).Error; err != nil {
		logger.Error("Failed to find application by ID in database", err, map[string]interface{}{
			"application_id": id,
		})
		return nil, err
	}
	model.SortOfficeReviews(app.OfficeReviews)

	logger.Debug("Application found by ID in database", map[string]interface{}{
		"application_id": app.ApplicationID,
		"review_count":   len(app.OfficeReviews),
	})
	return &app, nil
}

// FindLatestByBusiness returns the most recent application cycle of a business.
func (r *applicationRepository) FindLatestByBusiness(accountNo string) (*model.Application, error) {
	logger.Debug("Finding latest application for business in database", map[string]interface{}{
		"business_account_no": accountNo,
	})

	var app model.Application
	err := r.db.Where("business_account_no = ?", accountNo).
		Order("date_of_application DESC").
		Order("created_at DESC").
		First(&app).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find latest application in database", err, map[string]interface{}{
				"business_account_no": accountNo,
			})
		}
		return nil, err
	}
	return &app, nil
}

// FindAll returns every application, newest first, with relations loaded.
func (r *applicationRepository) FindAll() ([]model.Application, error) {
	logger.Debug("Finding all applications in database", nil)

	var apps []model.Application
	if err := r.withRelations().Order("date_of_application DESC").Find(&apps).Error; err != nil {
		logger.Error("Failed to find applications in database", err, nil)
		return nil, err
	}
	sortReviews(apps)

	logger.Debug("Applications found in database", map[string]interface{}{
		"count": len(apps),
	})
	return apps, nil
}

// cycleDate is the day the current permit cycle was paid for. Renewals move
// official_receipt_date forward; imported rows may only carry date_of_application.
const cycleDate = "COALESCE(NULLIF(official_receipt_date, ''), date_of_application)"

// FindByCycleDateRange returns applications whose current cycle started between
// from and to inclusive. Dates are YYYY-MM-DD so string comparison orders them.
func (r *applicationRepository) FindByCycleDateRange(from, to string) ([]model.Application, error) {
	logger.Debug("Finding applications by cycle date range in database", map[string]interface{}{
		"from": from,
		"to":   to,
	})

	var apps []model.Application
	err := r.db.Preload("Business.Taxpayer").
		Where(cycleDate+" >= ? AND "+cycleDate+" <= ?", from, to).
		Order(cycleDate + " ASC").
		Find(&apps).Error
	if err != nil {
		logger.Error("Failed to find applications by cycle date range in database", err, map[string]interface{}{
			"from": from,
			"to":   to,
		})
		return nil, err
	}
	return apps, nil
}

// Update writes every column of app except the key, the timestamps and omit.
func (r *applicationRepository) Update(app *model.Application, omit ...string) error {
	logger.Debug("Updating application in database", map[string]interface{}{
		"application_id": app.ApplicationID,
	})

	columns := append([]string{"application_id", "created_at", clause.Associations}, omit...)
	result := r.db.Model(&model.Application{}).
		Where("application_id = ?", app.ApplicationID).
		Select("*").
		Omit(columns...).
		Updates(app)
	if result.Error != nil {
		logger.Error("Failed to update application in database", result.Error, map[string]interface{}{
			"application_id": app.ApplicationID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Application updated in database", map[string]interface{}{
		"application_id": app.ApplicationID,
	})
	return nil
}

// UpdateColumns writes only columns, including zero and NULL values.
func (r *applicationRepository) UpdateColumns(app *model.Application, columns []string) error {
	logger.Debug("Updating application columns in database", map[string]interface{}{
		"application_id": app.ApplicationID,
		"columns":        len(columns),
	})

	result := r.db.Model(&model.Application{}).
		Where("application_id = ?", app.ApplicationID).
		Select(columns).
		Updates(app)
	if result.Error != nil {
		logger.Error("Failed to update application columns in database", result.Error, map[string]interface{}{
			"application_id": app.ApplicationID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *applicationRepository) Delete(id string) error {
	logger.Debug("Deleting application in database", map[string]interface{}{
		"application_id": id,
	})

	result := r.db.Where("application_id = ?", id).Delete(&model.Application{})
	if result.Error != nil {
		logger.Error("Failed to delete application in database", result.Error, map[string]interface{}{
			"application_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Application deleted in database", map[string]interface{}{
		"application_id": id,
	})
	return nil
}
