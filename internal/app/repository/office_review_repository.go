package repository

import (
	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/pkg/logger"
	"gorm.io/gorm"
)

type OfficeReviewRepository interface {
	FindByApplicationID(applicationID string) ([]model.OfficeReview, error)
	Replace(applicationID string, reviews []model.OfficeReview) error
	DeleteByApplicationID(applicationID string) error
}

type officeReviewRepository struct {
	db *gorm.DB
}

func NewOfficeReviewRepository(db *gorm.DB) OfficeReviewRepository {
	return &officeReviewRepository{db: db}
}

func (r *officeReviewRepository) FindByApplicationID(applicationID string) ([]model.OfficeReview, error) {
	logger.Debug("Finding office reviews in database", map[string]interface{}{
		"application_id": applicationID,
	})

	var reviews []model.OfficeReview
	if err := r.db.Where("application_id = ?", applicationID).Find(&reviews).Error; err != nil {
		logger.Error("Failed to find office reviews in database", err, map[string]interface{}{
			"application_id": applicationID,
		})
		return nil, err
	}
	model.SortOfficeReviews(reviews)
	return reviews, nil
}

// Replace deletes every review of the application and inserts reviews in
// their place. Review ids are regenerated. Run it inside a transaction.
func (r *officeReviewRepository) Replace(applicationID string, reviews []model.OfficeReview) error {
	if err := r.DeleteByApplicationID(applicationID); err != nil {
		return err
	}
	if len(reviews) == 0 {
		return nil
	}

	rows := make([]model.OfficeReview, len(reviews))
	for i, review := range reviews {
		rows[i] = model.OfficeReview{
			ApplicationID:            applicationID,
			OfficeName:               review.OfficeName,
			RemarksAndRecommendation: review.RemarksAndRecommendation,
			OfficeReviewedBy:         review.OfficeReviewedBy,
			OfficeReviewedDate:       review.OfficeReviewedDate,
		}
	}

	logger.Debug("Inserting office reviews in database", map[string]interface{}{
		"application_id": applicationID,
		"count":          len(rows),
	})
	if err := r.db.Create(&rows).Error; err != nil {
		logger.Error("Failed to insert office reviews in database", err, map[string]interface{}{
			"application_id": applicationID,
		})
		return err
	}
	return nil
}

func (r *officeReviewRepository) DeleteByApplicationID(applicationID string) error {
	logger.Debug("Deleting office reviews in database", map[string]interface{}{
		"application_id": applicationID,
	})

	if err := r.db.Where("application_id = ?", applicationID).Delete(&model.OfficeReview{}).Error; err != nil {
		logger.Error("Failed to delete office reviews in database", err, map[string]interface{}{
			"application_id": applicationID,
		})
		return err
	}
	return nil
}
