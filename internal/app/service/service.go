package service

import (
	"fmt"

	"github.com/ikkim/permit-backend/internal/app/repository"
	"github.com/ikkim/permit-backend/pkg/logger"
	"gorm.io/gorm"
)

// Event types published to the admin feed.
const (
	EventApplicationCreated  = "application.created"
	EventApplicationModified = "application.modified"
	EventApplicationRenewed  = "application.renewed"
	EventApplicationUpdated  = "application.updated"
	EventApplicationDeleted  = "application.deleted"
	EventRenewalsDue         = "renewals.due"
)

// Notifier receives application lifecycle events. The websocket hub implements it.
type Notifier interface {
	Notify(event string, data map[string]interface{})
}

type noopNotifier struct{}

func (noopNotifier) Notify(string, map[string]interface{}) {}

func notifierOrNoop(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}

// txRepos are the repositories bound to one transaction.
type txRepos struct {
	taxpayers    repository.TaxpayerRepository
	businesses   repository.BusinessRepository
	applications repository.ApplicationRepository
	reviews      repository.OfficeReviewRepository
}

func newTxRepos(tx *gorm.DB) txRepos {
	return txRepos{
		taxpayers:    repository.NewTaxpayerRepository(tx),
		businesses:   repository.NewBusinessRepository(tx),
		applications: repository.NewApplicationRepository(tx),
		reviews:      repository.NewOfficeReviewRepository(tx),
	}
}

// inTransaction runs fn in a transaction, rolling back on error or panic.
func inTransaction(db *gorm.DB, operation string, fn func(r txRepos) error) (err error) {
	tx := db.Begin()
	if tx.Error != nil {
		logger.Error("Failed to begin transaction", tx.Error, map[string]interface{}{
			"operation": operation,
		})
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			err = fmt.Errorf("panic: %v", r)
			logger.Error("Panic during transaction, rolling back", err, map[string]interface{}{
				"operation": operation,
			})
		}
	}()

	if err := fn(newTxRepos(tx)); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit transaction", err, map[string]interface{}{
			"operation": operation,
		})
		return err
	}
	return nil
}
