package db

import (
	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Models lists the persisted records in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.Taxpayer{},
		&model.Business{},
		&model.Application{},
		&model.OfficeReview{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	return MigrateDB(DB)
}

// MigrateDB runs the migrations against db.
func MigrateDB(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// TableStatus is the result of a schema check.
type TableStatus struct {
	Tables map[string]bool `json:"tables"`
	Ready  bool            `json:"ready"`
}

// CheckTables reports which of the application tables exist.
func CheckTables(db *gorm.DB) TableStatus {
	status := TableStatus{Tables: make(map[string]bool), Ready: true}
	migrator := db.Migrator()
	for _, m := range Models() {
		table := m.(schema.Tabler).TableName()
		exists := migrator.HasTable(table)
		status.Tables[table] = exists
		if !exists {
			status.Ready = false
		}
	}
	return status
}
