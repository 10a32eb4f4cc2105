package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/permit-backend/internal/db"
	"github.com/ikkim/permit-backend/internal/middleware"
	"gorm.io/gorm"
)

type SystemController struct {
	db *gorm.DB
}

func NewSystemController(database *gorm.DB) *SystemController {
	return &SystemController{db: database}
}

// Health reports that the process is serving
// GET /health
func (ctrl *SystemController) Health(c *gin.Context) {
	status := "ok"
	if sqlDB, err := ctrl.db.DB(); err != nil || sqlDB.Ping() != nil {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"database": status == "ok",
	})
}

// Database reports whether the application tables exist
// GET /api/v1/system/database
func (ctrl *SystemController) Database(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if _, err := ctrl.db.DB(); err != nil {
		log.Error("Database configuration check failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to check database configuration",
			"details": err.Error(),
		})
		return
	}

	status := db.CheckTables(ctrl.db)
	if !status.Ready {
		log.Warn("Database tables missing", map[string]interface{}{
			"tables": status.Tables,
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Database tables not found. Please run the SQL scripts to create the tables first.",
			"details": "Run the server with AutoMigrate enabled or apply the migrations manually",
			"tables":  status.Tables,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database tables are properly configured",
		"tables":  status.Tables,
	})
}
