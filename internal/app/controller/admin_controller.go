package controller

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/internal/app/service"
	"github.com/ikkim/permit-backend/internal/errors"
	"github.com/ikkim/permit-backend/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminController struct {
	adminService service.AdminService
}

func NewAdminController(adminService service.AdminService) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

// List returns every application with release statistics
// GET /api/v1/admin/applications?search=
func (ctrl *AdminController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	list, err := ctrl.adminService.List(c.Query("search"))
	if err != nil {
		log.Error("Failed to fetch applications", err, nil)
		errors.RespondWithError(c, http.StatusInternalServerError, errors.InternalDatabaseError, "Failed to fetch applications")
		return
	}

	c.JSON(http.StatusOK, list)
}

// Update saves the edit dialog
// PUT /api/v1/admin/applications
func (ctrl *AdminController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var row model.ApplicationSummary
	if err := c.ShouldBindJSON(&row); err != nil {
		errors.RespondWithBindingError(c, err)
		return
	}

	if err := ctrl.adminService.Update(&row); err != nil {
		respondServiceError(c, log, err, "admin_update_application")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Application updated successfully",
	})
}

// Delete removes an application and its office reviews
// DELETE /api/v1/admin/applications?id=
func (ctrl *AdminController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if err := ctrl.adminService.Delete(c.Query("id")); err != nil {
		respondServiceError(c, log, err, "admin_delete_application")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Application deleted successfully",
	})
}

// Export downloads the filtered list as a spreadsheet
// GET /api/v1/admin/applications/export?search=
func (ctrl *AdminController) Export(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var buf bytes.Buffer
	if _, err := ctrl.adminService.Export(&buf, c.Query("search")); err != nil {
		log.Error("Failed to export applications", err, nil)
		errors.InternalError(c, "Failed to export applications")
		return
	}

	filename := fmt.Sprintf("applications-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Import loads legacy records from a spreadsheet
// POST /api/v1/admin/applications/import
func (ctrl *AdminController) Import(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	header, err := c.FormFile("file")
	if err != nil {
		errors.BadRequest(c, errors.UploadMissingFile, "No file provided")
		return
	}
	file, err := header.Open()
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	defer file.Close()

	result, err := ctrl.adminService.Import(file)
	if err != nil {
		log.Warn("Spreadsheet import failed", map[string]interface{}{
			"filename": header.Filename,
			"error":    err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidFormat, err.Error())
		return
	}

	skipped := make([]string, 0, len(result.Skipped))
	for _, rowErr := range result.Skipped {
		skipped = append(skipped, rowErr.Error())
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"imported": result.Imported,
		"skipped":  skipped,
	})
}
