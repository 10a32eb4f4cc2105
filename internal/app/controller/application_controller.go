package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/internal/app/service"
	"github.com/ikkim/permit-backend/internal/errors"
	"github.com/ikkim/permit-backend/internal/middleware"
)

type ApplicationController struct {
	applicationService service.ApplicationService
}

func NewApplicationController(applicationService service.ApplicationService) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
	}
}

type ApplicationIDRequest struct {
	ApplicationID string `json:"applicationId"`
}

type BusinessAccountRequest struct {
	BusinessAccountNo string `json:"businessAccountNo"`
}

type ModifyApplicationRequest struct {
	ApplicationID string `json:"applicationId"`
	model.ApplicationForm
}

type RenewApplicationRequest struct {
	BusinessAccountNo string `json:"businessAccountNo"`
	model.ApplicationForm
}

// Create submits a new application
// POST /api/v1/applications
func (ctrl *ApplicationController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var form model.ApplicationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.RespondWithBindingError(c, err)
		return
	}

	result, err := ctrl.applicationService.Create(&form)
	if err != nil {
		respondServiceError(c, log, err, "create_application")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Modify rewrites a submitted application
// PUT /api/v1/applications/modify
func (ctrl *ApplicationController) Modify(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ModifyApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithBindingError(c, err)
		return
	}

	result, err := ctrl.applicationService.Modify(req.ApplicationID, &req.ApplicationForm)
	if err != nil {
		respondServiceError(c, log, err, "modify_application")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Search loads an application for modification
// POST /api/v1/applications/search
func (ctrl *ApplicationController) Search(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ApplicationIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithBindingError(c, err)
		return
	}

	form, err := ctrl.applicationService.Search(req.ApplicationID)
	if err != nil {
		respondServiceError(c, log, err, "search_application")
		return
	}

	c.JSON(http.StatusOK, form)
}

// RenewSearch loads a business and its latest cycle for renewal
// POST /api/v1/applications/renew-search
func (ctrl *ApplicationController) RenewSearch(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BusinessAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithBindingError(c, err)
		return
	}

	form, err := ctrl.applicationService.RenewSearch(req.BusinessAccountNo)
	if err != nil {
		respondServiceError(c, log, err, "renew_search")
		return
	}

	c.JSON(http.StatusOK, form)
}

// Renew submits a renewal
// POST /api/v1/applications/renew
func (ctrl *ApplicationController) Renew(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RenewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithBindingError(c, err)
		return
	}

	result, err := ctrl.applicationService.Renew(req.BusinessAccountNo, &req.ApplicationForm)
	if err != nil {
		respondServiceError(c, log, err, "renew_application")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Track reports the release status of an application
// POST /api/v1/track
func (ctrl *ApplicationController) Track(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ApplicationIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithBindingError(c, err)
		return
	}

	result, err := ctrl.applicationService.Track(req.ApplicationID)
	if err != nil {
		respondServiceError(c, log, err, "track_application")
		return
	}

	c.JSON(http.StatusOK, result)
}
