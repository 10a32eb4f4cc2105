package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/internal/app/service"
	"github.com/ikkim/permit-backend/internal/app/wizard"
	"github.com/ikkim/permit-backend/internal/errors"
	"github.com/ikkim/permit-backend/internal/middleware"
	"github.com/ikkim/permit-backend/pkg/logger"
)

type WizardController struct {
	wizardService service.WizardService
}

func NewWizardController(wizardService service.WizardService) *WizardController {
	return &WizardController{
		wizardService: wizardService,
	}
}

type StartWizardRequest struct {
	ApplicationID string `json:"applicationId"`
}

type PropertyRequest struct {
	Type    string `json:"type" binding:"required,oneof=owned leased"`
	Checked bool   `json:"checked"`
}

type OfficeRequest struct {
	Office string `json:"office" binding:"required"`
}

// Start opens a draft session
// POST /api/v1/wizard
func (ctrl *WizardController) Start(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req StartWizardRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.RespondWithBindingError(c, err)
			return
		}
	}

	session, err := ctrl.wizardService.Start(req.ApplicationID)
	if err != nil {
		respondServiceError(c, log, err, "start_wizard")
		return
	}

	c.JSON(http.StatusCreated, session)
}

// Get returns a draft session
// GET /api/v1/wizard/:id
func (ctrl *WizardController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	session, err := ctrl.wizardService.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, log, err, "get_wizard")
		return
	}

	c.JSON(http.StatusOK, session)
}

// UpdateSection replaces one section of the draft
// PUT /api/v1/wizard/:id/:section
func (ctrl *WizardController) UpdateSection(c *gin.Context) {
	var apply func(w *wizard.Wizard) error

	switch c.Param("section") {
	case "taxpayer":
		var t model.Taxpayer
		if err := c.ShouldBindJSON(&t); err != nil {
			errors.RespondWithBindingError(c, err)
			return
		}
		apply = func(w *wizard.Wizard) error {
			w.SetTaxpayer(t)
			return nil
		}
	case "business":
		var b model.Business
		if err := c.ShouldBindJSON(&b); err != nil {
			errors.RespondWithBindingError(c, err)
			return
		}
		apply = func(w *wizard.Wizard) error {
			w.SetBusiness(b)
			return nil
		}
	case "application":
		var a model.Application
		if err := c.ShouldBindJSON(&a); err != nil {
			errors.RespondWithBindingError(c, err)
			return
		}
		apply = func(w *wizard.Wizard) error {
			w.SetApplicationDetails(a)
			return nil
		}
	case "reviews":
		var reviews []model.OfficeReview
		if err := c.ShouldBindJSON(&reviews); err != nil {
			errors.RespondWithBindingError(c, err)
			return
		}
		apply = func(w *wizard.Wizard) error {
			w.SetOfficeReviews(reviews)
			return nil
		}
	default:
		errors.BadRequest(c, errors.WizardInvalidStep, "Unknown section")
		return
	}

	ctrl.update(c, "update_wizard_section", apply)
}

// Property toggles the owned or leased checkbox
// POST /api/v1/wizard/:id/property
func (ctrl *WizardController) Property(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithBindingError(c, err)
		return
	}

	ctrl.update(c, "select_property", func(w *wizard.Wizard) error {
		if req.Type == "owned" {
			w.SelectOwnedProperty(req.Checked)
		} else {
			w.SelectLeasedProperty(req.Checked)
		}
		return nil
	})
}

// Next validates the current step and advances when it passes.
// The step's errors come back in the session body.
// POST /api/v1/wizard/:id/next
func (ctrl *WizardController) Next(c *gin.Context) {
	ctrl.update(c, "wizard_next", func(w *wizard.Wizard) error {
		w.Next()
		return nil
	})
}

// Previous goes back one step
// POST /api/v1/wizard/:id/previous
func (ctrl *WizardController) Previous(c *gin.Context) {
	ctrl.update(c, "wizard_previous", func(w *wizard.Wizard) error {
		w.Previous()
		return nil
	})
}

// AddOffice adds an optional office review
// POST /api/v1/wizard/:id/offices
func (ctrl *WizardController) AddOffice(c *gin.Context) {
	var req OfficeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithBindingError(c, err)
		return
	}

	ctrl.update(c, "add_office", func(w *wizard.Wizard) error {
		return w.AddOptionalOffice(req.Office)
	})
}

// RemoveOffice removes an optional office review
// DELETE /api/v1/wizard/:id/offices/:office
func (ctrl *WizardController) RemoveOffice(c *gin.Context) {
	office := c.Param("office")
	ctrl.update(c, "remove_office", func(w *wizard.Wizard) error {
		return w.RemoveOptionalOffice(office)
	})
}

// Submit sends the finished draft
// POST /api/v1/wizard/:id/submit
func (ctrl *WizardController) Submit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	session, err := ctrl.wizardService.Submit(c.Param("id"))
	if err != nil {
		respondWizardError(c, log, session, err, "submit_wizard")
		return
	}

	c.JSON(http.StatusOK, session)
}

func (ctrl *WizardController) update(c *gin.Context, operation string, fn func(w *wizard.Wizard) error) {
	log := middleware.GetLoggerFromContext(c)

	session, err := ctrl.wizardService.Update(c.Param("id"), fn)
	if err != nil {
		respondWizardError(c, log, session, err, operation)
		return
	}

	c.JSON(http.StatusOK, session)
}

// respondWizardError answers with the session body when the draft itself
// carries the failure, so the client can render the step errors.
func respondWizardError(c *gin.Context, log *logger.Logger, session *service.WizardSession, err error, operation string) {
	switch {
	case stderrors.Is(err, wizard.ErrUnknownOffice),
		stderrors.Is(err, wizard.ErrOfficeAlreadyAdded),
		stderrors.Is(err, wizard.ErrRequiredOffice),
		stderrors.Is(err, wizard.ErrOfficeNotFound):
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
	case session != nil && !stderrors.Is(err, wizard.ErrAlreadySubmitted) && !stderrors.Is(err, wizard.ErrNotOnLastStep):
		log.Warn("Wizard step rejected", map[string]interface{}{
			"operation":  operation,
			"session_id": session.ID,
			"error":      err.Error(),
		})
		c.JSON(http.StatusUnprocessableEntity, session)
	default:
		respondServiceError(c, log, err, operation)
	}
}
