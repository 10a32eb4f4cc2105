package controller

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/permit-backend/internal/app/service"
	"github.com/ikkim/permit-backend/internal/app/validation"
	"github.com/ikkim/permit-backend/internal/app/wizard"
	"github.com/ikkim/permit-backend/internal/errors"
	"github.com/ikkim/permit-backend/pkg/logger"
)

// respondServiceError maps service errors onto the API's status codes and messages.
func respondServiceError(c *gin.Context, log *logger.Logger, err error, operation string) {
	var (
		messages validation.Errors
		fields   service.FieldErrors
	)
	switch {
	case stderrors.As(err, &messages):
		errors.RespondWithValidationMessages(c, messages)
	case stderrors.As(err, &fields):
		errors.RespondWithValidationError(c, fields)
	case stderrors.Is(err, service.ErrApplicationIDRequired):
		errors.BadRequest(c, errors.ValidationRequired, "Application ID is required")
	case stderrors.Is(err, service.ErrBusinessAccountMissing):
		errors.BadRequest(c, errors.ValidationRequired, "Business Account Number is required")
	case stderrors.Is(err, service.ErrApplicationNotFound):
		errors.NotFound(c, errors.ApplicationNotFound, "Application not found")
	case stderrors.Is(err, service.ErrBusinessNotFound):
		errors.NotFound(c, errors.BusinessNotFound, "Business not found")
	case stderrors.Is(err, service.ErrTaxpayerNotFound):
		errors.NotFound(c, errors.TaxpayerNotFound, "Taxpayer not found")
	case stderrors.Is(err, service.ErrWizardNotFound):
		errors.NotFound(c, errors.WizardSessionNotFound, "Wizard session not found")
	case stderrors.Is(err, wizard.ErrAlreadySubmitted):
		errors.Conflict(c, errors.WizardAlreadyDone, "Application has already been submitted")
	case stderrors.Is(err, wizard.ErrNotOnLastStep):
		errors.BadRequest(c, errors.WizardInvalidStep, err.Error())
	case stderrors.Is(err, wizard.ErrMissingApplicationID):
		errors.BadRequest(c, errors.ValidationRequired, "Application ID is required")
	default:
		log.Error("Request failed", err, map[string]interface{}{
			"operation": operation,
		})
		errors.RespondWithStoreError(c, err, operation)
	}
}
