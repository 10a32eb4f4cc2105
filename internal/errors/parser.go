package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError translates store errors into an ErrorInfo without leaking SQL details.
// context names the resource or action, e.g. "application", "update business".
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Internal server error",
		}
	}

	errLower := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundInfo(context)
	}

	// 23505
	if strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint") {
		return parseDuplicateKeyError(errLower)
	}

	// 23503
	if strings.Contains(errLower, "foreign key constraint") {
		return parseForeignKeyError(errLower)
	}

	// 23502
	if strings.Contains(errLower, "not-null constraint") || strings.Contains(errLower, "not null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	}

	// 23514
	if strings.Contains(errLower, "check constraint") {
		return ErrorInfo{Code: ValidationInvalidInput, Message: "A field value is out of range"}
	}

	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Could not reach an upstream service. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalDatabaseError,
		Message: "Database error",
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "business_account_no"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Business account number already exists"}
	case strings.Contains(errLower, "business_plate_no"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Business plate number already issued. Please resubmit"}
	case strings.Contains(errLower, "mayor_permit_no"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Mayor permit number already exists"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "Record already exists"}
}

func parseForeignKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "still referenced") {
		return ErrorInfo{Code: ResourceConflict, Message: "Record is still referenced by other data"}
	}
	switch {
	case strings.Contains(errLower, "taxpayer_id"):
		return ErrorInfo{Code: TaxpayerNotFound, Message: "Taxpayer not found"}
	case strings.Contains(errLower, "business_account_no"):
		return ErrorInfo{Code: BusinessNotFound, Message: "Business not found"}
	case strings.Contains(errLower, "application_id"):
		return ErrorInfo{Code: ApplicationNotFound, Message: "Application not found"}
	}
	return ErrorInfo{Code: ResourceNotFound, Message: "Referenced record not found"}
}

func notFoundInfo(context string) ErrorInfo {
	contextLower := strings.ToLower(context)
	switch {
	case strings.Contains(contextLower, "application"):
		return ErrorInfo{Code: ApplicationNotFound, Message: "Application not found"}
	case strings.Contains(contextLower, "business"):
		return ErrorInfo{Code: BusinessNotFound, Message: "Business not found"}
	case strings.Contains(contextLower, "taxpayer"):
		return ErrorInfo{Code: TaxpayerNotFound, Message: "Taxpayer not found"}
	}
	return ErrorInfo{Code: ResourceNotFound, Message: "Record not found"}
}

// StatusFor returns the HTTP status that goes with a parsed store error.
func StatusFor(info ErrorInfo) int {
	switch info.Code {
	case ResourceAlreadyExists, ResourceConflict:
		return http.StatusConflict
	case ResourceNotFound, ApplicationNotFound, BusinessNotFound, TaxpayerNotFound:
		return http.StatusNotFound
	case ValidationRequired, ValidationInvalidInput:
		return http.StatusBadRequest
	case InternalExternalAPI:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// RespondWithStoreError parses err and writes it with the matching status.
func RespondWithStoreError(c *gin.Context, err error, context string) {
	info := ParseError(err, context)
	RespondWithError(c, StatusFor(info), info.Code, info.Message)
}
