package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// RespondWithBindingError writes a 400 for a failed ShouldBind call. Validator
// failures are reported per field; anything else (malformed JSON) as a plain message.
func RespondWithBindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		RespondWithValidationError(c, FormatValidationErrors(validationErrors))
		return
	}
	BadRequest(c, ValidationInvalidFormat, "Invalid request body")
}

// FormatValidationErrors converts validator errors to field -> message.
func FormatValidationErrors(validationErrors validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fe.Field()] = formatFieldError(fe)
	}
	return fields
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "phone":
		return "Only numbers, spaces, hyphens, parentheses, and plus signs are allowed"
	case "fax":
		return "Fax number can only contain numbers, spaces, hyphens, parentheses, and plus signs"
	case "barangay":
		return "Must contain only numbers"
	case "gt":
		return "Must be greater than " + fe.Param()
	case "gte":
		return "Must be greater than or equal to " + fe.Param()
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "uuid":
		return "Must be a valid UUID"
	default:
		return "Validation failed for tag: " + fe.Tag()
	}
}
