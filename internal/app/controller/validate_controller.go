package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/permit-backend/internal/app/validation"
	"github.com/ikkim/permit-backend/internal/errors"
)

type ValidateController struct{}

func NewValidateController() *ValidateController {
	return &ValidateController{}
}

type ValidateFieldRequest struct {
	Field   string                  `json:"field" binding:"required"`
	Value   string                  `json:"value"`
	Context validation.FieldContext `json:"context"`
}

// Field checks one input the way the form does while typing
// POST /api/v1/validate/field
func (ctrl *ValidateController) Field(c *gin.Context) {
	var req ValidateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithBindingError(c, err)
		return
	}

	msg := validation.ValidateField(req.Field, req.Value, req.Context)
	c.JSON(http.StatusOK, gin.H{
		"field": req.Field,
		"valid": msg == "",
		"error": msg,
	})
}
