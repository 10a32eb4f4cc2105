package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	return c, w
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		context  string
		wantCode string
		wantMsg  string
	}{
		{"nil", nil, "", InternalServerError, "Internal server error"},
		{"application not found", gorm.ErrRecordNotFound, "application", ApplicationNotFound, "Application not found"},
		{"business not found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), "renew business", BusinessNotFound, "Business not found"},
		{"duplicate plate", errors.New(`ERROR: duplicate key value violates unique constraint "idx_business_plate_no"`), "create", ResourceAlreadyExists, "Business plate number already issued. Please resubmit"},
		{"fk taxpayer", errors.New(`violates foreign key constraint "fk_business_info_taxpayer" (taxpayer_id)`), "create", TaxpayerNotFound, "Taxpayer not found"},
		{"still referenced", errors.New(`update or delete violates foreign key constraint, key is still referenced`), "delete", ResourceConflict, "Record is still referenced by other data"},
		{"timeout", errors.New("dial tcp: i/o timeout"), "", InternalExternalAPI, "Could not reach an upstream service. Please try again later"},
		{"other", errors.New("syntax error"), "", InternalDatabaseError, "Database error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(tt.err, tt.context)
			assert.Equal(t, tt.wantCode, info.Code)
			assert.Equal(t, tt.wantMsg, info.Message)
		})
	}
}

func TestNotFound(t *testing.T) {
	c, w := setupTestContext()

	NotFound(c, ApplicationNotFound, "Application not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ApplicationNotFound, resp.Error)
	assert.Equal(t, "Application not found", resp.Message)
}

func TestRespondWithValidationMessages(t *testing.T) {
	c, w := setupTestContext()

	RespondWithValidationMessages(c, []string{"Taxpayer name is required", "Taxpayer address is required"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ValidationError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Taxpayer name is required", resp.Message)
	assert.Len(t, resp.Errors, 2)
}

type bindingTarget struct {
	Name    string  `validate:"required"`
	Capital float64 `validate:"gt=0"`
}

func TestRespondWithBindingError(t *testing.T) {
	t.Run("validator errors become fields", func(t *testing.T) {
		c, w := setupTestContext()
		err := validator.New().Struct(bindingTarget{})
		require.Error(t, err)

		RespondWithBindingError(c, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp ValidationError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "This field is required", resp.Fields["Name"])
		assert.Equal(t, "Must be greater than 0", resp.Fields["Capital"])
	})

	t.Run("malformed body", func(t *testing.T) {
		c, w := setupTestContext()

		RespondWithBindingError(c, errors.New("unexpected EOF"))

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, ValidationInvalidFormat, resp.Error)
	})
}

func TestRespondWithStoreError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"duplicate plate", errors.New(`duplicate key value violates unique constraint "idx_business_plate_no"`), http.StatusConflict, ResourceAlreadyExists},
		{"missing record", gorm.ErrRecordNotFound, http.StatusNotFound, ApplicationNotFound},
		{"anything else", errors.New("disk full"), http.StatusInternalServerError, InternalDatabaseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTestContext()

			RespondWithStoreError(c, tt.err, "modify_application")

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error)
		})
	}
}
