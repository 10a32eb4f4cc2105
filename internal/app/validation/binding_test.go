package validation

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Phone    string `json:"phone" validate:"phone"`
	Fax      string `json:"fax" validate:"fax"`
	Barangay string `json:"barangay_no" validate:"barangay"`
}

func TestRegister_CustomTags(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	assert.NoError(t, v.Struct(contactForm{Phone: "+63 (2) 555-0100", Barangay: "12"}))

	err := v.Struct(contactForm{Phone: "call me", Fax: "fax!", Barangay: "12b"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	failed := map[string]string{}
	for _, fe := range verrs {
		failed[fe.Field()] = fe.Tag()
	}
	assert.Equal(t, map[string]string{"phone": "phone", "fax": "fax", "barangay_no": "barangay"}, failed)
}

func TestRegisterBindings_GinEngine(t *testing.T) {
	require.NoError(t, RegisterBindings())
	require.NoError(t, RegisterBindings())

	row := model.ApplicationSummary{
		TaxpayerTelephoneNo: "0917 555 0100",
		TaxpayerBarangayNo:  "seven",
	}
	err := binding.Validator.ValidateStruct(&row)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "taxpayer_barangay_no", verrs[0].Field())
}
