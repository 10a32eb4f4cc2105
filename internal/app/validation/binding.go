package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once
var registerErr error

// RegisterBindings installs the phone, fax and barangay tags on gin's validator
// and makes it report fields by their JSON names. Safe to call more than once.
func RegisterBindings() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		registerErr = Register(v)
	})
	return registerErr
}

// Register installs the custom tags on v.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	tags := map[string]validator.Func{
		"phone": func(fl validator.FieldLevel) bool {
			return IsTelephone(fl.Field().String())
		},
		"fax": func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return value == "" || IsTelephone(value)
		},
		"barangay": func(fl validator.FieldLevel) bool {
			return IsDigits(fl.Field().String())
		},
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %q validation: %w", tag, err)
		}
	}
	return nil
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}
