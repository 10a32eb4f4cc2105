// Package validation holds the field, step and form rules shared by the wizard,
// the renewal form, the admin edit dialog and the HTTP layer.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ikkim/permit-backend/internal/app/model"
)

var (
	telephonePattern = regexp.MustCompile(`^[0-9 ()+-]+$`)
	digitsPattern    = regexp.MustCompile(`^[0-9]+$`)
)

const telephoneCharset = "can only contain numbers, spaces, hyphens, parentheses, and plus signs"

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// IsTelephone reports whether value uses only the telephone character set.
func IsTelephone(value string) bool {
	return telephonePattern.MatchString(value)
}

// IsDigits reports whether value is a non-empty run of decimal digits.
func IsDigits(value string) bool {
	return digitsPattern.MatchString(value)
}

// Required returns message when value is blank after trimming.
func Required(value, message string) string {
	if blank(value) {
		return message
	}
	return ""
}

// Telephone validates a required telephone number. label prefixes the messages,
// e.g. "Taxpayer telephone number".
func Telephone(value, label string) string {
	if blank(value) {
		return label + " is required"
	}
	if !IsTelephone(value) {
		return label + " " + telephoneCharset
	}
	return ""
}

// Fax validates an optional fax number.
func Fax(value, label string) string {
	if value == "" {
		return ""
	}
	if !IsTelephone(value) {
		return label + " " + telephoneCharset
	}
	return ""
}

// BarangayNumber validates a required digits-only barangay number.
func BarangayNumber(value, label string) string {
	if blank(value) {
		return label + " is required"
	}
	if !IsDigits(value) {
		return label + " must contain only numbers"
	}
	return ""
}

// BusinessCapital rejects negative and zero capital with distinct messages.
func BusinessCapital(value float64) string {
	if !finite(value) {
		return "Business capital must be a number"
	}
	if value < 0 {
		return "Business capital cannot be negative"
	}
	if value == 0 {
		return "Business capital must be greater than 0"
	}
	return ""
}

func EmployeeCount(value int) string {
	if value < 0 {
		return "Number of employees cannot be negative"
	}
	return ""
}

// PositiveNumber rejects negative and zero values, naming the field.
func PositiveNumber(value float64, label string) string {
	if !finite(value) {
		return label + " must be a number"
	}
	if value < 0 {
		return label + " cannot be negative"
	}
	if value == 0 {
		return label + " must be greater than 0"
	}
	return ""
}

// SECRegistration requires a value for corporations and partnerships.
func SECRegistration(ownership model.OwnershipType, value, message string) string {
	if ownership.RequiresSEC() && blank(value) {
		return message
	}
	return ""
}

// DTIRegistration requires a value for sole proprietorships.
func DTIRegistration(ownership model.OwnershipType, value, message string) string {
	if ownership.RequiresDTI() && blank(value) {
		return message
	}
	return ""
}

// FieldContext is the sibling state some fields depend on.
type FieldContext struct {
	OwnershipType    model.OwnershipType `json:"business_ownership_type"`
	IsOwnedProperty  bool                `json:"is_owned_property"`
	IsLeasedProperty bool                `json:"is_leased_property"`
}

// ValidateField validates a single raw input by its JSON field name, the way a
// form does on every keystroke. Unknown fields are always valid.
func ValidateField(field, value string, ctx FieldContext) string {
	switch field {
	case "taxpayer_name":
		return Required(value, "Taxpayer name is required")
	case "taxpayer_telephone_no", "business_telephone_no":
		return Telephone(value, "Telephone number")
	case "taxpayer_address":
		return Required(value, "Address is required")
	case "taxpayer_barangay_no", "commercial_address_barangay_no":
		return BarangayNumber(value, "Barangay number")

	case "business_trade_name":
		return Required(value, "Business trade name is required")
	case "business_capital":
		n, msg := parseNumber(value, "Business capital")
		if msg != "" {
			return msg
		}
		return BusinessCapital(n)
	case "business_fax_no":
		return Fax(value, "Fax number")
	case "commercial_address_building_name":
		return Required(value, "Building name is required")
	case "commercial_address_building_no":
		return Required(value, "Building number is required")
	case "commercial_address_street":
		return Required(value, "Street is required")
	case "main_line_of_business":
		return Required(value, "Main line of business is required")
	case "main_products_services":
		return Required(value, "Main products/services is required")
	case "no_of_employees":
		if value == "" {
			return ""
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return "Number of employees must be a whole number"
		}
		return EmployeeCount(n)
	case "sec_registration_no":
		return SECRegistration(ctx.OwnershipType, value, "SEC registration number is required")
	case "dti_registration_no":
		return DTIRegistration(ctx.OwnershipType, value, "DTI registration number is required")

	case "proof_of_ownership_type":
		return Required(value, "Proof of ownership type is required")
	case "property_registered_name":
		return requiredWhen(ctx.IsOwnedProperty, value, "Property registered name is required")
	case "real_property_tax_receipt_no":
		return requiredWhen(ctx.IsOwnedProperty, value, "Real property tax receipt number is required")
	case "period_date":
		return requiredWhen(ctx.IsOwnedProperty, value, "Period date is required")
	case "lessor_name":
		return requiredWhen(ctx.IsLeasedProperty, value, "Lessor name is required")
	case "leased_area_sq_meter", "rent_per_month":
		if !ctx.IsLeasedProperty {
			return ""
		}
		label := "Leased area"
		if field == "rent_per_month" {
			label = "Rent per month"
		}
		n, msg := parseNumber(value, label)
		if msg != "" {
			return msg
		}
		return PositiveNumber(n, label)
	case "mayor_permit_no":
		return Required(value, "Mayor permit number is required")
	case "mayor_permit_received_by":
		return Required(value, "Mayor permit received by is required")
	case "mayor_permit_date":
		return Required(value, "Mayor permit date is required")

	case "office_reviewed_by":
		return Required(value, "Office reviewed by is required")
	case "office_reviewed_date":
		return Required(value, "Office reviewed date is required")
	}
	return ""
}

func requiredWhen(cond bool, value, message string) string {
	if cond {
		return Required(value, message)
	}
	return ""
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// parseNumber treats blank input as zero, matching an emptied numeric input.
func parseNumber(value, label string) (float64, string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, ""
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || !finite(n) {
		return 0, fmt.Sprintf("%s must be a number", label)
	}
	return n, ""
}
