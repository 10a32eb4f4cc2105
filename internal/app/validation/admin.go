package validation

import (
	"github.com/ikkim/permit-backend/internal/app/model"
)

// AdminEdit validates a dashboard row submitted from the edit dialog and
// returns field -> message. An empty map means the row may be saved.
func AdminEdit(s *model.ApplicationSummary) map[string]string {
	fields := make(map[string]string)
	set := func(field, msg string) {
		if msg != "" {
			if _, exists := fields[field]; !exists {
				fields[field] = msg
			}
		}
	}

	set("application_id", Required(s.ApplicationID, "Application ID is required"))
	set("business_account_no", Required(s.BusinessAccountNo, "Business account number is required"))
	set("taxpayer_id", Required(s.TaxpayerID, "Taxpayer ID is required"))

	set("taxpayer_name", Required(s.TaxpayerName, "Taxpayer name is required"))
	set("taxpayer_telephone_no", Telephone(s.TaxpayerTelephoneNo, "Telephone number"))
	set("taxpayer_address", Required(s.TaxpayerAddress, "Address is required"))
	set("taxpayer_barangay_no", BarangayNumber(s.TaxpayerBarangayNo, "Barangay number"))

	set("business_trade_name", Required(s.BusinessTradeName, "Business trade name is required"))
	set("business_capital", BusinessCapital(s.BusinessCapital))
	set("business_telephone_no", Telephone(s.BusinessTelephoneNo, "Telephone number"))
	set("business_fax_no", Fax(s.BusinessFaxNo, "Fax number"))
	set("commercial_address_barangay_no", BarangayNumber(s.CommercialAddressBarangayNo, "Barangay number"))
	set("no_of_employees", EmployeeCount(s.NoOfEmployees))
	if !s.BusinessOwnershipType.Valid() {
		set("business_ownership_type", "Business ownership type must be Sole Proprietorship, Partnership, or Corporation")
	}

	if s.IsOwnedProperty && s.IsLeasedProperty {
		set("is_leased_property", "Property cannot be both owned and leased")
	}
	if s.IsLeasedProperty {
		set("leased_area_sq_meter", PositiveNumber(s.LeasedAreaSqMeter, "Leased area"))
		set("rent_per_month", PositiveNumber(s.RentPerMonth, "Rent per month"))
	}
	if s.AmountPaid < 0 {
		set("amount_paid", "Amount paid cannot be negative")
	}

	set("insurance_date", pairSide(s.InsuranceIssuingCompany, s.InsuranceDate,
		"Insurance date is required when insurance company is provided"))
	set("insurance_issuing_company", pairSide(s.InsuranceDate, s.InsuranceIssuingCompany,
		"Insurance company is required when insurance date is provided"))
	set("applicant_position", pairSide(s.ApplicantName, s.ApplicantPosition,
		"Applicant position is required when applicant name is provided"))
	set("applicant_name", pairSide(s.ApplicantPosition, s.ApplicantName,
		"Applicant name is required when applicant position is provided"))

	return fields
}

// pairSide returns msg when present is filled but partner is blank.
func pairSide(present, partner, msg string) string {
	if !blank(present) && blank(partner) {
		return msg
	}
	return ""
}
