package validation

import (
	"strings"

	"github.com/ikkim/permit-backend/internal/app/model"
)

// Errors is an ordered list of human-readable validation messages.
type Errors []string

func (e Errors) Error() string {
	return strings.Join(e, "; ")
}

func (e *Errors) add(msg string) {
	if msg != "" {
		*e = append(*e, msg)
	}
}

// TaxpayerStep validates the taxpayer section.
func TaxpayerStep(t *model.Taxpayer) Errors {
	var errs Errors
	errs.add(Required(t.TaxpayerName, "Taxpayer name is required"))
	errs.add(Telephone(t.TaxpayerTelephoneNo, "Taxpayer telephone number"))
	errs.add(Required(t.TaxpayerAddress, "Taxpayer address is required"))
	errs.add(BarangayNumber(t.TaxpayerBarangayNo, "Taxpayer barangay number"))
	return errs
}

// BusinessStep validates the business section, including the registration
// documents implied by the ownership type.
func BusinessStep(b *model.Business) Errors {
	var errs Errors
	errs.add(Required(b.BusinessTradeName, "Business trade name is required"))
	errs.add(Telephone(b.BusinessTelephoneNo, "Business telephone number"))
	errs.add(Fax(strings.TrimSpace(b.BusinessFaxNo), "Business fax number"))
	errs.add(Required(b.CommercialAddressBuildingName, "Building name is required"))
	errs.add(Required(b.CommercialAddressBuildingNo, "Building number is required"))
	errs.add(Required(b.CommercialAddressStreet, "Street address is required"))
	errs.add(BarangayNumber(b.CommercialAddressBarangayNo, "Barangay number"))
	errs.add(Required(b.MainLineOfBusiness, "Main line of business is required"))
	errs.add(Required(b.MainProductsServices, "Main products/services is required"))
	errs.add(BusinessCapital(b.BusinessCapital))
	errs.add(EmployeeCount(b.NoOfEmployees))

	switch {
	case b.BusinessOwnershipType.RequiresSEC():
		errs.add(Required(b.SecRegistrationNo, "SEC registration number is required"))
		errs.add(Required(b.SecRegistrationFileURL, "SEC registration document is required"))
	case b.BusinessOwnershipType.RequiresDTI():
		errs.add(Required(b.DtiRegistrationNo, "DTI registration number is required"))
		errs.add(Required(b.DtiRegistrationFileURL, "DTI registration document is required"))
	default:
		errs.add("Business ownership type must be Sole Proprietorship, Partnership, or Corporation")
	}
	return errs
}

// ApplicationDetailsStep validates documents, property, insurance and applicant fields.
func ApplicationDetailsStep(a *model.Application) Errors {
	var errs Errors
	errs.add(Required(a.BarangayClearanceFileURL, "Barangay clearance document is required"))
	errs.add(Required(a.ProofOfOwnershipType, "Proof of ownership type is required"))
	errs.add(Required(a.MayorPermitNo, "Mayor permit number is required"))
	errs.add(Required(a.MayorPermitReceivedBy, "Mayor permit received by is required"))
	errs.add(Required(a.MayorPermitDate, "Mayor permit date is required"))
	errs.add(Required(a.MayorPermitFileURL, "Mayor permit document is required"))
	errs = append(errs, PropertyRules(a)...)
	errs = append(errs, PairRules(a)...)
	return errs
}

// PropertyRules enforces exactly one of owned or leased and the fields of the chosen branch.
func PropertyRules(a *model.Application) Errors {
	var errs Errors
	switch {
	case a.IsOwnedProperty && a.IsLeasedProperty:
		errs.add("Property cannot be both owned and leased")
	case !a.IsOwnedProperty && !a.IsLeasedProperty:
		errs.add("Please select either owned or leased property")
	}

	if a.IsOwnedProperty {
		errs.add(Required(a.PropertyRegisteredName, "Property registered name is required"))
		errs.add(Required(a.RealPropertyTaxReceiptNo, "Real property tax receipt number is required"))
		errs.add(Required(a.PeriodDate, "Period date is required"))
		errs.add(Required(a.OwnedPropertyDocumentFileURL, "Owned property document is required"))
	}
	if a.IsLeasedProperty {
		errs.add(Required(a.LessorName, "Lessor name is required"))
		errs.add(PositiveNumber(a.LeasedAreaSqMeter, "Leased area"))
		errs.add(PositiveNumber(a.RentPerMonth, "Rent per month"))
		errs.add(Required(a.LeasedPropertyDocumentFileURL, "Leased property document is required"))
	}
	return errs
}

// PairRules enforces the both-or-neither insurance and applicant pairs.
func PairRules(a *model.Application) Errors {
	var errs Errors
	errs.add(pair(a.InsuranceIssuingCompany, a.InsuranceDate,
		"Insurance date is required when insurance company is provided",
		"Insurance company is required when insurance date is provided"))
	errs.add(pair(a.ApplicantName, a.ApplicantPosition,
		"Applicant position is required when applicant name is provided",
		"Applicant name is required when applicant position is provided"))
	return errs
}

func pair(first, second, missingSecond, missingFirst string) string {
	switch {
	case !blank(first) && blank(second):
		return missingSecond
	case blank(first) && !blank(second):
		return missingFirst
	}
	return ""
}

// OfficeReviewsStep requires every mandatory office and a reviewer and date on every entry.
func OfficeReviewsStep(reviews []model.OfficeReview) Errors {
	var errs Errors
	present := make(map[string]bool, len(reviews))
	for _, r := range reviews {
		present[r.OfficeName] = true
	}
	for _, office := range model.RequiredOffices() {
		if !present[office] {
			errs.add(office + " review is required")
		}
	}
	for _, r := range reviews {
		errs.add(Required(r.OfficeReviewedBy, "Office reviewed by is required for "+r.OfficeName))
		errs.add(Required(r.OfficeReviewedDate, "Office reviewed date is required for "+r.OfficeName))
	}
	return errs
}

// RenewalForm validates the consolidated renewal form.
func RenewalForm(a *model.Application, reviews []model.OfficeReview) Errors {
	errs := ApplicationDetailsStep(a)
	return append(errs, OfficeReviewsStep(reviews)...)
}

// Form validates every section of a draft.
func Form(f *model.ApplicationForm) Errors {
	var errs Errors
	errs = append(errs, TaxpayerStep(&f.TaxpayerInfo)...)
	errs = append(errs, BusinessStep(&f.BusinessInfo)...)
	errs = append(errs, ApplicationDetailsStep(&f.ApplicationInfo)...)
	errs = append(errs, OfficeReviewsStep(f.OfficeReviews)...)
	return errs
}
