package model

// ApplicationSummary is the denormalized row shown on the admin dashboard and
// accepted back by the admin edit dialog: one application with its business and taxpayer.
type ApplicationSummary struct {
	Application

	TaxpayerID          string `json:"taxpayer_id"`
	TaxpayerName        string `json:"taxpayer_name"`
	TaxpayerTelephoneNo string `json:"taxpayer_telephone_no" binding:"omitempty,phone"`
	TaxpayerAddress     string `json:"taxpayer_address"`
	TaxpayerBarangayNo  string `json:"taxpayer_barangay_no" binding:"omitempty,barangay"`

	BusinessCapital               float64       `json:"business_capital"`
	BusinessTradeName             string        `json:"business_trade_name"`
	BusinessTelephoneNo           string        `json:"business_telephone_no" binding:"omitempty,phone"`
	BusinessFaxNo                 string        `json:"business_fax_no" binding:"omitempty,fax"`
	CommercialAddressBuildingName string        `json:"commercial_address_building_name"`
	CommercialAddressBuildingNo   string        `json:"commercial_address_building_no"`
	CommercialAddressStreet       string        `json:"commercial_address_street"`
	CommercialAddressBarangayNo   string        `json:"commercial_address_barangay_no" binding:"omitempty,barangay"`
	MainLineOfBusiness            string        `json:"main_line_of_business"`
	MainProductsServices          string        `json:"main_products_services"`
	OtherLinesOfBusiness          string        `json:"other_lines_of_business"`
	OtherProductsServices         string        `json:"other_products_services"`
	BusinessOwnershipType         OwnershipType `json:"business_ownership_type"`
	NoOfEmployees                 int           `json:"no_of_employees"`
	SecRegistrationNo             string        `json:"sec_registration_no"`
	SecRegistrationFileURL        string        `json:"sec_registration_file_url"`
	DtiRegistrationNo             string        `json:"dti_registration_no"`
	DtiRegistrationFileURL        string        `json:"dti_registration_file_url"`
}

// NewApplicationSummary flattens app. Business and Business.Taxpayer should be preloaded.
func NewApplicationSummary(app *Application) ApplicationSummary {
	s := ApplicationSummary{Application: *app}
	s.Application.Business = nil

	if b := app.Business; b != nil {
		s.BusinessCapital = b.BusinessCapital
		s.BusinessTradeName = b.BusinessTradeName
		s.BusinessTelephoneNo = b.BusinessTelephoneNo
		s.BusinessFaxNo = b.BusinessFaxNo
		s.CommercialAddressBuildingName = b.CommercialAddressBuildingName
		s.CommercialAddressBuildingNo = b.CommercialAddressBuildingNo
		s.CommercialAddressStreet = b.CommercialAddressStreet
		s.CommercialAddressBarangayNo = b.CommercialAddressBarangayNo
		s.MainLineOfBusiness = b.MainLineOfBusiness
		s.MainProductsServices = b.MainProductsServices
		s.OtherLinesOfBusiness = b.OtherLinesOfBusiness
		s.OtherProductsServices = b.OtherProductsServices
		s.BusinessOwnershipType = b.BusinessOwnershipType
		s.NoOfEmployees = b.NoOfEmployees
		s.SecRegistrationNo = b.SecRegistrationNo
		s.SecRegistrationFileURL = b.SecRegistrationFileURL
		s.DtiRegistrationNo = b.DtiRegistrationNo
		s.DtiRegistrationFileURL = b.DtiRegistrationFileURL
		s.TaxpayerID = b.TaxpayerID

		if t := b.Taxpayer; t != nil {
			s.TaxpayerName = t.TaxpayerName
			s.TaxpayerTelephoneNo = t.TaxpayerTelephoneNo
			s.TaxpayerAddress = t.TaxpayerAddress
			s.TaxpayerBarangayNo = t.TaxpayerBarangayNo
		}
	}
	return s
}

// BusinessRecord extracts the business columns of the row.
func (s *ApplicationSummary) BusinessRecord() Business {
	return Business{
		BusinessAccountNo:             s.BusinessAccountNo,
		BusinessCapital:               s.BusinessCapital,
		BusinessTradeName:             s.BusinessTradeName,
		BusinessTelephoneNo:           s.BusinessTelephoneNo,
		BusinessFaxNo:                 s.BusinessFaxNo,
		CommercialAddressBuildingName: s.CommercialAddressBuildingName,
		CommercialAddressBuildingNo:   s.CommercialAddressBuildingNo,
		CommercialAddressStreet:       s.CommercialAddressStreet,
		CommercialAddressBarangayNo:   s.CommercialAddressBarangayNo,
		MainLineOfBusiness:            s.MainLineOfBusiness,
		MainProductsServices:          s.MainProductsServices,
		OtherLinesOfBusiness:          s.OtherLinesOfBusiness,
		OtherProductsServices:         s.OtherProductsServices,
		BusinessOwnershipType:         s.BusinessOwnershipType,
		NoOfEmployees:                 s.NoOfEmployees,
		TaxpayerID:                    s.TaxpayerID,
		SecRegistrationNo:             s.SecRegistrationNo,
		SecRegistrationFileURL:        s.SecRegistrationFileURL,
		DtiRegistrationNo:             s.DtiRegistrationNo,
		DtiRegistrationFileURL:        s.DtiRegistrationFileURL,
	}
}

// TaxpayerRecord extracts the taxpayer columns of the row.
func (s *ApplicationSummary) TaxpayerRecord() Taxpayer {
	return Taxpayer{
		TaxpayerID:          s.TaxpayerID,
		TaxpayerName:        s.TaxpayerName,
		TaxpayerTelephoneNo: s.TaxpayerTelephoneNo,
		TaxpayerAddress:     s.TaxpayerAddress,
		TaxpayerBarangayNo:  s.TaxpayerBarangayNo,
	}
}

// ApplicationRecord extracts the application columns of the row.
func (s *ApplicationSummary) ApplicationRecord() Application {
	app := s.Application
	app.Business = nil
	app.OfficeReviews = nil
	return app
}

// ApplicationStats is the status tally shown above the dashboard list.
type ApplicationStats struct {
	Total      int `json:"total"`
	Processing int `json:"processing"`
	Ready      int `json:"ready"`
	Completed  int `json:"completed"`
}

// ComputeStats tallies rows by release state. Rows with only one of release date
// or time count toward the total but toward no bucket.
func ComputeStats(rows []ApplicationSummary) ApplicationStats {
	stats := ApplicationStats{Total: len(rows)}
	for i := range rows {
		date := StringValue(rows[i].PermitDateOfRelease)
		clock := StringValue(rows[i].PermitTimeOfRelease)
		releaser := StringValue(rows[i].PermitReleasedBy)
		switch {
		case date == "" && clock == "":
			stats.Processing++
		case date != "" && clock != "" && releaser == "":
			stats.Ready++
		}
		if releaser != "" {
			stats.Completed++
		}
	}
	return stats
}

// AdminApplicationColumns are the application columns the dashboard edit dialog may change.
var AdminApplicationColumns = []string{
	"amount_paid",
	"mayor_permit_no",
	"mayor_permit_received_by",
	"mayor_permit_date",
	"proof_of_ownership_type",
	"insurance_issuing_company",
	"insurance_date",
	"permit_date_of_release",
	"permit_time_of_release",
	"permit_released_by",
	"applicant_name",
	"applicant_position",
	"property_registered_name",
	"real_property_tax_receipt_no",
	"period_date",
	"lessor_name",
	"leased_area_sq_meter",
	"rent_per_month",
	"barangay_clearance_file_url",
	"mayor_permit_file_url",
	"owned_property_document_file_url",
	"leased_property_document_file_url",
}
