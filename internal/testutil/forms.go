// Package testutil builds fixtures shared by package tests.
package testutil

import (
	"github.com/ikkim/permit-backend/internal/app/model"
)

// ValidForm returns a sole proprietorship draft on leased property that passes every step.
func ValidForm() model.ApplicationForm {
	form := model.NewApplicationForm()
	form.TaxpayerInfo = model.Taxpayer{
		TaxpayerName:        "Maria Santos",
		TaxpayerTelephoneNo: "(082) 555-0142",
		TaxpayerAddress:     "12 Rizal St, Poblacion",
		TaxpayerBarangayNo:  "21",
	}
	form.BusinessInfo = model.Business{
		BusinessCapital:               250000,
		BusinessTradeName:             "Santos Bakery",
		BusinessTelephoneNo:           "+63 82 555 0199",
		CommercialAddressBuildingName: "Ong Building",
		CommercialAddressBuildingNo:   "4B",
		CommercialAddressStreet:       "Claveria St",
		CommercialAddressBarangayNo:   "5",
		MainLineOfBusiness:            "Bakery",
		MainProductsServices:          "Bread and pastries",
		BusinessOwnershipType:         model.OwnershipSoleProprietorship,
		NoOfEmployees:                 4,
		DtiRegistrationNo:             "DTI-778812",
		DtiRegistrationFileURL:        "applications/dti.pdf",
	}
	form.ApplicationInfo = model.Application{
		BarangayClearanceFileURL:      "applications/clearance.pdf",
		ProofOfOwnershipType:          "Contract of Lease",
		IsLeasedProperty:              true,
		LessorName:                    "Ong Realty",
		LeasedAreaSqMeter:             45.5,
		RentPerMonth:                  18000,
		LeasedPropertyDocumentFileURL: "applications/lease.pdf",
		MayorPermitNo:                 "MP-2024-0001",
		MayorPermitReceivedBy:         "Jose Cruz",
		MayorPermitDate:               "2024-05-02",
		MayorPermitFileURL:            "applications/mayor.pdf",
	}
	form.OfficeReviews = CompleteReviews()
	return form
}

// CompleteReviews returns a filled review for every required office.
func CompleteReviews() []model.OfficeReview {
	reviews := make([]model.OfficeReview, 0, len(model.RequiredOffices()))
	for _, office := range model.RequiredOffices() {
		reviews = append(reviews, model.OfficeReview{
			OfficeName:               office,
			RemarksAndRecommendation: "Compliant",
			OfficeReviewedBy:         "Inspector " + office[:4],
			OfficeReviewedDate:       "2024-05-03",
		})
	}
	return reviews
}
