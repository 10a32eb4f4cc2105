package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestApplication_ReleaseStatus(t *testing.T) {
	tests := []struct {
		name string
		app  Application
		want ReleaseStatus
	}{
		{"nothing set", Application{}, StatusProcessing},
		{"only date", Application{PermitDateOfRelease: ptr("2024-06-01")}, StatusProcessing},
		{"date and time", Application{PermitDateOfRelease: ptr("2024-06-01"), PermitTimeOfRelease: ptr("09:00")}, StatusReady},
		{"releaser set", Application{PermitDateOfRelease: ptr("2024-06-01"), PermitTimeOfRelease: ptr("09:00"), PermitReleasedBy: ptr("J. Cruz")}, StatusPickedUp},
		{"releaser without schedule", Application{PermitReleasedBy: ptr("J. Cruz")}, StatusPickedUp},
		{"empty strings are unset", Application{PermitDateOfRelease: ptr(""), PermitTimeOfRelease: ptr(""), PermitReleasedBy: ptr("")}, StatusProcessing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.app.ReleaseStatus())
		})
	}
}

func trackedApp() *Application {
	return &Application{
		ApplicationID:     "app-1",
		DateOfApplication: "2024-05-20",
		ApplicantName:     "Maria Santos",
		Business: &Business{
			BusinessTradeName: "Santos Bakery",
			Taxpayer:          &Taxpayer{TaxpayerName: "Maria Santos"},
		},
	}
}

func TestTrackingResult_Display(t *testing.T) {
	t.Run("picked up shows release details", func(t *testing.T) {
		app := trackedApp()
		app.PermitDateOfRelease = ptr("2024-06-01")
		app.PermitTimeOfRelease = ptr("10:30")
		app.PermitReleasedBy = ptr("Officer Reyes")

		lines := NewTrackingResult(app).Display()

		assert.Equal(t, "Permit Picked Up", lines[0])
		assert.Contains(t, lines, "Date: 2024-06-01")
		assert.Contains(t, lines, "Time: 10:30")
		assert.Contains(t, lines, "Released By: Officer Reyes")
	})

	t.Run("ready to pick up", func(t *testing.T) {
		app := trackedApp()
		app.PermitDateOfRelease = ptr("2024-06-01")
		app.PermitTimeOfRelease = ptr("10:30")

		result := NewTrackingResult(app)

		assert.Equal(t, StatusReady, result.Status)
		assert.Equal(t, "Ready to Pick Up", result.StatusLabel)
		assert.Equal(t, "Ready to Pick Up", result.Display()[0])
	})

	t.Run("processing shows submission details", func(t *testing.T) {
		result := NewTrackingResult(trackedApp())
		lines := result.Display()

		assert.Equal(t, "Still in Processing", lines[0])
		assert.Contains(t, lines, "Business Name: Santos Bakery")
		assert.Contains(t, lines, "Applicant: Maria Santos")
		assert.Contains(t, lines, "Date Submitted: 2024-05-20")
		assert.Nil(t, result.Application.Business)
	})
}

func TestComputeStats(t *testing.T) {
	rows := []ApplicationSummary{
		{},
		{},
		{Application: Application{PermitDateOfRelease: ptr("2024-06-01"), PermitTimeOfRelease: ptr("09:00")}},
		{Application: Application{PermitDateOfRelease: ptr("2024-06-01"), PermitTimeOfRelease: ptr("09:00"), PermitReleasedBy: ptr("Staff")}},
		{Application: Application{PermitDateOfRelease: ptr("2024-06-01")}},
	}

	stats := ComputeStats(rows)

	assert.Equal(t, ApplicationStats{Total: 5, Processing: 2, Ready: 1, Completed: 1}, stats)
}

func TestPropertySelection(t *testing.T) {
	app := Application{}

	app.SelectOwnedProperty(true)
	assert.True(t, app.IsOwnedProperty)
	assert.False(t, app.IsLeasedProperty)

	app.SelectLeasedProperty(true)
	assert.True(t, app.IsLeasedProperty)
	assert.False(t, app.IsOwnedProperty, "selecting leased clears owned")

	app.SelectLeasedProperty(false)
	assert.False(t, app.IsLeasedProperty)
	assert.False(t, app.IsOwnedProperty, "unchecking leaves the other flag alone")
}

func TestApplicationForm_ForModification(t *testing.T) {
	form := NewApplicationForm()
	form.ApplicationInfo = Application{
		ApplicationID:     "app-1",
		BusinessAccountNo: "BAN-2024-000001",
		DateOfApplication: "2024-05-20",
		AmountPaid:        ApplicationFee,
		BusinessPlateNo:   "2024-12345",
		MayorPermitNo:     "MP-1",
		PermitReleasedBy:  ptr("Staff"),
	}
	form.OfficeReviews = []OfficeReview{{ReviewedByOfficeID: "r1", ApplicationID: "app-1", OfficeName: OfficeCityHealth}}

	payload := form.ForModification()

	assert.Empty(t, payload.ApplicationInfo.ApplicationID)
	assert.Empty(t, payload.ApplicationInfo.BusinessPlateNo)
	assert.Zero(t, payload.ApplicationInfo.AmountPaid)
	assert.Nil(t, payload.ApplicationInfo.PermitReleasedBy)
	assert.Equal(t, "MP-1", payload.ApplicationInfo.MayorPermitNo)
	require.Len(t, payload.OfficeReviews, 1)
	assert.Empty(t, payload.OfficeReviews[0].ReviewedByOfficeID)

	// original untouched
	assert.Equal(t, "app-1", form.ApplicationInfo.ApplicationID)
	assert.Equal(t, "r1", form.OfficeReviews[0].ReviewedByOfficeID)
	assert.Equal(t, "Staff", *form.ApplicationInfo.PermitReleasedBy)
}

func TestOwnershipType(t *testing.T) {
	assert.True(t, OwnershipCorporation.RequiresSEC())
	assert.True(t, OwnershipPartnership.RequiresSEC())
	assert.False(t, OwnershipSoleProprietorship.RequiresSEC())
	assert.True(t, OwnershipSoleProprietorship.RequiresDTI())
	assert.False(t, OwnershipType("Cooperative").Valid())
}

func TestApplicationSummary_RoundTrip(t *testing.T) {
	app := trackedApp()
	app.BusinessAccountNo = "BAN-2024-000001"
	app.Business.BusinessAccountNo = "BAN-2024-000001"
	app.Business.TaxpayerID = "tp-1"
	app.Business.Taxpayer.TaxpayerID = "tp-1"

	summary := NewApplicationSummary(app)

	assert.Equal(t, "Santos Bakery", summary.BusinessTradeName)
	assert.Equal(t, "Maria Santos", summary.TaxpayerName)
	assert.Equal(t, "BAN-2024-000001", summary.BusinessRecord().BusinessAccountNo)
	assert.Equal(t, "tp-1", summary.TaxpayerRecord().TaxpayerID)
	assert.Equal(t, "app-1", summary.ApplicationRecord().ApplicationID)
	assert.Nil(t, summary.ApplicationRecord().Business)
}
