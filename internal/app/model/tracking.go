package model

import "fmt"

type ReleaseStatus string

const (
	StatusProcessing ReleaseStatus = "processing"
	StatusReady      ReleaseStatus = "ready"
	StatusPickedUp   ReleaseStatus = "picked_up"
)

func (s ReleaseStatus) Label() string {
	switch s {
	case StatusPickedUp:
		return "Permit Picked Up"
	case StatusReady:
		return "Ready to Pick Up"
	default:
		return "Still in Processing"
	}
}

// ReleaseStatus derives where the permit is in the release process.
// A releaser wins over everything; a date and time alone mean it is waiting at the counter.
func (a *Application) ReleaseStatus() ReleaseStatus {
	switch {
	case StringValue(a.PermitReleasedBy) != "":
		return StatusPickedUp
	case StringValue(a.PermitDateOfRelease) != "" && StringValue(a.PermitTimeOfRelease) != "":
		return StatusReady
	default:
		return StatusProcessing
	}
}

// TrackingResult is the flattened record returned by the tracking lookup.
type TrackingResult struct {
	Application
	BusinessTradeName string        `json:"business_trade_name"`
	TaxpayerName      string        `json:"taxpayer_name"`
	Status            ReleaseStatus `json:"status"`
	StatusLabel       string        `json:"status_label"`
}

// NewTrackingResult flattens app, which must have Business and Business.Taxpayer loaded.
func NewTrackingResult(app *Application) TrackingResult {
	result := TrackingResult{Application: *app}
	result.Application.Business = nil
	result.Application.OfficeReviews = nil
	if app.Business != nil {
		result.BusinessTradeName = app.Business.BusinessTradeName
		if app.Business.Taxpayer != nil {
			result.TaxpayerName = app.Business.Taxpayer.TaxpayerName
		}
	}
	result.Status = app.ReleaseStatus()
	result.StatusLabel = result.Status.Label()
	return result
}

// Display renders the status panel shown to the applicant.
func (r TrackingResult) Display() []string {
	status := r.Status
	if status == "" {
		status = r.Application.ReleaseStatus()
	}
	switch status {
	case StatusPickedUp:
		return []string{
			status.Label(),
			"Your business permit has been released and picked up.",
			fmt.Sprintf("Date: %s", StringValue(r.PermitDateOfRelease)),
			fmt.Sprintf("Time: %s", StringValue(r.PermitTimeOfRelease)),
			fmt.Sprintf("Released By: %s", StringValue(r.PermitReleasedBy)),
		}
	case StatusReady:
		return []string{
			status.Label(),
			"Your business permit is ready for pick up at the Business Permit & License Office.",
			fmt.Sprintf("Date: %s", StringValue(r.PermitDateOfRelease)),
			fmt.Sprintf("Time: %s", StringValue(r.PermitTimeOfRelease)),
			"Please bring a valid ID and the application receipt when claiming your permit.",
		}
	default:
		return []string{
			status.Label(),
			"Your application is currently being processed by our offices.",
			fmt.Sprintf("Business Name: %s", r.BusinessTradeName),
			fmt.Sprintf("Applicant: %s", r.TaxpayerName),
			fmt.Sprintf("Date Submitted: %s", r.DateOfApplication),
		}
	}
}
