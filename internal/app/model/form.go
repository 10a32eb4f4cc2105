package model

// ApplicationForm is the draft aggregate exchanged by the wizard and the API.
type ApplicationForm struct {
	TaxpayerInfo    Taxpayer       `json:"taxpayerInfo"`
	BusinessInfo    Business       `json:"businessInfo"`
	ApplicationInfo Application    `json:"applicationInfo"`
	OfficeReviews   []OfficeReview `json:"officeReviews"`
}

// NewApplicationForm returns a blank draft with the wizard's defaults.
func NewApplicationForm() ApplicationForm {
	return ApplicationForm{
		BusinessInfo: Business{
			BusinessOwnershipType: OwnershipSoleProprietorship,
		},
		OfficeReviews: []OfficeReview{},
	}
}

// Clone returns a deep copy so callers can edit without aliasing slices or pointers.
func (f ApplicationForm) Clone() ApplicationForm {
	out := f
	out.BusinessInfo.Taxpayer = nil
	out.ApplicationInfo.Business = nil
	out.ApplicationInfo.OfficeReviews = nil
	out.ApplicationInfo.PermitDateOfRelease = clonePtr(f.ApplicationInfo.PermitDateOfRelease)
	out.ApplicationInfo.PermitTimeOfRelease = clonePtr(f.ApplicationInfo.PermitTimeOfRelease)
	out.ApplicationInfo.PermitReleasedBy = clonePtr(f.ApplicationInfo.PermitReleasedBy)
	out.OfficeReviews = make([]OfficeReview, len(f.OfficeReviews))
	copy(out.OfficeReviews, f.OfficeReviews)
	return out
}

// ForModification returns the payload sent when modifying applicationID:
// server-assigned application fields are stripped.
func (f ApplicationForm) ForModification() ApplicationForm {
	out := f.Clone()
	out.ApplicationInfo.ClearSystemFields()
	for i := range out.OfficeReviews {
		out.OfficeReviews[i].ReviewedByOfficeID = ""
		out.OfficeReviews[i].ApplicationID = ""
	}
	return out
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// SubmissionResult is returned by create, modify and renew.
type SubmissionResult struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	ApplicationID   string `json:"applicationId"`
	BusinessPlateNo string `json:"businessPlateNo,omitempty"`
}
