package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	submitted  *model.ApplicationForm
	modifiedID string
	modified   *model.ApplicationForm
	renewedNo  string
	renewed    *model.ApplicationForm
	result     *model.SubmissionResult
	err        error
}

func (f *fakeSubmitter) SubmitApplication(ctx context.Context, form *model.ApplicationForm) (*model.SubmissionResult, error) {
	f.submitted = form
	return f.result, f.err
}

func (f *fakeSubmitter) ModifyApplication(ctx context.Context, applicationID string, form *model.ApplicationForm) (*model.SubmissionResult, error) {
	f.modifiedID = applicationID
	f.modified = form
	return f.result, f.err
}

func (f *fakeSubmitter) RenewApplication(ctx context.Context, businessAccountNo string, form *model.ApplicationForm) (*model.SubmissionResult, error) {
	f.renewedNo = businessAccountNo
	f.renewed = form
	return f.result, f.err
}

func filledWizard() *Wizard {
	form := testutil.ValidForm()
	w := New()
	w.SetTaxpayer(form.TaxpayerInfo)
	w.SetBusiness(form.BusinessInfo)
	w.SetApplicationDetails(form.ApplicationInfo)
	return w
}

func TestNew(t *testing.T) {
	w := New()
	assert.Equal(t, ModeNew, w.Mode)
	assert.Equal(t, StepTaxpayer, w.Step)
	assert.True(t, w.IsFirstStep())
	assert.Empty(t, w.Errors)
	assert.Equal(t, model.OwnershipSoleProprietorship, w.Draft.BusinessInfo.BusinessOwnershipType)
}

func TestNext_BlankTaxpayerStaysPut(t *testing.T) {
	w := New()

	ok := w.Next()

	assert.False(t, ok)
	assert.Equal(t, StepTaxpayer, w.Step)
	assert.Contains(t, w.Errors, "Taxpayer name is required")
	assert.Contains(t, w.Errors, "Taxpayer telephone number is required")
	assert.Contains(t, w.Errors, "Taxpayer address is required")
	assert.Contains(t, w.Errors, "Taxpayer barangay number is required")
}

func TestNext_WalksAllSteps(t *testing.T) {
	w := filledWizard()

	require.True(t, w.Next())
	assert.Equal(t, StepBusiness, w.Step)
	require.True(t, w.Next())
	assert.Equal(t, StepApplicationDetails, w.Step)
	require.True(t, w.Next())
	assert.Equal(t, StepOfficeReviews, w.Step)
	assert.True(t, w.IsLastStep())

	// Entering the review step seeds the required offices.
	require.Len(t, w.Draft.OfficeReviews, len(model.RequiredOffices()))
	for i, office := range model.RequiredOffices() {
		assert.Equal(t, office, w.Draft.OfficeReviews[i].OfficeName)
	}

	// Blank reviews block Next on the last step.
	assert.False(t, w.Next())
	assert.Equal(t, StepOfficeReviews, w.Step)
	assert.Contains(t, w.Errors, "Office reviewed by is required for "+model.OfficeCityHealth)

	w.SetOfficeReviews(testutil.CompleteReviews())
	assert.True(t, w.Next())
	assert.Equal(t, StepOfficeReviews, w.Step)
	assert.Empty(t, w.Errors)
}

func TestNext_ErrorsClearedOnSuccess(t *testing.T) {
	w := New()
	require.False(t, w.Next())
	require.NotEmpty(t, w.Errors)

	w.SetTaxpayer(testutil.ValidForm().TaxpayerInfo)
	require.True(t, w.Next())
	assert.Empty(t, w.Errors)
}

func TestNext_KeepsExistingReviews(t *testing.T) {
	w := filledWizard()
	w.Draft.OfficeReviews = []model.OfficeReview{{OfficeName: model.OfficeTourism}}
	w.Step = StepApplicationDetails

	require.True(t, w.Next())
	require.Len(t, w.Draft.OfficeReviews, 1)
	assert.Equal(t, model.OfficeTourism, w.Draft.OfficeReviews[0].OfficeName)
}

func TestPrevious(t *testing.T) {
	w := filledWizard()
	require.True(t, w.Next())
	w.Errors = []string{"stale"}

	w.Previous()
	assert.Equal(t, StepTaxpayer, w.Step)
	assert.Empty(t, w.Errors)

	w.Previous()
	assert.Equal(t, StepTaxpayer, w.Step)
}

func TestPrevious_DoesNotValidate(t *testing.T) {
	w := New()
	w.Step = StepBusiness

	w.Previous()
	assert.Equal(t, StepTaxpayer, w.Step)
	assert.Empty(t, w.Errors)
}

func TestPropertyToggles(t *testing.T) {
	w := New()

	w.SelectOwnedProperty(true)
	assert.True(t, w.Draft.ApplicationInfo.IsOwnedProperty)
	assert.False(t, w.Draft.ApplicationInfo.IsLeasedProperty)

	w.SelectLeasedProperty(true)
	assert.False(t, w.Draft.ApplicationInfo.IsOwnedProperty)
	assert.True(t, w.Draft.ApplicationInfo.IsLeasedProperty)

	w.SelectLeasedProperty(false)
	assert.False(t, w.Draft.ApplicationInfo.IsOwnedProperty)
	assert.False(t, w.Draft.ApplicationInfo.IsLeasedProperty)
}

func TestSetApplicationDetails_BothFlagsKeepsLeased(t *testing.T) {
	w := New()
	w.SetApplicationDetails(model.Application{IsOwnedProperty: true, IsLeasedProperty: true})

	assert.False(t, w.Draft.ApplicationInfo.IsOwnedProperty)
	assert.True(t, w.Draft.ApplicationInfo.IsLeasedProperty)
}

func TestSubmit_NotOnLastStep(t *testing.T) {
	w := filledWizard()
	sub := &fakeSubmitter{}

	err := w.Submit(context.Background(), sub)
	assert.ErrorIs(t, err, ErrNotOnLastStep)
	assert.Nil(t, sub.submitted)
}

func TestSubmit_InvalidReviews(t *testing.T) {
	w := filledWizard()
	w.Step = StepOfficeReviews
	sub := &fakeSubmitter{}

	err := w.Submit(context.Background(), sub)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, w.Errors, model.OfficeCityPlanning+" review is required")
	assert.Nil(t, sub.submitted)
}

func TestSubmit_New(t *testing.T) {
	w := filledWizard()
	w.Step = StepOfficeReviews
	w.SetOfficeReviews(testutil.CompleteReviews())
	sub := &fakeSubmitter{result: &model.SubmissionResult{
		Success:         true,
		Message:         "Application submitted successfully",
		ApplicationID:   "app-1",
		BusinessPlateNo: "2024-12345",
	}}

	require.NoError(t, w.Submit(context.Background(), sub))
	require.NotNil(t, sub.submitted)
	assert.Equal(t, "Santos Bakery", sub.submitted.BusinessInfo.BusinessTradeName)
	assert.True(t, w.Submitted)
	assert.Equal(t, "app-1", w.ApplicationID)
	assert.Equal(t, "2024-12345", w.Result.BusinessPlateNo)

	err := w.Submit(context.Background(), sub)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestSubmit_Modification(t *testing.T) {
	form := testutil.ValidForm()
	form.ApplicationInfo.ApplicationID = "app-9"
	form.ApplicationInfo.BusinessAccountNo = "BAN-2024-000001"
	form.ApplicationInfo.AmountPaid = model.ApplicationFee
	form.ApplicationInfo.BusinessPlateNo = "2024-00001"
	form.ApplicationInfo.PermitReleasedBy = model.StringPtr("Clerk")

	w := NewModification(form)
	assert.Equal(t, ModeModification, w.Mode)
	assert.Equal(t, "app-9", w.ApplicationID)
	w.Step = StepOfficeReviews

	sub := &fakeSubmitter{result: &model.SubmissionResult{Success: true, ApplicationID: "app-9"}}
	require.NoError(t, w.Submit(context.Background(), sub))

	assert.Equal(t, "app-9", sub.modifiedID)
	require.NotNil(t, sub.modified)
	app := sub.modified.ApplicationInfo
	assert.Empty(t, app.ApplicationID)
	assert.Empty(t, app.BusinessAccountNo)
	assert.Zero(t, app.AmountPaid)
	assert.Empty(t, app.BusinessPlateNo)
	assert.Nil(t, app.PermitReleasedBy)
	// The draft itself keeps its values.
	assert.Equal(t, "2024-00001", w.Draft.ApplicationInfo.BusinessPlateNo)
}

func TestSubmit_SubmitterErrorBecomesSingleMessage(t *testing.T) {
	w := filledWizard()
	w.Step = StepOfficeReviews
	w.SetOfficeReviews(testutil.CompleteReviews())
	sub := &fakeSubmitter{err: errors.New("Database error")}

	err := w.Submit(context.Background(), sub)
	require.Error(t, err)
	assert.Equal(t, []string{"Database error"}, w.Errors)
	assert.False(t, w.Submitted)
}

func TestWizard_OptionalOffices(t *testing.T) {
	w := New()
	assert.Len(t, w.AvailableOptionalOffices(), 3)

	require.NoError(t, w.AddOptionalOffice(model.OfficeCityVeterinarian))
	assert.NotContains(t, w.AvailableOptionalOffices(), model.OfficeCityVeterinarian)
	assert.ErrorIs(t, w.AddOptionalOffice(model.OfficeCityVeterinarian), ErrOfficeAlreadyAdded)

	require.NoError(t, w.RemoveOptionalOffice(model.OfficeCityVeterinarian))
	assert.Empty(t, w.Draft.OfficeReviews)
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "office_reviews", StepOfficeReviews.String())
	assert.Equal(t, "Business Information", StepBusiness.Title())
	assert.Equal(t, "step(9)", Step(9).String())
}
