package service

import (
	"testing"
	"time"

	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/internal/app/wizard"
	"github.com/ikkim/permit-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWizardServiceTest(t *testing.T) (WizardService, ApplicationService) {
	_, apps, _ := setupApplicationServiceTest(t)
	return NewWizardService(wizard.NewMemoryStore(time.Hour), apps), apps
}

func TestWizardService_NewApplicationFlow(t *testing.T) {
	svc, apps := setupWizardServiceTest(t)
	form := testutil.ValidForm()

	session, err := svc.Start("")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, wizard.ModeNew, session.Mode)
	assert.Equal(t, wizard.StepTaxpayer, session.Step)

	// an empty step does not advance and keeps its errors
	session, err = svc.Update(session.ID, func(w *wizard.Wizard) error {
		w.Next()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, wizard.StepTaxpayer, session.Step)
	assert.NotEmpty(t, session.Errors)

	stored, err := svc.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Errors, stored.Errors)

	steps := []func(w *wizard.Wizard){
		func(w *wizard.Wizard) { w.SetTaxpayer(form.TaxpayerInfo) },
		func(w *wizard.Wizard) { w.SetBusiness(form.BusinessInfo) },
		func(w *wizard.Wizard) { w.SetApplicationDetails(form.ApplicationInfo) },
	}
	for _, set := range steps {
		session, err = svc.Update(session.ID, func(w *wizard.Wizard) error {
			set(w)
			w.Next()
			return nil
		})
		require.NoError(t, err)
		require.Empty(t, session.Errors)
	}
	assert.Equal(t, wizard.StepOfficeReviews, session.Step)
	assert.Len(t, session.Draft.OfficeReviews, len(model.RequiredOffices()))
	assert.ElementsMatch(t, model.OptionalOffices(), session.AvailableOffices)

	_, err = svc.Submit(session.ID)
	assert.ErrorIs(t, err, wizard.ErrValidationFailed)

	_, err = svc.Update(session.ID, func(w *wizard.Wizard) error {
		w.SetOfficeReviews(testutil.CompleteReviews())
		return nil
	})
	require.NoError(t, err)

	session, err = svc.Submit(session.ID)
	require.NoError(t, err)
	assert.True(t, session.Submitted)
	require.NotNil(t, session.Result)
	assert.Equal(t, session.Result.ApplicationID, session.ApplicationID)

	tracked, err := apps.Track(session.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, "Santos Bakery", tracked.BusinessTradeName)

	_, err = svc.Submit(session.ID)
	assert.ErrorIs(t, err, wizard.ErrAlreadySubmitted)
	_, err = svc.Update(session.ID, func(w *wizard.Wizard) error { return nil })
	assert.ErrorIs(t, err, wizard.ErrAlreadySubmitted)
}

func TestWizardService_ModificationFlow(t *testing.T) {
	svc, apps := setupWizardServiceTest(t)

	form := testutil.ValidForm()
	created, err := apps.Create(&form)
	require.NoError(t, err)

	session, err := svc.Start(created.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, wizard.ModeModification, session.Mode)
	assert.Equal(t, created.ApplicationID, session.ApplicationID)
	assert.Equal(t, "Santos Bakery", session.Draft.BusinessInfo.BusinessTradeName)

	session, err = svc.Update(session.ID, func(w *wizard.Wizard) error {
		b := w.Draft.BusinessInfo
		b.BusinessTradeName = "Santos Bakeshop"
		w.SetBusiness(b)
		for w.Step < wizard.LastStep {
			if !w.Next() {
				return wizard.ErrValidationFailed
			}
		}
		return nil
	})
	require.NoError(t, err)

	session, err = svc.Submit(session.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ApplicationID, session.Result.ApplicationID)

	found, err := apps.Search(created.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, "Santos Bakeshop", found.BusinessInfo.BusinessTradeName)
}

func TestWizardService_Errors(t *testing.T) {
	svc, _ := setupWizardServiceTest(t)

	_, err := svc.Get("missing")
	assert.ErrorIs(t, err, ErrWizardNotFound)

	_, err = svc.Start("missing")
	assert.ErrorIs(t, err, ErrApplicationNotFound)

	session, err := svc.Start("")
	require.NoError(t, err)
	_, err = svc.Submit(session.ID)
	assert.ErrorIs(t, err, wizard.ErrNotOnLastStep)

	session, err = svc.Update(session.ID, func(w *wizard.Wizard) error {
		return w.AddOptionalOffice("Unknown Office")
	})
	assert.ErrorIs(t, err, wizard.ErrUnknownOffice)
	assert.NotNil(t, session)
}
