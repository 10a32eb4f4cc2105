// Package wizard drives the four-step permit application form and the
// single-page renewal form over a model.ApplicationForm draft.
package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/internal/app/validation"
)

type Step int

const (
	StepTaxpayer Step = iota + 1
	StepBusiness
	StepApplicationDetails
	StepOfficeReviews
)

const (
	FirstStep = StepTaxpayer
	LastStep  = StepOfficeReviews
)

func (s Step) String() string {
	switch s {
	case StepTaxpayer:
		return "taxpayer"
	case StepBusiness:
		return "business"
	case StepApplicationDetails:
		return "application_details"
	case StepOfficeReviews:
		return "office_reviews"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Title is the heading shown above the step.
func (s Step) Title() string {
	switch s {
	case StepTaxpayer:
		return "Taxpayer Information"
	case StepBusiness:
		return "Business Information"
	case StepApplicationDetails:
		return "Application Details"
	case StepOfficeReviews:
		return "Office Reviews"
	}
	return ""
}

type Mode string

const (
	ModeNew          Mode = "new"
	ModeModification Mode = "modification"
)

var (
	ErrNotOnLastStep        = errors.New("applications can only be submitted from the office reviews step")
	ErrAlreadySubmitted     = errors.New("application has already been submitted")
	ErrValidationFailed     = errors.New("please fix the errors before continuing")
	ErrMissingApplicationID = errors.New("application ID is required to modify an application")
)

// Submitter sends a finished draft to the permit office.
type Submitter interface {
	SubmitApplication(ctx context.Context, form *model.ApplicationForm) (*model.SubmissionResult, error)
	ModifyApplication(ctx context.Context, applicationID string, form *model.ApplicationForm) (*model.SubmissionResult, error)
}

// Wizard is the state of one application draft. It serializes to JSON so a
// draft can be parked between requests.
type Wizard struct {
	Mode          Mode                    `json:"mode"`
	Step          Step                    `json:"step"`
	ApplicationID string                  `json:"applicationId,omitempty"`
	Draft         model.ApplicationForm   `json:"draft"`
	Errors        []string                `json:"errors"`
	Submitted     bool                    `json:"submitted"`
	Result        *model.SubmissionResult `json:"result,omitempty"`
}

// New starts a blank application.
func New() *Wizard {
	return &Wizard{
		Mode:   ModeNew,
		Step:   FirstStep,
		Draft:  model.NewApplicationForm(),
		Errors: []string{},
	}
}

// NewModification starts from a previously submitted application.
func NewModification(form model.ApplicationForm) *Wizard {
	draft := form.Clone()
	if draft.OfficeReviews == nil {
		draft.OfficeReviews = []model.OfficeReview{}
	}
	return &Wizard{
		Mode:          ModeModification,
		Step:          FirstStep,
		ApplicationID: form.ApplicationInfo.ApplicationID,
		Draft:         draft,
		Errors:        []string{},
	}
}

func (w *Wizard) IsFirstStep() bool { return w.Step == FirstStep }
func (w *Wizard) IsLastStep() bool  { return w.Step == LastStep }

// Validate runs the current step's rules without moving.
func (w *Wizard) Validate() validation.Errors {
	switch w.Step {
	case StepTaxpayer:
		return validation.TaxpayerStep(&w.Draft.TaxpayerInfo)
	case StepBusiness:
		return validation.BusinessStep(&w.Draft.BusinessInfo)
	case StepApplicationDetails:
		return validation.ApplicationDetailsStep(&w.Draft.ApplicationInfo)
	case StepOfficeReviews:
		return validation.OfficeReviewsStep(w.Draft.OfficeReviews)
	}
	return validation.Errors{fmt.Sprintf("unknown step %d", int(w.Step))}
}

// Next validates the current step and advances when it passes. It reports
// whether the step passed.
func (w *Wizard) Next() bool {
	if errs := w.Validate(); len(errs) > 0 {
		w.Errors = errs
		return false
	}
	w.Errors = []string{}
	if w.Step < LastStep {
		w.Step++
	}
	if w.Step == StepOfficeReviews {
		w.Draft.OfficeReviews = InitializeReviews(w.Draft.OfficeReviews)
	}
	return true
}

// Previous goes back one step without validating.
func (w *Wizard) Previous() {
	w.Errors = []string{}
	if w.Step > FirstStep {
		w.Step--
	}
}

// Submit re-checks the review step and hands the draft to s. On failure the
// error message becomes the wizard's only error.
func (w *Wizard) Submit(ctx context.Context, s Submitter) error {
	if w.Submitted {
		return ErrAlreadySubmitted
	}
	if !w.IsLastStep() {
		return ErrNotOnLastStep
	}
	if errs := validation.OfficeReviewsStep(w.Draft.OfficeReviews); len(errs) > 0 {
		w.Errors = errs
		return fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	var (
		result *model.SubmissionResult
		err    error
	)
	switch w.Mode {
	case ModeModification:
		if w.ApplicationID == "" {
			err = ErrMissingApplicationID
			break
		}
		payload := w.Draft.ForModification()
		result, err = s.ModifyApplication(ctx, w.ApplicationID, &payload)
	default:
		payload := w.Draft.Clone()
		result, err = s.SubmitApplication(ctx, &payload)
	}
	if err != nil {
		w.Errors = []string{err.Error()}
		return err
	}

	w.Errors = []string{}
	w.Submitted = true
	w.Result = result
	if w.ApplicationID == "" && result != nil {
		w.ApplicationID = result.ApplicationID
	}
	return nil
}

func (w *Wizard) SetTaxpayer(t model.Taxpayer) {
	w.Draft.TaxpayerInfo = t
}

func (w *Wizard) SetBusiness(b model.Business) {
	w.Draft.BusinessInfo = b
}

// SetApplicationDetails replaces the application section. Submitting both
// property flags keeps the last one chosen, leased.
func (w *Wizard) SetApplicationDetails(a model.Application) {
	owned, leased := a.IsOwnedProperty, a.IsLeasedProperty
	w.Draft.ApplicationInfo = a
	w.Draft.ApplicationInfo.SelectOwnedProperty(owned)
	if leased {
		w.Draft.ApplicationInfo.SelectLeasedProperty(true)
	}
}

func (w *Wizard) SetOfficeReviews(reviews []model.OfficeReview) {
	if reviews == nil {
		reviews = []model.OfficeReview{}
	}
	w.Draft.OfficeReviews = reviews
}

// SelectOwnedProperty toggles the owned flag; checking it clears leased.
func (w *Wizard) SelectOwnedProperty(checked bool) {
	w.Draft.ApplicationInfo.SelectOwnedProperty(checked)
}

// SelectLeasedProperty toggles the leased flag; checking it clears owned.
func (w *Wizard) SelectLeasedProperty(checked bool) {
	w.Draft.ApplicationInfo.SelectLeasedProperty(checked)
}

func (w *Wizard) AddOptionalOffice(office string) error {
	reviews, err := AddOptionalOffice(w.Draft.OfficeReviews, office)
	if err != nil {
		return err
	}
	w.Draft.OfficeReviews = reviews
	return nil
}

func (w *Wizard) RemoveOptionalOffice(office string) error {
	reviews, err := RemoveOptionalOffice(w.Draft.OfficeReviews, office)
	if err != nil {
		return err
	}
	w.Draft.OfficeReviews = reviews
	return nil
}

// AvailableOptionalOffices lists the optional offices not yet on the draft.
func (w *Wizard) AvailableOptionalOffices() []string {
	return AvailableOptionalOffices(w.Draft.OfficeReviews)
}
