package service

import (
	"context"
	"errors"
	"time"

	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/internal/app/wizard"
	"github.com/ikkim/permit-backend/pkg/logger"
)

const draftTimeout = 3 * time.Second

var ErrWizardNotFound = errors.New("wizard session not found")

// WizardSession is a parked draft as returned to the client.
type WizardSession struct {
	ID string `json:"id"`
	*wizard.Wizard
	StepName         string   `json:"stepName"`
	StepTitle        string   `json:"stepTitle"`
	AvailableOffices []string `json:"availableOffices"`
}

type WizardService interface {
	// Start opens a new draft, or a modification draft when applicationID is set.
	Start(applicationID string) (*WizardSession, error)
	Get(id string) (*WizardSession, error)
	// Update loads the draft, applies fn and saves the result. The draft is
	// saved even when fn fails so step errors survive.
	Update(id string, fn func(w *wizard.Wizard) error) (*WizardSession, error)
	Submit(id string) (*WizardSession, error)
}

type wizardService struct {
	store DraftStore
	apps  ApplicationService
}

// DraftStore is satisfied by wizard.MemoryStore and wizard.RedisStore.
type DraftStore = wizard.DraftStore

func NewWizardService(store DraftStore, apps ApplicationService) WizardService {
	return &wizardService{store: store, apps: apps}
}

func newWizardSession(id string, w *wizard.Wizard) *WizardSession {
	return &WizardSession{
		ID:               id,
		Wizard:           w,
		StepName:         w.Step.String(),
		StepTitle:        w.Step.Title(),
		AvailableOffices: w.AvailableOptionalOffices(),
	}
}

func (s *wizardService) Start(applicationID string) (*WizardSession, error) {
	var w *wizard.Wizard
	if applicationID == "" {
		w = wizard.New()
	} else {
		form, err := s.apps.Search(applicationID)
		if err != nil {
			return nil, err
		}
		w = wizard.NewModification(*form)
	}

	id := wizard.NewDraftID()
	if err := s.save(id, w); err != nil {
		return nil, err
	}
	logger.Info("Wizard session started", map[string]interface{}{
		"session_id":     id,
		"mode":           w.Mode,
		"application_id": applicationID,
	})
	return newWizardSession(id, w), nil
}

func (s *wizardService) Get(id string) (*WizardSession, error) {
	w, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return newWizardSession(id, w), nil
}

func (s *wizardService) Update(id string, fn func(w *wizard.Wizard) error) (*WizardSession, error) {
	w, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if w.Submitted {
		return newWizardSession(id, w), wizard.ErrAlreadySubmitted
	}

	fnErr := fn(w)
	if err := s.save(id, w); err != nil {
		return nil, err
	}
	return newWizardSession(id, w), fnErr
}

func (s *wizardService) Submit(id string) (*WizardSession, error) {
	w, err := s.load(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), draftTimeout)
	defer cancel()
	submitErr := w.Submit(ctx, applicationSubmitter{apps: s.apps})
	if errors.Is(submitErr, wizard.ErrAlreadySubmitted) {
		return newWizardSession(id, w), submitErr
	}

	if err := s.save(id, w); err != nil {
		return nil, err
	}
	if submitErr == nil {
		logger.Info("Wizard session submitted", map[string]interface{}{
			"session_id":     id,
			"application_id": w.ApplicationID,
		})
	}
	return newWizardSession(id, w), submitErr
}

func (s *wizardService) load(id string) (*wizard.Wizard, error) {
	ctx, cancel := context.WithTimeout(context.Background(), draftTimeout)
	defer cancel()

	w, err := s.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, wizard.ErrDraftNotFound) {
			return nil, ErrWizardNotFound
		}
		logger.Error("Failed to load wizard draft", err, map[string]interface{}{
			"session_id": id,
		})
		return nil, err
	}
	return w, nil
}

func (s *wizardService) save(id string, w *wizard.Wizard) error {
	ctx, cancel := context.WithTimeout(context.Background(), draftTimeout)
	defer cancel()

	if err := s.store.Save(ctx, id, w); err != nil {
		logger.Error("Failed to save wizard draft", err, map[string]interface{}{
			"session_id": id,
		})
		return err
	}
	return nil
}

// applicationSubmitter hands finished drafts to the application service.
type applicationSubmitter struct {
	apps ApplicationService
}

func (a applicationSubmitter) SubmitApplication(_ context.Context, form *model.ApplicationForm) (*model.SubmissionResult, error) {
	return a.apps.Create(form)
}

func (a applicationSubmitter) ModifyApplication(_ context.Context, applicationID string, form *model.ApplicationForm) (*model.SubmissionResult, error) {
	return a.apps.Modify(applicationID, form)
}
