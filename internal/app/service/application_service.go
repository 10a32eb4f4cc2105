package service

import (
	"errors"
	"strings"
	"time"

	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/internal/app/repository"
	"github.com/ikkim/permit-backend/internal/app/validation"
	"github.com/ikkim/permit-backend/pkg/logger"
	"github.com/ikkim/permit-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound    = errors.New("application not found")
	ErrBusinessNotFound       = errors.New("business not found")
	ErrTaxpayerNotFound       = errors.New("taxpayer not found")
	ErrApplicationIDRequired  = errors.New("application ID is required")
	ErrBusinessAccountMissing = errors.New("business account number is required")
)

// renewalColumns are refreshed on every renewal of an existing cycle.
var renewalColumns = []string{
	"official_receipt_date",
	"amount_paid",
	"permit_date_of_release",
	"permit_time_of_release",
	"permit_released_by",
}

type ApplicationService interface {
	Create(form *model.ApplicationForm) (*model.SubmissionResult, error)
	Modify(applicationID string, form *model.ApplicationForm) (*model.SubmissionResult, error)
	Search(applicationID string) (*model.ApplicationForm, error)
	RenewSearch(businessAccountNo string) (*model.ApplicationForm, error)
	Renew(businessAccountNo string, form *model.ApplicationForm) (*model.SubmissionResult, error)
	Track(applicationID string) (*model.TrackingResult, error)
}

type applicationService struct {
	db       *gorm.DB
	appRepo  repository.ApplicationRepository
	bizRepo  repository.BusinessRepository
	notifier Notifier
	now      func() time.Time
}

func NewApplicationService(db *gorm.DB, notifier Notifier) ApplicationService {
	return &applicationService{
		db:       db,
		appRepo:  repository.NewApplicationRepository(db),
		bizRepo:  repository.NewBusinessRepository(db),
		notifier: notifierOrNoop(notifier),
		now:      time.Now,
	}
}

// newCycle stamps the server-assigned fields of a fresh application.
func newCycle(app *model.Application, businessAccountNo string, now time.Time) {
	today := model.Today(now)
	app.ClearSystemFields()
	app.BusinessAccountNo = businessAccountNo
	app.DateOfApplication = today
	app.OfficialReceiptDate = today
	app.AmountPaid = model.ApplicationFee
	app.BusinessPlateNo = util.GeneratePlateNumber(now)
	app.BusinessPlateDate = today
}

// Create stores taxpayer, business, application and reviews in one transaction.
func (s *applicationService) Create(form *model.ApplicationForm) (*model.SubmissionResult, error) {
	logger.Info("Creating application", map[string]interface{}{
		"trade_name": form.BusinessInfo.BusinessTradeName,
	})

	if errs := validation.Form(form); len(errs) > 0 {
		logger.Warn("Application rejected by validation", map[string]interface{}{
			"error_count": len(errs),
		})
		return nil, errs
	}

	taxpayer := form.TaxpayerInfo
	taxpayer.TaxpayerID = ""

	business := form.BusinessInfo
	business.BusinessAccountNo = util.GenerateBusinessAccountNo(s.now())
	business.Taxpayer = nil

	app := form.ApplicationInfo
	app.Business = nil
	app.OfficeReviews = nil

	err := inTransaction(s.db, "create_application", func(r txRepos) error {
		if err := r.taxpayers.Create(&taxpayer); err != nil {
			return err
		}
		business.TaxpayerID = taxpayer.TaxpayerID
		if err := r.businesses.Create(&business); err != nil {
			return err
		}
		newCycle(&app, business.BusinessAccountNo, s.now())
		if err := r.applications.Create(&app); err != nil {
			return err
		}
		return r.reviews.Replace(app.ApplicationID, form.OfficeReviews)
	})
	if err != nil {
		logger.Error("Failed to create application", err, map[string]interface{}{
			"trade_name": business.BusinessTradeName,
		})
		return nil, err
	}

	logger.Info("Application created", map[string]interface{}{
		"application_id":      app.ApplicationID,
		"business_account_no": app.BusinessAccountNo,
		"business_plate_no":   app.BusinessPlateNo,
	})
	s.notifier.Notify(EventApplicationCreated, map[string]interface{}{
		"application_id":      app.ApplicationID,
		"business_account_no": app.BusinessAccountNo,
		"business_trade_name": business.BusinessTradeName,
	})

	return &model.SubmissionResult{
		Success:         true,
		Message:         "Application submitted successfully",
		ApplicationID:   app.ApplicationID,
		BusinessPlateNo: app.BusinessPlateNo,
	}, nil
}

// Modify rewrites an application cycle in place. Taxpayer and business are
// keyed by the stored application, never by ids in the payload, and the
// server-assigned application fields are left untouched.
func (s *applicationService) Modify(applicationID string, form *model.ApplicationForm) (*model.SubmissionResult, error) {
	applicationID = strings.TrimSpace(applicationID)
	if applicationID == "" {
		return nil, ErrApplicationIDRequired
	}

	logger.Info("Modifying application", map[string]interface{}{
		"application_id": applicationID,
	})

	if errs := validation.Form(form); len(errs) > 0 {
		logger.Warn("Modification rejected by validation", map[string]interface{}{
			"application_id": applicationID,
			"error_count":    len(errs),
		})
		return nil, errs
	}

	err := inTransaction(s.db, "modify_application", func(r txRepos) error {
		existing, err := r.applications.FindByID(applicationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}
		if existing.Business == nil {
			return ErrBusinessNotFound
		}

		taxpayer := form.TaxpayerInfo
		taxpayer.TaxpayerID = existing.Business.TaxpayerID
		if err := r.taxpayers.Update(&taxpayer); err != nil {
			return err
		}

		business := form.BusinessInfo
		business.Taxpayer = nil
		business.BusinessAccountNo = existing.BusinessAccountNo
		if err := r.businesses.Update(&business); err != nil {
			return err
		}

		app := form.ApplicationInfo
		app.Business = nil
		app.OfficeReviews = nil
		app.ApplicationID = applicationID
		if err := r.applications.Update(&app, model.SystemColumns...); err != nil {
			return err
		}

		return r.reviews.Replace(applicationID, form.OfficeReviews)
	})
	if err != nil {
		if !errors.Is(err, ErrApplicationNotFound) {
			logger.Error("Failed to modify application", err, map[string]interface{}{
				"application_id": applicationID,
			})
		}
		return nil, err
	}

	logger.Info("Application modified", map[string]interface{}{
		"application_id": applicationID,
	})
	s.notifier.Notify(EventApplicationModified, map[string]interface{}{
		"application_id":      applicationID,
		"business_trade_name": form.BusinessInfo.BusinessTradeName,
	})

	return &model.SubmissionResult{
		Success:       true,
		Message:       "Application updated successfully",
		ApplicationID: applicationID,
	}, nil
}

// Search returns the stored draft of an application for the modification flow.
func (s *applicationService) Search(applicationID string) (*model.ApplicationForm, error) {
	applicationID = strings.TrimSpace(applicationID)
	if applicationID == "" {
		return nil, ErrApplicationIDRequired
	}

	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Application not found", map[string]interface{}{
				"application_id": applicationID,
			})
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if app.Business == nil || app.Business.Taxpayer == nil {
		return nil, ErrApplicationNotFound
	}

	form := model.ApplicationForm{
		TaxpayerInfo:  *app.Business.Taxpayer,
		BusinessInfo:  *app.Business,
		OfficeReviews: app.OfficeReviews,
	}
	form.BusinessInfo.Taxpayer = nil
	form.ApplicationInfo = *app
	form.ApplicationInfo.Business = nil
	form.ApplicationInfo.OfficeReviews = nil
	if form.OfficeReviews == nil {
		form.OfficeReviews = []model.OfficeReview{}
	}
	return &form, nil
}

// RenewSearch returns the business, its taxpayer and its latest application
// cycle, or a blank application when the business has none.
func (s *applicationService) RenewSearch(businessAccountNo string) (*model.ApplicationForm, error) {
	businessAccountNo = strings.TrimSpace(businessAccountNo)
	if businessAccountNo == "" {
		return nil, ErrBusinessAccountMissing
	}

	business, err := s.bizRepo.FindByAccountNo(businessAccountNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Business not found for renewal", map[string]interface{}{
				"business_account_no": businessAccountNo,
			})
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	if business.Taxpayer == nil {
		return nil, ErrBusinessNotFound
	}

	form := model.ApplicationForm{
		TaxpayerInfo:  *business.Taxpayer,
		BusinessInfo:  *business,
		OfficeReviews: []model.OfficeReview{},
	}
	form.BusinessInfo.Taxpayer = nil

	latest, err := s.appRepo.FindLatestByBusiness(businessAccountNo)
	switch {
	case err == nil:
		form.ApplicationInfo = *latest
	case errors.Is(err, gorm.ErrRecordNotFound):
		form.ApplicationInfo = model.Application{}
	default:
		return nil, err
	}
	return &form, nil
}

// Renew opens the next cycle for a business. The latest stored application is
// updated in place when one exists; otherwise a new one is created.
func (s *applicationService) Renew(businessAccountNo string, form *model.ApplicationForm) (*model.SubmissionResult, error) {
	businessAccountNo = strings.TrimSpace(businessAccountNo)
	if businessAccountNo == "" {
		return nil, ErrBusinessAccountMissing
	}

	logger.Info("Renewing application", map[string]interface{}{
		"business_account_no": businessAccountNo,
	})

	if errs := validation.RenewalForm(&form.ApplicationInfo, form.OfficeReviews); len(errs) > 0 {
		logger.Warn("Renewal rejected by validation", map[string]interface{}{
			"business_account_no": businessAccountNo,
			"error_count":         len(errs),
		})
		return nil, errs
	}

	app := form.ApplicationInfo
	app.Business = nil
	app.OfficeReviews = nil
	created := false

	err := inTransaction(s.db, "renew_application", func(r txRepos) error {
		if _, err := r.businesses.FindByAccountNo(businessAccountNo); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBusinessNotFound
			}
			return err
		}

		now := s.now()
		latest, err := r.applications.FindLatestByBusiness(businessAccountNo)
		switch {
		case err == nil:
			app.ApplicationID = latest.ApplicationID
			if err := r.applications.Update(&app, model.SystemColumns...); err != nil {
				return err
			}
			app.OfficialReceiptDate = model.Today(now)
			app.AmountPaid = model.ApplicationFee
			app.ClearRelease()
			if err := r.applications.UpdateColumns(&app, renewalColumns); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			newCycle(&app, businessAccountNo, now)
			if err := r.applications.Create(&app); err != nil {
				return err
			}
		default:
			return err
		}

		return r.reviews.Replace(app.ApplicationID, form.OfficeReviews)
	})
	if err != nil {
		if !errors.Is(err, ErrBusinessNotFound) {
			logger.Error("Failed to renew application", err, map[string]interface{}{
				"business_account_no": businessAccountNo,
			})
		}
		return nil, err
	}

	logger.Info("Application renewed", map[string]interface{}{
		"application_id":      app.ApplicationID,
		"business_account_no": businessAccountNo,
		"created":             created,
	})
	s.notifier.Notify(EventApplicationRenewed, map[string]interface{}{
		"application_id":      app.ApplicationID,
		"business_account_no": businessAccountNo,
	})

	result := &model.SubmissionResult{
		Success:       true,
		Message:       "Renewal application updated successfully",
		ApplicationID: app.ApplicationID,
	}
	if created {
		result.Message = "Renewal application created successfully"
		result.BusinessPlateNo = app.BusinessPlateNo
	}
	return result, nil
}

// Track returns the release status of an application.
func (s *applicationService) Track(applicationID string) (*model.TrackingResult, error) {
	applicationID = strings.TrimSpace(applicationID)
	if applicationID == "" {
		return nil, ErrApplicationIDRequired
	}

	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	result := model.NewTrackingResult(app)
	logger.Debug("Application tracked", map[string]interface{}{
		"application_id": applicationID,
		"status":         result.Status,
	})
	return &result, nil
}
