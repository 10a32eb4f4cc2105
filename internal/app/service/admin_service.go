package service

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/internal/app/repository"
	"github.com/ikkim/permit-backend/internal/app/validation"
	"github.com/ikkim/permit-backend/internal/report"
	"github.com/ikkim/permit-backend/pkg/logger"
	"github.com/ikkim/permit-backend/pkg/util"
	"gorm.io/gorm"
)

// FieldErrors maps a dashboard field to its validation message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return "validation failed"
}

// AdminList is the dashboard payload. Stats always cover every application.
type AdminList struct {
	Applications []model.ApplicationSummary `json:"applications"`
	Stats        model.ApplicationStats     `json:"stats"`
}

// ImportResult reports a spreadsheet import.
type ImportResult struct {
	Imported int               `json:"imported"`
	Skipped  []report.RowError `json:"-"`
}

type AdminService interface {
	List(search string) (*AdminList, error)
	Update(row *model.ApplicationSummary) error
	Delete(applicationID string) error
	Export(w io.Writer, search string) (int, error)
	Import(r io.Reader) (*ImportResult, error)
	RenewalsDue(window int) ([]model.ApplicationSummary, error)
}

type adminService struct {
	db       *gorm.DB
	appRepo  repository.ApplicationRepository
	notifier Notifier
	now      func() time.Time
}

func NewAdminService(db *gorm.DB, notifier Notifier) AdminService {
	return &adminService{
		db:       db,
		appRepo:  repository.NewApplicationRepository(db),
		notifier: notifierOrNoop(notifier),
		now:      time.Now,
	}
}

// FilterApplications keeps rows whose business name, taxpayer name or mayor's
// permit number contains term, ignoring case. A blank term keeps every row.
func FilterApplications(rows []model.ApplicationSummary, term string) []model.ApplicationSummary {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rows
	}
	out := make([]model.ApplicationSummary, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.BusinessTradeName), term) ||
			strings.Contains(strings.ToLower(row.TaxpayerName), term) ||
			strings.Contains(strings.ToLower(row.MayorPermitNo), term) {
			out = append(out, row)
		}
	}
	return out
}

func (s *adminService) summaries() ([]model.ApplicationSummary, error) {
	apps, err := s.appRepo.FindAll()
	if err != nil {
		return nil, err
	}
	rows := make([]model.ApplicationSummary, 0, len(apps))
	for i := range apps {
		rows = append(rows, model.NewApplicationSummary(&apps[i]))
	}
	return rows, nil
}

func (s *adminService) List(search string) (*AdminList, error) {
	rows, err := s.summaries()
	if err != nil {
		logger.Error("Failed to list applications", err, nil)
		return nil, err
	}

	list := &AdminList{
		Applications: FilterApplications(rows, search),
		Stats:        model.ComputeStats(rows),
	}
	logger.Debug("Applications listed for dashboard", map[string]interface{}{
		"total":    list.Stats.Total,
		"returned": len(list.Applications),
	})
	return list, nil
}

// Update saves the edit dialog: application, business and taxpayer in one transaction.
func (s *adminService) Update(row *model.ApplicationSummary) error {
	logger.Info("Admin updating application", map[string]interface{}{
		"application_id": row.ApplicationID,
	})

	if fields := validation.AdminEdit(row); len(fields) > 0 {
		logger.Warn("Admin edit rejected by validation", map[string]interface{}{
			"application_id": row.ApplicationID,
			"error_count":    len(fields),
		})
		return FieldErrors(fields)
	}

	app := row.ApplicationRecord()
	business := row.BusinessRecord()
	taxpayer := row.TaxpayerRecord()

	err := inTransaction(s.db, "admin_update_application", func(r txRepos) error {
		if err := r.applications.UpdateColumns(&app, model.AdminApplicationColumns); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}
		if err := r.businesses.Update(&business); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBusinessNotFound
			}
			return err
		}
		if err := r.taxpayers.Update(&taxpayer); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaxpayerNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to update application from dashboard", err, map[string]interface{}{
			"application_id": row.ApplicationID,
		})
		return err
	}

	logger.Info("Application updated from dashboard", map[string]interface{}{
		"application_id": row.ApplicationID,
	})
	s.notifier.Notify(EventApplicationUpdated, map[string]interface{}{
		"application_id": row.ApplicationID,
		"status":         app.ReleaseStatus(),
	})
	return nil
}

// Delete removes an application and its reviews.
func (s *adminService) Delete(applicationID string) error {
	applicationID = strings.TrimSpace(applicationID)
	if applicationID == "" {
		return ErrApplicationIDRequired
	}

	logger.Info("Admin deleting application", map[string]interface{}{
		"application_id": applicationID,
	})

	err := inTransaction(s.db, "delete_application", func(r txRepos) error {
		if err := r.reviews.DeleteByApplicationID(applicationID); err != nil {
			return err
		}
		if err := r.applications.Delete(applicationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrApplicationNotFound) {
			logger.Error("Failed to delete application", err, map[string]interface{}{
				"application_id": applicationID,
			})
		}
		return err
	}

	s.notifier.Notify(EventApplicationDeleted, map[string]interface{}{
		"application_id": applicationID,
	})
	return nil
}

// Export writes the filtered dashboard rows as a spreadsheet and returns the row count.
func (s *adminService) Export(w io.Writer, search string) (int, error) {
	rows, err := s.summaries()
	if err != nil {
		return 0, err
	}
	rows = FilterApplications(rows, search)
	if err := report.Write(w, rows); err != nil {
		logger.Error("Failed to write applications report", err, nil)
		return 0, err
	}
	logger.Info("Applications report exported", map[string]interface{}{
		"rows": len(rows),
	})
	return len(rows), nil
}

// Import loads legacy records from a spreadsheet. Each row becomes a taxpayer,
// business and application. Stored dates, plate numbers and release details
// are kept; missing ones are assigned as for a new application. Rows that
// fail the dashboard validation are skipped.
func (s *adminService) Import(r io.Reader) (*ImportResult, error) {
	rows, skipped, err := report.Read(r)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Skipped: skipped}
	now := s.now()
	err = inTransaction(s.db, "import_applications", func(tx txRepos) error {
		for i := range rows {
			row := &rows[i]
			// ids are assigned on insert
			row.ApplicationID = "import"
			row.TaxpayerID = "import"
			row.BusinessAccountNo = "import"
			if fields := validation.AdminEdit(row); len(fields) > 0 {
				result.Skipped = append(result.Skipped, report.RowError{Row: i + 2, Err: FieldErrors(fields)})
				continue
			}

			taxpayer := row.TaxpayerRecord()
			taxpayer.TaxpayerID = ""
			if err := tx.taxpayers.Create(&taxpayer); err != nil {
				return err
			}

			business := row.BusinessRecord()
			business.BusinessAccountNo = util.GenerateBusinessAccountNo(now)
			business.TaxpayerID = taxpayer.TaxpayerID
			if err := tx.businesses.Create(&business); err != nil {
				return err
			}

			app := row.ApplicationRecord()
			app.ApplicationID = ""
			app.BusinessAccountNo = business.BusinessAccountNo
			today := model.Today(now)
			if app.DateOfApplication == "" {
				app.DateOfApplication = today
			}
			if app.OfficialReceiptDate == "" {
				app.OfficialReceiptDate = app.DateOfApplication
			}
			if app.AmountPaid == 0 {
				app.AmountPaid = model.ApplicationFee
			}
			if app.BusinessPlateNo == "" {
				app.BusinessPlateNo = util.GeneratePlateNumber(now)
				app.BusinessPlateDate = today
			}
			if err := tx.applications.Create(&app); err != nil {
				return err
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to import applications", err, nil)
		return nil, err
	}

	logger.Info("Applications imported", map[string]interface{}{
		"imported": result.Imported,
		"skipped":  len(result.Skipped),
	})
	return result, nil
}

// RenewalsDue returns applications whose one-year permit lapses within the
// next window days, counting from today. A renewed permit lapses a year after
// its renewal receipt.
func (s *adminService) RenewalsDue(window int) ([]model.ApplicationSummary, error) {
	if window < 0 {
		window = 0
	}
	today := s.now()
	from := model.Today(today.AddDate(-1, 0, 0))
	to := model.Today(today.AddDate(-1, 0, window))

	apps, err := s.appRepo.FindByCycleDateRange(from, to)
	if err != nil {
		return nil, err
	}
	rows := make([]model.ApplicationSummary, 0, len(apps))
	for i := range apps {
		rows = append(rows, model.NewApplicationSummary(&apps[i]))
	}
	return rows, nil
}
