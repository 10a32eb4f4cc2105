package scheduler

import (
	"github.com/ikkim/permit-backend/config"
	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/internal/app/service"
	"github.com/ikkim/permit-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// DefaultRenewalSpec is used when no spec is configured.
const DefaultRenewalSpec = config.DefaultRenewalCron

// RenewalScanner is the part of service.AdminService the scan needs.
type RenewalScanner interface {
	RenewalsDue(window int) ([]model.ApplicationSummary, error)
}

// RenewalScheduler tells connected admins which permits lapse soon.
type RenewalScheduler struct {
	cron     *cron.Cron
	spec     string
	window   int
	scanner  RenewalScanner
	notifier service.Notifier
}

func NewRenewalScheduler(spec string, window int, scanner RenewalScanner, notifier service.Notifier) *RenewalScheduler {
	if spec == "" {
		spec = DefaultRenewalSpec
	}
	return &RenewalScheduler{
		cron:     cron.New(),
		spec:     spec,
		window:   window,
		scanner:  scanner,
		notifier: notifier,
	}
}

func (s *RenewalScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.Scan)
	if err != nil {
		logger.Error("Failed to add cron job for renewal scan", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Renewal scheduler started", map[string]interface{}{
		"spec":        s.spec,
		"window_days": s.window,
	})
	return nil
}

// Scan publishes the permits due within the window. Nothing is sent when none are due.
func (s *RenewalScheduler) Scan() {
	rows, err := s.scanner.RenewalsDue(s.window)
	if err != nil {
		logger.Error("Renewal scan failed", err, nil)
		return
	}
	if len(rows) == 0 {
		logger.Debug("No renewals due", nil)
		return
	}

	due := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		due = append(due, map[string]interface{}{
			"application_id":      row.ApplicationID,
			"business_account_no": row.BusinessAccountNo,
			"business_trade_name": row.BusinessTradeName,
			"taxpayer_name":       row.TaxpayerName,
			"date_of_application": row.DateOfApplication,
		})
	}
	s.notifier.Notify(service.EventRenewalsDue, map[string]interface{}{
		"window_days":  s.window,
		"count":        len(rows),
		"applications": due,
	})
	logger.Info("Renewal scan published", map[string]interface{}{
		"count": len(rows),
	})
}

func (s *RenewalScheduler) Stop() {
	logger.Info("Stopping renewal scheduler...", nil)
	<-s.cron.Stop().Done()
	logger.Info("Renewal scheduler stopped", nil)
}
