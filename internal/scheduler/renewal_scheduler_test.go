package scheduler

import (
	"errors"
	"sync"
	"testing"

	"github.com/ikkim/permit-backend/config"
	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScanner struct {
	rows   []model.ApplicationSummary
	err    error
	window int
}

func (s *stubScanner) RenewalsDue(window int) ([]model.ApplicationSummary, error) {
	s.window = window
	return s.rows, s.err
}

type capturedEvent struct {
	name string
	data map[string]interface{}
}

type captureNotifier struct {
	mu     sync.Mutex
	events []capturedEvent
}

func (n *captureNotifier) Notify(event string, data map[string]interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, capturedEvent{name: event, data: data})
}

func TestRenewalScheduler_ScanPublishesDueApplications(t *testing.T) {
	scanner := &stubScanner{rows: []model.ApplicationSummary{
		{Application: model.Application{ApplicationID: "a-1"}, BusinessTradeName: "Santos Bakery", TaxpayerName: "Maria Santos"},
		{Application: model.Application{ApplicationID: "a-2"}, BusinessTradeName: "Lim Hardware", TaxpayerName: "Ana Lim"},
	}}
	notifier := &captureNotifier{}

	NewRenewalScheduler("", 30, scanner, notifier).Scan()

	assert.Equal(t, 30, scanner.window)
	require.Len(t, notifier.events, 1)
	event := notifier.events[0]
	assert.Equal(t, service.EventRenewalsDue, event.name)
	assert.Equal(t, 2, event.data["count"])
	due, ok := event.data["applications"].([]map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Santos Bakery", due[0]["business_trade_name"])
}

func TestRenewalScheduler_ScanSkipsEmptyAndFailedScans(t *testing.T) {
	notifier := &captureNotifier{}

	NewRenewalScheduler("", 30, &stubScanner{}, notifier).Scan()
	NewRenewalScheduler("", 30, &stubScanner{err: errors.New("db down")}, notifier).Scan()

	assert.Empty(t, notifier.events)
}

func TestRenewalScheduler_StartRejectsBadSpec(t *testing.T) {
	s := NewRenewalScheduler("every morning", 30, &stubScanner{}, &captureNotifier{})

	assert.Error(t, s.Start())
}

func TestRenewalScheduler_StartAndStop(t *testing.T) {
	s := NewRenewalScheduler("", 30, &stubScanner{}, &captureNotifier{})

	require.NoError(t, s.Start())
	s.Stop()
}

func TestNewRenewalScheduler_DefaultSpec(t *testing.T) {
	s := NewRenewalScheduler("", 30, &stubScanner{}, &captureNotifier{})
	assert.Equal(t, config.DefaultRenewalCron, s.spec)

	s = NewRenewalScheduler("*/5 * * * *", 30, &stubScanner{}, &captureNotifier{})
	assert.Equal(t, "*/5 * * * *", s.spec)
}
