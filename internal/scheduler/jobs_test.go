package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/lending-engine/internal/config"
	"github.com/segyhp/lending-engine/internal/domain"
)

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type stubContracts struct {
	contracts []*domain.Contract
	err       error
	before    time.Time
}

func (s *stubContracts) ListContractsDueBefore(ctx context.Context, before time.Time) ([]*domain.Contract, error) {
	s.before = before
	return s.contracts, s.err
}

type stubWarmer struct {
	count int
	err   error
	calls int
}

func (s *stubWarmer) WarmOfferCache(ctx context.Context) (int, error) {
	s.calls++
	return s.count, s.err
}

func newJobs(contracts ContractSource, offers OfferWarmer) (*Jobs, *logtest.Hook) {
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	jobs := NewJobs(contracts, offers, 72*time.Hour, log)
	jobs.now = func() time.Time { return now }
	return jobs, hook
}

func TestSendPaymentReminders(t *testing.T) {
	due := now.Add(48 * time.Hour)
	contracts := &stubContracts{contracts: []*domain.Contract{
		{ID: "c1", BorrowerID: "b1", MonthlyPayment: decimal.RequireFromString("88.85"), NextPaymentDate: due},
		{ID: "c2", BorrowerID: "b2", MonthlyPayment: decimal.RequireFromString("945.6"), NextPaymentDate: now},
	}}
	jobs, hook := newJobs(contracts, &stubWarmer{})

	reminders, err := jobs.SendPaymentReminders(context.Background())

	require.NoError(t, err)
	assert.True(t, contracts.before.Equal(now.Add(72*time.Hour)))
	require.Len(t, reminders, 2)
	assert.Equal(t, domain.PaymentReminder{
		ContractID:      "c1",
		BorrowerID:      "b1",
		MonthlyPayment:  decimal.RequireFromString("88.85"),
		NextPaymentDate: due,
	}, reminders[0])

	var logged []string
	for _, entry := range hook.AllEntries() {
		if entry.Message == "Payment reminder" {
			logged = append(logged, entry.Data["contract_id"].(string))
		}
	}
	assert.Equal(t, []string{"c1", "c2"}, logged)
	assert.Equal(t, "945.60", hook.AllEntries()[1].Data["monthly_payment"])
}

func TestSendPaymentReminders_SourceFailure(t *testing.T) {
	jobs, hook := newJobs(&stubContracts{err: errors.New("backend down")}, &stubWarmer{})

	reminders, err := jobs.SendPaymentReminders(context.Background())

	require.Error(t, err)
	assert.Nil(t, reminders)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestWarmOfferCache(t *testing.T) {
	warmer := &stubWarmer{count: 3}
	jobs, hook := newJobs(&stubContracts{}, warmer)

	require.NoError(t, jobs.WarmOfferCache(context.Background()))
	assert.Equal(t, 3, hook.LastEntry().Data["offers"])

	warmer.err = errors.New("redis unavailable")
	assert.Error(t, jobs.WarmOfferCache(context.Background()))
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, 2, warmer.calls)
}

func TestRegister(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	jobs, _ := newJobs(&stubContracts{}, &stubWarmer{})
	cfg := config.SchedulerConfig{ReminderSpec: "0 0 9 * * *", CacheWarmSpec: "0 */10 * * * *"}

	c := New(time.UTC, log)
	require.NoError(t, Register(context.Background(), c, cfg, jobs))
	assert.Len(t, c.Entries(), 2)

	bad := cfg
	bad.ReminderSpec = "every morning"
	assert.Error(t, Register(context.Background(), New(time.UTC, log), bad, jobs))
}
