package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-engine/internal/config"
	"github.com/segyhp/lending-engine/internal/domain"
)

// ContractSource lists active contracts by due date
type ContractSource interface {
	ListContractsDueBefore(ctx context.Context, before time.Time) ([]*domain.Contract, error)
}

// OfferWarmer reloads the offer cache
type OfferWarmer interface {
	WarmOfferCache(ctx context.Context) (int, error)
}

type Jobs struct {
	contracts ContractSource
	offers    OfferWarmer
	window    time.Duration
	timeout   time.Duration
	now       func() time.Time
	log       *logrus.Entry
}

func NewJobs(contracts ContractSource, offers OfferWarmer, window time.Duration, log *logrus.Logger) *Jobs {
	return &Jobs{
		contracts: contracts,
		offers:    offers,
		window:    window,
		timeout:   time.Minute,
		now:       time.Now,
		log:       log.WithField("component", "scheduler"),
	}
}

// SendPaymentReminders logs a reminder for every active contract whose next
// payment falls within the reminder window.
func (j *Jobs) SendPaymentReminders(ctx context.Context) ([]domain.PaymentReminder, error) {
	deadline := j.now().Add(j.window)

	contracts, err := j.contracts.ListContractsDueBefore(ctx, deadline)
	if err != nil {
		j.log.WithError(err).Error("Failed to load contracts due for payment")
		return nil, err
	}

	reminders := make([]domain.PaymentReminder, 0, len(contracts))
	for _, contract := range contracts {
		reminder := domain.PaymentReminder{
			ContractID:      contract.ID,
			BorrowerID:      contract.BorrowerID,
			MonthlyPayment:  contract.MonthlyPayment,
			NextPaymentDate: contract.NextPaymentDate,
		}
		reminders = append(reminders, reminder)

		j.log.WithFields(logrus.Fields{
			"contract_id":       reminder.ContractID,
			"borrower_id":       reminder.BorrowerID,
			"monthly_payment":   reminder.MonthlyPayment.StringFixed(2),
			"next_payment_date": reminder.NextPaymentDate.Format(time.DateOnly),
		}).Info("Payment reminder")
	}

	j.log.WithField("count", len(reminders)).Info("Payment reminder job finished")
	return reminders, nil
}

// WarmOfferCache refreshes the cached offer list
func (j *Jobs) WarmOfferCache(ctx context.Context) error {
	count, err := j.offers.WarmOfferCache(ctx)
	if err != nil {
		j.log.WithError(err).Warn("Offer cache warm-up failed")
		return err
	}

	j.log.WithField("offers", count).Debug("Offer cache warmed")
	return nil
}

// New builds a cron runner that understands six-field specs and runs in the
// configured time zone.
func New(loc *time.Location, log *logrus.Logger) *cron.Cron {
	return cron.New(
		cron.WithSeconds(),
		cron.WithLocation(loc),
		cron.WithLogger(cron.PrintfLogger(log.WithField("component", "cron"))),
	)
}

// Register schedules every job on c. Each run gets its own timeout derived from ctx.
func Register(ctx context.Context, c *cron.Cron, cfg config.SchedulerConfig, jobs *Jobs) error {
	if _, err := c.AddFunc(cfg.ReminderSpec, func() {
		runCtx, cancel := context.WithTimeout(ctx, jobs.timeout)
		defer cancel()
		_, _ = jobs.SendPaymentReminders(runCtx)
	}); err != nil {
		return fmt.Errorf("scheduling payment reminders: %w", err)
	}

	if _, err := c.AddFunc(cfg.CacheWarmSpec, func() {
		runCtx, cancel := context.WithTimeout(ctx, jobs.timeout)
		defer cancel()
		_ = jobs.WarmOfferCache(runCtx)
	}); err != nil {
		return fmt.Errorf("scheduling offer cache warm-up: %w", err)
	}

	return nil
}
