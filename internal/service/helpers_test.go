package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/internal/repository"
	"github.com/segyhp/lending-engine/internal/testutil"
	"github.com/segyhp/lending-engine/pkg/retry"
)

type fixture struct {
	db      *sqlx.DB
	store   *repository.Store
	exec    *retry.Executor
	log     *logrus.Logger
	hook    *logtest.Hook
	delays  []time.Duration
	delayMu sync.Mutex
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	db := testutil.OpenSQLite(t)

	f := &fixture{
		db:    db,
		store: repository.NewStore(db, log),
		log:   log,
		hook:  hook,
	}
	f.exec = retry.NewDefault(log).WithSleeper(func(d time.Duration) {
		f.delayMu.Lock()
		f.delays = append(f.delays, d)
		f.delayMu.Unlock()
	})
	return f
}

func fixedClock() time.Time {
	return testutil.Now
}

// faultGateway decorates a real store so individual repository calls can fail.
type faultGateway struct {
	*repository.Store
	wrap func(r repository.Repos) repository.Repos
	// afterCommit can replace the result of a transaction that already committed.
	afterCommit func() error
}

func (g *faultGateway) Repos() repository.Repos {
	return g.wrap(g.Store.Repos())
}

func (g *faultGateway) WithinTx(ctx context.Context, fn func(r repository.Repos) error) error {
	err := g.Store.WithinTx(ctx, func(r repository.Repos) error {
		return fn(g.wrap(r))
	})
	if err == nil && g.afterCommit != nil {
		return g.afterCommit()
	}
	return err
}

type failingContracts struct {
	repository.ContractRepository
	failures int
	err      error
	calls    int
}

func (f *failingContracts) Create(ctx context.Context, c *domain.Contract) error {
	f.calls++
	if f.calls <= f.failures {
		return f.err
	}
	return f.ContractRepository.Create(ctx, c)
}

type failingUsers struct {
	repository.UserRepository
	lostRaces int
	getErr    error
	calls     int
}

func (f *failingUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.UserRepository.GetByID(ctx, id)
}

func (f *failingUsers) SetPoints(ctx context.Context, id string, expected, points int64, level int) (bool, error) {
	f.calls++
	if f.calls <= f.lostRaces {
		return false, nil
	}
	return f.UserRepository.SetPoints(ctx, id, expected, points, level)
}

func logrusNull() (*logrus.Logger, *logtest.Hook) {
	return logtest.NewNullLogger()
}
