// Package testutil provides database fixtures for package tests.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/internal/repository"
)

var dbSeq atomic.Int64

// Now is the fixed clock used by fixtures.
var Now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// OpenSQLite returns an isolated in-memory database with the schema applied.
func OpenSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=private&_time_format=sqlite&_pragma=foreign_keys(1)", dbSeq.Add(1))
	db, err := sqlx.Open(repository.SQLiteDriver, dsn)
	require.NoError(t, err)

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, repository.ApplySQLiteSchema(context.Background(), db))
	return db
}

// CreateUser inserts a user with the given points balance. The level is derived from points.
func CreateUser(t *testing.T, db *sqlx.DB, id string, points int64, level int, documentID string) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:         id,
		Email:      id + "@example.com",
		FullName:   "User " + id,
		DocumentID: documentID,
		Points:     points,
		Level:      level,
		CreatedAt:  Now,
		UpdatedAt:  Now,
	}
	require.NoError(t, repository.NewStore(db, nil).Repos().Users.Create(context.Background(), user))
	return user
}

// CreateOffer inserts an offer without running eligibility rules.
func CreateOffer(t *testing.T, db *sqlx.DB, id, lenderID string, amount, rate string, term int) *domain.Offer {
	t.Helper()

	offer := &domain.Offer{
		ID:                 id,
		LenderID:           lenderID,
		Amount:             decimal.RequireFromString(amount),
		MonthlyRatePercent: decimal.RequireFromString(rate),
		TermMonths:         term,
		Description:        "offer " + id,
		CreatedAt:          Now,
	}
	require.NoError(t, repository.NewStore(db, nil).Repos().Offers.Create(context.Background(), offer))
	return offer
}

// CreateReward inserts a catalog entry.
func CreateReward(t *testing.T, db *sqlx.DB, id string, cost int64) *domain.Reward {
	t.Helper()

	reward := &domain.Reward{
		ID:          id,
		Title:       "Reward " + id,
		Description: "test reward",
		PointCost:   cost,
		Category:    "test",
	}
	_, err := db.Exec(`INSERT INTO rewards (id, title, description, point_cost, category) VALUES (?, ?, ?, ?, ?)`,
		reward.ID, reward.Title, reward.Description, reward.PointCost, reward.Category)
	require.NoError(t, err)
	return reward
}

// CountRows returns the number of rows in a table.
func CountRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()

	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}
