package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/lending-engine/internal/domain"
	apperrors "github.com/segyhp/lending-engine/pkg/errors"
)

func TestOpenRedis_Success(t *testing.T) {
	s := miniredis.RunT(t)

	c, err := OpenRedis(s.Addr(), "", 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.Equal(t, 2, c.Options().DB)
}

func TestOpenRedis_Failure(t *testing.T) {
	_, err := OpenRedis("not-a-real-host:6379", "", 0)
	assert.Error(t, err)
}

func newCache(t *testing.T) (*OfferCache, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	c, err := OpenRedis(s.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return NewOfferCache(c, time.Minute), s
}

func TestOfferCache_RoundTrip(t *testing.T) {
	cache, s := newCache(t)
	ctx := context.Background()

	_, hit, err := cache.GetOffers(ctx)
	require.NoError(t, err)
	assert.False(t, hit)

	offers := []*domain.Offer{{
		ID:                 "offer-1",
		LenderID:           "lender-1",
		Amount:             decimal.RequireFromString("1500.75"),
		MonthlyRatePercent: decimal.RequireFromString("2.5"),
		TermMonths:         12,
		CreatedAt:          time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}}
	require.NoError(t, cache.SetOffers(ctx, offers))
	assert.Equal(t, time.Minute, s.TTL(offerListKey))

	cached, hit, err := cache.GetOffers(ctx)
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, cached, 1)
	assert.Equal(t, "offer-1", cached[0].ID)
	assert.True(t, cached[0].Amount.Equal(offers[0].Amount))

	require.NoError(t, cache.Invalidate(ctx))
	_, hit, err = cache.GetOffers(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestOfferCache_EmptyListIsAHit(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetOffers(ctx, nil))

	cached, hit, err := cache.GetOffers(ctx)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Empty(t, cached)
}

func TestOfferCache_CorruptEntry(t *testing.T) {
	cache, s := newCache(t)
	require.NoError(t, s.Set(offerListKey, "{not json"))

	_, hit, err := cache.GetOffers(context.Background())
	assert.False(t, hit)
	assert.Equal(t, apperrors.KindServer, apperrors.KindOf(err))
}

func TestOfferCache_ServerDown(t *testing.T) {
	cache, s := newCache(t)
	s.Close()

	_, _, err := cache.GetOffers(context.Background())
	assert.Error(t, err)
}
