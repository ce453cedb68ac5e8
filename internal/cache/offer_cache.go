package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/segyhp/lending-engine/internal/domain"
	apperrors "github.com/segyhp/lending-engine/pkg/errors"
)

const offerListKey = "lending:offers:all"

// OfferCache stores the public offer list in Redis as JSON.
type OfferCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewOfferCache(rdb *redis.Client, ttl time.Duration) *OfferCache {
	return &OfferCache{rdb: rdb, ttl: ttl}
}

// GetOffers returns the cached list. The boolean is false on a cache miss.
func (c *OfferCache) GetOffers(ctx context.Context) ([]*domain.Offer, bool, error) {
	raw, err := c.rdb.Get(ctx, offerListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.WrapCacheError(err)
	}

	var offers []*domain.Offer
	if err := json.Unmarshal(raw, &offers); err != nil {
		return nil, false, apperrors.WrapCacheError(err)
	}
	return offers, true, nil
}

func (c *OfferCache) SetOffers(ctx context.Context, offers []*domain.Offer) error {
	if offers == nil {
		offers = []*domain.Offer{}
	}
	raw, err := json.Marshal(offers)
	if err != nil {
		return apperrors.WrapCacheError(err)
	}
	if err := c.rdb.Set(ctx, offerListKey, raw, c.ttl).Err(); err != nil {
		return apperrors.WrapCacheError(err)
	}
	return nil
}

// Invalidate drops the cached list so the next read goes to the database.
func (c *OfferCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, offerListKey).Err(); err != nil {
		return apperrors.WrapCacheError(err)
	}
	return nil
}
