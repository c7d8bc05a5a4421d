package reservationRepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"roomie/models"
	"roomie/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CachedReservationRepo decorates a ReservationRepository with a Redis
// cache-aside layer on lookups. Cache entries are keyed by booking number
// only; the full-name ownership check still applies to cached records.
type CachedReservationRepo struct {
	inner  ReservationRepository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedReservationRepo wraps inner with a Redis lookup cache.
func NewCachedReservationRepo(inner ReservationRepository, client *redis.Client, ttl time.Duration) *CachedReservationRepo {
	return &CachedReservationRepo{inner: inner, client: client, ttl: ttl}
}

func (r *CachedReservationRepo) Upsert(ctx context.Context, record models.ReservationRecord) error {
	if err := r.inner.Upsert(ctx, record); err != nil {
		return err
	}
	r.cacheSet(ctx, record)
	return nil
}

func (r *CachedReservationRepo) Lookup(ctx context.Context, bookingNumber, fullName string) (*models.ReservationRecord, error) {
	key := utils.ReservationCachePrefix + bookingNumber
	data, err := r.client.Get(ctx, key).Result()
	if err == nil {
		var record models.ReservationRecord
		if jsonErr := json.Unmarshal([]byte(data), &record); jsonErr == nil {
			if record.FullName != fullName {
				return nil, ErrNotFound
			}
			return &record, nil
		}
		// Corrupt entry, fall through to the store.
		r.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		zap.L().Warn("reservation cache read failed, falling back to store",
			zap.String("bookingNumber", bookingNumber), zap.Error(err))
	}

	record, err := r.inner.Lookup(ctx, bookingNumber, fullName)
	if err != nil {
		return nil, err
	}
	r.cacheSet(ctx, *record)
	return record, nil
}

func (r *CachedReservationRepo) Delete(ctx context.Context, bookingNumber string) error {
	if err := r.inner.Delete(ctx, bookingNumber); err != nil {
		return err
	}
	if err := r.client.Del(ctx, utils.ReservationCachePrefix+bookingNumber).Err(); err != nil {
		zap.L().Warn("failed to invalidate reservation cache entry",
			zap.String("bookingNumber", bookingNumber), zap.Error(err))
	}
	return nil
}

func (r *CachedReservationRepo) cacheSet(ctx context.Context, record models.ReservationRecord) {
	b, err := json.Marshal(record)
	if err != nil {
		return
	}
	key := utils.ReservationCachePrefix + record.BookingNumber
	if err := r.client.Set(ctx, key, b, r.ttl).Err(); err != nil {
		zap.L().Warn("failed to cache reservation",
			zap.String("bookingNumber", record.BookingNumber), zap.Error(err))
	}
}
