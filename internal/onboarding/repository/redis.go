package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sst_portal_backend/internal/onboarding/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "sst:session:"
	maxUpdateRetries = 10
)

// Redis stores sessions as JSON documents with a sliding TTL. Updates use
// optimistic locking (WATCH/MULTI) so concurrent API and worker processes
// never interleave transitions on the same session.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed session store.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

func (r *Redis) Create(ctx context.Context, s *domain.Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.client.Set(ctx, sessionKey(s.ID), payload, r.ttl).Err()
}

func (r *Redis) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return r.read(ctx, r.client, id)
}

func (r *Redis) Update(ctx context.Context, id uuid.UUID, fn MutateFunc) (*domain.Session, error) {
	key := sessionKey(id)
	var updated *domain.Session

	txf := func(tx *redis.Tx) error {
		current, err := r.read(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(current); err != nil {
			return err
		}
		payload, err := json.Marshal(current)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		if err == nil {
			updated = current
		}
		return err
	}

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, fmt.Errorf("update session %s: too much contention", id)
}

func (r *Redis) Delete(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, sessionKey(id)).Err()
}

func (r *Redis) read(ctx context.Context, c redis.Cmdable, id uuid.UUID) (*domain.Session, error) {
	raw, err := c.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var s domain.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}
