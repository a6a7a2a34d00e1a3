package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Govind-619/quickcart-payments/models"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix   = "quickcart:payment_session:"
	redisIndexKey    = "quickcart:payment_sessions"
	redisMaxAttempts = 5
)

// RedisStore shares sessions between broker instances through Redis. Records
// are JSON values without expiry; a set indexes every session id for List.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects using a redis:// URL and verifies the connection
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewRedisStoreWithClient(client), nil
}

func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// stringGetter is satisfied by both *redis.Client and *redis.Tx
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func sessionKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (*models.PaymentSession, error) {
	return r.get(ctx, r.client, sessionID)
}

func (r *RedisStore) get(ctx context.Context, c stringGetter, sessionID string) (*models.PaymentSession, error) {
	data, err := c.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session models.PaymentSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode payment session %s: %w", sessionID, err)
	}
	return &session, nil
}

func (r *RedisStore) Put(ctx context.Context, session *models.PaymentSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(session.SessionID), data, 0)
		pipe.SAdd(ctx, redisIndexKey, session.SessionID)
		return nil
	})
	return err
}

// Update applies mutate inside a WATCH/MULTI transaction, retrying when another
// writer touched the key first
func (r *RedisStore) Update(ctx context.Context, sessionID string, mutate Mutator) (*models.PaymentSession, error) {
	key := sessionKey(sessionID)
	var updated *models.PaymentSession

	txf := func(tx *redis.Tx) error {
		current, err := r.get(ctx, tx, sessionID)
		if err != nil {
			return err
		}

		next, err := applyMutator(*current, mutate)
		if err != nil {
			return err
		}

		data, err := json.Marshal(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err == nil {
			updated = next
		}
		return err
	}

	for attempt := 0; attempt < redisMaxAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("update payment session %s: too much contention", sessionID)
}

func (r *RedisStore) List(ctx context.Context, filter ListFilter) ([]models.PaymentSession, error) {
	ids, err := r.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.PaymentSession{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = sessionKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	result := make([]models.PaymentSession, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var session models.PaymentSession
		if err := json.Unmarshal([]byte(raw), &session); err != nil {
			return nil, err
		}
		if filter.matches(&session) {
			result = append(result, session)
		}
	}

	sortNewestFirst(result)
	return result, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
