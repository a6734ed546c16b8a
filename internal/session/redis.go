package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zinal-app/apiserver/config"
	"github.com/zinal-app/apiserver/types"
)

// RedisStore keeps sessions in Redis with a fixed TTL. Every mutation
// rewrites the value with a full TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Create(ctx context.Context, userID int64, isAdmin bool) (types.Session, error) {
	sess := types.Session{
		ID:      newID(),
		UserID:  userID,
		IsAdmin: isAdmin,
	}
	if err := s.write(ctx, sess); err != nil {
		return types.Session{}, err
	}
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (types.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return types.Session{}, ErrNotFound
		}
		return types.Session{}, err
	}

	var sess types.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return types.Session{}, err
	}
	return sess, nil
}

func (s *RedisStore) SetAnalysisStartedAt(ctx context.Context, id string, startedAt int64) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	sess.AnalysisStartedAt = startedAt
	return s.write(ctx, sess)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

// Close releases the underlying Redis connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) write(ctx context.Context, sess types.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err()
}

func sessionKey(id string) string {
	return "session:" + id
}
