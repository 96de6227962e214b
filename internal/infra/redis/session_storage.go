// Package redis stores catalog server sessions in Redis.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// defaultTimeout bounds every Redis call; fiber.Storage has no context parameter.
const defaultTimeout = 3 * time.Second

// SessionStorage implements fiber.Storage on Redis so that sessions survive
// server restarts and can be shared between server instances.
type SessionStorage struct {
	client    *redis.Client
	logger    *zap.Logger
	keyPrefix string
	timeout   time.Duration
}

var _ fiber.Storage = (*SessionStorage)(nil)

// NewSessionStorage creates a session storage.
// keyPrefix namespaces all keys so one Redis can serve several servers.
func NewSessionStorage(client *redis.Client, logger *zap.Logger, keyPrefix string) *SessionStorage {
	return &SessionStorage{
		client:    client,
		logger:    logger,
		keyPrefix: keyPrefix,
		timeout:   defaultTimeout,
	}
}

// Get retrieves a value by key. Returns nil if the key doesn't exist.
func (s *SessionStorage) Get(key string) ([]byte, error) {
	ctx, cancel := s.context()
	defer cancel()

	data, err := s.client.Get(ctx, s.buildKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("session get failed",
			zap.String("key", key),
			zap.Error(err),
		)

		return nil, err
	}

	return data, nil
}

// Set stores a value. A zero exp keeps the key until it is deleted.
func (s *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := s.context()
	defer cancel()

	if err := s.client.Set(ctx, s.buildKey(key), val, exp).Err(); err != nil {
		s.logger.Error("session set failed",
			zap.String("key", key),
			zap.Int("bytes", len(val)),
			zap.Duration("ttl", exp),
			zap.Error(err),
		)

		return err
	}

	s.logger.Debug("session stored",
		zap.String("key", key),
		zap.Int("bytes", len(val)),
		zap.Duration("ttl", exp),
	)

	return nil
}

// Delete removes a value by key. Deleting a missing key is not an error.
func (s *SessionStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := s.context()
	defer cancel()

	if err := s.client.Del(ctx, s.buildKey(key)).Err(); err != nil {
		s.logger.Error("session delete failed",
			zap.String("key", key),
			zap.Error(err),
		)

		return err
	}

	return nil
}

// Reset removes every session under the key prefix.
// Uses SCAN to find keys, which does not block the server.
func (s *SessionStorage) Reset() error {
	ctx, cancel := s.context()
	defer cancel()

	pattern := s.keyPrefix + ":*"
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.logger.Error("session reset scan failed",
			zap.String("pattern", pattern),
			zap.Error(err),
		)

		return err
	}

	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Error("session reset delete failed",
			zap.Int("key_count", len(keys)),
			zap.Error(err),
		)

		return err
	}

	s.logger.Info("sessions reset", zap.Int("key_count", len(keys)))

	return nil
}

// Close closes the Redis client.
func (s *SessionStorage) Close() error {
	return s.client.Close()
}

func (s *SessionStorage) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// buildKey creates a fully-qualified key by prefixing with the configured keyPrefix.
func (s *SessionStorage) buildKey(key string) string {
	return s.keyPrefix + ":" + key
}
