package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/movietalk/feed-client/domain"
)

const (
	KeySession = "movietalk:session:%s"
)

type sessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ domain.Session = (*sessionStore)(nil)

// NewSessionStore persists the bearer token in redis.
// A zero ttl keeps the token until Clear is called.
func NewSessionStore(client *redis.Client, ttl time.Duration) *sessionStore {
	return &sessionStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *sessionStore) key() string {
	return fmt.Sprintf(KeySession, domain.SessionTokenKey)
}

func (s *sessionStore) Token(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key()).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		logrus.Errorf("failed to get session token from redis: %v", err)
		return "", err
	}
	return token, nil
}

func (s *sessionStore) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	return s.client.Set(ctx, s.key(), token, s.ttl).Err()
}

func (s *sessionStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key()).Err()
}
