package repository

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/movietalk/feed-client/domain"
)

// sessionRepository 协调层, keeps an in-memory copy in front of the persistent store
type sessionRepository struct {
	store     domain.Session
	loadGroup singleflight.Group
	mu        sync.RWMutex
	loaded    bool
	token     string
}

var _ domain.Session = (*sessionRepository)(nil)

func NewSessionRepository(store domain.Session) *sessionRepository {
	return &sessionRepository{
		store: store,
	}
}

// Token reads the store once and serves the cached value afterwards
func (r *sessionRepository) Token(ctx context.Context) (string, error) {
	r.mu.RLock()
	if r.loaded {
		token := r.token
		r.mu.RUnlock()
		return token, nil
	}
	r.mu.RUnlock()

	res, err, _ := r.loadGroup.Do("token", func() (any, error) {
		token, err := r.store.Token(ctx)
		if err != nil {
			return "", err
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		// a SetToken or Clear that landed during the read wins
		if r.loaded {
			return r.token, nil
		}
		r.token = token
		r.loaded = true
		return token, nil
	})
	if err != nil {
		logrus.Warnf("failed to load session token: %v", err)
		return "", err
	}
	return res.(string), nil
}

// SetToken writes through to the store before updating the cached copy
func (r *sessionRepository) SetToken(ctx context.Context, token string) error {
	if err := r.store.SetToken(ctx, token); err != nil {
		return err
	}
	r.mu.Lock()
	r.token = token
	r.loaded = true
	r.mu.Unlock()
	return nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	if err := r.store.Clear(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	r.token = ""
	r.loaded = true
	r.mu.Unlock()
	return nil
}

// TokenExpired reports whether token is a JWT whose exp claim is before now.
// Opaque tokens and tokens without exp never expire on the client side.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.After(exp.Time)
}
