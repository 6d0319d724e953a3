package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/movietalk/feed-client/domain/mocks"
	"github.com/movietalk/feed-client/internal/repository"
)

func TestSessionRepositoryCachesToken(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.Session)
	store.On("Token", ctx).Return("abc", nil).Once()

	r := repository.NewSessionRepository(store)
	for range 3 {
		tok, err := r.Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, "abc", tok)
	}
	store.AssertExpectations(t)
}

func TestSessionRepositoryLoadError(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.Session)
	store.On("Token", ctx).Return("", errors.New("unreachable")).Once()
	store.On("Token", ctx).Return("abc", nil).Once()

	r := repository.NewSessionRepository(store)
	_, err := r.Token(ctx)
	assert.Error(t, err)

	// a failed load is retried on the next read
	tok, err := r.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)
	store.AssertExpectations(t)
}

func TestSessionRepositoryWriteThrough(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.Session)
	store.On("SetToken", ctx, "new").Return(nil).Once()
	store.On("Clear", ctx).Return(nil).Once()

	r := repository.NewSessionRepository(store)
	require.NoError(t, r.SetToken(ctx, "new"))
	tok, err := r.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", tok)

	require.NoError(t, r.Clear(ctx))
	tok, err = r.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
	store.AssertExpectations(t)
}

func TestSessionRepositoryStoreFailureKeepsCache(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.Session)
	store.On("SetToken", ctx, "first").Return(nil).Once()
	store.On("SetToken", ctx, "second").Return(errors.New("disk full")).Once()

	r := repository.NewSessionRepository(store)
	require.NoError(t, r.SetToken(ctx, "first"))
	assert.Error(t, r.SetToken(ctx, "second"))

	tok, err := r.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", tok)
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return tok
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	assert.False(t, repository.TokenExpired("opaque-token", now))
	assert.False(t, repository.TokenExpired(signed(t, jwt.MapClaims{"sub": "u1"}), now))
	assert.False(t, repository.TokenExpired(signed(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}), now))
	assert.True(t, repository.TokenExpired(signed(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()}), now))
}

func TestSessionRepositoryWriteDuringFirstRead(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.Session)

	started := make(chan struct{})
	release := make(chan struct{})
	store.On("Token", ctx).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return("", nil).Once()
	store.On("SetToken", ctx, "fresh").Return(nil).Once()

	r := repository.NewSessionRepository(store)
	done := make(chan string)
	go func() {
		tok, _ := r.Token(ctx)
		done <- tok
	}()

	<-started
	require.NoError(t, r.SetToken(ctx, "fresh"))
	close(release)
	assert.Equal(t, "fresh", <-done)

	tok, err := r.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
	store.AssertExpectations(t)
}

func TestSessionRepositoryClearDuringFirstRead(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.Session)

	started := make(chan struct{})
	release := make(chan struct{})
	store.On("Token", ctx).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return("stale", nil).Once()
	store.On("Clear", ctx).Return(nil).Once()

	r := repository.NewSessionRepository(store)
	done := make(chan struct{})
	go func() {
		_, _ = r.Token(ctx)
		close(done)
	}()

	<-started
	require.NoError(t, r.Clear(ctx))
	close(release)
	<-done

	tok, err := r.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
	store.AssertExpectations(t)
}
