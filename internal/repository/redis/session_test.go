package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	myRedis "github.com/movietalk/feed-client/internal/repository/redis"
)

const tokenKey = "movietalk:session:token"

func TestSessionStoreToken(t *testing.T) {
	ctx := context.Background()

	t.Run("hit", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet(tokenKey).SetVal("abc")

		s := myRedis.NewSessionStore(client, 0)
		tok, err := s.Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, "abc", tok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet(tokenKey).RedisNil()

		s := myRedis.NewSessionStore(client, 0)
		tok, err := s.Token(ctx)
		require.NoError(t, err)
		assert.Empty(t, tok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet(tokenKey).SetErr(errors.New("connection refused"))

		s := myRedis.NewSessionStore(client, 0)
		_, err := s.Token(ctx)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionStoreSetAndClear(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	mock.ExpectSet(tokenKey, "abc", time.Hour).SetVal("OK")
	mock.ExpectDel(tokenKey).SetVal(1)
	mock.ExpectDel(tokenKey).SetVal(0)

	s := myRedis.NewSessionStore(client, time.Hour)
	require.NoError(t, s.SetToken(ctx, "abc"))
	require.NoError(t, s.Clear(ctx))
	// an empty token clears the session
	require.NoError(t, s.SetToken(ctx, ""))
	assert.NoError(t, mock.ExpectationsWereMet())
}
