package mysql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/movietalk/feed-client/internal/repository/mysql"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(gormMysql.New(gormMysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return gdb, mock
}

func TestSessionStoreToken(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		rows := sqlmock.NewRows([]string{"name", "value", "updated_at"}).
			AddRow("token", "abc", time.Now())
		mock.ExpectQuery("SELECT (.+) FROM `local_storage`").WillReturnRows(rows)

		tok, err := mysql.NewSessionStore(gdb).Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, "abc", tok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not-found", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM `local_storage`").
			WillReturnRows(sqlmock.NewRows([]string{"name", "value", "updated_at"}))

		tok, err := mysql.NewSessionStore(gdb).Token(ctx)
		require.NoError(t, err)
		assert.Empty(t, tok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM `local_storage`").WillReturnError(errors.New("bad connection"))

		_, err := mysql.NewSessionStore(gdb).Token(ctx)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionStoreSetToken(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `local_storage`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := mysql.NewSessionStore(gdb).SetToken(context.Background(), "abc")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionStoreClear(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `local_storage`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := mysql.NewSessionStore(gdb).Clear(context.Background())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDSN(t *testing.T) {
	dsn := mysql.DSN("localhost", "3306", "user", "pass", "movietalk")
	assert.Contains(t, dsn, "user:pass@tcp(localhost:3306)/movietalk")
	assert.Contains(t, dsn, "parseTime=true")
}
