package mysql

import (
	"context"
	"errors"
	"net"

	driver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/movietalk/feed-client/domain"
	"github.com/movietalk/feed-client/internal/repository/mysql/model"
)

type sessionStore struct {
	DB *gorm.DB
}

var _ domain.Session = (*sessionStore)(nil)

// NewSessionStore keeps the bearer token in the local_storage table
func NewSessionStore(db *gorm.DB) *sessionStore {
	return &sessionStore{db}
}

// DSN builds the connection string for the local storage database.
func DSN(host, port, user, pass, name string) string {
	cfg := driver.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.DBName = name
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// Migrate creates the local_storage table if needed.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.LocalStorage{})
}

func (m *sessionStore) Token(ctx context.Context) (string, error) {
	var row model.LocalStorage
	err := m.DB.WithContext(ctx).First(&row, "name = ?", domain.SessionTokenKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return row.Value, nil
}

func (m *sessionStore) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return m.Clear(ctx)
	}
	row := model.LocalStorage{
		Name:  domain.SessionTokenKey,
		Value: token,
	}
	return m.DB.WithContext(ctx).Clauses(clause.OnConflict{
		UpdateAll: true,
	}).Create(&row).Error
}

func (m *sessionStore) Clear(ctx context.Context) error {
	return m.DB.WithContext(ctx).
		Where("name = ?", domain.SessionTokenKey).
		Delete(&model.LocalStorage{}).
		Error
}
