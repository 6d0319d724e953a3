package account

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/movietalk/feed-client/domain"
	"github.com/movietalk/feed-client/internal/validation"
)

type service struct {
	authRepo  domain.AuthRepository
	session   domain.Session
	observers []domain.SessionObserver
}

var _ domain.AccountUsecase = (*service)(nil)

func NewService(a domain.AuthRepository, s domain.Session, observers ...domain.SessionObserver) *service {
	return &service{
		authRepo:  a,
		session:   s,
		observers: observers,
	}
}

func (s *service) Login(ctx context.Context, c domain.Credentials) error {
	c.Email = strings.TrimSpace(c.Email)
	if err := validation.Struct(c); err != nil {
		return err
	}
	token, err := s.authRepo.Login(ctx, c)
	if err != nil {
		return err
	}
	return s.store(ctx, token)
}

func (s *service) LoginWithGoogle(ctx context.Context, credential string) error {
	if strings.TrimSpace(credential) == "" {
		return &domain.ValidationError{Field: "credential", Message: "credential is required"}
	}
	token, err := s.authRepo.LoginWithGoogle(ctx, credential)
	if err != nil {
		return err
	}
	return s.store(ctx, token)
}

// Register creates the account only; the user logs in afterwards.
func (s *service) Register(ctx context.Context, r domain.Registration) error {
	r.Email = strings.TrimSpace(r.Email)
	if err := validation.Struct(r); err != nil {
		return err
	}
	return s.authRepo.Register(ctx, r)
}

func (s *service) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		logrus.Errorf("failed to clear session: %v", err)
		return err
	}
	s.changed()
	return nil
}

func (s *service) store(ctx context.Context, token string) error {
	if err := s.session.SetToken(ctx, token); err != nil {
		logrus.Errorf("failed to store session token: %v", err)
		return err
	}
	s.changed()
	return nil
}

func (s *service) changed() {
	for _, o := range s.observers {
		o.SessionChanged()
	}
}
