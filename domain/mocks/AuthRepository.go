package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/movietalk/feed-client/domain"
)

// AuthRepository is a mock type for the AuthRepository type
type AuthRepository struct {
	mock.Mock
}

// Viewer provides a mock function with given fields: ctx
func (_m *AuthRepository) Viewer(ctx context.Context) (domain.Viewer, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(domain.Viewer), ret.Error(1)
}

// Login provides a mock function with given fields: ctx, c
func (_m *AuthRepository) Login(ctx context.Context, c domain.Credentials) (string, error) {
	ret := _m.Called(ctx, c)
	return ret.String(0), ret.Error(1)
}

// LoginWithGoogle provides a mock function with given fields: ctx, credential
func (_m *AuthRepository) LoginWithGoogle(ctx context.Context, credential string) (string, error) {
	ret := _m.Called(ctx, credential)
	return ret.String(0), ret.Error(1)
}

// Register provides a mock function with given fields: ctx, r
func (_m *AuthRepository) Register(ctx context.Context, r domain.Registration) error {
	ret := _m.Called(ctx, r)
	return ret.Error(0)
}
