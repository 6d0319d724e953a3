package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/movietalk/feed-client/domain"
)

// AccountUsecase is a mock type for the AccountUsecase type
type AccountUsecase struct {
	mock.Mock
}

// Login provides a mock function with given fields: ctx, c
func (_m *AccountUsecase) Login(ctx context.Context, c domain.Credentials) error {
	ret := _m.Called(ctx, c)
	return ret.Error(0)
}

// LoginWithGoogle provides a mock function with given fields: ctx, credential
func (_m *AccountUsecase) LoginWithGoogle(ctx context.Context, credential string) error {
	ret := _m.Called(ctx, credential)
	return ret.Error(0)
}

// Register provides a mock function with given fields: ctx, r
func (_m *AccountUsecase) Register(ctx context.Context, r domain.Registration) error {
	ret := _m.Called(ctx, r)
	return ret.Error(0)
}

// Logout provides a mock function with given fields: ctx
func (_m *AccountUsecase) Logout(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}
