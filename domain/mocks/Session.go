package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Session is a mock type for the Session type
type Session struct {
	mock.Mock
}

// Token provides a mock function with given fields: ctx
func (_m *Session) Token(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

// SetToken provides a mock function with given fields: ctx, token
func (_m *Session) SetToken(ctx context.Context, token string) error {
	ret := _m.Called(ctx, token)
	return ret.Error(0)
}

// Clear provides a mock function with given fields: ctx
func (_m *Session) Clear(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}
