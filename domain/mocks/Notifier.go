package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/movietalk/feed-client/domain"
)

// Notifier is a mock type for the Notifier type
type Notifier struct {
	mock.Mock
}

// Start provides a mock function with given fields: ctx
func (_m *Notifier) Start(ctx context.Context) {
	_m.Called(ctx)
}

// Send provides a mock function with given fields: n
func (_m *Notifier) Send(n domain.Notice) {
	_m.Called(n)
}

// Recent provides a mock function with given fields:
func (_m *Notifier) Recent() []domain.Notice {
	ret := _m.Called()
	var r0 []domain.Notice
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Notice)
	}
	return r0
}
