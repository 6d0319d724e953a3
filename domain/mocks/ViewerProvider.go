package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// ViewerProvider is a mock type for the ViewerProvider type
type ViewerProvider struct {
	mock.Mock
}

// ViewerID provides a mock function with given fields: ctx
func (_m *ViewerProvider) ViewerID(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)
	return ret.String(0), ret.Error(1)
}
