package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/movietalk/feed-client/domain"
)

// LikeUsecase is a mock type for the LikeUsecase type
type LikeUsecase struct {
	mock.Mock
}

// Toggle provides a mock function with given fields: ctx, postID
func (_m *LikeUsecase) Toggle(ctx context.Context, postID string) (domain.LikeOutcome, error) {
	ret := _m.Called(ctx, postID)
	return ret.Get(0).(domain.LikeOutcome), ret.Error(1)
}
