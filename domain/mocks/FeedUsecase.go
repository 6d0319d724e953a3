package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/movietalk/feed-client/domain"
)

// FeedUsecase is a mock type for the FeedUsecase type
type FeedUsecase struct {
	mock.Mock
}

// ViewerID provides a mock function with given fields: ctx
func (_m *FeedUsecase) ViewerID(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

// SessionChanged provides a mock function with given fields:
func (_m *FeedUsecase) SessionChanged() {
	_m.Called()
}

// Load provides a mock function with given fields: ctx
func (_m *FeedUsecase) Load(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// CreatePost provides a mock function with given fields: ctx, draft
func (_m *FeedUsecase) CreatePost(ctx context.Context, draft domain.PostDraft) (domain.Post, error) {
	ret := _m.Called(ctx, draft)
	return ret.Get(0).(domain.Post), ret.Error(1)
}

// Post provides a mock function with given fields: id
func (_m *FeedUsecase) Post(id string) (domain.Post, bool) {
	ret := _m.Called(id)
	return ret.Get(0).(domain.Post), ret.Bool(1)
}

// View provides a mock function with given fields:
func (_m *FeedUsecase) View() domain.FeedView {
	ret := _m.Called()
	return ret.Get(0).(domain.FeedView)
}
