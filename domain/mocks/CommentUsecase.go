package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/movietalk/feed-client/domain"
)

// CommentUsecase is a mock type for the CommentUsecase type
type CommentUsecase struct {
	mock.Mock
}

// Open provides a mock function with given fields: ctx, post
func (_m *CommentUsecase) Open(ctx context.Context, post domain.Post) error {
	ret := _m.Called(ctx, post)
	return ret.Error(0)
}

// Retry provides a mock function with given fields: ctx
func (_m *CommentUsecase) Retry(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// PostComment provides a mock function with given fields: ctx, postID, body
func (_m *CommentUsecase) PostComment(ctx context.Context, postID string, body string) (domain.Comment, error) {
	ret := _m.Called(ctx, postID, body)
	return ret.Get(0).(domain.Comment), ret.Error(1)
}

// Close provides a mock function with given fields:
func (_m *CommentUsecase) Close() {
	_m.Called()
}

// Snapshot provides a mock function with given fields:
func (_m *CommentUsecase) Snapshot() domain.DialogSnapshot {
	ret := _m.Called()
	return ret.Get(0).(domain.DialogSnapshot)
}
