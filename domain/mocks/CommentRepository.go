package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/movietalk/feed-client/domain"
)

// CommentRepository is a mock type for the CommentRepository type
type CommentRepository struct {
	mock.Mock
}

// FetchThread provides a mock function with given fields: ctx, postID
func (_m *CommentRepository) FetchThread(ctx context.Context, postID string) ([]domain.Comment, error) {
	ret := _m.Called(ctx, postID)
	var r0 []domain.Comment
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Comment)
	}
	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, postID, body
func (_m *CommentRepository) Create(ctx context.Context, postID string, body string) (domain.Comment, error) {
	ret := _m.Called(ctx, postID, body)
	return ret.Get(0).(domain.Comment), ret.Error(1)
}
