package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/movietalk/feed-client/domain"
)

// PostRepository is a mock type for the PostRepository type
type PostRepository struct {
	mock.Mock
}

func (_m *PostRepository) posts(ret mock.Arguments) ([]domain.Post, error) {
	var r0 []domain.Post
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Post)
	}
	return r0, ret.Error(1)
}

// ListFeed provides a mock function with given fields: ctx
func (_m *PostRepository) ListFeed(ctx context.Context) ([]domain.Post, error) {
	return _m.posts(_m.Called(ctx))
}

// ListMine provides a mock function with given fields: ctx
func (_m *PostRepository) ListMine(ctx context.Context) ([]domain.Post, error) {
	return _m.posts(_m.Called(ctx))
}

// Create provides a mock function with given fields: ctx, draft
func (_m *PostRepository) Create(ctx context.Context, draft domain.PostDraft) (domain.Post, error) {
	ret := _m.Called(ctx, draft)
	return ret.Get(0).(domain.Post), ret.Error(1)
}

// ToggleLike provides a mock function with given fields: ctx, postID
func (_m *PostRepository) ToggleLike(ctx context.Context, postID string) (domain.LikeOutcome, error) {
	ret := _m.Called(ctx, postID)
	return ret.Get(0).(domain.LikeOutcome), ret.Error(1)
}
