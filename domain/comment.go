package domain

import (
	"context"
	"time"
)

const AnonymousAuthor = "Anonymous"

// Comment is a single entry of a post thread
type Comment struct {
	ID           string
	PostID       string
	AuthorName   string
	AuthorAvatar string // resolved avatar URL, empty if none
	Body         string
	CreatedAt    time.Time
}

// DisplayAuthor returns the author name or a placeholder when it is unknown.
func (c Comment) DisplayAuthor() string {
	if c.AuthorName == "" {
		return AnonymousAuthor
	}
	return c.AuthorName
}

// CommentDraft is the compose box of a comment dialog
type CommentDraft struct {
	PostID string `validate:"notblank"`
	Body   string `validate:"notblank"`
}

// CommentRepository defines the contract of the backend comment endpoints
type CommentRepository interface {
	// FetchThread returns the comments of a post in server order.
	FetchThread(ctx context.Context, postID string) ([]Comment, error)

	// Create posts a comment and returns the server-confirmed object.
	Create(ctx context.Context, postID, body string) (Comment, error)
}

// CommentUsecase drives the single comment dialog of a feed session
type CommentUsecase interface {
	Open(ctx context.Context, post Post) error
	Retry(ctx context.Context) error
	PostComment(ctx context.Context, postID, body string) (Comment, error)
	Close()
	Snapshot() DialogSnapshot
}
