package domain

import (
	"context"
	"slices"
	"time"
)

// Post is representing a movie post as served by the backend
type Post struct {
	ID          string    // Server-assigned identifier
	Title       string    // Movie title
	Description string    // Short description
	Review      string    // Author review text
	Image       string    // Image reference (root-relative path or absolute URL), empty if none
	AuthorID    string    // Author user id
	Likes       []string  // Liker user ids, no duplicates
	CreatedAt   time.Time // Creation timestamp, zero if the server omits it
}

// LikedBy reports whether userID is in the post's like set.
func (p Post) LikedBy(userID string) bool {
	if userID == "" {
		return false
	}
	return slices.Contains(p.Likes, userID)
}

// Clone returns a copy of p that shares no memory with it.
func (p Post) Clone() Post {
	p.Likes = slices.Clone(p.Likes)
	return p
}

// AddLiker appends userID to likes unless it is already present.
func AddLiker(likes []string, userID string) []string {
	if slices.Contains(likes, userID) {
		return likes
	}
	return append(likes, userID)
}

// RemoveLiker drops every occurrence of userID from likes.
func RemoveLiker(likes []string, userID string) []string {
	return slices.DeleteFunc(likes, func(id string) bool { return id == userID })
}

// DedupeLikes keeps the first occurrence of every user id.
func DedupeLikes(likes []string) []string {
	seen := make(map[string]struct{}, len(likes))
	res := make([]string, 0, len(likes))
	for _, id := range likes {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}

// ImageUpload is an image attached to a new post
type ImageUpload struct {
	Filename string `validate:"notblank"`
	Content  []byte `validate:"required"`
}

// PostDraft is the compose form of a new post
type PostDraft struct {
	Title       string       `validate:"notblank"`
	Description string       `validate:"notblank"`
	Review      string       `validate:"notblank"`
	Image       *ImageUpload `validate:"omitempty"`
}

// Scope selects which post list a feed shows
type Scope int8

const (
	ScopeFeed Scope = iota
	ScopeMine
)

func (s Scope) String() string {
	switch s {
	case ScopeFeed:
		return "FEED"
	case ScopeMine:
		return "MINE"
	default:
		return "UNKNOWN"
	}
}

// PostRepository defines the contract of the backend post endpoints
type PostRepository interface {
	// ListFeed returns every post in server order.
	ListFeed(ctx context.Context) ([]Post, error)

	// ListMine returns the posts authored by the viewer, in server order.
	ListMine(ctx context.Context) ([]Post, error)

	// Create publishes a new post.
	// The returned post may carry an empty ID if the server does not echo it back.
	Create(ctx context.Context, draft PostDraft) (Post, error)

	// ToggleLike flips the viewer's like on a post; the server decides the outcome.
	ToggleLike(ctx context.Context, postID string) (LikeOutcome, error)
}

// ImageResolver turns an image reference into a displayable URL
type ImageResolver interface {
	ResolveImage(ref string) string
}
