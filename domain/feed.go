package domain

import "context"

// FeedCache is the process-local copy of the feed.
// Comment-count keys are always a subset of the post keys.
type FeedCache interface {
	// Replace swaps the whole post list after a successful load.
	// Counts of posts that are gone are dropped, the others are kept.
	Replace(posts []Post)

	// Prepend inserts a newly created post at the top with a zero count.
	Prepend(p Post)

	Post(id string) (Post, bool)
	Posts() []Post
	Len() int

	// PatchLikes rewrites the like set of one post.
	PatchLikes(id string, fn func(likes []string) []string) (Post, bool)

	CommentCount(id string) (int, bool)

	// IncrCommentCount adds one to the cached count of a post.
	IncrCommentCount(id string) (int, bool)

	// CountRevisions snapshots how many local increments every given post has seen.
	CountRevisions(ids []string) map[string]uint64

	// MergeCommentCounts stores freshly fetched counts plus the increments
	// made since revs was taken.
	MergeCommentCounts(counts map[string]int, revs map[string]uint64)
}

// PostView is a post together with the fields derived for the viewer
type PostView struct {
	Post
	ImageURL     string
	LikedByMe    bool
	LikeCount    int
	CommentCount int
}

// FeedView is what a renderer paints
type FeedView struct {
	Scope       Scope
	Viewer      *Viewer
	Posts       []PostView
	Loading     bool
	LoadError   string
	CanRetry    bool
	Draft       PostDraft
	CreateError string
}

type FeedUsecase interface {
	ViewerProvider
	SessionObserver

	// Load resolves the viewer, the post list and the comment counts.
	// It is also the retry action after a failed load.
	Load(ctx context.Context) error

	CreatePost(ctx context.Context, draft PostDraft) (Post, error)

	// Post returns a cached post by id.
	Post(id string) (Post, bool)

	View() FeedView
}
