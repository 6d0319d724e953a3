package domain

import "context"

// LikeOutcome is the server's verdict on a toggle-like request
type LikeOutcome int8

const (
	Liked   LikeOutcome = 1
	Unliked LikeOutcome = -1
)

func (l LikeOutcome) String() string {
	switch l {
	case Liked:
		return "LIKED"
	case Unliked:
		return "UNLIKED"
	default:
		return "UNKNOWN"
	}
}

// Apply returns likes after the outcome is applied for userID.
func (l LikeOutcome) Apply(likes []string, userID string) []string {
	switch l {
	case Liked:
		return AddLiker(likes, userID)
	case Unliked:
		return RemoveLiker(likes, userID)
	default:
		return likes
	}
}

type LikeUsecase interface {
	// Toggle sends a toggle request for postID and patches the cached like set
	// with the server's verdict. The cache is untouched on failure.
	Toggle(ctx context.Context, postID string) (LikeOutcome, error)
}
