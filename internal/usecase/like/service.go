package like

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/movietalk/feed-client/domain"
)

type Service struct {
	postRepo domain.PostRepository
	cache    domain.FeedCache
	viewer   domain.ViewerProvider
	notifier domain.Notifier
}

var _ domain.LikeUsecase = (*Service)(nil)

// NewService will create a new like toggle service object
func NewService(p domain.PostRepository, c domain.FeedCache, v domain.ViewerProvider, n domain.Notifier) *Service {
	return &Service{
		postRepo: p,
		cache:    c,
		viewer:   v,
		notifier: n,
	}
}

// Toggle applies the server's verdict as soon as it arrives, so concurrent
// toggles on one post resolve in response order (last response wins).
func (s *Service) Toggle(ctx context.Context, postID string) (domain.LikeOutcome, error) {
	if _, ok := s.cache.Post(postID); !ok {
		return 0, domain.ErrNotFound
	}

	viewerID, err := s.viewer.ViewerID(ctx)
	if err != nil || viewerID == "" {
		logrus.Warnf("toggle like on %s without a viewer: %v", postID, err)
		authErr := &domain.AuthError{Message: "please log in to like posts", Err: err}
		s.notify(postID, authErr)
		return 0, authErr
	}

	outcome, err := s.postRepo.ToggleLike(ctx, postID)
	if err != nil {
		logrus.Errorf("failed to toggle like on %s: %v", postID, err)
		s.notify(postID, err)
		return 0, err
	}

	if _, ok := s.cache.PatchLikes(postID, func(likes []string) []string {
		return outcome.Apply(likes, viewerID)
	}); !ok {
		logrus.Warnf("post %s left the feed before its like resolved", postID)
	}
	return outcome, nil
}

func (s *Service) notify(postID string, err error) {
	s.notifier.Send(domain.Notice{
		Level:   domain.NoticeWarning,
		Op:      "ToggleLike",
		PostID:  postID,
		Message: domain.UserMessage(err, "Failed to update like"),
		At:      time.Now(),
	})
}
