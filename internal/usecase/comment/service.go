package comment

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/movietalk/feed-client/domain"
	"github.com/movietalk/feed-client/internal/validation"
)

const (
	LoadFailedMessage = "Failed to load comments."
	PostFailedMessage = "Failed to add comment"
)

// service owns the single comment dialog.
// gen is bumped on every open, retry and close; a fetch whose generation is
// no longer current is dropped when it resolves.
type service struct {
	commentRepo domain.CommentRepository
	cache       domain.FeedCache

	mu      sync.Mutex
	gen     uint64
	state   domain.DialogState
	loading bool
	thread  []domain.Comment
	loadErr string
	draft   string
	posting bool
	postErr string
}

var _ domain.CommentUsecase = (*service)(nil)

func NewService(commentRepo domain.CommentRepository, cache domain.FeedCache) *service {
	return &service{
		commentRepo: commentRepo,
		cache:       cache,
		state:       domain.DialogClosed{},
	}
}

// Open replaces any open dialog with one for post and loads its thread.
// It blocks until the fetch resolves; the result is discarded if the dialog
// moved on in the meantime.
func (s *service) Open(ctx context.Context, post domain.Post) error {
	if post.ID == "" {
		return domain.ErrBadParamInput
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state = domain.DialogOpen{PostID: post.ID, Title: post.Title}
	s.reset()
	s.loading = true
	s.mu.Unlock()

	return s.load(ctx, gen, post.ID)
}

func (s *service) Retry(ctx context.Context) error {
	s.mu.Lock()
	postID, ok := domain.OpenPostID(s.state)
	if !ok {
		s.mu.Unlock()
		return domain.ErrNoDialog
	}
	s.gen++
	gen := s.gen
	s.thread = nil
	s.loadErr = ""
	s.loading = true
	s.mu.Unlock()

	return s.load(ctx, gen, postID)
}

func (s *service) load(ctx context.Context, gen uint64, postID string) error {
	thread, err := s.commentRepo.FetchThread(ctx, postID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		logrus.Debugf("discarding stale thread of post %s", postID)
		return nil
	}

	s.loading = false
	if err != nil {
		logrus.Errorf("failed to load thread of post %s: %v", postID, err)
		s.thread = []domain.Comment{}
		s.loadErr = LoadFailedMessage
		return err
	}
	s.thread = thread
	return nil
}

// PostComment sends body for postID. It does not need the dialog to be open;
// when it is open for postID, the confirmed comment is appended to its thread.
func (s *service) PostComment(ctx context.Context, postID, body string) (domain.Comment, error) {
	s.mu.Lock()
	active := s.isOpenFor(postID)
	if active {
		s.draft = body
		s.postErr = ""
	}
	s.mu.Unlock()

	if err := validation.Struct(domain.CommentDraft{PostID: postID, Body: body}); err != nil {
		s.failPost(postID, err)
		return domain.Comment{}, err
	}

	if active {
		s.mu.Lock()
		s.posting = true
		s.mu.Unlock()
	}

	c, err := s.commentRepo.Create(ctx, postID, strings.TrimSpace(body))
	if err != nil {
		logrus.Errorf("failed to post comment on %s: %v", postID, err)
		s.failPost(postID, err)
		return domain.Comment{}, err
	}

	if _, ok := s.cache.IncrCommentCount(postID); !ok {
		logrus.Warnf("comment posted on %s which is not in the feed", postID)
	}

	s.mu.Lock()
	if s.isOpenFor(postID) {
		s.thread = append(s.thread, c)
		s.draft = ""
		s.posting = false
		s.postErr = ""
	}
	s.mu.Unlock()
	return c, nil
}

func (s *service) failPost(postID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isOpenFor(postID) {
		s.posting = false
		s.postErr = domain.UserMessage(err, PostFailedMessage)
	}
}

func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state = domain.DialogClosed{}
	s.reset()
}

func (s *service) Snapshot() domain.DialogSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, open := domain.OpenPostID(s.state)
	return domain.DialogSnapshot{
		State:     s.state,
		Loading:   s.loading,
		Thread:    slices.Clone(s.thread),
		LoadError: s.loadErr,
		CanRetry:  open && s.loadErr != "",
		Draft:     s.draft,
		Posting:   s.posting,
		PostError: s.postErr,
	}
}

// caller holds mu
func (s *service) isOpenFor(postID string) bool {
	id, ok := domain.OpenPostID(s.state)
	return ok && id == postID
}

// caller holds mu
func (s *service) reset() {
	s.loading = false
	s.thread = nil
	s.loadErr = ""
	s.draft = ""
	s.posting = false
	s.postErr = ""
}
