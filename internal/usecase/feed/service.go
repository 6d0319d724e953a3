package feed

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/movietalk/feed-client/domain"
	"github.com/movietalk/feed-client/internal/validation"
)

const (
	LoadFailedMessage   = "Failed to load posts."
	CreateFailedMessage = "Failed to create post"

	DefaultCountConcurrency = 8
)

type Service struct {
	scope       domain.Scope
	postRepo    domain.PostRepository
	commentRepo domain.CommentRepository
	authRepo    domain.AuthRepository
	cache       domain.FeedCache
	images      domain.ImageResolver
	notifier    domain.Notifier
	concurrency int

	group singleflight.Group

	mu        sync.RWMutex
	session   uint64 // bumped on every login and logout
	viewer    *domain.Viewer
	loading   bool
	loadErr   string
	draft     domain.PostDraft
	createErr string
}

var _ domain.FeedUsecase = (*Service)(nil)

// NewService will create a new feed service object
func NewService(
	scope domain.Scope,
	p domain.PostRepository,
	c domain.CommentRepository,
	a domain.AuthRepository,
	fc domain.FeedCache,
	images domain.ImageResolver,
	n domain.Notifier,
	concurrency int,
) *Service {
	if concurrency <= 0 {
		concurrency = DefaultCountConcurrency
	}
	return &Service{
		scope:       scope,
		postRepo:    p,
		commentRepo: c,
		authRepo:    a,
		cache:       fc,
		images:      images,
		notifier:    n,
		concurrency: concurrency,
	}
}

// Load runs viewer, list and count resolution. Concurrent calls share one run.
func (s *Service) Load(ctx context.Context) error {
	_, err, _ := s.group.Do("load", func() (any, error) {
		return nil, s.load(ctx)
	})
	return err
}

func (s *Service) load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	if _, err := s.ViewerID(ctx); err != nil {
		// like state falls back to "not liked by me"
		logrus.Warnf("failed to resolve viewer: %v", err)
	}

	posts, err := s.list(ctx)
	if err != nil {
		logrus.Errorf("failed to load %s posts: %v", s.scope, err)
		msg := domain.UserMessage(err, LoadFailedMessage)
		s.mu.Lock()
		s.loading = false
		s.loadErr = msg
		s.mu.Unlock()
		s.notifier.Send(domain.Notice{Level: domain.NoticeError, Op: "Load", Message: msg, At: time.Now()})
		return err
	}

	s.cache.Replace(posts)
	ids := make([]string, 0, len(posts))
	for _, p := range s.cache.Posts() {
		ids = append(ids, p.ID)
	}
	revs := s.cache.CountRevisions(ids)
	s.cache.MergeCommentCounts(s.fetchCommentCounts(ctx, ids), revs)

	s.mu.Lock()
	s.loading = false
	s.loadErr = ""
	s.mu.Unlock()
	return nil
}

func (s *Service) list(ctx context.Context) ([]domain.Post, error) {
	if s.scope == domain.ScopeMine {
		return s.postRepo.ListMine(ctx)
	}
	return s.postRepo.ListFeed(ctx)
}

// fetchCommentCounts fetches every thread in parallel.
// A failed fetch counts as zero and never aborts the batch.
func (s *Service) fetchCommentCounts(ctx context.Context, ids []string) map[string]int {
	var (
		g   errgroup.Group
		mu  sync.Mutex
		res = make(map[string]int, len(ids))
	)
	g.SetLimit(s.concurrency)

	for _, id := range ids {
		g.Go(func() error {
			n := 0
			thread, err := s.commentRepo.FetchThread(ctx, id)
			if err != nil {
				logrus.Warnf("failed to count comments of post %s: %v", id, err)
			} else {
				n = len(thread)
			}
			mu.Lock()
			res[id] = n
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return res
}

// ViewerID returns the cached viewer id, resolving it once if needed.
func (s *Service) ViewerID(ctx context.Context) (string, error) {
	s.mu.RLock()
	if s.viewer != nil {
		id := s.viewer.ID
		s.mu.RUnlock()
		return id, nil
	}
	session := s.session
	s.mu.RUnlock()

	res, err, _ := s.group.Do("viewer", func() (any, error) {
		v, err := s.authRepo.Viewer(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		// a viewer resolved under the previous session is not cached
		if s.session == session {
			s.viewer = &v
		}
		s.mu.Unlock()
		return v.ID, nil
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

// SessionChanged forgets the viewer; the next Load resolves it again.
// Calls already in flight finish but no longer share their result.
func (s *Service) SessionChanged() {
	s.mu.Lock()
	s.session++
	s.viewer = nil
	s.mu.Unlock()
	s.group.Forget("viewer")
	s.group.Forget("load")
}

func (s *Service) CreatePost(ctx context.Context, draft domain.PostDraft) (domain.Post, error) {
	s.mu.Lock()
	s.draft = draft
	s.createErr = ""
	s.mu.Unlock()

	if err := validation.Struct(draft); err != nil {
		s.failCreate(err)
		return domain.Post{}, err
	}

	post, err := s.postRepo.Create(ctx, draft)
	if err != nil {
		logrus.Errorf("failed to create post: %v", err)
		s.failCreate(err)
		return domain.Post{}, err
	}

	if post.ID == "" {
		// the server did not echo the post back
		if err := s.Load(ctx); err != nil {
			logrus.Warnf("failed to refresh feed after create: %v", err)
		}
	} else {
		s.cache.Prepend(post)
	}

	s.mu.Lock()
	s.draft = domain.PostDraft{}
	s.mu.Unlock()
	return post, nil
}

func (s *Service) failCreate(err error) {
	s.mu.Lock()
	s.createErr = domain.UserMessage(err, CreateFailedMessage)
	s.mu.Unlock()
}

func (s *Service) Post(id string) (domain.Post, bool) {
	return s.cache.Post(id)
}

func (s *Service) View() domain.FeedView {
	s.mu.RLock()
	view := domain.FeedView{
		Scope:       s.scope,
		Loading:     s.loading,
		LoadError:   s.loadErr,
		CanRetry:    s.loadErr != "",
		Draft:       s.draft,
		CreateError: s.createErr,
	}
	viewerID := ""
	if s.viewer != nil {
		v := *s.viewer
		view.Viewer = &v
		viewerID = v.ID
	}
	s.mu.RUnlock()

	posts := s.cache.Posts()
	view.Posts = make([]domain.PostView, 0, len(posts))
	for _, p := range posts {
		count, _ := s.cache.CommentCount(p.ID)
		view.Posts = append(view.Posts, domain.PostView{
			Post:         p,
			ImageURL:     s.images.ResolveImage(p.Image),
			LikedByMe:    p.LikedBy(viewerID),
			LikeCount:    len(p.Likes),
			CommentCount: count,
		})
	}
	return view
}
