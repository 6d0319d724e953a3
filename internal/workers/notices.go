package workers

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/movietalk/feed-client/domain"
)

const (
	DefaultNoticeBuffer = 256
	DefaultNoticeTTL    = 8 * time.Second

	maxShown = 50
)

type noticeWorker struct {
	ch   chan domain.Notice
	ttl  time.Duration
	tick time.Duration

	mu    sync.RWMutex
	shown []domain.Notice
}

var _ domain.Notifier = (*noticeWorker)(nil)

// NewNoticeWorker dispatches non-fatal notices; each stays on display for ttl.
func NewNoticeWorker(buffer int, ttl time.Duration) *noticeWorker {
	if buffer <= 0 {
		buffer = DefaultNoticeBuffer
	}
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &noticeWorker{
		ch:   make(chan domain.Notice, buffer),
		ttl:  ttl,
		tick: min(max(ttl/2, 10*time.Millisecond), time.Second),
	}
}

// Send never blocks the caller
func (w *noticeWorker) Send(n domain.Notice) {
	if n.At.IsZero() {
		n.At = time.Now()
	}
	select {
	case w.ch <- n:
	default:
		logrus.Info("notice channel is full, notice dropped")
	}
}

func (w *noticeWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for {
		select {
		case n := <-w.ch:
			w.show(n)
		case <-ticker.C:
			w.prune(time.Now())
		case <-ctx.Done():
			logrus.Info("shutting down notice worker, draining remaining notices...")
			for {
				select {
				case n := <-w.ch:
					w.show(n)
				default:
					return
				}
			}
		}
	}
}

func (w *noticeWorker) show(n domain.Notice) {
	entry := logrus.WithFields(logrus.Fields{"op": n.Op, "post_id": n.PostID})
	switch n.Level {
	case domain.NoticeError:
		entry.Error(n.Message)
	case domain.NoticeWarning:
		entry.Warn(n.Message)
	default:
		entry.Info(n.Message)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.shown = append(w.shown, n)
	if len(w.shown) > maxShown {
		w.shown = slices.Delete(w.shown, 0, len(w.shown)-maxShown)
	}
}

func (w *noticeWorker) prune(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.shown = slices.DeleteFunc(w.shown, func(n domain.Notice) bool {
		return now.Sub(n.At) >= w.ttl
	})
}

func (w *noticeWorker) Recent() []domain.Notice {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.shown)
}
