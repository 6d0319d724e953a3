package domain

import (
	"context"
	"time"
)

type NoticeLevel int8

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarning
	NoticeError
)

func (l NoticeLevel) String() string {
	switch l {
	case NoticeInfo:
		return "INFO"
	case NoticeWarning:
		return "WARNING"
	case NoticeError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Notice is a non-fatal, user-visible notification
type Notice struct {
	Level   NoticeLevel
	Op      string
	PostID  string
	Message string
	At      time.Time
}

type Notifier interface {
	Start(ctx context.Context)

	// Send queues a notice without blocking; it is dropped if the queue is full.
	Send(n Notice)

	// Recent returns the notices still on display, oldest first.
	Recent() []Notice
}
