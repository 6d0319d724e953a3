package response

import "github.com/movietalk/feed-client/domain"

type Comment struct {
	ID           string `json:"id"`
	PostID       string `json:"post_id"`
	Author       string `json:"author"`
	AuthorAvatar string `json:"author_avatar,omitempty"`
	Body         string `json:"body"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// Dialog 评论弹窗
type Dialog struct {
	Open      bool      `json:"open"`
	PostID    string    `json:"post_id,omitempty"`
	Title     string    `json:"title,omitempty"`
	Loading   bool      `json:"loading"`
	Thread    []Comment `json:"thread"`
	LoadError string    `json:"load_error,omitempty"`
	CanRetry  bool      `json:"can_retry"`
	Draft     string    `json:"draft"`
	Posting   bool      `json:"posting"`
	PostError string    `json:"post_error,omitempty"`
}

func NewCommentFromDomain(c *domain.Comment) Comment {
	return Comment{
		ID:           c.ID,
		PostID:       c.PostID,
		Author:       c.DisplayAuthor(),
		AuthorAvatar: c.AuthorAvatar,
		Body:         c.Body,
		CreatedAt:    formatTime(c.CreatedAt),
	}
}

func NewDialogFromDomain(s *domain.DialogSnapshot) Dialog {
	thread := make([]Comment, len(s.Thread))
	for i := range s.Thread {
		thread[i] = NewCommentFromDomain(&s.Thread[i])
	}
	res := Dialog{
		Loading:   s.Loading,
		Thread:    thread,
		LoadError: s.LoadError,
		CanRetry:  s.CanRetry,
		Draft:     s.Draft,
		Posting:   s.Posting,
		PostError: s.PostError,
	}
	if open, ok := s.State.(domain.DialogOpen); ok {
		res.Open = true
		res.PostID = open.PostID
		res.Title = open.Title
	}
	return res
}
