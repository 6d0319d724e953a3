package response

import (
	"time"

	"github.com/movietalk/feed-client/domain"
)

const DateTimeFormat = "2006-01-02 15:04:05"

type Post struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Review       string   `json:"review"`
	ImageURL     string   `json:"image_url,omitempty"`
	AuthorID     string   `json:"author_id"`
	Likes        []string `json:"likes"`
	LikedByMe    bool     `json:"liked_by_me"`
	LikeCount    int      `json:"like_count"`
	CommentCount int      `json:"comment_count"`
	CreatedAt    string   `json:"created_at,omitempty"`
}

type Viewer struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
}

type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Review      string `json:"review"`
	ImageName   string `json:"image_name,omitempty"`
}

type Feed struct {
	Scope       string  `json:"scope"`
	Viewer      *Viewer `json:"viewer"`
	Posts       []Post  `json:"posts"`
	Loading     bool    `json:"loading"`
	LoadError   string  `json:"load_error,omitempty"`
	CanRetry    bool    `json:"can_retry"`
	Draft       Draft   `json:"draft"`
	CreateError string  `json:"create_error,omitempty"`
}

// NewPostFromDomain: Domain -> Response
func NewPostFromDomain(p *domain.PostView) Post {
	likes := p.Likes
	if likes == nil {
		likes = []string{}
	}
	return Post{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Review:       p.Review,
		ImageURL:     p.ImageURL,
		AuthorID:     p.AuthorID,
		Likes:        likes,
		LikedByMe:    p.LikedByMe,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		CreatedAt:    formatTime(p.CreatedAt),
	}
}

func NewFeedFromDomain(v *domain.FeedView) Feed {
	posts := make([]Post, len(v.Posts))
	for i := range v.Posts {
		posts[i] = NewPostFromDomain(&v.Posts[i])
	}
	res := Feed{
		Scope:     v.Scope.String(),
		Posts:     posts,
		Loading:   v.Loading,
		LoadError: v.LoadError,
		CanRetry:  v.CanRetry,
		Draft: Draft{
			Title:       v.Draft.Title,
			Description: v.Draft.Description,
			Review:      v.Draft.Review,
		},
		CreateError: v.CreateError,
	}
	if v.Draft.Image != nil {
		res.Draft.ImageName = v.Draft.Image.Filename
	}
	if v.Viewer != nil {
		res.Viewer = &Viewer{
			ID:       v.Viewer.ID,
			FullName: v.Viewer.FullName,
			Email:    v.Viewer.Email,
			Avatar:   v.Viewer.Avatar,
		}
	}
	return res
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateTimeFormat)
}
