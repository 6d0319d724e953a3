package response

import "github.com/movietalk/feed-client/domain"

type Notice struct {
	Level   string `json:"level"`
	Op      string `json:"op"`
	PostID  string `json:"post_id,omitempty"`
	Message string `json:"message"`
	At      string `json:"at"`
}

func NewNoticesFromDomain(list []domain.Notice) []Notice {
	res := make([]Notice, len(list))
	for i, n := range list {
		res[i] = Notice{
			Level:   n.Level.String(),
			Op:      n.Op,
			PostID:  n.PostID,
			Message: n.Message,
			At:      formatTime(n.At),
		}
	}
	return res
}
