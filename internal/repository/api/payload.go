package api

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/movietalk/feed-client/domain"
)

// userRef is a user reference that the backend sends either as a plain
// string or as a populated user object.
type userRef struct {
	ID     string
	Name   string
	Avatar string
	raw    string
}

func (u *userRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &u.raw)
	}

	var obj struct {
		UID            string `json:"_id"`
		ID             string `json:"id"`
		FullName       string `json:"fullName"`
		Name           string `json:"name"`
		Username       string `json:"username"`
		ProfilePicture string `json:"profilePicture"`
		Avatar         string `json:"avatar"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	u.ID = firstNonEmpty(obj.UID, obj.ID)
	u.Name = firstNonEmpty(obj.FullName, obj.Name, obj.Username)
	u.Avatar = firstNonEmpty(obj.ProfilePicture, obj.Avatar)
	return nil
}

func (u *userRef) id() string {
	if u == nil {
		return ""
	}
	return firstNonEmpty(u.ID, u.raw)
}

func (u *userRef) name() string {
	if u == nil {
		return ""
	}
	return firstNonEmpty(u.Name, u.raw)
}

type postPayload struct {
	UID         string    `json:"_id"`
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Review      string    `json:"review"`
	Image       string    `json:"image"`
	Sender      *userRef  `json:"sender"`
	Author      *userRef  `json:"author"`
	Likes       []userRef `json:"likes"`
	CreatedAt   timestamp `json:"createdAt"`
}

func (p *postPayload) ToDomain() domain.Post {
	likes := make([]string, 0, len(p.Likes))
	for i := range p.Likes {
		if id := p.Likes[i].id(); id != "" {
			likes = append(likes, id)
		}
	}
	return domain.Post{
		ID:          firstNonEmpty(p.UID, p.ID),
		Title:       p.Title,
		Description: p.Description,
		Review:      p.Review,
		Image:       p.Image,
		AuthorID:    firstNonEmpty(p.Sender.id(), p.Author.id()),
		Likes:       domain.DedupeLikes(likes),
		CreatedAt:   time.Time(p.CreatedAt),
	}
}

// commentPayload accepts both the sender/comment and the author/content shape
type commentPayload struct {
	UID          string    `json:"_id"`
	ID           string    `json:"id"`
	PostID       string    `json:"postId"`
	Sender       *userRef  `json:"sender"`
	SenderAvatar string    `json:"senderAvatar"`
	Author       *userRef  `json:"author"`
	Comment      string    `json:"comment"`
	Content      string    `json:"content"`
	CreatedAt    timestamp `json:"createdAt"`
}

func (c *commentPayload) ToDomain(postID string, resolve func(string) string) domain.Comment {
	avatar := c.SenderAvatar
	if avatar == "" && c.Sender != nil {
		avatar = c.Sender.Avatar
	}
	if avatar == "" && c.Author != nil {
		avatar = c.Author.Avatar
	}
	return domain.Comment{
		ID:           firstNonEmpty(c.UID, c.ID),
		PostID:       firstNonEmpty(c.PostID, postID),
		AuthorName:   firstNonEmpty(c.Sender.name(), c.Author.name()),
		AuthorAvatar: resolve(avatar),
		Body:         firstNonEmpty(c.Comment, c.Content),
		CreatedAt:    time.Time(c.CreatedAt),
	}
}

// decodeThread accepts a bare array, {comments:[...]} or {data:[...]}.
// Any other shape is an empty thread.
func decodeThread(body []byte) ([]commentPayload, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var list []commentPayload
		err := json.Unmarshal(body, &list)
		return list, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	for _, key := range []string{"comments", "data"} {
		if raw := bytes.TrimSpace(envelope[key]); len(raw) > 0 && raw[0] == '[' {
			var list []commentPayload
			err := json.Unmarshal(raw, &list)
			return list, err
		}
	}
	return []commentPayload{}, nil
}

// field returns the trimmed raw value stored under key of a JSON object.
func field(body []byte, key string) []byte {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	return bytes.TrimSpace(envelope[key])
}

// unwrap returns the object stored under key when body is such an envelope,
// and body itself otherwise.
func unwrap(body []byte, key string) []byte {
	if raw := field(body, key); len(raw) > 0 && raw[0] == '{' {
		return raw
	}
	return body
}

// unwrapList is unwrap for an array.
func unwrapList(body []byte, key string) []byte {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		return body
	}
	if raw := field(body, key); len(raw) > 0 && raw[0] == '[' {
		return raw
	}
	return body
}

type viewerPayload struct {
	UID            string `json:"_id"`
	ID             string `json:"id"`
	ProfilePicture string `json:"profilePicture"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
}

type tokenPayload struct {
	AccessToken string `json:"accessToken"`
}

type likePayload struct {
	Message string `json:"message"`
}

// timestamp tolerates missing or non RFC 3339 dates
type timestamp time.Time

func (t *timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.000Z07:00", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = timestamp(parsed)
			return nil
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
