package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/movietalk/feed-client/domain"
)

const likedMessage = "post liked"

type postRepository struct {
	client *Client
}

var _ domain.PostRepository = (*postRepository)(nil)

func NewPostRepository(client *Client) *postRepository {
	return &postRepository{client: client}
}

func (r *postRepository) ListFeed(ctx context.Context) ([]domain.Post, error) {
	return r.list(ctx, "ListFeed", "/posts", false)
}

func (r *postRepository) ListMine(ctx context.Context) ([]domain.Post, error) {
	return r.list(ctx, "ListMine", "/posts/my-posts", true)
}

func (r *postRepository) list(ctx context.Context, op, path string, auth bool) ([]domain.Post, error) {
	body, err := r.client.do(ctx, request{op: op, method: http.MethodGet, path: path, auth: auth})
	if err != nil {
		return nil, err
	}

	var payload []postPayload
	if err := decode(op, unwrapList(body, "posts"), &payload); err != nil {
		return nil, err
	}

	res := make([]domain.Post, 0, len(payload))
	for i := range payload {
		p := payload[i].ToDomain()
		if p.ID == "" {
			logrus.Warnf("%s: skipping post without id", op)
			continue
		}
		res = append(res, p)
	}
	return res, nil
}

func (r *postRepository) Create(ctx context.Context, draft domain.PostDraft) (domain.Post, error) {
	const op = "CreatePost"

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	fields := [][2]string{
		{"title", draft.Title},
		{"description", draft.Description},
		{"review", draft.Review},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return domain.Post{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	if draft.Image != nil {
		if err := writeImage(w, draft.Image); err != nil {
			return domain.Post{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := w.Close(); err != nil {
		return domain.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	body, err := r.client.do(ctx, request{
		op:          op,
		method:      http.MethodPost,
		path:        "/posts",
		auth:        true,
		body:        buf,
		contentType: w.FormDataContentType(),
	})
	if err != nil {
		return domain.Post{}, err
	}

	var payload postPayload
	if len(bytes.TrimSpace(body)) > 0 {
		if err := decode(op, unwrap(body, "post"), &payload); err != nil {
			return domain.Post{}, err
		}
	}

	post := payload.ToDomain()
	// the server may answer with a bare acknowledgement
	if post.Title == "" {
		post.Title = draft.Title
		post.Description = draft.Description
		post.Review = draft.Review
	}
	return post, nil
}

func writeImage(w *multipart.Writer, img *domain.ImageUpload) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, img.Filename))
	h.Set("Content-Type", http.DetectContentType(img.Content))
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(img.Content)
	return err
}

func (r *postRepository) ToggleLike(ctx context.Context, postID string) (domain.LikeOutcome, error) {
	const op = "ToggleLike"

	body, err := r.client.do(ctx, request{
		op:     op,
		method: http.MethodPost,
		path:   "/posts/" + url.PathEscape(postID) + "/like",
		auth:   true,
	})
	if err != nil {
		return 0, err
	}

	var payload likePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		logrus.Warnf("%s: unreadable answer for post %s, treating as unliked: %v", op, postID, err)
	}
	if strings.EqualFold(strings.TrimSpace(payload.Message), likedMessage) {
		return domain.Liked, nil
	}
	return domain.Unliked, nil
}
