package api

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/movietalk/feed-client/domain"
)

type commentRepository struct {
	client *Client
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(client *Client) *commentRepository {
	return &commentRepository{client: client}
}

func (r *commentRepository) FetchThread(ctx context.Context, postID string) ([]domain.Comment, error) {
	const op = "FetchThread"

	body, err := r.client.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		path:   "/comments/post/" + url.PathEscape(postID),
	})
	if err != nil {
		return nil, err
	}

	payload, err := decodeThread(body)
	if err != nil {
		logrus.Errorf("%s: malformed thread of post %s: %v", op, postID, err)
		return nil, &domain.ServerError{Status: http.StatusOK, Message: "unexpected response from server"}
	}

	res := make([]domain.Comment, 0, len(payload))
	for i := range payload {
		res = append(res, payload[i].ToDomain(postID, r.client.ResolveImage))
	}
	return res, nil
}

func (r *commentRepository) Create(ctx context.Context, postID, body string) (domain.Comment, error) {
	const op = "CreateComment"

	req, err := jsonRequest(op, http.MethodPost, "/comments", true, map[string]string{
		"comment": body,
		"postId":  postID,
	})
	if err != nil {
		return domain.Comment{}, err
	}
	resp, err := r.client.do(ctx, req)
	if err != nil {
		return domain.Comment{}, err
	}

	var payload commentPayload
	if len(bytes.TrimSpace(resp)) > 0 {
		if err := decode(op, unwrap(resp, "comment"), &payload); err != nil {
			return domain.Comment{}, err
		}
	}

	c := payload.ToDomain(postID, r.client.ResolveImage)
	if c.Body == "" {
		c.Body = body
	}
	return c, nil
}
