package api

import (
	"context"
	"net/http"

	"github.com/movietalk/feed-client/domain"
)

type authRepository struct {
	client *Client
}

var _ domain.AuthRepository = (*authRepository)(nil)

func NewAuthRepository(client *Client) *authRepository {
	return &authRepository{client: client}
}

func (r *authRepository) Viewer(ctx context.Context) (domain.Viewer, error) {
	const op = "Viewer"

	body, err := r.client.do(ctx, request{op: op, method: http.MethodGet, path: "/auth/check", auth: true})
	if err != nil {
		return domain.Viewer{}, err
	}

	var payload viewerPayload
	if err := decode(op, unwrap(body, "user"), &payload); err != nil {
		return domain.Viewer{}, err
	}
	v := domain.Viewer{
		ID:       firstNonEmpty(payload.UID, payload.ID),
		Avatar:   r.client.ResolveImage(payload.ProfilePicture),
		FullName: payload.FullName,
		Email:    payload.Email,
	}
	if v.ID == "" {
		return domain.Viewer{}, &domain.AuthError{Message: "session has no user"}
	}
	return v, nil
}

func (r *authRepository) Login(ctx context.Context, c domain.Credentials) (string, error) {
	req, err := jsonRequest("Login", http.MethodPost, "/auth/login", false, map[string]string{
		"email":    c.Email,
		"password": c.Password,
	})
	if err != nil {
		return "", err
	}
	return r.token(ctx, req)
}

func (r *authRepository) LoginWithGoogle(ctx context.Context, credential string) (string, error) {
	req, err := jsonRequest("LoginWithGoogle", http.MethodPost, "/auth/login-with-google", false, map[string]string{
		"token": credential,
	})
	if err != nil {
		return "", err
	}
	return r.token(ctx, req)
}

func (r *authRepository) Register(ctx context.Context, reg domain.Registration) error {
	req, err := jsonRequest("Register", http.MethodPost, "/auth/register", false, map[string]string{
		"fullName": reg.FullName,
		"email":    reg.Email,
		"password": reg.Password,
	})
	if err != nil {
		return err
	}
	_, err = r.client.do(ctx, req)
	return err
}

func (r *authRepository) token(ctx context.Context, req request) (string, error) {
	body, err := r.client.do(ctx, req)
	if err != nil {
		return "", err
	}

	var payload tokenPayload
	if err := decode(req.op, body, &payload); err != nil {
		return "", err
	}
	if payload.AccessToken == "" {
		return "", &domain.AuthError{Message: "login response carried no access token"}
	}
	return payload.AccessToken, nil
}
