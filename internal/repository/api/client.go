package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/movietalk/feed-client/domain"
	"github.com/movietalk/feed-client/internal/repository"
)

const (
	HeaderRequestID = "X-Request-ID"

	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20
)

// Client talks to the movietalk backend
type Client struct {
	baseURL *url.URL
	http    *http.Client
	session domain.Session
	limiter *rate.Limiter
	now     func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRateLimit caps outgoing calls to r per second with the given burst.
func WithRateLimit(r float64, burst int) Option {
	return func(c *Client) {
		if r > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(r), max(burst, 1))
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func NewClient(baseURL string, session domain.Session, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, domain.ErrBadParamInput)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: defaultTimeout},
		session: session,
		limiter: rate.NewLimiter(rate.Inf, 1),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ResolveImage turns a root-relative image path into an absolute URL.
func (c *Client) ResolveImage(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return c.baseURL.String() + ref
}

type request struct {
	op          string
	method      string
	path        string
	auth        bool // the endpoint requires a bearer token
	body        io.Reader
	contentType string
}

func jsonRequest(op, method, path string, auth bool, payload any) (request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return request{}, err
	}
	return request{
		op:          op,
		method:      method,
		path:        path,
		auth:        auth,
		body:        bytes.NewReader(data),
		contentType: "application/json",
	}, nil
}

// do sends r and returns the raw body of a 2xx answer
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	log := logrus.WithFields(logrus.Fields{"op": r.op, "method": r.method, "path": r.path})

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &domain.NetworkError{Op: r.op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL.String()+r.path, r.body)
	if err != nil {
		return nil, &domain.NetworkError{Op: r.op, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	log = log.WithField("request_id", requestID)

	if err := c.authorize(ctx, req, r.auth); err != nil {
		log.Warnf("request not sent: %v", err)
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Errorf("transport failure: %v", err)
		return nil, &domain.NetworkError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Errorf("failed to read response body: %v", err)
		return nil, &domain.NetworkError{Op: r.op, Err: err}
	}
	log.Debugf("status %d", resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &domain.AuthError{Message: errorMessage(body)}
	case resp.StatusCode >= http.StatusBadRequest:
		msg := errorMessage(body)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		log.Warnf("server rejected request: %s", msg)
		return nil, &domain.ServerError{Status: resp.StatusCode, Message: msg}
	}
	return body, nil
}

// authorize attaches the bearer token when there is a usable one.
// An expired token on an endpoint that needs auth fails before the request is sent.
func (c *Client) authorize(ctx context.Context, req *http.Request, required bool) error {
	if c.session == nil {
		return nil
	}
	token, err := c.session.Token(ctx)
	if err != nil {
		logrus.Warnf("failed to read session token: %v", err)
		token = ""
	}
	if token == "" {
		return nil
	}
	if repository.TokenExpired(token, c.now()) {
		if required {
			return &domain.AuthError{Message: "session expired, please log in again"}
		}
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

func decode(op string, body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		logrus.Errorf("%s: malformed response: %v", op, err)
		return &domain.ServerError{Status: http.StatusOK, Message: "unexpected response from server"}
	}
	return nil
}

// errorMessage extracts a human message from an error body.
// Precedence is error, then message, then a bare JSON string, then short plain text.
func errorMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	var envelope struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if s, ok := envelope.Error.(string); ok && s != "" {
			return s
		}
		return envelope.Message
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}

	if text := string(body); len(text) <= 200 && !strings.HasPrefix(text, "<") {
		return text
	}
	return ""
}
