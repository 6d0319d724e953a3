package rest_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/movietalk/feed-client/domain"
	"github.com/movietalk/feed-client/domain/mocks"
	"github.com/movietalk/feed-client/internal/rest"
	"github.com/movietalk/feed-client/internal/rest/response"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestFeedView(t *testing.T) {
	feed := new(mocks.FeedUsecase)
	feed.On("View").Return(domain.FeedView{
		Viewer: &domain.Viewer{ID: "u1", FullName: "Ann"},
		Posts: []domain.PostView{{
			Post:         domain.Post{ID: "X", Title: "Heat", Likes: []string{"u1"}, CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
			ImageURL:     "http://api/x.png",
			LikedByMe:    true,
			LikeCount:    1,
			CommentCount: 4,
		}},
	})

	r := newRouter()
	h := rest.NewFeedHandler(feed, new(mocks.LikeUsecase))
	r.GET("/feed", h.View)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[response.Feed](t, rec)
	assert.Equal(t, "FEED", body.Scope)
	require.NotNil(t, body.Viewer)
	assert.Equal(t, "Ann", body.Viewer.FullName)
	require.Len(t, body.Posts, 1)
	assert.True(t, body.Posts[0].LikedByMe)
	assert.Equal(t, 4, body.Posts[0].CommentCount)
	assert.Equal(t, "2024-05-01 10:00:00", body.Posts[0].CreatedAt)
}

func TestFeedReloadFailureStillAnswers(t *testing.T) {
	feed := new(mocks.FeedUsecase)
	feed.On("Load", mock.Anything).Return(&domain.NetworkError{Op: "ListFeed", Err: errors.New("down")}).Once()
	feed.On("View").Return(domain.FeedView{Posts: []domain.PostView{}, LoadError: "Failed to load posts.", CanRetry: true})

	r := newRouter()
	h := rest.NewFeedHandler(feed, new(mocks.LikeUsecase))
	r.POST("/feed/reload", h.Reload)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/feed/reload", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[response.Feed](t, rec)
	assert.Empty(t, body.Posts)
	assert.True(t, body.CanRetry)
	assert.Equal(t, "Failed to load posts.", body.LoadError)
}

func TestCreatePost(t *testing.T) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	require.NoError(t, w.WriteField("title", "Heat"))
	require.NoError(t, w.WriteField("description", "1995"))
	require.NoError(t, w.WriteField("review", "Great"))
	part, err := w.CreateFormFile("image", "poster.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png-bytes"))
	require.NoError(t, w.Close())

	feed := new(mocks.FeedUsecase)
	feed.On("CreatePost", mock.Anything, mock.MatchedBy(func(d domain.PostDraft) bool {
		return d.Title == "Heat" && d.Image != nil && d.Image.Filename == "poster.png" && string(d.Image.Content) == "png-bytes"
	})).Return(domain.Post{ID: "new", Title: "Heat"}, nil).Once()
	feed.On("View").Return(domain.FeedView{Posts: []domain.PostView{{Post: domain.Post{ID: "new", Title: "Heat"}}}})

	r := newRouter()
	h := rest.NewFeedHandler(feed, new(mocks.LikeUsecase))
	r.POST("/posts", h.CreatePost)

	req := httptest.NewRequest(http.MethodPost, "/posts", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "new", decodeBody[response.Post](t, rec).ID)
	feed.AssertExpectations(t)
}

func TestCreatePostValidation(t *testing.T) {
	feed := new(mocks.FeedUsecase)
	feed.On("CreatePost", mock.Anything, mock.Anything).
		Return(domain.Post{}, &domain.ValidationError{Field: "title", Message: "title is required"}).Once()

	r := newRouter()
	h := rest.NewFeedHandler(feed, new(mocks.LikeUsecase))
	r.POST("/posts", h.CreatePost)

	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader("title=&description=1995&review=Great"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "title is required", decodeBody[rest.ResponseError](t, rec).Message)
}

func TestToggleLike(t *testing.T) {
	feed := new(mocks.FeedUsecase)
	likes := new(mocks.LikeUsecase)
	likes.On("Toggle", mock.Anything, "X").Return(domain.Liked, nil).Once()
	feed.On("View").Return(domain.FeedView{Posts: []domain.PostView{{
		Post: domain.Post{ID: "X", Likes: []string{"u1"}}, LikedByMe: true, LikeCount: 1,
	}}})

	r := newRouter()
	h := rest.NewFeedHandler(feed, likes)
	r.POST("/posts/:id/like", h.ToggleLike)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/posts/X/like", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[struct {
		Outcome string        `json:"outcome"`
		Post    response.Post `json:"post"`
	}](t, rec)
	assert.Equal(t, "LIKED", body.Outcome)
	assert.True(t, body.Post.LikedByMe)
	assert.Equal(t, 1, body.Post.LikeCount)
}

func TestErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "auth", err: &domain.AuthError{Message: "Invalid token"}, code: http.StatusUnauthorized},
		{name: "network", err: &domain.NetworkError{Op: "ToggleLike", Err: errors.New("reset")}, code: http.StatusBadGateway},
		{name: "server-4xx", err: &domain.ServerError{Status: http.StatusConflict, Message: "busy"}, code: http.StatusConflict},
		{name: "server-5xx", err: &domain.ServerError{Status: http.StatusInternalServerError, Message: "boom"}, code: http.StatusBadGateway},
		{name: "not-found", err: domain.ErrNotFound, code: http.StatusNotFound},
		{name: "unknown", err: errors.New("???"), code: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			likes := new(mocks.LikeUsecase)
			likes.On("Toggle", mock.Anything, "X").Return(domain.LikeOutcome(0), tt.err).Once()

			r := newRouter()
			h := rest.NewFeedHandler(new(mocks.FeedUsecase), likes)
			r.POST("/posts/:id/like", h.ToggleLike)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/posts/X/like", nil))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestOpenDialog(t *testing.T) {
	post := domain.Post{ID: "Y", Title: "Alien"}
	feed := new(mocks.FeedUsecase)
	dialog := new(mocks.CommentUsecase)
	feed.On("Post", "Y").Return(post, true)
	feed.On("Post", "nope").Return(domain.Post{}, false)
	dialog.On("Open", mock.Anything, post).Return(errors.New("fetch failed")).Once()
	dialog.On("Snapshot").Return(domain.DialogSnapshot{
		State:     domain.DialogOpen{PostID: "Y", Title: "Alien"},
		Thread:    []domain.Comment{},
		LoadError: "Failed to load comments.",
		CanRetry:  true,
	})

	r := newRouter()
	h := rest.NewCommentHandler(dialog, feed)
	r.POST("/dialog", h.OpenDialog)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/dialog", strings.NewReader(`{"post_id":"Y"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[response.Dialog](t, rec)
	assert.True(t, body.Open)
	assert.Equal(t, "Y", body.PostID)
	assert.True(t, body.CanRetry)
	assert.Equal(t, "Failed to load comments.", body.LoadError)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/dialog", strings.NewReader(`{"post_id":"nope"}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRetryWithoutDialog(t *testing.T) {
	dialog := new(mocks.CommentUsecase)
	dialog.On("Retry", mock.Anything).Return(domain.ErrNoDialog).Once()

	r := newRouter()
	h := rest.NewCommentHandler(dialog, new(mocks.FeedUsecase))
	r.POST("/dialog/retry", h.RetryDialog)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/dialog/retry", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRetryWithoutDialogWrapped(t *testing.T) {
	dialog := new(mocks.CommentUsecase)
	dialog.On("Retry", mock.Anything).Return(fmt.Errorf("retry thread: %w", domain.ErrNoDialog)).Once()

	r := newRouter()
	h := rest.NewCommentHandler(dialog, new(mocks.FeedUsecase))
	r.POST("/dialog/retry", h.RetryDialog)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/dialog/retry", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
	dialog.AssertExpectations(t)
}

func TestCreateComment(t *testing.T) {
	feed := new(mocks.FeedUsecase)
	dialog := new(mocks.CommentUsecase)
	dialog.On("PostComment", mock.Anything, "Y", "Great film").
		Return(domain.Comment{ID: "c1", PostID: "Y", Body: "Great film"}, nil).Once()
	feed.On("View").Return(domain.FeedView{Posts: []domain.PostView{{Post: domain.Post{ID: "Y"}, CommentCount: 1}}})

	r := newRouter()
	h := rest.NewCommentHandler(dialog, feed)
	r.POST("/posts/:id/comments", h.CreateComment)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/posts/Y/comments", strings.NewReader(`{"body":"Great film"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody[struct {
		Comment      response.Comment `json:"comment"`
		CommentCount int              `json:"comment_count"`
	}](t, rec)
	assert.Equal(t, "Great film", body.Comment.Body)
	assert.Equal(t, domain.AnonymousAuthor, body.Comment.Author)
	assert.Equal(t, 1, body.CommentCount)
}

func TestCreateCommentServerMessage(t *testing.T) {
	dialog := new(mocks.CommentUsecase)
	dialog.On("PostComment", mock.Anything, "Y", "hi").
		Return(domain.Comment{}, &domain.ServerError{Status: http.StatusBadRequest, Message: "Comment too short"}).Once()

	r := newRouter()
	h := rest.NewCommentHandler(dialog, new(mocks.FeedUsecase))
	r.POST("/posts/:id/comments", h.CreateComment)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/posts/Y/comments", strings.NewReader(`{"body":"hi"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Comment too short", decodeBody[rest.ResponseError](t, rec).Message)
}

func TestLoginReloadsFeed(t *testing.T) {
	account := new(mocks.AccountUsecase)
	feed := new(mocks.FeedUsecase)
	account.On("Login", mock.Anything, domain.Credentials{Email: "ann@example.com", Password: "secret"}).Return(nil).Once()
	feed.On("Load", mock.Anything).Return(nil).Once()

	r := newRouter()
	h := rest.NewSessionHandler(account, feed)
	r.POST("/session/login", h.Login)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/session/login", strings.NewReader(`{"email":"ann@example.com","password":"secret"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	feed.AssertExpectations(t)
}

func TestLoginRejected(t *testing.T) {
	account := new(mocks.AccountUsecase)
	feed := new(mocks.FeedUsecase)
	account.On("Login", mock.Anything, mock.Anything).Return(&domain.AuthError{Message: "Invalid credentials"}).Once()

	r := newRouter()
	h := rest.NewSessionHandler(account, feed)
	r.POST("/session/login", h.Login)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/session/login", strings.NewReader(`{"email":"ann@example.com","password":"x"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeBody[rest.ResponseError](t, rec).Message)
	feed.AssertNotCalled(t, "Load", mock.Anything)
}

func TestLogout(t *testing.T) {
	account := new(mocks.AccountUsecase)
	feed := new(mocks.FeedUsecase)
	account.On("Logout", mock.Anything).Return(nil).Once()
	feed.On("Load", mock.Anything).Return(nil).Once()

	r := newRouter()
	h := rest.NewSessionHandler(account, feed)
	r.DELETE("/session", h.Logout)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/session", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestNotices(t *testing.T) {
	n := new(mocks.Notifier)
	n.On("Recent").Return([]domain.Notice{{Level: domain.NoticeWarning, Op: "ToggleLike", PostID: "X", Message: "Failed to update like", At: time.Now()}})

	r := newRouter()
	r.GET("/notices", rest.NewNoticeHandler(n).Recent)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notices", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[[]response.Notice](t, rec)
	require.Len(t, body, 1)
	assert.Equal(t, "WARNING", body[0].Level)
}
