package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/movietalk/feed-client/domain"
	"github.com/movietalk/feed-client/internal/rest/request"
	"github.com/movietalk/feed-client/internal/rest/response"
)

const MaxImageBytes = 10 << 20

// FeedHandler represent the httphandler for the feed and its posts
type FeedHandler struct {
	Feed  domain.FeedUsecase
	Likes domain.LikeUsecase
}

func NewFeedHandler(feed domain.FeedUsecase, likes domain.LikeUsecase) *FeedHandler {
	return &FeedHandler{
		Feed:  feed,
		Likes: likes,
	}
}

// View returns the current feed without touching the backend
func (h *FeedHandler) View(c *gin.Context) {
	view := h.Feed.View()
	c.JSON(http.StatusOK, response.NewFeedFromDomain(&view))
}

// Reload runs the load sequence again; a failed list load still answers with the view
func (h *FeedHandler) Reload(c *gin.Context) {
	if err := h.Feed.Load(c.Request.Context()); err != nil {
		logrus.Warnf("feed reload failed: %v", err)
	}
	view := h.Feed.View()
	c.JSON(http.StatusOK, response.NewFeedFromDomain(&view))
}

// CreatePost publishes the multipart compose form
func (h *FeedHandler) CreatePost(c *gin.Context) {
	var req request.Post
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	image, err := readImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	post, err := h.Feed.CreatePost(c.Request.Context(), req.ToDomain(image))
	if err != nil {
		respondError(c, err)
		return
	}

	view := domain.PostView{Post: post, LikeCount: len(post.Likes)}
	if cached, ok := h.findView(post.ID); ok {
		view = cached
	}
	c.JSON(http.StatusCreated, response.NewPostFromDomain(&view))
}

func (h *FeedHandler) findView(id string) (domain.PostView, bool) {
	if id == "" {
		return domain.PostView{}, false
	}
	for _, p := range h.Feed.View().Posts {
		if p.ID == id {
			return p, true
		}
	}
	return domain.PostView{}, false
}

// ToggleLike flips the viewer's like and answers with the patched post
func (h *FeedHandler) ToggleLike(c *gin.Context) {
	id := c.Param("id")
	outcome, err := h.Likes.Toggle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	res := gin.H{"outcome": outcome.String()}
	if view, ok := h.findView(id); ok {
		res["post"] = response.NewPostFromDomain(&view)
	}
	c.JSON(http.StatusOK, res)
}

func readImage(c *gin.Context) (*domain.ImageUpload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	if fh.Size > MaxImageBytes {
		return nil, fmt.Errorf("image is larger than %d bytes", MaxImageBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, MaxImageBytes))
	if err != nil {
		return nil, err
	}
	return &domain.ImageUpload{Filename: fh.Filename, Content: content}, nil
}
