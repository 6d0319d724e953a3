package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/movietalk/feed-client/domain"
	"github.com/movietalk/feed-client/internal/rest/request"
	"github.com/movietalk/feed-client/internal/rest/response"
)

type commentHandler struct {
	Dialog domain.CommentUsecase
	Feed   domain.FeedUsecase
}

func NewCommentHandler(dialog domain.CommentUsecase, feed domain.FeedUsecase) *commentHandler {
	return &commentHandler{
		Dialog: dialog,
		Feed:   feed,
	}
}

func (h *commentHandler) snapshot(c *gin.Context, status int) {
	snap := h.Dialog.Snapshot()
	c.JSON(status, response.NewDialogFromDomain(&snap))
}

func (h *commentHandler) GetDialog(c *gin.Context) {
	h.snapshot(c, http.StatusOK)
}

// OpenDialog opens the thread of a post that is in the feed.
// A failed thread load is reported inside the dialog, not as an HTTP error.
func (h *commentHandler) OpenDialog(c *gin.Context) {
	var req request.OpenDialog
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	post, ok := h.Feed.Post(req.PostID)
	if !ok {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	_ = h.Dialog.Open(c.Request.Context(), post)
	h.snapshot(c, http.StatusOK)
}

func (h *commentHandler) RetryDialog(c *gin.Context) {
	if err := h.Dialog.Retry(c.Request.Context()); errors.Is(err, domain.ErrNoDialog) {
		respondError(c, err)
		return
	}
	h.snapshot(c, http.StatusOK)
}

func (h *commentHandler) CloseDialog(c *gin.Context) {
	h.Dialog.Close()
	h.snapshot(c, http.StatusOK)
}

func (h *commentHandler) CreateComment(c *gin.Context) {
	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	postID := c.Param("id")
	comment, err := h.Dialog.PostComment(c.Request.Context(), postID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	res := gin.H{"comment": response.NewCommentFromDomain(&comment)}
	for _, p := range h.Feed.View().Posts {
		if p.ID == postID {
			res["comment_count"] = p.CommentCount
			break
		}
	}
	c.JSON(http.StatusCreated, res)
}
