package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/movietalk/feed-client/domain"
	"github.com/movietalk/feed-client/internal/rest/request"
)

type sessionHandler struct {
	Account domain.AccountUsecase
	Feed    domain.FeedUsecase
}

func NewSessionHandler(account domain.AccountUsecase, feed domain.FeedUsecase) *sessionHandler {
	return &sessionHandler{
		Account: account,
		Feed:    feed,
	}
}

func (h *sessionHandler) Login(c *gin.Context) {
	var req request.Login
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}
	if err := h.Account.Login(c.Request.Context(), req.ToDomain()); err != nil {
		respondError(c, err)
		return
	}
	h.reload(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Logged in"})
}

func (h *sessionHandler) LoginWithGoogle(c *gin.Context) {
	var req request.GoogleLogin
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}
	if err := h.Account.LoginWithGoogle(c.Request.Context(), req.Credential); err != nil {
		respondError(c, err)
		return
	}
	h.reload(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Logged in"})
}

func (h *sessionHandler) Register(c *gin.Context) {
	var req request.Register
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}
	if err := h.Account.Register(c.Request.Context(), req.ToDomain()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Registered, please log in"})
}

func (h *sessionHandler) Logout(c *gin.Context) {
	if err := h.Account.Logout(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	h.reload(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// reload refreshes like state for the new viewer; failures stay in the feed view
func (h *sessionHandler) reload(ctx context.Context) {
	if err := h.Feed.Load(ctx); err != nil {
		logrus.Warnf("feed reload after session change failed: %v", err)
	}
}
