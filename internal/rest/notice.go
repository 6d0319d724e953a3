package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/movietalk/feed-client/domain"
	"github.com/movietalk/feed-client/internal/rest/response"
)

type noticeHandler struct {
	Notifier domain.Notifier
}

func NewNoticeHandler(n domain.Notifier) *noticeHandler {
	return &noticeHandler{Notifier: n}
}

func (h *noticeHandler) Recent(c *gin.Context) {
	c.JSON(http.StatusOK, response.NewNoticesFromDomain(h.Notifier.Recent()))
}
