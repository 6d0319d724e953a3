package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/movietalk/feed-client/domain"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func respondError(c *gin.Context, err error) {
	c.JSON(getStatusCode(err), ResponseError{Message: domain.UserMessage(err, err.Error())})
}

// getStatusCode will get the code of the error returned by a usecase
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		validationErr *domain.ValidationError
		authErr       *domain.AuthError
		networkErr    *domain.NetworkError
		serverErr     *domain.ServerError
	)
	switch {
	case errors.As(err, &validationErr), errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &networkErr):
		logrus.Error(err)
		return http.StatusBadGateway
	case errors.As(err, &serverErr):
		logrus.Error(err)
		if serverErr.Status >= http.StatusBadRequest && serverErr.Status < http.StatusInternalServerError {
			return serverErr.Status
		}
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoDialog):
		return http.StatusConflict
	default:
		logrus.Error(err)
		return http.StatusInternalServerError
	}
}
