package handler

import (
	"net/http"

	pkgerrors "user-directory-service/pkg/errors"
	"user-directory-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// respondError is the only place handlers turn an error into a response.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	apiErr := pkgerrors.Translate(err)

	l := logger.WithContext(c.Request.Context(), log)
	if apiErr.Status >= http.StatusInternalServerError {
		l.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	} else {
		l.Debug("request rejected",
			zap.Int("status", apiErr.Status),
			zap.String("message", apiErr.Message),
		)
	}

	c.AbortWithStatusJSON(apiErr.Status, ErrorResponse{
		Status:  apiErr.Status,
		Message: apiErr.Message,
	})
}
