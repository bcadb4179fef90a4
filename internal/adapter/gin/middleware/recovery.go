package middleware

import (
	"fmt"

	pkgerrors "user-directory-service/pkg/errors"
	"user-directory-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns a panic in a handler into the uniform 500 error body.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithContext(c.Request.Context(), log).Error("panic recovered",
					zap.Any("panic", r),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)

				apiErr := pkgerrors.NewInternalError(fmt.Errorf("panic: %v", r))
				c.AbortWithStatusJSON(apiErr.Status, gin.H{
					"status":  apiErr.Status,
					"message": apiErr.Message,
				})
			}
		}()
		c.Next()
	}
}
