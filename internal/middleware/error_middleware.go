package middleware

import (
	"credential-auth/internal/transport/httpdto"
	"credential-auth/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.Error(c.Request.Context(), "request error", zap.Error(err))
		}
		if !c.Writer.Written() {
			c.JSON(c.Writer.Status(), httpdto.NewErrorResponse(err.Error(), "INTERNAL_ERROR"))
		}
	}
}
