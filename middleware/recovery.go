package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/services"
	"go.uber.org/zap"
)

// Recovery turns a panic into an internal error response
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		l.Error("panic_recovered",
			zap.String("request_id", GetRequestID(c)),
			zap.Any("panic", recovered),
			zap.Stack("stack"))

		RespondError(c, services.InternalError("INTERNAL_ERROR", fmt.Errorf("panic: %v", recovered)))
	})
}
