package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/services"
	"go.uber.org/zap"
)

// RespondOK writes the success envelope
func RespondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// RespondError writes the failure envelope for err and aborts the chain.
// Internal errors are logged with their cause and surface a generic message.
func RespondError(c *gin.Context, err error) {
	appErr := services.AsAppError(err)
	status := services.HTTPStatus(appErr)

	if appErr.Kind == services.KindInternal {
		zap.L().Error("Request failed",
			zap.String("request_id", GetRequestID(c)),
			zap.String("code", appErr.Code),
			zap.Error(appErr.Err))
	}

	body := gin.H{
		"code":    appErr.Code,
		"kind":    appErr.Kind,
		"message": appErr.Message,
	}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}

	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   body,
	})
}
