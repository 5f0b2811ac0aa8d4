package utils

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JSONError writes {"success": false, "error": message} and logs the cause at warn level.
func JSONError(c *gin.Context, code int, message string, cause error) {
	if cause != nil {
		GetLogger().Warn(message,
			zap.Int("status", code),
			zap.String("path", c.Request.URL.Path),
			zap.Error(cause),
		)
	}
	c.JSON(code, gin.H{"success": false, "error": message})
}
