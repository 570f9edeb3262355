package middleware

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Recovery 捕獲處理器中的 panic，記錄後回應 500，服務繼續運行
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error("handler panic",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(RequestIDKey),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}
