package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader 是請求 ID 使用的 HTTP 頭
	RequestIDHeader = "X-Request-ID"

	// RequestIDKey 是請求 ID 在 gin.Context 中的鍵
	RequestIDKey = "requestID"

	// maxRequestIDLength 是客戶端提供的請求 ID 的最大長度
	maxRequestIDLength = 128
)

// RequestID 為每個請求設置請求 ID，客戶端已提供且長度合理時沿用客戶端的值
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
