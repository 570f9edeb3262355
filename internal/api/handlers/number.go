package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"thenumbers/internal/middleware"
	"thenumbers/internal/models"
)

// NumberGenerator 是數字處理器依賴的能力
type NumberGenerator interface {
	Even(ctx context.Context) (int, error)
	Random(ctx context.Context) (int, error)
}

// NumberHandler 處理數字相關的請求
type NumberHandler struct {
	numbers NumberGenerator
	logger  *slog.Logger
}

// NewNumberHandler 創建一個新的 NumberHandler 實例
func NewNumberHandler(numbers NumberGenerator, logger *slog.Logger) *NumberHandler {
	return &NumberHandler{numbers: numbers, logger: logger}
}

// Even 處理 GET /even
func (h *NumberHandler) Even(c *gin.Context) {
	h.respond(c, models.NumberKindEven, h.numbers.Even)
}

// Random 處理 GET /random
func (h *NumberHandler) Random(c *gin.Context) {
	h.respond(c, models.NumberKindRandom, h.numbers.Random)
}

func (h *NumberHandler) respond(c *gin.Context, kind models.NumberKind, draw func(context.Context) (int, error)) {
	value, err := draw(c.Request.Context())
	if err != nil {
		h.logger.Error("draw number failed",
			"kind", kind,
			"error", err,
			"request_id", c.GetString(middleware.RequestIDKey),
		)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	// 客戶端偏好 text/plain 時只回傳數字本身
	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEPlain) == gin.MIMEPlain {
		c.String(http.StatusOK, "%d\n", value)
		return
	}

	c.JSON(http.StatusOK, models.Number{Kind: kind, Value: value})
}
