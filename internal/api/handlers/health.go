package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health 基本的健康檢查
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
