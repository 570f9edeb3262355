// Package middleware 提供了 HTTP 請求處理的中間件。
//
// 這個包包含了請求 ID、存取日誌、panic 恢復、Prometheus 指標和 CORS 等
// 跨請求的功能，全部以 gin.HandlerFunc 的形式提供。
package middleware
