package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader 是响应中携带请求标识的头名。
const RequestIDHeader = "X-Request-ID"

// RequestID 为每个请求分配 UUID，便于日志关联。
// 客户端已带该头时沿用，避免打断上游链路。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
