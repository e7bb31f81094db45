package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader 是传递请求 id 的 HTTP 头。
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestID"

// RequestID 沿用客户端传入的请求 id，没有则生成一个 UUID，并写回响应头。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID 返回当前请求的 id，未经过 RequestID 中间件时返回空字符串。
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
