// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// errorResponse 返回 {"message": ..., "error": ...}，err 为 nil 时省略 error 字段。
func errorResponse(c *gin.Context, status int, message string, err error) {
	body := gin.H{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

// parseID 解析路径参数 id，失败时直接写入 400 响应。
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		errorResponse(c, http.StatusBadRequest, "Invalid content idea id", err)
		return 0, false
	}
	return uint(id), true
}
