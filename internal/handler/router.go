package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kreatiq/internal/middleware"
	"kreatiq/internal/service"
	"kreatiq/pkg/log"
)

// RouterDeps 汇总注册路由所需的服务。RateLimiter 为 nil 时不限流。
type RouterDeps struct {
	ContentService  service.ContentService
	ChatService     service.ChatService
	WorkflowService service.WorkflowService
	RateLimiter     *middleware.RateLimiter
	// TrustedProxies 为空时客户端 IP 只取连接的对端地址。
	TrustedProxies []string
}

// NewRouter 创建路由引擎并注册所有 API。
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	// 限流按 ClientIP 计数，不能信任任意客户端伪造的 X-Forwarded-For
	if err := r.SetTrustedProxies(deps.TrustedProxies); err != nil {
		log.Warnf("trusted_proxies 配置无效，忽略所有代理头: %v", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.RequestID(), middleware.RequestLogger(), gin.Recovery())

	contentHandler := NewContentHandler(deps.ContentService)
	chatHandler := NewChatHandler(deps.ChatService)
	workflowHandler := NewWorkflowHandler(deps.WorkflowService)
	limited := middleware.RateLimit(deps.RateLimiter)

	api := r.Group("/api")
	{
		ideas := api.Group("/content-ideas")
		{
			ideas.GET("", contentHandler.List)
			ideas.POST("", contentHandler.Create)
			ideas.GET("/:id", contentHandler.Get)
			ideas.PUT("/:id", contentHandler.Update)
			ideas.DELETE("/:id", contentHandler.Delete)
			ideas.POST("/:id/export", contentHandler.Export)
		}

		api.POST("/generate-content", limited, contentHandler.Generate)

		chat := api.Group("/chat")
		{
			chat.GET("/:sessionId", chatHandler.History)
			chat.POST("", limited, chatHandler.Send)
		}

		api.GET("/workflow-templates", workflowHandler.List)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
