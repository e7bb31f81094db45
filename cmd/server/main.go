// Package main 是应用程序的入口点。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"kreatiq/internal/config"
	"kreatiq/internal/handler"
	"kreatiq/internal/middleware"
	"kreatiq/internal/repository"
	"kreatiq/internal/service"
	"kreatiq/pkg/database"
	"kreatiq/pkg/kafka"
	"kreatiq/pkg/llm"
	"kreatiq/pkg/log"
	"kreatiq/pkg/storage"
)

func main() {
	configPath := flag.String("config", "./configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 1. 初始化配置
	config.Init(*configPath)
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	initCtx, cancelInit := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelInit()

	// 3. 初始化可选的外部依赖：Redis（限流）、Kafka（事件）、MinIO（导出）
	var limiter *middleware.RateLimiter
	rdb, err := database.NewRedis(initCtx, cfg.Redis)
	switch {
	case err != nil:
		log.Warnf("Redis 不可用，限流已关闭: %v", err)
	case rdb == nil:
		log.Info("未配置 Redis，限流已关闭")
	case cfg.RateLimit.PerMinute > 0:
		limiter = middleware.NewRateLimiter(rdb, cfg.RateLimit.PerMinute)
		log.Infof("限流已启用，每个客户端每分钟 %d 次", cfg.RateLimit.PerMinute)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	publisher := kafka.NewPublisher(cfg.Kafka)
	defer publisher.Close()

	var exporter service.Exporter
	minioExporter, err := storage.NewExporter(initCtx, cfg.MinIO)
	switch {
	case errors.Is(err, storage.ErrNotConfigured):
		log.Info("未配置 MinIO，导出功能不可用")
	case err != nil:
		log.Warnf("MinIO 初始化失败，导出功能不可用: %v", err)
	default:
		exporter = minioExporter
	}

	// 4. 初始化存储与 Repository
	store := repository.NewMemoryStore()
	contentRepo := repository.NewContentIdeaRepository(store)
	chatRepo := repository.NewChatMessageRepository(store)
	workflowRepo := repository.NewWorkflowTemplateRepository(store)

	// 5. 初始化 Service (依赖注入)
	llmClient := llm.NewClient(cfg.LLM)
	if cfg.LLM.PreferExternal && !llmClient.Configured() {
		log.Warnf("llm.prefer_external 已开启但未配置 API key，只使用模板生成")
	}
	contentService := service.NewContentService(contentRepo, llmClient, publisher, exporter, service.ContentOptions{
		PreferExternal: cfg.LLM.PreferExternal,
		Generation:     llm.GenerationParams{Temperature: cfg.LLM.Content.Temperature, MaxTokens: cfg.LLM.Content.MaxTokens},
	})
	chatService := service.NewChatService(chatRepo, llmClient, publisher, service.ChatOptions{
		PreferExternal: cfg.LLM.PreferExternal,
		Generation:     llm.GenerationParams{Temperature: cfg.LLM.Chat.Temperature, MaxTokens: cfg.LLM.Chat.MaxTokens},
	})
	workflowService := service.NewWorkflowService(workflowRepo)

	// 6. 设置 Gin 模式并注册路由
	gin.SetMode(cfg.Server.Mode)
	r := handler.NewRouter(handler.RouterDeps{
		ContentService:  contentService,
		ChatService:     chatService,
		WorkflowService: workflowService,
		RateLimiter:     limiter,
		TrustedProxies:  cfg.Server.TrustedProxies,
	})

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("HTTP 服务器关闭失败: %v", err)
	}
	log.Info("服务已优雅关闭")
}
