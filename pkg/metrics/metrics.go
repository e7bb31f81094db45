// Package metrics 暴露服务的 Prometheus 指标。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// 生成路径标签值
const (
	PathTemplate = "template"
	PathLLM      = "llm"
	PathFallback = "fallback"
)

type Metrics struct {
	Generations     *prometheus.CounterVec
	GeneratedIdeas  prometheus.Counter
	ChatReplies     *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	RateLimited     prometheus.Counter
	PublishFailures prometheus.Counter
}

var (
	once   sync.Once
	global *Metrics
)

func Global() *Metrics {
	once.Do(func() {
		global = &Metrics{
			Generations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "kreatiq",
				Name:      "content_generations_total",
				Help:      "Content generation requests by the path that produced the ideas",
			}, []string{"path"}),
			GeneratedIdeas: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "kreatiq",
				Name:      "content_ideas_generated_total",
				Help:      "Total generated content ideas persisted",
			}),
			ChatReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "kreatiq",
				Name:      "chat_replies_total",
				Help:      "Chat replies by the path that produced them",
			}, []string{"path"}),
			HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "kreatiq",
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status code",
			}, []string{"method", "route", "status"}),
			RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "kreatiq",
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the rate limiter",
			}),
			PublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "kreatiq",
				Name:      "event_publish_failures_total",
				Help:      "Domain events that could not be published",
			}),
		}
		prometheus.MustRegister(
			global.Generations,
			global.GeneratedIdeas,
			global.ChatReplies,
			global.HTTPRequests,
			global.RateLimited,
			global.PublishFailures,
		)
	})
	return global
}
