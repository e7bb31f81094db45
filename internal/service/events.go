package service

import (
	"context"
	"time"

	"kreatiq/internal/event"
	"kreatiq/pkg/log"
	"kreatiq/pkg/metrics"
)

const publishTimeout = 2 * time.Second

// publish 发布领域事件，失败只记录日志，不影响请求结果。
func publish(ctx context.Context, publisher event.Publisher, events ...event.Event) {
	if publisher == nil || len(events) == 0 {
		return
	}
	// 请求结束后 ctx 会被取消，事件仍需发出
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := publisher.Publish(pubCtx, events...); err != nil {
		metrics.Global().PublishFailures.Add(float64(len(events)))
		log.Warnw("领域事件发布失败", "type", events[0].Type, "count", len(events), "error", err)
	}
}
