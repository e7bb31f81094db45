// Package event 定义了业务操作完成后对外发布的领域事件。
package event

import (
	"context"
	"time"
)

// 事件类型
const (
	ContentIdeaCreated = "content_idea.created"
	ContentIdeaUpdated = "content_idea.updated"
	ContentIdeaDeleted = "content_idea.deleted"
	ContentGenerated   = "content.generated"
	ChatTurn           = "chat.turn"
)

// Event 是一条领域事件，Key 用于分区（内容创意 id 或会话 id）。
type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurredAt"`
}

// New 创建一条当前时间的事件。
func New(eventType, key string, payload any) Event {
	return Event{Type: eventType, Key: key, Payload: payload, OccurredAt: time.Now()}
}

// Publisher 发布领域事件。实现必须可并发调用。
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
	Close() error
}

// Nop 丢弃所有事件，在未配置消息队列时使用。
type Nop struct{}

func (Nop) Publish(context.Context, ...Event) error { return nil }
func (Nop) Close() error                            { return nil }
