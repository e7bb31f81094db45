package repository

import (
	"context"
	"sort"

	"kreatiq/internal/model"
)

// ChatMessageRepository 定义了聊天消息的操作接口，消息只追加。
type ChatMessageRepository interface {
	Create(ctx context.Context, msg model.NewChatMessage) (model.ChatMessage, error)
	FindBySession(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
}

type memoryChatMessageRepository struct {
	store *MemoryStore
}

// NewChatMessageRepository 创建一个新的 ChatMessageRepository 实例。
func NewChatMessageRepository(store *MemoryStore) ChatMessageRepository {
	return &memoryChatMessageRepository{store: store}
}

func (r *memoryChatMessageRepository) Create(_ context.Context, msg model.NewChatMessage) (model.ChatMessage, error) {
	return r.store.insertChatMessage(msg), nil
}

// FindBySession 返回指定会话的消息，按创建顺序升序排列。
func (r *memoryChatMessageRepository) FindBySession(_ context.Context, sessionID string) ([]model.ChatMessage, error) {
	r.store.mu.Lock()
	messages := []model.ChatMessage{}
	for _, msg := range r.store.chatMessages {
		if msg.SessionID == sessionID {
			messages = append(messages, msg)
		}
	}
	r.store.mu.Unlock()

	sort.Slice(messages, func(i, j int) bool {
		if !messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].CreatedAt.Before(messages[j].CreatedAt)
		}
		return messages[i].ID < messages[j].ID
	})
	return messages, nil
}
