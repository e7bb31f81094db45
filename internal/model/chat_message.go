package model

import "time"

// ChatMessage 代表会话中的单条消息，只追加不修改。
type ChatMessage struct {
	ID        uint      `json:"id"`
	Message   string    `json:"message"`
	IsUser    Flag      `json:"isUser"` // 1 为用户，0 为 AI
	SessionID string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewChatMessage 是创建 ChatMessage 的输入。
type NewChatMessage struct {
	Message   string
	IsUser    bool
	SessionID string
}
