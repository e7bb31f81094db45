package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kreatiq/internal/event"
	"kreatiq/internal/fallback"
	"kreatiq/internal/model"
	"kreatiq/internal/repository"
	"kreatiq/pkg/llm"
	"kreatiq/pkg/log"
	"kreatiq/pkg/metrics"
)

const (
	// 回复长度不超过该值视为无效
	minReplyLength = 10
	// 发送给模型的历史消息上限
	maxHistoryMessages = 20
)

// ChatService 定义了聊天操作的接口。
type ChatService interface {
	// SendMessage 依次保存用户消息、生成回复并保存 AI 消息。
	SendMessage(ctx context.Context, sessionID, message string) (userMsg, aiMsg model.ChatMessage, err error)
	// History 返回会话中的全部消息，按创建顺序排列。
	History(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
	// GenerateChatResponse 根据消息和历史生成一条回复，不写入存储。
	GenerateChatResponse(ctx context.Context, message string, history []model.ChatMessage) (string, error)
}

// ChatOptions 控制聊天回复路径。
type ChatOptions struct {
	PreferExternal bool
	Generation     llm.GenerationParams
}

type chatService struct {
	repo      repository.ChatMessageRepository
	llmClient llm.Client
	publisher event.Publisher
	opts      ChatOptions
}

// NewChatService 创建一个新的 ChatService 实例。
func NewChatService(repo repository.ChatMessageRepository, llmClient llm.Client, publisher event.Publisher, opts ChatOptions) ChatService {
	if publisher == nil {
		publisher = event.Nop{}
	}
	return &chatService{
		repo:      repo,
		llmClient: llmClient,
		publisher: publisher,
		opts:      opts,
	}
}

func (s *chatService) SendMessage(ctx context.Context, sessionID, message string) (model.ChatMessage, model.ChatMessage, error) {
	if strings.TrimSpace(sessionID) == "" || strings.TrimSpace(message) == "" {
		return model.ChatMessage{}, model.ChatMessage{}, ErrInvalidRequest
	}

	// 1. 读取本轮之前的历史
	history, err := s.repo.FindBySession(ctx, sessionID)
	if err != nil {
		log.Errorf("Failed to load chat history for session %s: %v", sessionID, err)
		history = []model.ChatMessage{}
	}

	// 2. 先保存用户消息
	userMsg, err := s.repo.Create(ctx, model.NewChatMessage{Message: message, IsUser: true, SessionID: sessionID})
	if err != nil {
		return model.ChatMessage{}, model.ChatMessage{}, fmt.Errorf("failed to save user message: %w", err)
	}

	// 3. 生成回复并保存
	reply, err := s.GenerateChatResponse(ctx, message, history)
	if err != nil {
		return model.ChatMessage{}, model.ChatMessage{}, err
	}
	aiMsg, err := s.repo.Create(ctx, model.NewChatMessage{Message: reply, IsUser: false, SessionID: sessionID})
	if err != nil {
		return model.ChatMessage{}, model.ChatMessage{}, fmt.Errorf("failed to save ai message: %w", err)
	}

	publish(ctx, s.publisher, event.New(event.ChatTurn, sessionID, map[string]any{
		"sessionId":   sessionID,
		"userMessage": userMsg,
		"aiMessage":   aiMsg,
	}))
	return userMsg, aiMsg, nil
}

func (s *chatService) History(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	messages, err := s.repo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	return messages, nil
}

func (s *chatService) GenerateChatResponse(ctx context.Context, message string, history []model.ChatMessage) (string, error) {
	path := metrics.PathTemplate
	if s.opts.PreferExternal && s.llmClient != nil && s.llmClient.Configured() {
		gen := s.opts.Generation
		reply, err := s.llmClient.Chat(ctx, composeMessages(history, message), &gen)
		if err == nil && strings.TrimSpace(reply) != "" {
			metrics.Global().ChatReplies.WithLabelValues(metrics.PathLLM).Inc()
			return reply, nil
		}
		if err == nil {
			err = errors.New("empty reply")
		}
		log.Warnw("外部模型回复失败，回退到预置回复", "error", err)
		path = metrics.PathFallback
	}

	reply := fallback.ChatReply(message)
	if len(strings.TrimSpace(reply)) <= minReplyLength {
		return "", ErrEmptyReply
	}
	metrics.Global().ChatReplies.WithLabelValues(path).Inc()
	return reply, nil
}

// composeMessages 组装 system 提示词、最近的历史和本轮用户输入。
func composeMessages(history []model.ChatMessage, userInput string) []llm.Message {
	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}
	msgs := make([]llm.Message, 0, len(history)+2)
	msgs = append(msgs, llm.SystemMessage(chatSystemPrompt))
	for _, m := range history {
		if m.IsUser {
			msgs = append(msgs, llm.UserMessage(m.Message))
		} else {
			msgs = append(msgs, llm.AssistantMessage(m.Message))
		}
	}
	msgs = append(msgs, llm.UserMessage(userInput))
	return msgs
}
