// Package llm provides a client for interacting with Large Language Models.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"kreatiq/internal/config"
)

// ErrNotConfigured 表示没有可用的 API key，调用方应直接走模板路径。
var ErrNotConfigured = errors.New("llm client is not configured")

// Message 表示一条角色消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerationParams 控制生成行为，零值字段使用服务端默认值。
type GenerationParams struct {
	Temperature float32
	MaxTokens   int
	// JSONObject 要求模型返回 JSON 对象。
	JSONObject bool
}

// Client defines the interface for an LLM client.
type Client interface {
	// Configured 报告是否配置了真实的 API key。
	Configured() bool
	// Chat 发送一组角色消息并返回第一条候选回复的文本。
	Chat(ctx context.Context, messages []Message, gen *GenerationParams) (string, error)
}

type openAIClient struct {
	cfg    config.LLMConfig
	client *openai.Client
}

// NewClient 基于 go-openai 创建客户端，兼容任何 OpenAI 协议的服务（BaseURL 可配置）。
func NewClient(cfg config.LLMConfig) Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4o
	}

	return &openAIClient{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

func (c *openAIClient) Configured() bool {
	return c.cfg.Configured()
}

func (c *openAIClient) Chat(ctx context.Context, messages []Message, gen *GenerationParams) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	req := openai.ChatCompletionRequest{
		Model:    c.cfg.Model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	if gen != nil {
		req.Temperature = gen.Temperature
		req.MaxTokens = gen.MaxTokens
		if gen.JSONObject {
			req.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			}
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to call chat api: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty choices in chat completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// SystemMessage 构造 system 角色消息。
func SystemMessage(content string) Message {
	return Message{Role: openai.ChatMessageRoleSystem, Content: content}
}

// UserMessage 构造 user 角色消息。
func UserMessage(content string) Message {
	return Message{Role: openai.ChatMessageRoleUser, Content: content}
}

// AssistantMessage 构造 assistant 角色消息。
func AssistantMessage(content string) Message {
	return Message{Role: openai.ChatMessageRoleAssistant, Content: content}
}
