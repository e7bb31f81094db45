package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kreatiq/internal/event"
	"kreatiq/internal/fallback"
	"kreatiq/internal/model"
	"kreatiq/internal/repository"
	"kreatiq/pkg/llm"
)

func newChatFixture(client llm.Client, opts ChatOptions) (ChatService, *recordingPublisher) {
	repo := repository.NewChatMessageRepository(repository.NewMemoryStore())
	pub := &recordingPublisher{}
	return NewChatService(repo, client, pub, opts), pub
}

func TestSendMessageTwoTurnsAlternate(t *testing.T) {
	svc, pub := newChatFixture(nil, ChatOptions{})
	ctx := context.Background()

	user, ai, err := svc.SendMessage(ctx, "s1", "Hi there!")
	require.NoError(t, err)
	assert.True(t, bool(user.IsUser))
	assert.False(t, bool(ai.IsUser))
	assert.Equal(t, fallback.ChatReply("Hi there!"), ai.Message)
	assert.Equal(t, "s1", ai.SessionID)

	_, _, err = svc.SendMessage(ctx, "s1", "Any blog ideas?")
	require.NoError(t, err)
	_, _, err = svc.SendMessage(ctx, "other", "hello")
	require.NoError(t, err)

	history, err := svc.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 4)
	for i, msg := range history {
		assert.Equal(t, i%2 == 0, bool(msg.IsUser), "message %d", i)
		assert.Equal(t, "s1", msg.SessionID)
	}
	assert.Equal(t, "Any blog ideas?", history[2].Message)
	assert.Equal(t, []string{event.ChatTurn, event.ChatTurn, event.ChatTurn}, pub.types())
}

func TestSendMessageRejectsMissingFields(t *testing.T) {
	svc, pub := newChatFixture(nil, ChatOptions{})
	ctx := context.Background()

	_, _, err := svc.SendMessage(ctx, "", "hello")
	assert.ErrorIs(t, err, ErrInvalidRequest)
	_, _, err = svc.SendMessage(ctx, "s1", "  ")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	history, err := svc.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Empty(t, pub.types())
}

func TestHistoryUnknownSessionIsEmpty(t *testing.T) {
	svc, _ := newChatFixture(nil, ChatOptions{})
	history, err := svc.History(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestGenerateChatResponseUsesLLMWithHistory(t *testing.T) {
	client := &fakeLLM{configured: true, reply: "Try a 30-day posting challenge with daily reels."}
	svc, _ := newChatFixture(client, ChatOptions{
		PreferExternal: true,
		Generation:     llm.GenerationParams{Temperature: 0.7, MaxTokens: 1000},
	})
	ctx := context.Background()

	_, _, err := svc.SendMessage(ctx, "s1", "first question")
	require.NoError(t, err)
	_, ai, err := svc.SendMessage(ctx, "s1", "second question")
	require.NoError(t, err)
	assert.Equal(t, client.reply, ai.Message)

	require.Len(t, client.calls, 2)
	second := client.calls[1]
	// system + 上一轮的两条 + 本轮用户输入
	require.Len(t, second, 4)
	assert.Equal(t, "system", second[0].Role)
	assert.Equal(t, llm.UserMessage("first question"), second[1])
	assert.Equal(t, llm.AssistantMessage(client.reply), second[2])
	assert.Equal(t, llm.UserMessage("second question"), second[3])
	assert.InDelta(t, 0.7, client.gens[1].Temperature, 0.0001)
	assert.Equal(t, 1000, client.gens[1].MaxTokens)
	assert.False(t, client.gens[1].JSONObject)
}

func TestGenerateChatResponseFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeLLM
		opts   ChatOptions
		calls  int
	}{
		{"not configured", &fakeLLM{configured: false}, ChatOptions{PreferExternal: true}, 0},
		{"not preferred", &fakeLLM{configured: true, reply: "llm says hi there friend"}, ChatOptions{}, 0},
		{"call error", &fakeLLM{configured: true, err: errors.New("timeout")}, ChatOptions{PreferExternal: true}, 1},
		{"blank reply", &fakeLLM{configured: true, reply: "   "}, ChatOptions{PreferExternal: true}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newChatFixture(tt.client, tt.opts)
			reply, err := svc.GenerateChatResponse(context.Background(), "Can you help me?", nil)
			require.NoError(t, err)
			assert.Equal(t, fallback.ChatReply("Can you help me?"), reply)
			assert.Len(t, tt.client.calls, tt.calls)
		})
	}
}

func TestComposeMessagesTrimsHistory(t *testing.T) {
	history := make([]model.ChatMessage, 0, 30)
	for i := 0; i < 30; i++ {
		history = append(history, model.ChatMessage{Message: fmt.Sprintf("m%d", i), IsUser: i%2 == 0})
	}
	msgs := composeMessages(history, "now")
	require.Len(t, msgs, maxHistoryMessages+2)
	assert.Equal(t, "m10", msgs[1].Content)
	assert.Equal(t, "now", msgs[len(msgs)-1].Content)
}

func TestWorkflowServiceListsSeed(t *testing.T) {
	svc := NewWorkflowService(repository.NewWorkflowTemplateRepository(repository.NewMemoryStore()))
	templates, err := svc.ListTemplates(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 3)
	assert.Equal(t, uint(1), templates[0].ID)
}

func TestSendMessageKeepsUserMessageWhenReplySaveFails(t *testing.T) {
	repo := &failingSecondCreateChatRepo{ChatMessageRepository: repository.NewChatMessageRepository(repository.NewMemoryStore())}
	pub := &recordingPublisher{}
	svc := NewChatService(repo, nil, pub, ChatOptions{})
	ctx := context.Background()

	_, _, err := svc.SendMessage(ctx, "s1", "hello")
	require.ErrorContains(t, err, "write failed")

	history, err := svc.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, bool(history[0].IsUser))
	assert.Equal(t, "hello", history[0].Message)
	assert.Empty(t, pub.types())
}
