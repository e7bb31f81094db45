package service

import (
	"context"
	"errors"
	"sync"

	"kreatiq/internal/event"
	"kreatiq/internal/model"
	"kreatiq/internal/repository"
	"kreatiq/pkg/llm"
)

type fakeLLM struct {
	configured bool
	reply      string
	err        error

	mu    sync.Mutex
	calls [][]llm.Message
	gens  []llm.GenerationParams
}

func (f *fakeLLM) Configured() bool { return f.configured }

func (f *fakeLLM) Chat(_ context.Context, messages []llm.Message, gen *llm.GenerationParams) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, messages)
	if gen != nil {
		f.gens = append(f.gens, *gen)
	}
	return f.reply, f.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, events ...event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type fakeExporter struct {
	objectName  string
	body        string
	contentType string
	err         error
}

func (e *fakeExporter) Export(_ context.Context, objectName string, body []byte, contentType string) (string, error) {
	e.objectName = objectName
	e.body = string(body)
	e.contentType = contentType
	if e.err != nil {
		return "", e.err
	}
	return "https://minio.local/kreatiq/" + objectName + "?X-Amz-Signature=abc", nil
}

// flakyIdeaRepo 在指定次数的 Create 调用上返回错误。
type flakyIdeaRepo struct {
	repository.ContentIdeaRepository
	failOn map[int]bool
	calls  int
}

func (r *flakyIdeaRepo) Create(ctx context.Context, idea model.NewContentIdea) (model.ContentIdea, error) {
	r.calls++
	if r.failOn[r.calls] {
		return model.ContentIdea{}, errors.New("disk full")
	}
	return r.ContentIdeaRepository.Create(ctx, idea)
}

type countingIdeaRepo struct {
	repository.ContentIdeaRepository
	creates int
}

func (r *countingIdeaRepo) Create(ctx context.Context, idea model.NewContentIdea) (model.ContentIdea, error) {
	r.creates++
	return r.ContentIdeaRepository.Create(ctx, idea)
}

// failingSecondCreateChatRepo 让每轮的第二次写入（AI 消息）失败。
type failingSecondCreateChatRepo struct {
	repository.ChatMessageRepository
	calls int
}

func (r *failingSecondCreateChatRepo) Create(ctx context.Context, msg model.NewChatMessage) (model.ChatMessage, error) {
	r.calls++
	if r.calls%2 == 0 {
		return model.ChatMessage{}, errors.New("write failed")
	}
	return r.ChatMessageRepository.Create(ctx, msg)
}
