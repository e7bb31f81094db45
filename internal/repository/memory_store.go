// Package repository 提供了数据访问层的实现。
package repository

import (
	"sync"
	"time"

	"kreatiq/internal/model"
)

// MemoryStore 持有三类实体的内存表及各自的自增 id 计数器。
// 进程重启后数据丢失（预置的工作流模板除外，每次构造时重新写入）。
type MemoryStore struct {
	mu  sync.Mutex
	now func() time.Time

	contentIdeas      map[uint]model.ContentIdea
	chatMessages      map[uint]model.ChatMessage
	workflowTemplates map[uint]model.WorkflowTemplate

	nextContentIdeaID      uint
	nextChatMessageID      uint
	nextWorkflowTemplateID uint
}

// StoreOption 用于定制 MemoryStore。
type StoreOption func(*MemoryStore)

// WithClock 替换时间来源，主要用于测试。
func WithClock(now func() time.Time) StoreOption {
	return func(s *MemoryStore) { s.now = now }
}

// WithoutSeed 跳过预置工作流模板。
func WithoutSeed() StoreOption {
	return func(s *MemoryStore) { s.workflowTemplates = nil }
}

// NewMemoryStore 创建一个新的 MemoryStore，并写入预置的工作流模板。
func NewMemoryStore(opts ...StoreOption) *MemoryStore {
	s := &MemoryStore{
		now:                    time.Now,
		contentIdeas:           make(map[uint]model.ContentIdea),
		chatMessages:           make(map[uint]model.ChatMessage),
		workflowTemplates:      make(map[uint]model.WorkflowTemplate),
		nextContentIdeaID:      1,
		nextChatMessageID:      1,
		nextWorkflowTemplateID: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workflowTemplates == nil {
		s.workflowTemplates = make(map[uint]model.WorkflowTemplate)
		return s
	}
	for _, t := range DefaultWorkflowTemplates() {
		s.insertWorkflowTemplate(t)
	}
	return s
}

// insertContentIdea 在一个临界区内分配 id 并写入。
func (s *MemoryStore) insertContentIdea(in model.NewContentIdea) model.ContentIdea {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := in.Status
	if status == "" {
		status = model.StatusDraft
	}
	tags := append([]string{}, in.Tags...)
	var platform *string
	if in.Platform != nil && *in.Platform != "" {
		p := *in.Platform
		platform = &p
	}

	id := s.nextContentIdeaID
	s.nextContentIdeaID++
	idea := model.ContentIdea{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		ContentType: in.ContentType,
		Platform:    platform,
		Content:     in.Content,
		Status:      status,
		Tags:        tags,
		CreatedAt:   s.now(),
	}
	s.contentIdeas[id] = idea
	return cloneIdea(idea)
}

func (s *MemoryStore) insertChatMessage(in model.NewChatMessage) model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextChatMessageID
	s.nextChatMessageID++
	msg := model.ChatMessage{
		ID:        id,
		Message:   in.Message,
		IsUser:    model.Flag(in.IsUser),
		SessionID: in.SessionID,
		CreatedAt: s.now(),
	}
	s.chatMessages[id] = msg
	return msg
}

func (s *MemoryStore) insertWorkflowTemplate(in model.NewWorkflowTemplate) model.WorkflowTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextWorkflowTemplateID
	s.nextWorkflowTemplateID++
	t := model.WorkflowTemplate{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Icon:        in.Icon,
		Gradient:    in.Gradient,
		Steps:       append([]model.WorkflowStep{}, in.Steps...),
		CreatedAt:   s.now(),
	}
	s.workflowTemplates[id] = t
	return cloneTemplate(t)
}

// cloneIdea 复制切片和指针字段，避免调用方修改到存储中的数据。
func cloneIdea(idea model.ContentIdea) model.ContentIdea {
	idea.Tags = append([]string{}, idea.Tags...)
	if idea.Platform != nil {
		p := *idea.Platform
		idea.Platform = &p
	}
	return idea
}

func cloneTemplate(t model.WorkflowTemplate) model.WorkflowTemplate {
	t.Steps = append([]model.WorkflowStep{}, t.Steps...)
	return t
}
