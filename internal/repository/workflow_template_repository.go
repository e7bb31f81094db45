package repository

import (
	"context"
	"sort"

	"kreatiq/internal/model"
)

// WorkflowTemplateRepository 定义了工作流模板的操作接口。
type WorkflowTemplateRepository interface {
	Create(ctx context.Context, tpl model.NewWorkflowTemplate) (model.WorkflowTemplate, error)
	FindAll(ctx context.Context) ([]model.WorkflowTemplate, error)
}

type memoryWorkflowTemplateRepository struct {
	store *MemoryStore
}

// NewWorkflowTemplateRepository 创建一个新的 WorkflowTemplateRepository 实例。
func NewWorkflowTemplateRepository(store *MemoryStore) WorkflowTemplateRepository {
	return &memoryWorkflowTemplateRepository{store: store}
}

func (r *memoryWorkflowTemplateRepository) Create(_ context.Context, tpl model.NewWorkflowTemplate) (model.WorkflowTemplate, error) {
	return r.store.insertWorkflowTemplate(tpl), nil
}

// FindAll 按 id 升序返回所有模板。
func (r *memoryWorkflowTemplateRepository) FindAll(_ context.Context) ([]model.WorkflowTemplate, error) {
	r.store.mu.Lock()
	templates := make([]model.WorkflowTemplate, 0, len(r.store.workflowTemplates))
	for _, t := range r.store.workflowTemplates {
		templates = append(templates, cloneTemplate(t))
	}
	r.store.mu.Unlock()

	sort.Slice(templates, func(i, j int) bool { return templates[i].ID < templates[j].ID })
	return templates, nil
}
