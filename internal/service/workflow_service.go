package service

import (
	"context"

	"kreatiq/internal/model"
	"kreatiq/internal/repository"
)

// WorkflowService 提供只读的工作流模板。
type WorkflowService interface {
	ListTemplates(ctx context.Context) ([]model.WorkflowTemplate, error)
}

type workflowService struct {
	repo repository.WorkflowTemplateRepository
}

// NewWorkflowService 创建一个新的 WorkflowService 实例。
func NewWorkflowService(repo repository.WorkflowTemplateRepository) WorkflowService {
	return &workflowService{repo: repo}
}

func (s *workflowService) ListTemplates(ctx context.Context) ([]model.WorkflowTemplate, error) {
	return s.repo.FindAll(ctx)
}
