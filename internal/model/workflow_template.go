package model

import "time"

// WorkflowStep 是工作流模板中的一个步骤。
type WorkflowStep struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// WorkflowTemplate 是一个预置的内容自动化流程描述，本身不可执行。
type WorkflowTemplate struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	Gradient    string         `json:"gradient"`
	Steps       []WorkflowStep `json:"steps"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// NewWorkflowTemplate 是创建 WorkflowTemplate 的输入。
type NewWorkflowTemplate struct {
	Name        string
	Description string
	Icon        string
	Gradient    string
	Steps       []WorkflowStep
}
