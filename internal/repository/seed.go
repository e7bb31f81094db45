package repository

import "kreatiq/internal/model"

// DefaultWorkflowTemplates 返回每次启动时写入的预置工作流模板。
func DefaultWorkflowTemplates() []model.NewWorkflowTemplate {
	return []model.NewWorkflowTemplate{
		{
			Name:        "Social Media Series",
			Description: "Automatically generate a week's worth of social media posts based on a single topic",
			Icon:        "fas fa-share-alt",
			Gradient:    "from-blue-500 to-purple-500",
			Steps: []model.WorkflowStep{
				{Name: "Topic Input", Description: "Provide main topic or theme"},
				{Name: "Platform Selection", Description: "Choose target platforms"},
				{Name: "Content Generation", Description: "AI generates varied posts"},
				{Name: "Schedule Planning", Description: "Optimize posting times"},
			},
		},
		{
			Name:        "Blog to Social",
			Description: "Transform your blog posts into multiple social media posts and email content",
			Icon:        "fas fa-blog",
			Gradient:    "from-green-500 to-teal-500",
			Steps: []model.WorkflowStep{
				{Name: "Blog Analysis", Description: "Extract key points from blog"},
				{Name: "Content Adaptation", Description: "Adapt for different platforms"},
				{Name: "Visual Suggestions", Description: "Recommend images and graphics"},
				{Name: "Distribution Plan", Description: "Create posting schedule"},
			},
		},
		{
			Name:        "Video Content Hub",
			Description: "Create video scripts, thumbnails, descriptions, and promotional posts in one go",
			Icon:        "fas fa-video",
			Gradient:    "from-red-500 to-pink-500",
			Steps: []model.WorkflowStep{
				{Name: "Video Concept", Description: "Define video topic and goals"},
				{Name: "Script Writing", Description: "Generate detailed script"},
				{Name: "Thumbnail Design", Description: "Create eye-catching thumbnails"},
				{Name: "Promotion Strategy", Description: "Plan cross-platform promotion"},
			},
		},
	}
}
