// Package model 包含了应用的数据模型定义。
package model

import "time"

// ContentStatus 表示内容创意所处的阶段。
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusReady     ContentStatus = "ready"
	StatusPublished ContentStatus = "published"
)

// ContentIdea 代表一条生成或手工录入的营销内容及其元数据。
type ContentIdea struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ContentType string        `json:"contentType"` // "social", "blog", "video", "email", ...
	Platform    *string       `json:"platform"`    // "instagram", "linkedin", ... 可为空
	Content     string        `json:"content"`
	Status      ContentStatus `json:"status"`
	Tags        []string      `json:"tags"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// NewContentIdea 是创建 ContentIdea 的输入（不含 id 和 createdAt）。
type NewContentIdea struct {
	Title       string
	Description string
	ContentType string
	Platform    *string
	Content     string
	Status      ContentStatus
	Tags        []string
}

// ContentIdeaUpdate 描述一次部分更新，nil 字段保留原值。
type ContentIdeaUpdate struct {
	Title       *string
	Description *string
	ContentType *string
	Platform    *string
	Content     *string
	Status      *ContentStatus
	Tags        *[]string
}

// Apply 将更新合并到 idea 上。
func (u ContentIdeaUpdate) Apply(idea *ContentIdea) {
	if u.Title != nil {
		idea.Title = *u.Title
	}
	if u.Description != nil {
		idea.Description = *u.Description
	}
	if u.ContentType != nil {
		idea.ContentType = *u.ContentType
	}
	if u.Platform != nil {
		p := *u.Platform
		idea.Platform = &p
	}
	if u.Content != nil {
		idea.Content = *u.Content
	}
	if u.Status != nil {
		idea.Status = *u.Status
	}
	if u.Tags != nil {
		idea.Tags = append([]string{}, (*u.Tags)...)
	}
}

// StringPtr 返回 s 的指针，s 为空时返回 nil。
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
