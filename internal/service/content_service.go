// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kreatiq/internal/event"
	"kreatiq/internal/fallback"
	"kreatiq/internal/model"
	"kreatiq/internal/repository"
	"kreatiq/pkg/llm"
	"kreatiq/pkg/log"
	"kreatiq/pkg/metrics"
)

// GenerationRequest 是一次内容生成的输入，Topic 和 ContentType 必填。
type GenerationRequest struct {
	Topic             string
	ContentType       string
	Platform          string
	Tone              string
	TargetAudience    string
	AdditionalContext string
}

func (r GenerationRequest) normalized() GenerationRequest {
	r.Topic = strings.TrimSpace(r.Topic)
	r.ContentType = strings.TrimSpace(r.ContentType)
	r.Platform = strings.TrimSpace(r.Platform)
	r.Tone = strings.TrimSpace(r.Tone)
	return r
}

// Exporter 把渲染好的文件上传到对象存储并返回下载地址。
type Exporter interface {
	Export(ctx context.Context, objectName string, body []byte, contentType string) (string, error)
}

// ContentService 定义了内容创意相关的业务操作。
type ContentService interface {
	ListIdeas(ctx context.Context) ([]model.ContentIdea, error)
	GetIdea(ctx context.Context, id uint) (model.ContentIdea, error)
	CreateIdea(ctx context.Context, idea model.NewContentIdea) (model.ContentIdea, error)
	UpdateIdea(ctx context.Context, id uint, update model.ContentIdeaUpdate) (model.ContentIdea, error)
	DeleteIdea(ctx context.Context, id uint) error
	// GenerateContentIdeas 生成内容创意并全部持久化后返回。
	GenerateContentIdeas(ctx context.Context, req GenerationRequest) ([]model.ContentIdea, error)
	// ExportIdea 将内容创意导出为 Markdown 并返回下载地址。
	ExportIdea(ctx context.Context, id uint) (string, error)
}

// ContentOptions 控制生成路径。
type ContentOptions struct {
	PreferExternal bool
	Generation     llm.GenerationParams
	// Picker 为空时随机选择模板。
	Picker fallback.Picker
}

type contentService struct {
	repo      repository.ContentIdeaRepository
	llmClient llm.Client
	publisher event.Publisher
	exporter  Exporter
	opts      ContentOptions
}

// NewContentService 创建一个新的 ContentService 实例。exporter 可以为 nil。
func NewContentService(repo repository.ContentIdeaRepository, llmClient llm.Client, publisher event.Publisher, exporter Exporter, opts ContentOptions) ContentService {
	if publisher == nil {
		publisher = event.Nop{}
	}
	if opts.Picker == nil {
		opts.Picker = fallback.RandomPicker
	}
	opts.Generation.JSONObject = true
	return &contentService{
		repo:      repo,
		llmClient: llmClient,
		publisher: publisher,
		exporter:  exporter,
		opts:      opts,
	}
}

func ideaKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (s *contentService) ListIdeas(ctx context.Context) ([]model.ContentIdea, error) {
	return s.repo.FindAll(ctx)
}

func (s *contentService) GetIdea(ctx context.Context, id uint) (model.ContentIdea, error) {
	idea, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.ContentIdea{}, fmt.Errorf("failed to find content idea %d: %w", id, err)
	}
	if !ok {
		return model.ContentIdea{}, ErrNotFound
	}
	return idea, nil
}

func (s *contentService) CreateIdea(ctx context.Context, idea model.NewContentIdea) (model.ContentIdea, error) {
	created, err := s.repo.Create(ctx, idea)
	if err != nil {
		return model.ContentIdea{}, fmt.Errorf("failed to create content idea: %w", err)
	}
	publish(ctx, s.publisher, event.New(event.ContentIdeaCreated, ideaKey(created.ID), created))
	return created, nil
}

func (s *contentService) UpdateIdea(ctx context.Context, id uint, update model.ContentIdeaUpdate) (model.ContentIdea, error) {
	updated, ok, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return model.ContentIdea{}, fmt.Errorf("failed to update content idea %d: %w", id, err)
	}
	if !ok {
		return model.ContentIdea{}, ErrNotFound
	}
	publish(ctx, s.publisher, event.New(event.ContentIdeaUpdated, ideaKey(id), updated))
	return updated, nil
}

func (s *contentService) DeleteIdea(ctx context.Context, id uint) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete content idea %d: %w", id, err)
	}
	if !ok {
		return ErrNotFound
	}
	publish(ctx, s.publisher, event.New(event.ContentIdeaDeleted, ideaKey(id), map[string]uint{"id": id}))
	return nil
}

// GenerateContentIdeas 按路径生成内容创意：
// 配置了外部模型且偏好外部模型时先调用模型，失败再回退到模板；否则只走模板。
func (s *contentService) GenerateContentIdeas(ctx context.Context, req GenerationRequest) ([]model.ContentIdea, error) {
	req = req.normalized()
	if req.Topic == "" || req.ContentType == "" {
		return nil, ErrInvalidRequest
	}

	ideas, path := s.generate(ctx, req)
	metrics.Global().Generations.WithLabelValues(path).Inc()

	saved := make([]model.ContentIdea, 0, len(ideas))
	var lastErr error
	for _, idea := range ideas {
		created, err := s.repo.Create(ctx, model.NewContentIdea{
			Title:       idea.Title,
			Description: idea.Description,
			ContentType: req.ContentType,
			Platform:    model.StringPtr(req.Platform),
			Content:     idea.Content,
			Status:      model.StatusDraft,
			Tags:        idea.Tags,
		})
		if err != nil {
			lastErr = err
			log.Warnw("保存生成的内容创意失败，已跳过", "title", idea.Title, "error", err)
			continue
		}
		saved = append(saved, created)
	}
	if len(saved) == 0 {
		return nil, fmt.Errorf("failed to persist generated content ideas: %w", lastErr)
	}

	metrics.Global().GeneratedIdeas.Add(float64(len(saved)))
	log.Infow("内容创意生成完成", "topic", req.Topic, "contentType", req.ContentType, "path", path, "count", len(saved))
	publish(ctx, s.publisher, event.New(event.ContentGenerated, req.Topic, map[string]any{
		"topic":       req.Topic,
		"contentType": req.ContentType,
		"platform":    req.Platform,
		"path":        path,
		"ideaIds":     ideaIDs(saved),
	}))
	return saved, nil
}

func ideaIDs(ideas []model.ContentIdea) []uint {
	ids := make([]uint, len(ideas))
	for i, idea := range ideas {
		ids[i] = idea.ID
	}
	return ids
}

func (s *contentService) useExternal() bool {
	return s.opts.PreferExternal && s.llmClient != nil && s.llmClient.Configured()
}

// generate 返回生成结果以及产生结果的路径标签。
func (s *contentService) generate(ctx context.Context, req GenerationRequest) ([]fallback.Idea, string) {
	fallbackReq := fallback.Request{
		Topic:       req.Topic,
		ContentType: req.ContentType,
		Platform:    req.Platform,
		Tone:        req.Tone,
	}
	if !s.useExternal() {
		return fallback.ContentIdeas(fallbackReq, s.opts.Picker), metrics.PathTemplate
	}

	ideas, err := s.generateWithLLM(ctx, req)
	if err != nil {
		log.Warnw("外部模型生成失败，回退到模板", "topic", req.Topic, "error", err)
		return fallback.ContentIdeas(fallbackReq, s.opts.Picker), metrics.PathFallback
	}
	return ideas, metrics.PathLLM
}

type llmIdeasResponse struct {
	Ideas []fallback.Idea `json:"ideas"`
}

func (s *contentService) generateWithLLM(ctx context.Context, req GenerationRequest) ([]fallback.Idea, error) {
	gen := s.opts.Generation
	raw, err := s.llmClient.Chat(ctx, []llm.Message{
		llm.SystemMessage(contentSystemPrompt),
		llm.UserMessage(buildContentPrompt(req)),
	}, &gen)
	if err != nil {
		return nil, err
	}
	ideas, err := parseLLMIdeas(raw)
	if err != nil {
		return nil, err
	}
	log.Debugf("外部模型返回 %d 个可用创意", len(ideas))
	return ideas, nil
}

// parseLLMIdeas 解析模型返回的 JSON，丢弃缺少标题或正文的条目。
func parseLLMIdeas(raw string) ([]fallback.Idea, error) {
	raw = strings.TrimSpace(raw)
	// 部分兼容服务会把 JSON 包在代码块里
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var resp llmIdeasResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode llm ideas: %w", err)
	}
	ideas := make([]fallback.Idea, 0, len(resp.Ideas))
	for _, idea := range resp.Ideas {
		if strings.TrimSpace(idea.Title) == "" || strings.TrimSpace(idea.Content) == "" {
			continue
		}
		if idea.Tags == nil {
			idea.Tags = []string{}
		}
		ideas = append(ideas, idea)
	}
	if len(ideas) == 0 {
		return nil, errors.New("llm returned no usable ideas")
	}
	return ideas, nil
}

func (s *contentService) ExportIdea(ctx context.Context, id uint) (string, error) {
	if s.exporter == nil {
		return "", ErrExportUnavailable
	}
	idea, err := s.GetIdea(ctx, id)
	if err != nil {
		return "", err
	}
	objectName := fmt.Sprintf("content-ideas/%d.md", idea.ID)
	url, err := s.exporter.Export(ctx, objectName, []byte(renderMarkdown(idea)), "text/markdown; charset=utf-8")
	if err != nil {
		return "", fmt.Errorf("failed to export content idea %d: %w", id, err)
	}
	log.Infow("内容创意已导出", "id", id, "object", objectName)
	return url, nil
}

func renderMarkdown(idea model.ContentIdea) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", idea.Title)
	if idea.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", idea.Description)
	}
	fmt.Fprintf(&b, "- Type: %s\n", idea.ContentType)
	if idea.Platform != nil {
		fmt.Fprintf(&b, "- Platform: %s\n", *idea.Platform)
	}
	fmt.Fprintf(&b, "- Status: %s\n", idea.Status)
	if len(idea.Tags) > 0 {
		fmt.Fprintf(&b, "- Tags: %s\n", strings.Join(idea.Tags, ", "))
	}
	fmt.Fprintf(&b, "- Created: %s\n\n---\n\n", idea.CreatedAt.UTC().Format(time.RFC3339))
	b.WriteString(idea.Content)
	b.WriteString("\n")
	return b.String()
}
