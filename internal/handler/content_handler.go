package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kreatiq/internal/model"
	"kreatiq/internal/middleware"
	"kreatiq/internal/service"
	"kreatiq/pkg/log"
)

// ContentHandler 负责内容创意的增删改查、生成与导出。
type ContentHandler struct {
	contentService service.ContentService
}

// NewContentHandler 创建一个新的 ContentHandler 实例。
func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// CreateContentIdeaRequest 定义了创建内容创意的请求体。
// 文本字段只要求出现，允许为空字符串。
type CreateContentIdeaRequest struct {
	Title       *string  `json:"title" binding:"required"`
	Description *string  `json:"description" binding:"required"`
	ContentType *string  `json:"contentType" binding:"required"`
	Platform    *string  `json:"platform"`
	Content     *string  `json:"content" binding:"required"`
	Status      *string  `json:"status" binding:"omitempty,oneof=draft ready published"`
	Tags        []string `json:"tags"`
}

// UpdateContentIdeaRequest 定义了部分更新的请求体，缺省字段保留原值。
type UpdateContentIdeaRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	ContentType *string   `json:"contentType"`
	Platform    *string   `json:"platform"`
	Content     *string   `json:"content"`
	Status      *string   `json:"status" binding:"omitempty,oneof=draft ready published"`
	Tags        *[]string `json:"tags"`
}

// GenerateContentRequest 定义了内容生成的请求体。
type GenerateContentRequest struct {
	Topic             string `json:"topic" binding:"required"`
	ContentType       string `json:"contentType" binding:"required"`
	Platform          string `json:"platform"`
	Tone              string `json:"tone"`
	TargetAudience    string `json:"targetAudience"`
	AdditionalContext string `json:"additionalContext"`
}

// List 按创建时间倒序返回全部内容创意。
func (h *ContentHandler) List(c *gin.Context) {
	ideas, err := h.contentService.ListIdeas(c.Request.Context())
	if err != nil {
		log.Errorw("List content ideas failed", "requestID", middleware.GetRequestID(c), "error", err)
		errorResponse(c, http.StatusInternalServerError, "Failed to fetch content ideas", err)
		return
	}
	c.JSON(http.StatusOK, ideas)
}

// Get 返回单个内容创意。
func (h *ContentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	idea, err := h.contentService.GetIdea(c.Request.Context(), id)
	if err != nil {
		h.writeLookupError(c, "Failed to fetch content idea", err)
		return
	}
	c.JSON(http.StatusOK, idea)
}

// Create 校验请求体后保存一条内容创意。
func (h *ContentHandler) Create(c *gin.Context) {
	var req CreateContentIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Create content idea: invalid payload, error: %v", err)
		errorResponse(c, http.StatusBadRequest, "Invalid content idea data", err)
		return
	}

	newIdea := model.NewContentIdea{
		Title:       *req.Title,
		Description: *req.Description,
		ContentType: *req.ContentType,
		Platform:    req.Platform,
		Content:     *req.Content,
		Tags:        req.Tags,
	}
	if req.Status != nil {
		newIdea.Status = model.ContentStatus(*req.Status)
	}

	idea, err := h.contentService.CreateIdea(c.Request.Context(), newIdea)
	if err != nil {
		log.Errorw("Create content idea failed", "requestID", middleware.GetRequestID(c), "error", err)
		errorResponse(c, http.StatusInternalServerError, "Failed to create content idea", err)
		return
	}
	c.JSON(http.StatusOK, idea)
}

// Update 合并部分更新。
func (h *ContentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateContentIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Update content idea %d: invalid payload, error: %v", id, err)
		errorResponse(c, http.StatusBadRequest, "Failed to update content idea", err)
		return
	}

	update := model.ContentIdeaUpdate{
		Title:       req.Title,
		Description: req.Description,
		ContentType: req.ContentType,
		Platform:    req.Platform,
		Content:     req.Content,
		Tags:        req.Tags,
	}
	if req.Status != nil {
		status := model.ContentStatus(*req.Status)
		update.Status = &status
	}

	idea, err := h.contentService.UpdateIdea(c.Request.Context(), id, update)
	if err != nil {
		h.writeLookupError(c, "Failed to update content idea", err)
		return
	}
	c.JSON(http.StatusOK, idea)
}

// Delete 删除内容创意。
func (h *ContentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.contentService.DeleteIdea(c.Request.Context(), id); err != nil {
		h.writeLookupError(c, "Failed to delete content idea", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Content idea deleted successfully"})
}

// Export 把内容创意导出为 Markdown 并返回下载地址。
func (h *ContentHandler) Export(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	url, err := h.contentService.ExportIdea(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExportUnavailable) {
			errorResponse(c, http.StatusServiceUnavailable, "Export is not available", err)
			return
		}
		h.writeLookupError(c, "Failed to export content idea", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Generate 生成内容创意并返回已保存的结果。
func (h *ContentHandler) Generate(c *gin.Context) {
	var req GenerateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Generate content: invalid payload, error: %v", err)
		errorResponse(c, http.StatusBadRequest, "Topic and content type are required", nil)
		return
	}

	ideas, err := h.contentService.GenerateContentIdeas(c.Request.Context(), service.GenerationRequest{
		Topic:             req.Topic,
		ContentType:       req.ContentType,
		Platform:          req.Platform,
		Tone:              req.Tone,
		TargetAudience:    req.TargetAudience,
		AdditionalContext: req.AdditionalContext,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			errorResponse(c, http.StatusBadRequest, "Topic and content type are required", nil)
			return
		}
		log.Errorw("Content generation error", "requestID", middleware.GetRequestID(c), "error", err)
		errorResponse(c, http.StatusInternalServerError, "Failed to generate content", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ideas": ideas})
}

func (h *ContentHandler) writeLookupError(c *gin.Context, message string, err error) {
	if errors.Is(err, service.ErrNotFound) {
		errorResponse(c, http.StatusNotFound, "Content idea not found", nil)
		return
	}
	log.Errorw(message, "requestID", middleware.GetRequestID(c), "error", err)
	errorResponse(c, http.StatusInternalServerError, message, err)
}
