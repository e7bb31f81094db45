package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kreatiq/internal/middleware"
	"kreatiq/internal/service"
	"kreatiq/pkg/log"
)

// WorkflowHandler 返回预置的工作流模板。
type WorkflowHandler struct {
	workflowService service.WorkflowService
}

// NewWorkflowHandler 创建一个新的 WorkflowHandler 实例。
func NewWorkflowHandler(workflowService service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflowService: workflowService}
}

// List 返回所有工作流模板。
func (h *WorkflowHandler) List(c *gin.Context) {
	templates, err := h.workflowService.ListTemplates(c.Request.Context())
	if err != nil {
		log.Errorw("Fetch workflow templates failed", "requestID", middleware.GetRequestID(c), "error", err)
		errorResponse(c, http.StatusInternalServerError, "Failed to fetch workflow templates", err)
		return
	}
	c.JSON(http.StatusOK, templates)
}
