package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kreatiq/internal/middleware"
	"kreatiq/internal/service"
	"kreatiq/pkg/log"
)

// ChatHandler 处理聊天消息的读写。
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler 创建一个新的 ChatHandler 实例。
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessageRequest 定义了发送聊天消息的请求体。
type SendMessageRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId" binding:"required"`
}

// History 返回指定会话的全部消息。
func (h *ChatHandler) History(c *gin.Context) {
	messages, err := h.chatService.History(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		log.Errorw("Fetch chat messages failed", "requestID", middleware.GetRequestID(c), "error", err)
		errorResponse(c, http.StatusInternalServerError, "Failed to fetch chat messages", err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// Send 保存用户消息和 AI 回复，并一起返回。
func (h *ChatHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Chat: invalid payload, error: %v", err)
		errorResponse(c, http.StatusBadRequest, "Message and session ID are required", nil)
		return
	}

	userMsg, aiMsg, err := h.chatService.SendMessage(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			errorResponse(c, http.StatusBadRequest, "Message and session ID are required", nil)
			return
		}
		log.Errorw("Chat error", "requestID", middleware.GetRequestID(c), "error", err)
		errorResponse(c, http.StatusInternalServerError, "Failed to process chat message", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"userMessage": userMsg, "aiMessage": aiMsg})
}
