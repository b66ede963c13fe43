package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneymind/internal/errors"
	"moneymind/internal/services"
)

// ChatHandler handles assistant requests
type ChatHandler struct {
	chatService services.ChatServicer
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService services.ChatServicer) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest represents a message to the assistant
type ChatRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// ChatResponse represents the assistant's reply
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Send asks the assistant a budgeting question
// @Summary     Chat with the assistant
// @Description Send a message to the budgeting assistant. The user's live budget figures are included automatically.
// @Tags        chat
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ChatRequest true "Message"
// @Success     200 {object} ChatResponse "Assistant reply"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Assistant unavailable"
// @Router      /chat [post]
func (h *ChatHandler) Send(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	reply, err := h.chatService.Chat(c.Request.Context(), userID, req.Message)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}
