package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docuquery/internal/app"
	"docuquery/internal/transport/http/response"
)

type AskHandler struct {
	answerService *app.AnswerService
}

type AskRequest struct {
	Question       string `json:"question" binding:"required"`
	DocumentID     string `json:"document_id"`
	ConversationID string `json:"conversation_id"`
}

func NewAskHandler(answerService *app.AnswerService) *AskHandler {
	return &AskHandler{answerService: answerService}
}

func (h *AskHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.answerService.Ask(c.Request.Context(), app.AskInput{
		ConversationID: req.ConversationID,
		DocumentID:     req.DocumentID,
		Question:       req.Question,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "ask failed: "+err.Error())
		}
		return
	}

	response.OK(c, result)
}

// History returns the durable turn archive for one conversation.
func (h *AskHandler) History(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	turns, err := h.answerService.History(c.Param("id"), limit)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list history failed")
		}
		return
	}

	response.OK(c, turns)
}
