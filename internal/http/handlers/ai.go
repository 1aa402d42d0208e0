package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/brainsync-backend/internal/http/middleware"
	"github.com/yungbote/brainsync-backend/internal/http/response"
	"github.com/yungbote/brainsync-backend/internal/services"
)

type AIHandler struct {
	assistant services.AssistantService
}

func NewAIHandler(assistant services.AssistantService) *AIHandler {
	return &AIHandler{assistant: assistant}
}

// POST /api/v1/ai/chat
// body: { "question": "..." }
func (h *AIHandler) Chat(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req struct {
		Question string `json:"question"`
	}
	if !bindJSON(c, &req) {
		return
	}
	answer, err := h.assistant.Ask(c.Request.Context(), owner, req.Question)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	middleware.SetAIProvider(c, answer.Provider)
	response.RespondOK(c, gin.H{"success": true, "answer": answer.Text})
}
