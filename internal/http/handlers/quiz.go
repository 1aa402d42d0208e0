package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/brainsync-backend/internal/http/middleware"
	"github.com/yungbote/brainsync-backend/internal/http/response"
	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
	"github.com/yungbote/brainsync-backend/internal/services"
)

type QuizHandler struct {
	quizzes services.QuizService
}

func NewQuizHandler(quizzes services.QuizService) *QuizHandler {
	return &QuizHandler{quizzes: quizzes}
}

// POST /api/v1/quiz/generate
// body: { "noteId": "..." } (optional)
func (h *QuizHandler) Generate(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req struct {
		NoteID string `json:"noteId"`
	}
	// An empty body means "use my latest notes".
	if !bindOptionalJSON(c, &req) {
		return
	}
	var noteID *uuid.UUID
	if s := strings.TrimSpace(req.NoteID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			response.RespondAppError(c, apperrors.NotFound("quiz.Generate", "note"))
			return
		}
		noteID = &id
	}
	q, err := h.quizzes.Generate(c.Request.Context(), owner, noteID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"success": true, "data": q})
}

// POST /api/v1/quiz/submit
// body: { "quizId": "...", "answers": { "<questionId>": "<option>" } }
func (h *QuizHandler) Submit(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req struct {
		QuizID  string            `json:"quizId"`
		Answers map[string]string `json:"answers"`
	}
	if !bindJSON(c, &req) {
		return
	}
	quizID, err := uuid.Parse(strings.TrimSpace(req.QuizID))
	if err != nil {
		response.RespondAppError(c, apperrors.NotFound("quiz.Submit", "quiz"))
		return
	}
	q, err := h.quizzes.Submit(c.Request.Context(), owner, quizID, req.Answers)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "score": q.Score, "total": q.Total, "data": q})
}

// POST /api/v1/quiz/chat
// body: { "quizId": "...", "question": "..." }
func (h *QuizHandler) Chat(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req struct {
		QuizID   string `json:"quizId"`
		Question string `json:"question"`
	}
	if !bindJSON(c, &req) {
		return
	}
	quizID, err := uuid.Parse(strings.TrimSpace(req.QuizID))
	if err != nil {
		response.RespondAppError(c, apperrors.NotFound("quiz.Chat", "quiz"))
		return
	}
	answer, err := h.quizzes.Chat(c.Request.Context(), owner, quizID, req.Question)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	middleware.SetAIProvider(c, answer.Provider)
	response.RespondOK(c, gin.H{"success": true, "answer": answer.Text})
}

// GET /api/v1/quiz
func (h *QuizHandler) List(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	list, err := h.quizzes.List(c.Request.Context(), owner)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, response.Data("Quizzes retrieved successfully!", list))
}

// GET /api/v1/quiz/:id
func (h *QuizHandler) Get(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "quiz")
	if !ok {
		return
	}
	q, err := h.quizzes.Get(c.Request.Context(), owner, id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "data": q})
}

// DELETE /api/v1/quiz/:id
func (h *QuizHandler) Delete(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "quiz")
	if !ok {
		return
	}
	if err := h.quizzes.Delete(c.Request.Context(), owner, id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, response.Data("Quiz deleted successfully!", gin.H{"id": id}))
}
