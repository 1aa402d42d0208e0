package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/brainsync-backend/internal/http/response"
	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
	"github.com/yungbote/brainsync-backend/internal/services"
)

type NoteHandler struct {
	notes     services.NoteService
	assistant services.AssistantService
}

func NewNoteHandler(notes services.NoteService, assistant services.AssistantService) *NoteHandler {
	return &NoteHandler{notes: notes, assistant: assistant}
}

// POST /api/v1/notes
func (h *NoteHandler) Create(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req struct {
		Title    string   `json:"title"`
		Content  string   `json:"content"`
		IsPinned bool     `json:"isPinned"`
		Tags     []string `json:"tags"`
	}
	if !bindJSON(c, &req) {
		return
	}
	note, err := h.notes.Create(c.Request.Context(), owner, services.CreateNoteInput{
		Title:    req.Title,
		Content:  req.Content,
		IsPinned: req.IsPinned,
		Tags:     req.Tags,
	})
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, response.Data("Note created successfully!", note))
}

// GET /api/v1/notes?page=&limit=
func (h *NoteHandler) List(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	page, ok := queryInt(c, "page")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	res, err := h.notes.List(c.Request.Context(), owner, page, limit)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	body := response.Data("Notes retrieved successfully!", res.Notes)
	body["total"] = res.Total
	body["page"] = res.Page
	body["limit"] = res.Limit
	response.RespondOK(c, body)
}

// GET /api/v1/notes/:id
func (h *NoteHandler) Get(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "note")
	if !ok {
		return
	}
	note, err := h.notes.Get(c.Request.Context(), owner, id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, response.Data("Note retrieved successfully!", note))
}

// PATCH /api/v1/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "note")
	if !ok {
		return
	}
	var req struct {
		Title    *string   `json:"title"`
		Content  *string   `json:"content"`
		IsPinned *bool     `json:"isPinned"`
		Tags     *[]string `json:"tags"`
	}
	if !bindJSON(c, &req) {
		return
	}
	in := services.UpdateNoteInput{Title: req.Title, Content: req.Content, IsPinned: req.IsPinned}
	if req.Tags != nil {
		in.Tags, in.SetTags = *req.Tags, true
	}
	note, err := h.notes.Update(c.Request.Context(), owner, id, in)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, response.Data("Note updated successfully!", note))
}

// DELETE /api/v1/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "note")
	if !ok {
		return
	}
	if err := h.notes.Delete(c.Request.Context(), owner, id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, response.Data("Note deleted successfully!", gin.H{"id": id}))
}

// POST /api/v1/notes/:id/summary
func (h *NoteHandler) Summarize(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "note")
	if !ok {
		return
	}
	note, err := h.assistant.Summarize(c.Request.Context(), owner, id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, response.Data("Summary generated successfully!", note))
}

// queryInt reads an optional integer query parameter; absent is 0.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		response.RespondAppError(c, apperrors.New(apperrors.KindInvalidArgument, "http.query", name+" must be an integer"))
		return 0, false
	}
	return n, true
}
