package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/mediflow-ai/mediflow/internal/domain/note"
	"github.com/mediflow-ai/mediflow/internal/service"
)

type NoteHandler struct {
	svc *service.NoteService
}

func NewNoteHandler(svc *service.NoteService) *NoteHandler {
	return &NoteHandler{svc: svc}
}

func (h *NoteHandler) Register(rg *gin.RouterGroup) {
	notes := rg.Group("/notes")
	{
		notes.POST("", h.create)
		notes.GET("/:id", h.get)
		notes.PATCH("/:id", h.update)
	}
	rg.GET("/patients/:id/notes", h.listByPatient)
}

type createNoteRequest struct {
	PatientID   string        `json:"patient_id" binding:"required"`
	Type        note.NoteType `json:"type" binding:"required"`
	Content     string        `json:"content"`
	Status      note.Status   `json:"status"`
	AIGenerated bool          `json:"ai_generated"`
	CreatedBy   string        `json:"created_by"`
}

func (h *NoteHandler) create(c *gin.Context) {
	var req createNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = actorFrom(c)
	}

	n, err := h.svc.CreateNote(c.Request.Context(), &note.CreateNoteCommand{
		PatientID:   req.PatientID,
		Type:        req.Type,
		Content:     req.Content,
		Status:      req.Status,
		AIGenerated: req.AIGenerated,
		CreatedBy:   createdBy,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, n)
}

func (h *NoteHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	n, err := h.svc.GetNote(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, n)
}

type updateNoteRequest struct {
	Type    *note.NoteType `json:"type"`
	Content *string        `json:"content"`
	Status  *note.Status   `json:"status"`
}

func (h *NoteHandler) update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	n, err := h.svc.UpdateNote(c.Request.Context(), id, &note.UpdateNoteCommand{
		Type:    req.Type,
		Content: req.Content,
		Status:  req.Status,
	}, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, n)
}

func (h *NoteHandler) listByPatient(c *gin.Context) {
	notes, err := h.svc.ListNotesByPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, notes)
}
