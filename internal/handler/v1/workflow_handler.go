package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/mediflow-ai/mediflow/internal/domain/workflow"
	"github.com/mediflow-ai/mediflow/internal/service"
)

type WorkflowHandler struct {
	svc *service.WorkflowService
}

func NewWorkflowHandler(svc *service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{svc: svc}
}

func (h *WorkflowHandler) Register(rg *gin.RouterGroup) {
	workflows := rg.Group("/workflows")
	{
		workflows.POST("", h.create)
		workflows.GET("", h.list)
		workflows.GET("/:id", h.get)
		workflows.POST("/:id/use", h.recordUsage)
	}
}

type createTemplateRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	StepCount      int    `json:"step_count"`
	ChecklistCount int    `json:"checklist_count"`
}

func (h *WorkflowHandler) create(c *gin.Context) {
	var req createTemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.svc.CreateTemplate(c.Request.Context(), &workflow.CreateTemplateCommand{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		StepCount:      req.StepCount,
		ChecklistCount: req.ChecklistCount,
	}, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, t)
}

func (h *WorkflowHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.GetTemplate(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, t)
}

func (h *WorkflowHandler) list(c *gin.Context) {
	templates, err := h.svc.ListTemplates(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, templates)
}

func (h *WorkflowHandler) recordUsage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.RecordUsage(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, t)
}
