package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/mediflow-ai/mediflow/internal/domain/task"
	"github.com/mediflow-ai/mediflow/internal/service"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

func (h *TaskHandler) Register(rg *gin.RouterGroup) {
	tasks := rg.Group("/tasks")
	{
		tasks.POST("", h.create)
		tasks.GET("", h.list)
		tasks.GET("/:id", h.get)
		tasks.PATCH("/:id", h.update)
	}
	rg.GET("/patients/:id/tasks", h.listByPatient)
}

type createTaskRequest struct {
	PatientID string        `json:"patient_id"`
	Title     string        `json:"title" binding:"required"`
	Priority  task.Priority `json:"priority"`
	Status    task.Status   `json:"status"`
	DueDate   string        `json:"due_date"`
}

func (h *TaskHandler) create(c *gin.Context) {
	var req createTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.svc.CreateTask(c.Request.Context(), &task.CreateTaskCommand{
		PatientID: req.PatientID,
		Title:     req.Title,
		Priority:  req.Priority,
		Status:    req.Status,
		DueDate:   req.DueDate,
	}, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, t)
}

func (h *TaskHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.GetTask(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, t)
}

type updateTaskRequest struct {
	Title    *string        `json:"title"`
	Priority *task.Priority `json:"priority"`
	Status   *task.Status   `json:"status"`
	DueDate  *string        `json:"due_date"`
}

func (h *TaskHandler) update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.svc.UpdateTask(c.Request.Context(), id, &task.UpdateTaskCommand{
		Title:    req.Title,
		Priority: req.Priority,
		Status:   req.Status,
		DueDate:  req.DueDate,
	}, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, t)
}

func (h *TaskHandler) list(c *gin.Context) {
	tasks, err := h.svc.ListTasks(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, tasks)
}

func (h *TaskHandler) listByPatient(c *gin.Context) {
	tasks, err := h.svc.ListTasksByPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, tasks)
}
