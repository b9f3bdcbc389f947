package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mediflow-ai/mediflow/internal/domain/appointment"
	"github.com/mediflow-ai/mediflow/internal/service"
)

type AppointmentHandler struct {
	svc *service.AppointmentService
}

func NewAppointmentHandler(svc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

func (h *AppointmentHandler) Register(rg *gin.RouterGroup) {
	appointments := rg.Group("/appointments")
	{
		appointments.POST("", h.create)
		appointments.GET("/:id", h.get)
		appointments.PATCH("/:id", h.update)
	}
	rg.GET("/patients/:id/appointments", h.listByPatient)
}

type createAppointmentRequest struct {
	PatientID   string                      `json:"patient_id" binding:"required"`
	Type        appointment.AppointmentType `json:"type"`
	ScheduledAt time.Time                   `json:"scheduled_at" binding:"required"`
	Status      appointment.Status          `json:"status"`
}

func (h *AppointmentHandler) create(c *gin.Context) {
	var req createAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.svc.ScheduleAppointment(c.Request.Context(), &appointment.CreateAppointmentCommand{
		PatientID:   req.PatientID,
		Type:        req.Type,
		ScheduledAt: req.ScheduledAt,
		Status:      req.Status,
	}, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, a)
}

func (h *AppointmentHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	a, err := h.svc.GetAppointment(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}

type updateAppointmentRequest struct {
	Type        *appointment.AppointmentType `json:"type"`
	ScheduledAt *time.Time                   `json:"scheduled_at"`
	Status      *appointment.Status          `json:"status"`
}

func (h *AppointmentHandler) update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.svc.UpdateAppointment(c.Request.Context(), id, &appointment.UpdateAppointmentCommand{
		Type:        req.Type,
		ScheduledAt: req.ScheduledAt,
		Status:      req.Status,
	}, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}

func (h *AppointmentHandler) listByPatient(c *gin.Context) {
	appointments, err := h.svc.ListAppointmentsByPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, appointments)
}
