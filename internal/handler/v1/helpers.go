package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mediflow-ai/mediflow/internal/domain"
	"github.com/mediflow-ai/mediflow/internal/domain/appointment"
	"github.com/mediflow-ai/mediflow/internal/domain/note"
	"github.com/mediflow-ai/mediflow/internal/domain/patient"
	"github.com/mediflow-ai/mediflow/internal/domain/referral"
	"github.com/mediflow-ai/mediflow/internal/domain/task"
	"github.com/mediflow-ai/mediflow/internal/domain/workflow"
	"github.com/mediflow-ai/mediflow/internal/service"
	"github.com/mediflow-ai/mediflow/pkg/auth"
)

// actorKey is where the identity middleware stashes the caller's identity.
const actorKey = "mediflow.actor"

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, patient.ErrAllergyNotFound),
		errors.Is(err, patient.ErrConditionNotFound),
		errors.Is(err, note.ErrNoteNotFound),
		errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, appointment.ErrAppointmentNotFound),
		errors.Is(err, referral.ErrReferralNotFound),
		errors.Is(err, workflow.ErrTemplateNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, patient.ErrInvalidGender),
		errors.Is(err, patient.ErrInvalidSeverity),
		errors.Is(err, patient.ErrInvalidDateOfBirth),
		errors.Is(err, note.ErrInvalidStatus),
		errors.Is(err, note.ErrInvalidStatusTransition),
		errors.Is(err, task.ErrInvalidPriority),
		errors.Is(err, task.ErrInvalidStatusTransition),
		errors.Is(err, task.ErrTitleRequired),
		errors.Is(err, appointment.ErrInvalidStatusTransition),
		errors.Is(err, appointment.ErrScheduledAtRequired),
		errors.Is(err, referral.ErrSpecialistRequired),
		errors.Is(err, workflow.ErrNameRequired):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, auth.ErrTokenTypeMismatch):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})

	case errors.Is(err, service.ErrUserInactive):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "account is inactive"})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}
	return true
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a positive integer"})
		return 0, false
	}
	return id, true
}

// actorFrom returns the identity attached by the auth middleware, or the
// system fallback for unauthenticated calls.
func actorFrom(c *gin.Context) string {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(string); ok && actor != "" {
			return actor
		}
	}
	return domain.SystemActor
}
