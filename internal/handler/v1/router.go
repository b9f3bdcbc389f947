package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mediflow-ai/mediflow/internal/config"
	"github.com/mediflow-ai/mediflow/pkg/auth"
	"github.com/mediflow-ai/mediflow/pkg/metrics"
)

// Handlers bundles everything the router mounts under /api/v1.
type Handlers struct {
	Patient     *PatientHandler
	Note        *NoteHandler
	Task        *TaskHandler
	Appointment *AppointmentHandler
	Referral    *ReferralHandler
	Workflow    *WorkflowHandler
	Admin       *AdminHandler
	Auth        *AuthHandler
}

func NewRouter(cfg *config.Config, log *zap.Logger, collector *metrics.Collector, jwtManager *auth.JWTManager, h Handlers) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(AccessLog(log))
	r.Use(Metrics(collector))
	r.Use(CORS(cfg.CORS))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"name":    cfg.App.Name,
			"version": cfg.App.Version,
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api/v1")
	api.Use(Identity(jwtManager))
	{
		h.Patient.Register(api)
		h.Note.Register(api)
		h.Task.Register(api)
		h.Appointment.Register(api)
		h.Referral.Register(api)
		h.Workflow.Register(api)
		h.Admin.Register(api)
		h.Auth.Register(api)
	}

	return r
}
