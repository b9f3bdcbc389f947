package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mediflow-ai/mediflow/internal/config"
	v1 "github.com/mediflow-ai/mediflow/internal/handler/v1"
	"github.com/mediflow-ai/mediflow/internal/service"
	"github.com/mediflow-ai/mediflow/internal/store"
	"github.com/mediflow-ai/mediflow/pkg/auth"
	"github.com/mediflow-ai/mediflow/pkg/logger"
	"github.com/mediflow-ai/mediflow/pkg/metrics"
	"github.com/mediflow-ai/mediflow/pkg/tracer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		tp, err := tracer.Init(cfg.Tracing)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Warn("tracer shutdown", zap.Error(err))
			}
		}()
	}

	collector := metrics.NewCollector("mediflow")
	jwtManager := auth.NewJWTManager(cfg.JWT)

	mem := store.NewMemory()
	if cfg.Store.SeedDemoData {
		if err := mem.Seed(ctx); err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
		log.Info("demo data seeded")
	}

	auditSvc := service.NewAuditService(mem, collector, log)
	patientSvc := service.NewPatientService(
		mem.Patients(), mem.Allergies(), mem.Conditions(),
		mem.Notes(), mem.Tasks(), mem.Appointments(), mem.Referrals(),
		auditSvc, collector, log,
	)
	noteSvc := service.NewNoteService(mem.Notes(), mem.Patients(), auditSvc, collector, log)
	taskSvc := service.NewTaskService(mem.Tasks(), mem.Patients(), auditSvc, collector, log)
	appointmentSvc := service.NewAppointmentService(mem.Appointments(), mem.Patients(), auditSvc, log)
	referralSvc := service.NewReferralService(mem.Referrals(), mem.Patients(), auditSvc, log)
	workflowSvc := service.NewWorkflowService(mem.Templates(), auditSvc, collector, log)
	adminSvc := service.NewAdminService(mem, auditSvc, log)
	authSvc := service.NewAuthService(mem, jwtManager, log)

	router := v1.NewRouter(cfg, log, collector, jwtManager, v1.Handlers{
		Patient:     v1.NewPatientHandler(patientSvc),
		Note:        v1.NewNoteHandler(noteSvc),
		Task:        v1.NewTaskHandler(taskSvc),
		Appointment: v1.NewAppointmentHandler(appointmentSvc),
		Referral:    v1.NewReferralHandler(referralSvc),
		Workflow:    v1.NewWorkflowHandler(workflowSvc),
		Admin:       v1.NewAdminHandler(adminSvc),
		Auth:        v1.NewAuthHandler(authSvc),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("stopped")
	return nil
}
