package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mediflow-ai/mediflow/internal/domain"
	"github.com/mediflow-ai/mediflow/internal/domain/patient"
	"github.com/mediflow-ai/mediflow/internal/domain/task"
	"github.com/mediflow-ai/mediflow/pkg/metrics"
)

const entityTask = "task"

type TaskService struct {
	repo        task.Repository
	patientRepo patient.Repository
	auditSvc    *AuditService
	collector   *metrics.Collector
	log         *zap.Logger
}

func NewTaskService(repo task.Repository, patientRepo patient.Repository, auditSvc *AuditService, collector *metrics.Collector, log *zap.Logger) *TaskService {
	return &TaskService{repo: repo, patientRepo: patientRepo, auditSvc: auditSvc, collector: collector, log: log}
}

func (s *TaskService) CreateTask(ctx context.Context, cmd *task.CreateTaskCommand, actor string) (*task.Task, error) {
	if strings.TrimSpace(cmd.Title) == "" {
		return nil, task.ErrTitleRequired
	}
	if cmd.Priority != "" && !cmd.Priority.IsValid() {
		return nil, task.ErrInvalidPriority
	}
	// The patient reference is optional; when present it must exist.
	if cmd.PatientID != "" {
		if _, err := s.patientRepo.GetByID(ctx, cmd.PatientID); err != nil {
			return nil, fmt.Errorf("verifying patient: %w", err)
		}
	}

	t := &task.Task{
		PatientID: cmd.PatientID,
		Title:     strings.TrimSpace(cmd.Title),
		Priority:  cmd.Priority,
		Status:    cmd.Status,
		DueDate:   cmd.DueDate,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		s.log.Error("failed to create task", zap.Error(err))
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.auditSvc.Record(ctx, entityTask, fmt.Sprint(t.ID), domain.ActionCreate, actor)
	return t, nil
}

// UpdateTask shallow-merges the command. A merge that moves the status to
// completed stamps the completion metadata; completed and cancelled admit no
// further transitions.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, cmd *task.UpdateTaskCommand, actor string) (*task.Task, error) {
	if cmd.Status != nil {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !current.CanTransitionTo(*cmd.Status) {
			return nil, task.ErrInvalidStatusTransition
		}
	}
	if cmd.CompletedBy == "" {
		cmd.CompletedBy = actor
	}

	t, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, entityTask, fmt.Sprint(id), domain.ActionUpdate, actor)

	if s.collector != nil && cmd.Status != nil && *cmd.Status == task.StatusCompleted {
		s.collector.TasksCompletedTotal.Inc()
	}

	return t, nil
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context) ([]*task.Task, error) {
	return s.repo.List(ctx)
}

func (s *TaskService) ListTasksByPatient(ctx context.Context, patientID string) ([]*task.Task, error) {
	return s.repo.ListByPatient(ctx, patientID)
}
