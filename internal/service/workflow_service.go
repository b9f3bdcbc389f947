package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mediflow-ai/mediflow/internal/domain"
	"github.com/mediflow-ai/mediflow/internal/domain/workflow"
	"github.com/mediflow-ai/mediflow/pkg/metrics"
)

const entityWorkflowTemplate = "workflow_template"

type WorkflowService struct {
	repo      workflow.Repository
	auditSvc  *AuditService
	collector *metrics.Collector
	log       *zap.Logger
}

func NewWorkflowService(repo workflow.Repository, auditSvc *AuditService, collector *metrics.Collector, log *zap.Logger) *WorkflowService {
	return &WorkflowService{repo: repo, auditSvc: auditSvc, collector: collector, log: log}
}

func (s *WorkflowService) CreateTemplate(ctx context.Context, cmd *workflow.CreateTemplateCommand, actor string) (*workflow.Template, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, workflow.ErrNameRequired
	}

	t := &workflow.Template{
		Name:           strings.TrimSpace(cmd.Name),
		Description:    cmd.Description,
		Category:       cmd.Category,
		StepCount:      cmd.StepCount,
		ChecklistCount: cmd.ChecklistCount,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		s.log.Error("failed to create workflow template", zap.Error(err))
		return nil, fmt.Errorf("creating workflow template: %w", err)
	}

	s.auditSvc.Record(ctx, entityWorkflowTemplate, fmt.Sprint(t.ID), domain.ActionCreate, actor)
	return t, nil
}

func (s *WorkflowService) GetTemplate(ctx context.Context, id int64) (*workflow.Template, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *WorkflowService) ListTemplates(ctx context.Context) ([]*workflow.Template, error) {
	return s.repo.List(ctx)
}

// RecordUsage bumps the template's usage counter. Unknown templates are an
// error, and nothing is audited on failure.
func (s *WorkflowService) RecordUsage(ctx context.Context, id int64, actor string) (*workflow.Template, error) {
	t, err := s.repo.IncrementUsage(ctx, id)
	if err != nil {
		return nil, err
	}

	s.collector.WorkflowUsageTotal.WithLabelValues(t.Category).Inc()
	s.auditSvc.Record(ctx, entityWorkflowTemplate, fmt.Sprint(id), domain.ActionUpdate, actor)
	return t, nil
}
