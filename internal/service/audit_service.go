package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mediflow-ai/mediflow/internal/domain"
	"github.com/mediflow-ai/mediflow/pkg/metrics"
)

type AuditRepository interface {
	AppendAudit(ctx context.Context, e *domain.AuditEntry) (*domain.AuditEntry, error)
	AuditLog(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, error)
}

// AuditService is the single post-mutation hook: every service calls Record
// after a successful create/update/delete, before returning the result to
// the caller. Recording is best-effort — a failed append is logged and never
// rolls back or fails the primary operation.
type AuditService struct {
	repo      AuditRepository
	log       *zap.Logger
	collector *metrics.Collector
}

func NewAuditService(repo AuditRepository, collector *metrics.Collector, log *zap.Logger) *AuditService {
	return &AuditService{repo: repo, collector: collector, log: log}
}

// Record appends one audit entry for a mutation. The entry is written
// synchronously so it exists before the mutation's result reaches the
// caller.
func (s *AuditService) Record(ctx context.Context, entityType, entityID string, action domain.AuditAction, actor string) {
	if actor == "" {
		actor = domain.SystemActor
	}

	entry := &domain.AuditEntry{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Actor:      actor,
	}
	if _, err := s.repo.AppendAudit(ctx, entry); err != nil {
		s.log.Error("failed to append audit entry",
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
		return
	}

	if s.collector != nil {
		s.collector.AuditEntriesTotal.WithLabelValues(string(action)).Inc()
	}
}

// Query returns audit entries narrowed by the filter, most recent first.
func (s *AuditService) Query(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, error) {
	return s.repo.AuditLog(ctx, filter)
}
