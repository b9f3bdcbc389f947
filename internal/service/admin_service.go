package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mediflow-ai/mediflow/internal/domain"
)

// StatisticsProvider computes a dashboard snapshot from the live data set.
type StatisticsProvider interface {
	Statistics(ctx context.Context) (*domain.Statistics, error)
}

type AdminService struct {
	stats    StatisticsProvider
	auditSvc *AuditService
	log      *zap.Logger
}

func NewAdminService(stats StatisticsProvider, auditSvc *AuditService, log *zap.Logger) *AdminService {
	return &AdminService{stats: stats, auditSvc: auditSvc, log: log}
}

func (s *AdminService) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	stats, err := s.stats.Statistics(ctx)
	if err != nil {
		s.log.Error("failed to compute statistics", zap.Error(err))
		return nil, fmt.Errorf("computing statistics: %w", err)
	}
	return stats, nil
}

func (s *AdminService) GetAuditLog(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, error) {
	return s.auditSvc.Query(ctx, filter)
}
