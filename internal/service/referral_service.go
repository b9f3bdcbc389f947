package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mediflow-ai/mediflow/internal/domain"
	"github.com/mediflow-ai/mediflow/internal/domain/patient"
	"github.com/mediflow-ai/mediflow/internal/domain/referral"
)

const entityReferral = "referral"

type ReferralService struct {
	repo        referral.Repository
	patientRepo patient.Repository
	auditSvc    *AuditService
	log         *zap.Logger
}

func NewReferralService(repo referral.Repository, patientRepo patient.Repository, auditSvc *AuditService, log *zap.Logger) *ReferralService {
	return &ReferralService{repo: repo, patientRepo: patientRepo, auditSvc: auditSvc, log: log}
}

func (s *ReferralService) CreateReferral(ctx context.Context, cmd *referral.CreateReferralCommand, actor string) (*referral.Referral, error) {
	if strings.TrimSpace(cmd.Specialist) == "" {
		return nil, referral.ErrSpecialistRequired
	}
	if _, err := s.patientRepo.GetByID(ctx, cmd.PatientID); err != nil {
		return nil, fmt.Errorf("verifying patient: %w", err)
	}

	r := &referral.Referral{
		PatientID:  cmd.PatientID,
		Specialist: strings.TrimSpace(cmd.Specialist),
		Reason:     cmd.Reason,
		Status:     cmd.Status,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		s.log.Error("failed to create referral", zap.Error(err))
		return nil, fmt.Errorf("creating referral: %w", err)
	}

	s.auditSvc.Record(ctx, entityReferral, fmt.Sprint(r.ID), domain.ActionCreate, actor)
	return r, nil
}

func (s *ReferralService) UpdateReferral(ctx context.Context, id int64, cmd *referral.UpdateReferralCommand, actor string) (*referral.Referral, error) {
	if cmd.Specialist != nil && strings.TrimSpace(*cmd.Specialist) == "" {
		return nil, referral.ErrSpecialistRequired
	}

	r, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, entityReferral, fmt.Sprint(id), domain.ActionUpdate, actor)
	return r, nil
}

func (s *ReferralService) GetReferral(ctx context.Context, id int64) (*referral.Referral, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ReferralService) ListReferralsByPatient(ctx context.Context, patientID string) ([]*referral.Referral, error) {
	return s.repo.ListByPatient(ctx, patientID)
}
