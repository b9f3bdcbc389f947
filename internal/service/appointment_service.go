package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mediflow-ai/mediflow/internal/domain"
	"github.com/mediflow-ai/mediflow/internal/domain/appointment"
	"github.com/mediflow-ai/mediflow/internal/domain/patient"
)

const entityAppointment = "appointment"

type AppointmentService struct {
	repo        appointment.Repository
	patientRepo patient.Repository
	auditSvc    *AuditService
	log         *zap.Logger
}

func NewAppointmentService(repo appointment.Repository, patientRepo patient.Repository, auditSvc *AuditService, log *zap.Logger) *AppointmentService {
	return &AppointmentService{repo: repo, patientRepo: patientRepo, auditSvc: auditSvc, log: log}
}

func (s *AppointmentService) ScheduleAppointment(ctx context.Context, cmd *appointment.CreateAppointmentCommand, actor string) (*appointment.Appointment, error) {
	if cmd.ScheduledAt.IsZero() {
		return nil, appointment.ErrScheduledAtRequired
	}
	if _, err := s.patientRepo.GetByID(ctx, cmd.PatientID); err != nil {
		return nil, fmt.Errorf("verifying patient: %w", err)
	}

	a := &appointment.Appointment{
		PatientID:   cmd.PatientID,
		Type:        cmd.Type,
		ScheduledAt: cmd.ScheduledAt,
		Status:      cmd.Status,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		s.log.Error("failed to create appointment", zap.Error(err))
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	s.auditSvc.Record(ctx, entityAppointment, fmt.Sprint(a.ID), domain.ActionCreate, actor)
	return a, nil
}

func (s *AppointmentService) UpdateAppointment(ctx context.Context, id int64, cmd *appointment.UpdateAppointmentCommand, actor string) (*appointment.Appointment, error) {
	if cmd.Status != nil {
		if !cmd.Status.IsValid() {
			return nil, appointment.ErrInvalidStatusTransition
		}
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !current.CanTransitionTo(*cmd.Status) {
			return nil, appointment.ErrInvalidStatusTransition
		}
	}

	a, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, entityAppointment, fmt.Sprint(id), domain.ActionUpdate, actor)
	return a, nil
}

func (s *AppointmentService) GetAppointment(ctx context.Context, id int64) (*appointment.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AppointmentService) ListAppointmentsByPatient(ctx context.Context, patientID string) ([]*appointment.Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}
