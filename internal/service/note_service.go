package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mediflow-ai/mediflow/internal/domain"
	"github.com/mediflow-ai/mediflow/internal/domain/note"
	"github.com/mediflow-ai/mediflow/internal/domain/patient"
	"github.com/mediflow-ai/mediflow/pkg/metrics"
)

const entityClinicalNote = "clinical_note"

type NoteService struct {
	repo        note.Repository
	patientRepo patient.Repository
	auditSvc    *AuditService
	collector   *metrics.Collector
	log         *zap.Logger
}

func NewNoteService(repo note.Repository, patientRepo patient.Repository, auditSvc *AuditService, collector *metrics.Collector, log *zap.Logger) *NoteService {
	return &NoteService{repo: repo, patientRepo: patientRepo, auditSvc: auditSvc, collector: collector, log: log}
}

// CreateNote stores a clinical note, defaulting the status to draft. The
// audit actor is the note's author; notes created without an author are
// attributed to the system actor.
func (s *NoteService) CreateNote(ctx context.Context, cmd *note.CreateNoteCommand) (*note.ClinicalNote, error) {
	if cmd.Status != "" && !cmd.Status.IsValid() {
		return nil, note.ErrInvalidStatus
	}
	if _, err := s.patientRepo.GetByID(ctx, cmd.PatientID); err != nil {
		return nil, fmt.Errorf("verifying patient: %w", err)
	}

	n := &note.ClinicalNote{
		PatientID:   cmd.PatientID,
		Type:        cmd.Type,
		Content:     cmd.Content,
		Status:      cmd.Status,
		AIGenerated: cmd.AIGenerated,
		CreatedBy:   strings.TrimSpace(cmd.CreatedBy),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.log.Error("failed to create clinical note", zap.Error(err))
		return nil, fmt.Errorf("creating clinical note: %w", err)
	}

	actor := n.CreatedBy
	if actor == "" {
		actor = domain.SystemActor
	}
	s.auditSvc.Record(ctx, entityClinicalNote, fmt.Sprint(n.ID), domain.ActionCreate, actor)

	if s.collector != nil {
		origin := "clinician"
		if n.AIGenerated {
			origin = "ai"
		}
		s.collector.NotesCreatedTotal.WithLabelValues(origin).Inc()
	}

	return n, nil
}

// UpdateNote shallow-merges the command. Status changes are checked against
// the draft → final → (amended | signed) state machine.
func (s *NoteService) UpdateNote(ctx context.Context, id int64, cmd *note.UpdateNoteCommand, actor string) (*note.ClinicalNote, error) {
	if cmd.Status != nil {
		if !cmd.Status.IsValid() {
			return nil, note.ErrInvalidStatus
		}
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !current.CanTransitionTo(*cmd.Status) {
			return nil, note.ErrInvalidStatusTransition
		}
	}

	n, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, entityClinicalNote, fmt.Sprint(id), domain.ActionUpdate, actor)
	return n, nil
}

func (s *NoteService) GetNote(ctx context.Context, id int64) (*note.ClinicalNote, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *NoteService) ListNotesByPatient(ctx context.Context, patientID string) ([]*note.ClinicalNote, error) {
	return s.repo.ListByPatient(ctx, patientID)
}
