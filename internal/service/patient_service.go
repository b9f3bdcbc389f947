package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mediflow-ai/mediflow/internal/domain"
	"github.com/mediflow-ai/mediflow/internal/domain/appointment"
	"github.com/mediflow-ai/mediflow/internal/domain/note"
	"github.com/mediflow-ai/mediflow/internal/domain/patient"
	"github.com/mediflow-ai/mediflow/internal/domain/referral"
	"github.com/mediflow-ai/mediflow/internal/domain/task"
	"github.com/mediflow-ai/mediflow/pkg/metrics"
)

const entityPatient = "patient"

// PatientChart is a patient merged with every dependent record sequence, the
// shape the registry detail view renders.
type PatientChart struct {
	patient.Patient
	Allergies         []*patient.Allergy          `json:"allergies"`
	ChronicConditions []*patient.ChronicCondition `json:"chronic_conditions"`
	ClinicalNotes     []*note.ClinicalNote        `json:"clinical_notes"`
	Tasks             []*task.Task                `json:"tasks"`
	Appointments      []*appointment.Appointment  `json:"appointments"`
	Referrals         []*referral.Referral        `json:"referrals"`
}

type PatientService struct {
	repo         patient.Repository
	allergies    patient.AllergyRepository
	conditions   patient.ConditionRepository
	notes        note.Repository
	tasks        task.Repository
	appointments appointment.Repository
	referrals    referral.Repository
	auditSvc     *AuditService
	collector    *metrics.Collector
	log          *zap.Logger
}

func NewPatientService(
	repo patient.Repository,
	allergies patient.AllergyRepository,
	conditions patient.ConditionRepository,
	notes note.Repository,
	tasks task.Repository,
	appointments appointment.Repository,
	referrals referral.Repository,
	auditSvc *AuditService,
	collector *metrics.Collector,
	log *zap.Logger,
) *PatientService {
	return &PatientService{
		repo:         repo,
		allergies:    allergies,
		conditions:   conditions,
		notes:        notes,
		tasks:        tasks,
		appointments: appointments,
		referrals:    referrals,
		auditSvc:     auditSvc,
		collector:    collector,
		log:          log,
	}
}

func (s *PatientService) CreatePatient(ctx context.Context, cmd *patient.CreatePatientCommand, actor string) (*patient.Patient, error) {
	if err := validateCreatePatient(cmd); err != nil {
		return nil, err
	}

	p := &patient.Patient{
		FirstName:   strings.TrimSpace(cmd.FirstName),
		LastName:    strings.TrimSpace(cmd.LastName),
		DateOfBirth: cmd.DateOfBirth,
		Gender:      cmd.Gender,
		BloodType:   cmd.BloodType,
		ContactInfo: patient.ContactInfo{
			Phone:   strings.TrimSpace(cmd.Phone),
			Email:   strings.ToLower(strings.TrimSpace(cmd.Email)),
			Address: cmd.Address,
		},
		EmergencyContact: cmd.EmergencyContact,
		Insurance:        cmd.Insurance,
		Status:           patient.StatusActive,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to create patient", zap.Error(err))
		return nil, fmt.Errorf("creating patient: %w", err)
	}

	s.auditSvc.Record(ctx, entityPatient, p.ID, domain.ActionCreate, actor)
	if s.collector != nil {
		s.collector.PatientsCreatedTotal.Inc()
	}

	s.log.Info("patient created",
		zap.String("patient_id", p.ID),
		zap.String("actor", actor),
	)

	return p, nil
}

// GetPatientChart resolves the patient together with all six dependent
// sequences.
func (s *PatientService) GetPatientChart(ctx context.Context, id string) (*PatientChart, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	chart := &PatientChart{Patient: *p}
	if chart.Allergies, err = s.allergies.ListByPatient(ctx, id); err != nil {
		return nil, fmt.Errorf("loading allergies: %w", err)
	}
	if chart.ChronicConditions, err = s.conditions.ListByPatient(ctx, id); err != nil {
		return nil, fmt.Errorf("loading chronic conditions: %w", err)
	}
	if chart.ClinicalNotes, err = s.notes.ListByPatient(ctx, id); err != nil {
		return nil, fmt.Errorf("loading clinical notes: %w", err)
	}
	if chart.Tasks, err = s.tasks.ListByPatient(ctx, id); err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	if chart.Appointments, err = s.appointments.ListByPatient(ctx, id); err != nil {
		return nil, fmt.Errorf("loading appointments: %w", err)
	}
	if chart.Referrals, err = s.referrals.ListByPatient(ctx, id); err != nil {
		return nil, fmt.Errorf("loading referrals: %w", err)
	}
	return chart, nil
}

func (s *PatientService) UpdatePatient(ctx context.Context, id string, cmd *patient.UpdatePatientCommand, actor string) (*patient.Patient, error) {
	p, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, entityPatient, id, domain.ActionUpdate, actor)
	return p, nil
}

// DeletePatient removes the patient and cascades across every dependent
// entity sequence. One DELETE audit entry is recorded for the patient;
// dependent deletions are not separately audited.
func (s *PatientService) DeletePatient(ctx context.Context, id string, actor string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.Record(ctx, entityPatient, id, domain.ActionDelete, actor)
	if s.collector != nil {
		s.collector.PatientsDeletedTotal.Inc()
	}

	s.log.Info("patient deleted",
		zap.String("patient_id", id),
		zap.String("actor", actor),
	)
	return nil
}

func (s *PatientService) ListPatients(ctx context.Context) ([]*patient.Patient, error) {
	return s.repo.List(ctx)
}

// SearchPatients matches the query case-insensitively against first name,
// last name, identifier and email. Empty queries are filtered upstream by
// callers; the service passes them through unchanged.
func (s *PatientService) SearchPatients(ctx context.Context, query string) ([]*patient.Patient, error) {
	return s.repo.Search(ctx, query)
}

func (s *PatientService) AddAllergy(ctx context.Context, cmd *patient.AddAllergyCommand, actor string) (*patient.Allergy, error) {
	if cmd.Severity != "" && !cmd.Severity.IsValid() {
		return nil, patient.ErrInvalidSeverity
	}
	if _, err := s.repo.GetByID(ctx, cmd.PatientID); err != nil {
		return nil, fmt.Errorf("verifying patient: %w", err)
	}

	a := &patient.Allergy{
		PatientID: cmd.PatientID,
		Allergen:  strings.TrimSpace(cmd.Allergen),
		Reaction:  cmd.Reaction,
		Severity:  cmd.Severity,
		Status:    cmd.Status,
	}
	if err := s.allergies.Add(ctx, a); err != nil {
		return nil, fmt.Errorf("adding allergy: %w", err)
	}

	s.auditSvc.Record(ctx, "allergy", fmt.Sprint(a.ID), domain.ActionCreate, actor)
	return a, nil
}

func (s *PatientService) RemoveAllergy(ctx context.Context, id int64, actor string) error {
	if err := s.allergies.Remove(ctx, id); err != nil {
		return err
	}

	s.auditSvc.Record(ctx, "allergy", fmt.Sprint(id), domain.ActionDelete, actor)
	return nil
}

func (s *PatientService) ListAllergies(ctx context.Context, patientID string) ([]*patient.Allergy, error) {
	return s.allergies.ListByPatient(ctx, patientID)
}

func (s *PatientService) AddCondition(ctx context.Context, cmd *patient.AddConditionCommand, actor string) (*patient.ChronicCondition, error) {
	if _, err := s.repo.GetByID(ctx, cmd.PatientID); err != nil {
		return nil, fmt.Errorf("verifying patient: %w", err)
	}

	c := &patient.ChronicCondition{
		PatientID:     cmd.PatientID,
		Condition:     strings.TrimSpace(cmd.Condition),
		DiagnosisDate: cmd.DiagnosisDate,
		Status:        cmd.Status,
	}
	if err := s.conditions.Add(ctx, c); err != nil {
		return nil, fmt.Errorf("adding chronic condition: %w", err)
	}

	s.auditSvc.Record(ctx, "chronic_condition", fmt.Sprint(c.ID), domain.ActionCreate, actor)
	return c, nil
}

func (s *PatientService) ListConditions(ctx context.Context, patientID string) ([]*patient.ChronicCondition, error) {
	return s.conditions.ListByPatient(ctx, patientID)
}

func validateCreatePatient(cmd *patient.CreatePatientCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.FirstName) == "" {
		errs = append(errs, "first_name is required")
	}
	if strings.TrimSpace(cmd.LastName) == "" {
		errs = append(errs, "last_name is required")
	}
	if cmd.DateOfBirth == "" {
		errs = append(errs, "date_of_birth is required")
	} else if dob, err := time.Parse("2006-01-02", cmd.DateOfBirth); err != nil {
		errs = append(errs, "date_of_birth must be YYYY-MM-DD")
	} else if dob.After(time.Now()) {
		errs = append(errs, "date_of_birth cannot be in the future")
	}
	if cmd.Gender != "" && !cmd.Gender.IsValid() {
		errs = append(errs, "gender is invalid")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
