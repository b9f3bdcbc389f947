// Package store holds the in-memory clinical object graph. It keeps ordered
// sequences per entity type, hands out copies so callers cannot mutate
// internal state, assigns identifiers, cascades patient deletion, and appends
// audit entries. It is the single runtime data layer; the relational schema
// in pkg/database describes the future persistent backend and is not wired
// here.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mediflow-ai/mediflow/internal/domain"
	"github.com/mediflow-ai/mediflow/internal/domain/appointment"
	"github.com/mediflow-ai/mediflow/internal/domain/note"
	"github.com/mediflow-ai/mediflow/internal/domain/patient"
	"github.com/mediflow-ai/mediflow/internal/domain/referral"
	"github.com/mediflow-ai/mediflow/internal/domain/task"
	"github.com/mediflow-ai/mediflow/internal/domain/workflow"
)

// Memory is a mutex-guarded store. Every operation runs under the lock, so
// concurrent updates serialize with last-writer-wins semantics and the
// patient-delete cascade is atomic with respect to dependent creates. Typed
// repository views over the shared state are handed out by the accessor
// methods below.
type Memory struct {
	mu sync.RWMutex

	patients     []*patient.Patient
	allergies    []*patient.Allergy
	conditions   []*patient.ChronicCondition
	notes        []*note.ClinicalNote
	tasks        []*task.Task
	appointments []*appointment.Appointment
	referrals    []*referral.Referral
	templates    []*workflow.Template
	users        []*domain.User
	audit        []*domain.AuditEntry

	nextAllergyID     int64
	nextConditionID   int64
	nextNoteID        int64
	nextTaskID        int64
	nextAppointmentID int64
	nextReferralID    int64
	nextTemplateID    int64
	nextAuditID       int64

	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

func (s *Memory) Patients() patient.Repository            { return &patientRepo{s} }
func (s *Memory) Allergies() patient.AllergyRepository    { return &allergyRepo{s} }
func (s *Memory) Conditions() patient.ConditionRepository { return &conditionRepo{s} }
func (s *Memory) Notes() note.Repository                  { return &noteRepo{s} }
func (s *Memory) Tasks() task.Repository                  { return &taskRepo{s} }
func (s *Memory) Appointments() appointment.Repository    { return &appointmentRepo{s} }
func (s *Memory) Referrals() referral.Repository          { return &referralRepo{s} }
func (s *Memory) Templates() workflow.Repository          { return &templateRepo{s} }

// ── Audit ──────────────────────────────────────────────────────────────────

// AppendAudit assigns the next sequential identifier and the current
// wall-clock timestamp, then appends. Timestamps are non-decreasing because
// assignment happens under the store lock. The created entry is returned for
// testability; appending never fails.
func (s *Memory) AppendAudit(_ context.Context, e *domain.AuditEntry) (*domain.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextAuditID++
	e.ID = s.nextAuditID
	e.OccurredAt = s.now()
	if e.Actor == "" {
		e.Actor = domain.SystemActor
	}

	cp := *e
	s.audit = append(s.audit, &cp)
	return e, nil
}

// AuditLog returns entries matching every set filter field, most recent
// first.
func (s *Memory) AuditLog(_ context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.AuditEntry
	for _, e := range s.audit {
		if filter.EntityType != "" && e.EntityType != filter.EntityType {
			continue
		}
		if filter.EntityID != "" && e.EntityID != filter.EntityID {
			continue
		}
		if filter.Actor != "" && e.Actor != filter.Actor {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	return out, nil
}

// ── Statistics ─────────────────────────────────────────────────────────────

// Statistics scans the live sequences. Nothing is cached; every call reflects
// the store at that instant.
func (s *Memory) Statistics(_ context.Context) (*domain.Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.Statistics{
		TotalPatients:      len(s.patients),
		TotalClinicalNotes: len(s.notes),
	}
	for _, p := range s.patients {
		if p.IsActive() {
			stats.ActivePatients++
		}
	}
	for _, n := range s.notes {
		if n.AIGenerated {
			stats.AIGeneratedNotes++
		}
	}
	for _, t := range s.tasks {
		if t.Status == task.StatusPending {
			stats.PendingTasks++
		}
	}
	now := s.now()
	for _, a := range s.appointments {
		if a.IsUpcoming(now) {
			stats.UpcomingAppointments++
		}
	}
	return stats, nil
}

// ── Users ──────────────────────────────────────────────────────────────────

func (s *Memory) CreateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := s.now()
	u.CreatedAt = now
	u.UpdatedAt = now

	cp := *u
	s.users = append(s.users, &cp)
	return nil
}

func (s *Memory) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Memory) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID.String() == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Memory) TouchUserLogin(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID.String() == id {
			now := s.now()
			u.LastLoginAt = &now
			u.UpdatedAt = now
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// ── Helpers ────────────────────────────────────────────────────────────────

func clonePatient(p *patient.Patient) *patient.Patient {
	cp := *p
	if p.EmergencyContact != nil {
		ec := *p.EmergencyContact
		cp.EmergencyContact = &ec
	}
	if p.Insurance != nil {
		ins := *p.Insurance
		cp.Insurance = &ins
	}
	return &cp
}

func deleteWhere[T any](xs []*T, match func(*T) bool) []*T {
	out := xs[:0]
	for _, x := range xs {
		if !match(x) {
			out = append(out, x)
		}
	}
	// Release the tail so removed records are not retained.
	for i := len(out); i < len(xs); i++ {
		xs[i] = nil
	}
	return out
}
