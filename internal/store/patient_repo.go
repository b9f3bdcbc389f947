package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/mediflow-ai/mediflow/internal/domain/appointment"
	"github.com/mediflow-ai/mediflow/internal/domain/note"
	"github.com/mediflow-ai/mediflow/internal/domain/patient"
	"github.com/mediflow-ai/mediflow/internal/domain/referral"
	"github.com/mediflow-ai/mediflow/internal/domain/task"
)

type patientRepo struct {
	s *Memory
}

func (r *patientRepo) Create(_ context.Context, p *patient.Patient) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = patient.StatusActive
	}

	s.patients = append(s.patients, clonePatient(p))
	return nil
}

func (r *patientRepo) GetByID(_ context.Context, id string) (*patient.Patient, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.findPatientLocked(id)
	if p == nil {
		return nil, patient.ErrPatientNotFound
	}
	return clonePatient(p), nil
}

func (r *patientRepo) Update(_ context.Context, id string, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPatientLocked(id)
	if p == nil {
		return nil, patient.ErrPatientNotFound
	}

	if cmd.FirstName != nil {
		p.FirstName = *cmd.FirstName
	}
	if cmd.LastName != nil {
		p.LastName = *cmd.LastName
	}
	if cmd.DateOfBirth != nil {
		p.DateOfBirth = *cmd.DateOfBirth
	}
	if cmd.Gender != nil {
		p.Gender = *cmd.Gender
	}
	if cmd.BloodType != nil {
		p.BloodType = *cmd.BloodType
	}
	if cmd.Phone != nil {
		p.Phone = *cmd.Phone
	}
	if cmd.Email != nil {
		p.Email = *cmd.Email
	}
	if cmd.Address != nil {
		p.Address = *cmd.Address
	}
	if cmd.EmergencyContact != nil {
		ec := *cmd.EmergencyContact
		p.EmergencyContact = &ec
	}
	if cmd.Insurance != nil {
		ins := *cmd.Insurance
		p.Insurance = &ins
	}
	if cmd.Status != nil {
		p.Status = *cmd.Status
	}
	p.UpdatedAt = s.now()

	return clonePatient(p), nil
}

// Delete removes the patient and every dependent allergy, chronic condition,
// clinical note, task, appointment and referral in one critical section.
func (r *patientRepo) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findPatientLocked(id) == nil {
		return patient.ErrPatientNotFound
	}

	s.patients = deleteWhere(s.patients, func(p *patient.Patient) bool { return p.ID == id })
	s.allergies = deleteWhere(s.allergies, func(a *patient.Allergy) bool { return a.PatientID == id })
	s.conditions = deleteWhere(s.conditions, func(c *patient.ChronicCondition) bool { return c.PatientID == id })
	s.notes = deleteWhere(s.notes, func(n *note.ClinicalNote) bool { return n.PatientID == id })
	s.tasks = deleteWhere(s.tasks, func(t *task.Task) bool { return t.PatientID == id })
	s.appointments = deleteWhere(s.appointments, func(a *appointment.Appointment) bool { return a.PatientID == id })
	s.referrals = deleteWhere(s.referrals, func(rf *referral.Referral) bool { return rf.PatientID == id })
	return nil
}

func (r *patientRepo) List(_ context.Context) ([]*patient.Patient, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*patient.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		out = append(out, clonePatient(p))
	}
	return out, nil
}

func (r *patientRepo) Search(_ context.Context, query string) ([]*patient.Patient, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*patient.Patient{}
	for _, p := range s.patients {
		if p.MatchesQuery(query) {
			out = append(out, clonePatient(p))
		}
	}
	return out, nil
}

func (s *Memory) findPatientLocked(id string) *patient.Patient {
	for _, p := range s.patients {
		if p.ID == id {
			return p
		}
	}
	return nil
}

type allergyRepo struct {
	s *Memory
}

func (r *allergyRepo) Add(_ context.Context, a *patient.Allergy) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextAllergyID++
	a.ID = s.nextAllergyID
	a.CreatedAt = s.now()
	if a.Status == "" {
		a.Status = patient.AllergyActive
	}

	cp := *a
	s.allergies = append(s.allergies, &cp)
	return nil
}

func (r *allergyRepo) ListByPatient(_ context.Context, patientID string) ([]*patient.Allergy, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*patient.Allergy{}
	for _, a := range s.allergies {
		if a.PatientID == patientID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *allergyRepo) Remove(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.allergies {
		if a.ID == id {
			s.allergies = append(s.allergies[:i], s.allergies[i+1:]...)
			return nil
		}
	}
	return patient.ErrAllergyNotFound
}

type conditionRepo struct {
	s *Memory
}

func (r *conditionRepo) Add(_ context.Context, c *patient.ChronicCondition) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextConditionID++
	c.ID = s.nextConditionID
	c.CreatedAt = s.now()
	if c.Status == "" {
		c.Status = patient.ConditionActive
	}

	cp := *c
	s.conditions = append(s.conditions, &cp)
	return nil
}

func (r *conditionRepo) ListByPatient(_ context.Context, patientID string) ([]*patient.ChronicCondition, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*patient.ChronicCondition{}
	for _, c := range s.conditions {
		if c.PatientID == patientID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}
