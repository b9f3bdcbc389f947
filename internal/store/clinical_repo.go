package store

import (
	"context"

	"github.com/mediflow-ai/mediflow/internal/domain/appointment"
	"github.com/mediflow-ai/mediflow/internal/domain/note"
	"github.com/mediflow-ai/mediflow/internal/domain/referral"
	"github.com/mediflow-ai/mediflow/internal/domain/task"
	"github.com/mediflow-ai/mediflow/internal/domain/workflow"
)

type noteRepo struct {
	s *Memory
}

func (r *noteRepo) Create(_ context.Context, n *note.ClinicalNote) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextNoteID++
	n.ID = s.nextNoteID
	now := s.now()
	n.CreatedAt = now
	n.UpdatedAt = now
	if n.Status == "" {
		n.Status = note.StatusDraft
	}

	cp := *n
	s.notes = append(s.notes, &cp)
	return nil
}

func (r *noteRepo) GetByID(_ context.Context, id int64) (*note.ClinicalNote, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.notes {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, note.ErrNoteNotFound
}

func (r *noteRepo) Update(_ context.Context, id int64, cmd *note.UpdateNoteCommand) (*note.ClinicalNote, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notes {
		if n.ID != id {
			continue
		}
		if cmd.Type != nil {
			n.Type = *cmd.Type
		}
		if cmd.Content != nil {
			n.Content = *cmd.Content
		}
		if cmd.Status != nil {
			n.Status = *cmd.Status
		}
		n.UpdatedAt = s.now()

		cp := *n
		return &cp, nil
	}
	return nil, note.ErrNoteNotFound
}

func (r *noteRepo) ListByPatient(_ context.Context, patientID string) ([]*note.ClinicalNote, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*note.ClinicalNote{}
	for _, n := range s.notes {
		if n.PatientID == patientID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

type taskRepo struct {
	s *Memory
}

func (r *taskRepo) Create(_ context.Context, t *task.Task) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTaskID++
	t.ID = s.nextTaskID
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = task.StatusPending
	}
	if t.Priority == "" {
		t.Priority = task.PriorityMedium
	}

	cp := *t
	s.tasks = append(s.tasks, &cp)
	return nil
}

func (r *taskRepo) GetByID(_ context.Context, id int64) (*task.Task, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tasks {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, task.ErrTaskNotFound
}

// Update shallow-merges the command. A merge whose resulting status is
// completed stamps the completion metadata exactly once.
func (r *taskRepo) Update(_ context.Context, id int64, cmd *task.UpdateTaskCommand) (*task.Task, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.ID != id {
			continue
		}
		if cmd.Title != nil {
			t.Title = *cmd.Title
		}
		if cmd.Priority != nil {
			t.Priority = *cmd.Priority
		}
		if cmd.DueDate != nil {
			t.DueDate = *cmd.DueDate
		}
		if cmd.Status != nil {
			t.Status = *cmd.Status
		}
		now := s.now()
		if t.Status == task.StatusCompleted && t.CompletedAt == nil {
			completed := now
			t.CompletedAt = &completed
			t.CompletedBy = cmd.CompletedBy
		}
		t.UpdatedAt = now

		cp := *t
		return &cp, nil
	}
	return nil, task.ErrTaskNotFound
}

func (r *taskRepo) List(_ context.Context) ([]*task.Task, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *taskRepo) ListByPatient(_ context.Context, patientID string) ([]*task.Task, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*task.Task{}
	for _, t := range s.tasks {
		if t.PatientID == patientID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

type appointmentRepo struct {
	s *Memory
}

func (r *appointmentRepo) Create(_ context.Context, a *appointment.Appointment) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextAppointmentID++
	a.ID = s.nextAppointmentID
	now := s.now()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Status == "" {
		a.Status = appointment.StatusScheduled
	}

	cp := *a
	s.appointments = append(s.appointments, &cp)
	return nil
}

func (r *appointmentRepo) GetByID(_ context.Context, id int64) (*appointment.Appointment, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.appointments {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, appointment.ErrAppointmentNotFound
}

func (r *appointmentRepo) Update(_ context.Context, id int64, cmd *appointment.UpdateAppointmentCommand) (*appointment.Appointment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.appointments {
		if a.ID != id {
			continue
		}
		if cmd.Type != nil {
			a.Type = *cmd.Type
		}
		if cmd.ScheduledAt != nil {
			a.ScheduledAt = *cmd.ScheduledAt
		}
		now := s.now()
		if cmd.Status != nil {
			a.Status = *cmd.Status
			switch a.Status {
			case appointment.StatusCancelled:
				if a.CancelledAt == nil {
					cancelled := now
					a.CancelledAt = &cancelled
				}
			case appointment.StatusCompleted:
				if a.CompletedAt == nil {
					completed := now
					a.CompletedAt = &completed
				}
			}
		}
		a.UpdatedAt = now

		cp := *a
		return &cp, nil
	}
	return nil, appointment.ErrAppointmentNotFound
}

func (r *appointmentRepo) ListByPatient(_ context.Context, patientID string) ([]*appointment.Appointment, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*appointment.Appointment{}
	for _, a := range s.appointments {
		if a.PatientID == patientID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

type referralRepo struct {
	s *Memory
}

func (r *referralRepo) Create(_ context.Context, rf *referral.Referral) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextReferralID++
	rf.ID = s.nextReferralID
	now := s.now()
	rf.CreatedAt = now
	rf.UpdatedAt = now
	if rf.Status == "" {
		rf.Status = referral.StatusPending
	}

	cp := *rf
	s.referrals = append(s.referrals, &cp)
	return nil
}

func (r *referralRepo) GetByID(_ context.Context, id int64) (*referral.Referral, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rf := range s.referrals {
		if rf.ID == id {
			cp := *rf
			return &cp, nil
		}
	}
	return nil, referral.ErrReferralNotFound
}

func (r *referralRepo) Update(_ context.Context, id int64, cmd *referral.UpdateReferralCommand) (*referral.Referral, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rf := range s.referrals {
		if rf.ID != id {
			continue
		}
		if cmd.Specialist != nil {
			rf.Specialist = *cmd.Specialist
		}
		if cmd.Reason != nil {
			rf.Reason = *cmd.Reason
		}
		if cmd.Status != nil {
			rf.Status = *cmd.Status
		}
		rf.UpdatedAt = s.now()

		cp := *rf
		return &cp, nil
	}
	return nil, referral.ErrReferralNotFound
}

func (r *referralRepo) ListByPatient(_ context.Context, patientID string) ([]*referral.Referral, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*referral.Referral{}
	for _, rf := range s.referrals {
		if rf.PatientID == patientID {
			cp := *rf
			out = append(out, &cp)
		}
	}
	return out, nil
}

type templateRepo struct {
	s *Memory
}

func (r *templateRepo) Create(_ context.Context, t *workflow.Template) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTemplateID++
	t.ID = s.nextTemplateID
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now

	cp := *t
	s.templates = append(s.templates, &cp)
	return nil
}

func (r *templateRepo) GetByID(_ context.Context, id int64) (*workflow.Template, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.templates {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, workflow.ErrTemplateNotFound
}

func (r *templateRepo) List(_ context.Context) ([]*workflow.Template, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*workflow.Template, 0, len(s.templates))
	for _, t := range s.templates {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *templateRepo) IncrementUsage(_ context.Context, id int64) (*workflow.Template, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.templates {
		if t.ID == id {
			t.UsageCount++
			t.UpdatedAt = s.now()

			cp := *t
			return &cp, nil
		}
	}
	return nil, workflow.ErrTemplateNotFound
}
