package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediflow-ai/mediflow/internal/domain"
	"github.com/mediflow-ai/mediflow/internal/domain/appointment"
	"github.com/mediflow-ai/mediflow/internal/domain/note"
	"github.com/mediflow-ai/mediflow/internal/domain/patient"
	"github.com/mediflow-ai/mediflow/internal/domain/referral"
	"github.com/mediflow-ai/mediflow/internal/domain/task"
	"github.com/mediflow-ai/mediflow/internal/domain/workflow"
)

func newTestPatient(t *testing.T, s *Memory) *patient.Patient {
	t.Helper()
	p := &patient.Patient{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DateOfBirth: "1990-12-10",
		Gender:      patient.GenderFemale,
		ContactInfo: patient.ContactInfo{Email: "ada@example.com"},
	}
	require.NoError(t, s.Patients().Create(context.Background(), p))
	return p
}

func TestPatientCreateAndGet(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	p := newTestPatient(t, s)
	require.NotEmpty(t, p.ID)
	assert.Equal(t, patient.StatusActive, p.Status)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := s.Patients().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.FirstName, got.FirstName)
	assert.Equal(t, p.LastName, got.LastName)
	assert.Equal(t, p.DateOfBirth, got.DateOfBirth)
	assert.Equal(t, p.Email, got.Email)

	// Reads hand out copies; mutating the result must not leak into the store.
	got.FirstName = "changed"
	again, err := s.Patients().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", again.FirstName)
}

func TestPatientGetUnknown(t *testing.T) {
	s := NewMemory()
	_, err := s.Patients().GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
}

func TestPatientUpdateShallowMerge(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	p := newTestPatient(t, s)

	phone := "+1-555-0100"
	updated, err := s.Patients().Update(ctx, p.ID, &patient.UpdatePatientCommand{Phone: &phone})
	require.NoError(t, err)

	assert.Equal(t, phone, updated.Phone)
	// Untouched fields survive the merge.
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, "Lovelace", updated.LastName)
	assert.Equal(t, p.Email, updated.Email)
	assert.False(t, updated.UpdatedAt.Before(p.UpdatedAt))

	// An empty command only refreshes the updated timestamp.
	same, err := s.Patients().Update(ctx, p.ID, &patient.UpdatePatientCommand{})
	require.NoError(t, err)
	assert.Equal(t, updated.Phone, same.Phone)
	assert.Equal(t, updated.FirstName, same.FirstName)
}

func TestPatientUpdateUnknown(t *testing.T) {
	s := NewMemory()
	_, err := s.Patients().Update(context.Background(), "nope", &patient.UpdatePatientCommand{})
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
}

func TestPatientDeleteCascades(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	p := newTestPatient(t, s)
	other := newTestPatient(t, s)

	require.NoError(t, s.Allergies().Add(ctx, &patient.Allergy{PatientID: p.ID, Allergen: "penicillin", Severity: patient.SeveritySevere}))
	require.NoError(t, s.Allergies().Add(ctx, &patient.Allergy{PatientID: other.ID, Allergen: "latex", Severity: patient.SeverityMild}))
	require.NoError(t, s.Conditions().Add(ctx, &patient.ChronicCondition{PatientID: p.ID, Condition: "asthma"}))
	require.NoError(t, s.Notes().Create(ctx, &note.ClinicalNote{PatientID: p.ID, Type: note.TypeSOAP}))
	require.NoError(t, s.Tasks().Create(ctx, &task.Task{PatientID: p.ID, Title: "follow up"}))
	require.NoError(t, s.Appointments().Create(ctx, &appointment.Appointment{PatientID: p.ID, ScheduledAt: time.Now().Add(time.Hour)}))
	require.NoError(t, s.Referrals().Create(ctx, &referral.Referral{PatientID: p.ID, Specialist: "cardiology"}))

	require.NoError(t, s.Patients().Delete(ctx, p.ID))

	_, err := s.Patients().GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)

	allergies, err := s.Allergies().ListByPatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, allergies)

	conditions, err := s.Conditions().ListByPatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, conditions)

	notes, err := s.Notes().ListByPatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	tasks, err := s.Tasks().ListByPatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	appointments, err := s.Appointments().ListByPatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, appointments)

	referrals, err := s.Referrals().ListByPatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, referrals)

	// The other patient's records are untouched.
	kept, err := s.Allergies().ListByPatient(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	assert.ErrorIs(t, s.Patients().Delete(ctx, p.ID), patient.ErrPatientNotFound)
}

func TestPatientSearch(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	p := newTestPatient(t, s)

	grace := &patient.Patient{FirstName: "Grace", LastName: "Hopper", DateOfBirth: "1985-12-09"}
	require.NoError(t, s.Patients().Create(ctx, grace))

	found, err := s.Patients().Search(ctx, "lovelace")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, p.ID, found[0].ID)

	found, err = s.Patients().Search(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = s.Patients().Search(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = s.Patients().Search(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestAllergyRemove(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	p := newTestPatient(t, s)

	a := &patient.Allergy{PatientID: p.ID, Allergen: "penicillin", Severity: patient.SeverityModerate}
	require.NoError(t, s.Allergies().Add(ctx, a))
	require.NotZero(t, a.ID)
	assert.Equal(t, patient.AllergyActive, a.Status)

	require.NoError(t, s.Allergies().Remove(ctx, a.ID))
	assert.ErrorIs(t, s.Allergies().Remove(ctx, a.ID), patient.ErrAllergyNotFound)
}

func TestNoteLifecycle(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	p := newTestPatient(t, s)

	n := &note.ClinicalNote{PatientID: p.ID, Type: note.TypeProgress, Content: "initial"}
	require.NoError(t, s.Notes().Create(ctx, n))
	assert.Equal(t, note.StatusDraft, n.Status)

	status := note.StatusFinal
	content := "finalized"
	updated, err := s.Notes().Update(ctx, n.ID, &note.UpdateNoteCommand{Status: &status, Content: &content})
	require.NoError(t, err)
	assert.Equal(t, note.StatusFinal, updated.Status)
	assert.Equal(t, "finalized", updated.Content)
	assert.Equal(t, note.TypeProgress, updated.Type)

	_, err = s.Notes().Update(ctx, 999, &note.UpdateNoteCommand{})
	assert.ErrorIs(t, err, note.ErrNoteNotFound)
}

func TestTaskCompletionStamp(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	tk := &task.Task{Title: "review labs"}
	require.NoError(t, s.Tasks().Create(ctx, tk))
	assert.Equal(t, task.StatusPending, tk.Status)
	assert.Equal(t, task.PriorityMedium, tk.Priority)
	assert.Nil(t, tk.CompletedAt)

	status := task.StatusCompleted
	done, err := s.Tasks().Update(ctx, tk.ID, &task.UpdateTaskCommand{Status: &status, CompletedBy: "dr.reyes"})
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, "dr.reyes", done.CompletedBy)
	firstStamp := *done.CompletedAt

	// A later update does not restamp completion.
	title := "review labs again"
	again, err := s.Tasks().Update(ctx, tk.ID, &task.UpdateTaskCommand{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)
	assert.True(t, firstStamp.Equal(*again.CompletedAt))
	assert.Equal(t, "dr.reyes", again.CompletedBy)
}

func TestAppointmentStatusStamps(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	a := &appointment.Appointment{PatientID: "p1", ScheduledAt: time.Now().Add(2 * time.Hour)}
	require.NoError(t, s.Appointments().Create(ctx, a))
	assert.Equal(t, appointment.StatusScheduled, a.Status)

	cancelled := appointment.StatusCancelled
	updated, err := s.Appointments().Update(ctx, a.ID, &appointment.UpdateAppointmentCommand{Status: &cancelled})
	require.NoError(t, err)
	require.NotNil(t, updated.CancelledAt)
	assert.Nil(t, updated.CompletedAt)
}

func TestWorkflowIncrementUsage(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	tpl := &workflow.Template{Name: "Discharge", Category: "inpatient", StepCount: 4}
	require.NoError(t, s.Templates().Create(ctx, tpl))
	assert.Zero(t, tpl.UsageCount)

	got, err := s.Templates().IncrementUsage(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UsageCount)

	got, err = s.Templates().IncrementUsage(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.UsageCount)

	_, err = s.Templates().IncrementUsage(ctx, 42)
	assert.ErrorIs(t, err, workflow.ErrTemplateNotFound)
}

func TestAuditAppendAndQuery(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	first, err := s.AppendAudit(ctx, &domain.AuditEntry{EntityType: "patient", EntityID: "p1", Action: domain.ActionCreate, Actor: "dr.reyes"})
	require.NoError(t, err)
	second, err := s.AppendAudit(ctx, &domain.AuditEntry{EntityType: "patient", EntityID: "p1", Action: domain.ActionUpdate, Actor: "dr.reyes"})
	require.NoError(t, err)
	third, err := s.AppendAudit(ctx, &domain.AuditEntry{EntityType: "task", EntityID: "1", Action: domain.ActionCreate})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, second.OccurredAt.Before(first.OccurredAt))
	assert.False(t, third.OccurredAt.Before(second.OccurredAt))

	// Missing actor falls back to the system identity.
	assert.Equal(t, domain.SystemActor, third.Actor)

	all, err := s.AuditLog(ctx, domain.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Most recent first.
	assert.Equal(t, third.ID, all[0].ID)
	assert.Equal(t, first.ID, all[2].ID)

	patientEntries, err := s.AuditLog(ctx, domain.AuditFilter{EntityType: "patient", EntityID: "p1"})
	require.NoError(t, err)
	require.Len(t, patientEntries, 2)

	byActor, err := s.AuditLog(ctx, domain.AuditFilter{EntityType: "patient", Actor: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, byActor)
}

func TestStatistics(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	p := newTestPatient(t, s)
	inactive := &patient.Patient{FirstName: "Ina", LastName: "Active", DateOfBirth: "1970-01-01", Status: patient.StatusInactive}
	require.NoError(t, s.Patients().Create(ctx, inactive))

	require.NoError(t, s.Notes().Create(ctx, &note.ClinicalNote{PatientID: p.ID, Type: note.TypeSOAP}))
	require.NoError(t, s.Notes().Create(ctx, &note.ClinicalNote{PatientID: p.ID, Type: note.TypeSOAP, AIGenerated: true}))
	require.NoError(t, s.Tasks().Create(ctx, &task.Task{Title: "pending one"}))
	require.NoError(t, s.Appointments().Create(ctx, &appointment.Appointment{PatientID: p.ID, ScheduledAt: time.Now().Add(time.Hour)}))
	require.NoError(t, s.Appointments().Create(ctx, &appointment.Appointment{PatientID: p.ID, ScheduledAt: time.Now().Add(-time.Hour)}))

	stats, err := s.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalPatients)
	assert.Equal(t, 1, stats.ActivePatients)
	assert.Equal(t, 2, stats.TotalClinicalNotes)
	assert.Equal(t, 1, stats.AIGeneratedNotes)
	assert.Equal(t, 1, stats.PendingTasks)
	assert.Equal(t, 1, stats.UpcomingAppointments)

	patients, err := s.Patients().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, stats.TotalPatients, len(patients))

	// Recomputed per call: deleting a patient is visible immediately.
	require.NoError(t, s.Patients().Delete(ctx, p.ID))
	stats, err = s.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalPatients)
	assert.Equal(t, 0, stats.TotalClinicalNotes)
}

func TestUsers(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	u := &domain.User{Email: "dr.reyes@mediflow.ai", FirstName: "Elena", LastName: "Reyes", Role: domain.RoleDoctor, IsActive: true}
	require.NoError(t, s.CreateUser(ctx, u))
	require.NotEmpty(t, u.ID)

	byEmail, err := s.GetUserByEmail(ctx, "dr.reyes@mediflow.ai")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := s.GetUserByID(ctx, u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)
	assert.Nil(t, byID.LastLoginAt)

	require.NoError(t, s.TouchUserLogin(ctx, u.ID.String()))
	byID, err = s.GetUserByID(ctx, u.ID.String())
	require.NoError(t, err)
	assert.NotNil(t, byID.LastLoginAt)

	_, err = s.GetUserByEmail(ctx, "nobody@mediflow.ai")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, s.TouchUserLogin(ctx, "nope"), domain.ErrUserNotFound)
}

func TestSeed(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx))

	patients, err := s.Patients().List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, patients)

	templates, err := s.Templates().List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, templates)
}
