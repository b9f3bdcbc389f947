package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mediflow-ai/mediflow/internal/domain/patient"
	"github.com/mediflow-ai/mediflow/internal/store"
	"github.com/mediflow-ai/mediflow/pkg/metrics"
)

type fixture struct {
	mem          *store.Memory
	audit        *AuditService
	patients     *PatientService
	notes        *NoteService
	tasks        *TaskService
	appointments *AppointmentService
	referrals    *ReferralService
	workflows    *WorkflowService
	admin        *AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := zap.NewNop()
	collector := metrics.NewCollectorWith("test", prometheus.NewRegistry())
	mem := store.NewMemory()

	audit := NewAuditService(mem, collector, log)
	f := &fixture{
		mem:   mem,
		audit: audit,
		patients: NewPatientService(
			mem.Patients(), mem.Allergies(), mem.Conditions(),
			mem.Notes(), mem.Tasks(), mem.Appointments(), mem.Referrals(),
			audit, collector, log,
		),
		notes:        NewNoteService(mem.Notes(), mem.Patients(), audit, collector, log),
		tasks:        NewTaskService(mem.Tasks(), mem.Patients(), audit, collector, log),
		appointments: NewAppointmentService(mem.Appointments(), mem.Patients(), audit, log),
		referrals:    NewReferralService(mem.Referrals(), mem.Patients(), audit, log),
		workflows:    NewWorkflowService(mem.Templates(), audit, collector, log),
		admin:        NewAdminService(mem, audit, log),
	}
	return f
}

func (f *fixture) createPatient(t *testing.T) *patient.Patient {
	t.Helper()
	p, err := f.patients.CreatePatient(context.Background(), &patient.CreatePatientCommand{
		FirstName:   "Maria",
		LastName:    "Santos",
		DateOfBirth: "1988-04-17",
		Gender:      patient.GenderFemale,
	}, "dr.reyes")
	require.NoError(t, err)
	return p
}
