package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediflow-ai/mediflow/internal/domain"
	"github.com/mediflow-ai/mediflow/internal/domain/note"
	"github.com/mediflow-ai/mediflow/internal/domain/patient"
)

func TestCreateNote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPatient(t)

	n, err := f.notes.CreateNote(ctx, &note.CreateNoteCommand{
		PatientID: p.ID,
		Type:      note.TypeSOAP,
		Content:   "S: headache. O: BP 120/80.",
		CreatedBy: "dr.reyes",
	})
	require.NoError(t, err)
	assert.Equal(t, note.StatusDraft, n.Status)
	assert.False(t, n.AIGenerated)

	entries, err := f.mem.AuditLog(ctx, domain.AuditFilter{EntityType: "clinical_note", EntityID: fmt.Sprint(n.ID)})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionCreate, entries[0].Action)
	assert.Equal(t, "dr.reyes", entries[0].Actor)
}

func TestCreateNoteAttributesSystemActor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPatient(t)

	n, err := f.notes.CreateNote(ctx, &note.CreateNoteCommand{
		PatientID:   p.ID,
		Type:        note.TypeProgress,
		AIGenerated: true,
	})
	require.NoError(t, err)

	entries, err := f.mem.AuditLog(ctx, domain.AuditFilter{EntityType: "clinical_note", EntityID: fmt.Sprint(n.ID)})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.SystemActor, entries[0].Actor)
}

func TestCreateNoteValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPatient(t)

	_, err := f.notes.CreateNote(ctx, &note.CreateNoteCommand{
		PatientID: p.ID,
		Type:      note.TypeSOAP,
		Status:    "published",
	})
	assert.ErrorIs(t, err, note.ErrInvalidStatus)

	_, err = f.notes.CreateNote(ctx, &note.CreateNoteCommand{
		PatientID: "missing",
		Type:      note.TypeSOAP,
	})
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
}

func TestNoteStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPatient(t)

	n, err := f.notes.CreateNote(ctx, &note.CreateNoteCommand{
		PatientID: p.ID,
		Type:      note.TypeSOAP,
		CreatedBy: "dr.reyes",
	})
	require.NoError(t, err)

	transition := func(to note.Status) error {
		_, err := f.notes.UpdateNote(ctx, n.ID, &note.UpdateNoteCommand{Status: &to}, "dr.reyes")
		return err
	}

	// A draft cannot be signed directly.
	assert.ErrorIs(t, transition(note.StatusSigned), note.ErrInvalidStatusTransition)

	require.NoError(t, transition(note.StatusFinal))
	require.NoError(t, transition(note.StatusAmended))
	require.NoError(t, transition(note.StatusSigned))
	// Signed notes may be amended again.
	require.NoError(t, transition(note.StatusAmended))
	// But never reopened as drafts.
	assert.ErrorIs(t, transition(note.StatusDraft), note.ErrInvalidStatusTransition)
}

func TestUpdateNoteUnknown(t *testing.T) {
	f := newFixture(t)
	content := "revised"
	_, err := f.notes.UpdateNote(context.Background(), 99, &note.UpdateNoteCommand{Content: &content}, "dr.reyes")
	assert.ErrorIs(t, err, note.ErrNoteNotFound)
}
