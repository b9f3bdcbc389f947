package note

import "context"

type Repository interface {
	Create(ctx context.Context, n *ClinicalNote) error

	// GetByID returns ErrNoteNotFound if absent.
	GetByID(ctx context.Context, id int64) (*ClinicalNote, error)

	// Update shallow-merges the command and refreshes the updated timestamp.
	Update(ctx context.Context, id int64, cmd *UpdateNoteCommand) (*ClinicalNote, error)

	ListByPatient(ctx context.Context, patientID string) ([]*ClinicalNote, error)
}
