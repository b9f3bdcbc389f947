package task

import "context"

type Repository interface {
	Create(ctx context.Context, t *Task) error

	// GetByID returns ErrTaskNotFound if absent.
	GetByID(ctx context.Context, id int64) (*Task, error)

	// Update shallow-merges the command and refreshes the updated timestamp.
	Update(ctx context.Context, id int64, cmd *UpdateTaskCommand) (*Task, error)

	List(ctx context.Context) ([]*Task, error)
	ListByPatient(ctx context.Context, patientID string) ([]*Task, error)
}
