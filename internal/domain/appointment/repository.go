package appointment

import "context"

type Repository interface {
	Create(ctx context.Context, a *Appointment) error

	// GetByID returns ErrAppointmentNotFound if absent.
	GetByID(ctx context.Context, id int64) (*Appointment, error)

	// Update shallow-merges the command and refreshes the updated timestamp.
	Update(ctx context.Context, id int64, cmd *UpdateAppointmentCommand) (*Appointment, error)

	ListByPatient(ctx context.Context, patientID string) ([]*Appointment, error)
}
