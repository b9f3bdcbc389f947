package patient

import "context"

type Repository interface {
	// Create persists a new patient with an already-assigned identifier.
	Create(ctx context.Context, p *Patient) error

	// GetByID retrieves a patient by identifier. Returns ErrPatientNotFound
	// if not found.
	GetByID(ctx context.Context, id string) (*Patient, error)

	// Update shallow-merges the command onto the stored record and refreshes
	// the updated timestamp.
	Update(ctx context.Context, id string, cmd *UpdatePatientCommand) (*Patient, error)

	// Delete removes the patient and cascades across every dependent entity
	// sequence.
	Delete(ctx context.Context, id string) error

	// List returns all patients in insertion order.
	List(ctx context.Context) ([]*Patient, error)

	// Search performs a case-insensitive substring match over first name,
	// last name, identifier and email, preserving store order.
	Search(ctx context.Context, query string) ([]*Patient, error)
}

type AllergyRepository interface {
	Add(ctx context.Context, a *Allergy) error
	ListByPatient(ctx context.Context, patientID string) ([]*Allergy, error)
	// Remove deletes an allergy by identifier. Returns ErrAllergyNotFound if
	// absent.
	Remove(ctx context.Context, id int64) error
}

type ConditionRepository interface {
	Add(ctx context.Context, c *ChronicCondition) error
	ListByPatient(ctx context.Context, patientID string) ([]*ChronicCondition, error)
}
