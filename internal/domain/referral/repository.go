package referral

import "context"

type Repository interface {
	Create(ctx context.Context, r *Referral) error

	// GetByID returns ErrReferralNotFound if absent.
	GetByID(ctx context.Context, id int64) (*Referral, error)

	// Update shallow-merges the command and refreshes the updated timestamp.
	Update(ctx context.Context, id int64, cmd *UpdateReferralCommand) (*Referral, error)

	ListByPatient(ctx context.Context, patientID string) ([]*Referral, error)
}
