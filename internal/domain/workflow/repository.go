package workflow

import "context"

type Repository interface {
	Create(ctx context.Context, t *Template) error

	// GetByID returns ErrTemplateNotFound if absent.
	GetByID(ctx context.Context, id int64) (*Template, error)

	List(ctx context.Context) ([]*Template, error)

	// IncrementUsage bumps the usage counter by exactly one and returns the
	// updated template. Returns ErrTemplateNotFound if absent.
	IncrementUsage(ctx context.Context, id int64) (*Template, error)
}
