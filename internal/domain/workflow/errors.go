package workflow

import "errors"

var (
	ErrTemplateNotFound = errors.New("workflow template not found")
	ErrNameRequired     = errors.New("workflow template name is required")
)
