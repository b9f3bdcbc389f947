package note

import "errors"

var (
	ErrNoteNotFound            = errors.New("clinical note not found")
	ErrInvalidStatus           = errors.New("invalid clinical note status")
	ErrInvalidStatusTransition = errors.New("invalid clinical note status transition")
)
