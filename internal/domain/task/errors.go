package task

import "errors"

var (
	ErrTaskNotFound            = errors.New("task not found")
	ErrInvalidPriority         = errors.New("invalid task priority")
	ErrInvalidStatusTransition = errors.New("invalid task status transition")
	ErrTitleRequired           = errors.New("task title is required")
)
