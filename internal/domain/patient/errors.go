package patient

import "errors"

var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrAllergyNotFound    = errors.New("allergy not found")
	ErrConditionNotFound  = errors.New("chronic condition not found")
	ErrInvalidGender      = errors.New("invalid gender value")
	ErrInvalidSeverity    = errors.New("invalid allergy severity")
	ErrInvalidDateOfBirth = errors.New("date of birth cannot be in the future")
)
