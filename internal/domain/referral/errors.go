package referral

import "errors"

var (
	ErrReferralNotFound   = errors.New("referral not found")
	ErrSpecialistRequired = errors.New("referral specialist is required")
)
