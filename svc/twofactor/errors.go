package twofactor

import "errors"

var (
	ErrMissingAccount      = errors.New("missing account name")
	ErrMissingSubject      = errors.New("missing subject for replay protection")
	ErrSealingDisabled     = errors.New("secret sealing is not configured")
	ErrEnrollmentFailed    = errors.New("two-factor enrollment failed")
	ErrVerificationFailed  = errors.New("two-factor verification failed")
	ErrReplayGuardFailed   = errors.New("replay guard failed")
	ErrInvalidRecoveryCost = errors.New("invalid recovery hash cost")
)
