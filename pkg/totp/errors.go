package totp

import "errors"

var (
	ErrFailedToEncryptSecret         = errors.New("failed to encrypt TOTP secret")
	ErrFailedToDecryptSecret         = errors.New("failed to decrypt TOTP secret")
	ErrInvalidCipherTooShort         = errors.New("cipher text too short")
	ErrFailedToGenerateEncryptionKey = errors.New("failed to generate encryption key")
	ErrFailedToLoadEncryptionKey     = errors.New("failed to load encryption key")
	ErrInvalidEncryptionKeyLength    = errors.New("invalid encryption key length")
	ErrEncryptionKeyNotSet           = errors.New("TOTP encryption key not set")
	ErrFailedToGenerateSecretKey     = errors.New("failed to generate TOTP secret key")
	ErrFailedToGenerateTOTP          = errors.New("failed to generate TOTP")
	ErrFailedToValidateTOTP          = errors.New("failed to validate TOTP")
	ErrMissingSecret                 = errors.New("missing secret")
	ErrInvalidSecret                 = errors.New("invalid secret")
	ErrMissingAccountName            = errors.New("missing account name")
	ErrInvalidDigits                 = errors.New("invalid number of digits, must be 6 or 8")
	ErrInvalidPeriod                 = errors.New("invalid period, must be greater than 0")
	ErrInvalidRecoveryCodeCount      = errors.New("invalid recovery code count, must not be negative")
	ErrFailedToGenerateRecoveryCode  = errors.New("failed to generate recovery code")
	ErrFailedToHashRecoveryCode      = errors.New("failed to hash recovery code")
	ErrShortRandomRead               = errors.New("random source returned fewer bytes than requested")
	ErrInvalidDigestLength           = errors.New("HMAC-SHA1 digest must be 20 bytes")
	ErrTimeBeforeEpoch               = errors.New("time is before the Unix epoch")
)
