package totp

import (
	"crypto/subtle"
	"errors"
	"time"
)

const (
	DefaultDigits    = 6      // Standard 6-digit TOTP codes
	DefaultPeriod    = 30     // 30-second validity window (RFC 6238 standard)
	DefaultWindow    = 1      // ±1 step accepted for clock drift
	DefaultAlgorithm = "SHA1" // HMAC-SHA1 algorithm (RFC 6238 standard)
	DefaultIssuer    = "BI Platform"

	// SecretSize is the number of random bytes in a generated secret.
	// 160 bits encode to exactly 32 Base32 characters.
	SecretSize = 20
)

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithProvider sets the random source and HMAC engine. Nil is ignored.
func WithProvider(p Provider) Option {
	return func(a *Authenticator) {
		if p != nil {
			a.provider = p
		}
	}
}

// WithClock overrides the wall clock used by Generate and Verify. Nil is ignored.
func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithDigits sets the code length. Only 6 and 8 are accepted by New.
func WithDigits(digits int) Option {
	return func(a *Authenticator) { a.digits = digits }
}

// WithPeriod sets the time step in seconds.
func WithPeriod(seconds uint64) Option {
	return func(a *Authenticator) { a.period = seconds }
}

// WithWindow sets the default number of steps accepted on either side of now.
func WithWindow(steps uint) Option {
	return func(a *Authenticator) { a.window = steps }
}

// WithIssuer sets the issuer used in provisioning URIs. Empty is ignored.
func WithIssuer(issuer string) Option {
	return func(a *Authenticator) {
		if issuer != "" {
			a.issuer = issuer
		}
	}
}

// Authenticator generates and verifies time-based one-time passwords.
// It holds no mutable state and is safe for concurrent use.
type Authenticator struct {
	provider Provider
	now      func() time.Time
	digits   int
	period   uint64
	window   uint
	issuer   string
}

// New returns an Authenticator with RFC 6238 defaults (SHA1, 6 digits, 30s).
func New(opts ...Option) (*Authenticator, error) {
	a := defaultAuthenticator()
	for _, opt := range opts {
		opt(a)
	}
	if a.digits != 6 && a.digits != 8 {
		return nil, ErrInvalidDigits
	}
	if a.period == 0 {
		return nil, ErrInvalidPeriod
	}
	return a, nil
}

// NewFromConfig builds an Authenticator from env configuration.
func NewFromConfig(cfg Config, opts ...Option) (*Authenticator, error) {
	base := []Option{WithIssuer(cfg.Issuer), WithWindow(cfg.Window)}
	return New(append(base, opts...)...)
}

func defaultAuthenticator() *Authenticator {
	return &Authenticator{
		provider: DefaultProvider,
		now:      time.Now,
		digits:   DefaultDigits,
		period:   DefaultPeriod,
		window:   DefaultWindow,
		issuer:   DefaultIssuer,
	}
}

// Digits returns the configured code length.
func (a *Authenticator) Digits() int { return a.digits }

// Period returns the configured time step in seconds.
func (a *Authenticator) Period() uint64 { return a.period }

// Window returns the default verification window.
func (a *Authenticator) Window() uint { return a.window }

// Counter returns the time step that contains the given Unix time.
func (a *Authenticator) Counter(unixSeconds uint64) uint64 {
	return unixSeconds / a.period
}

// Generate returns the code for the current time step.
func (a *Authenticator) Generate(secret string) (string, error) {
	now := a.now().Unix()
	if now < 0 {
		return "", errors.Join(ErrFailedToGenerateTOTP, ErrTimeBeforeEpoch)
	}
	return a.GenerateAt(secret, uint64(now))
}

// GenerateAt returns the code for the time step containing unixSeconds.
// The secret is decoded leniently; a secret that decodes to nothing is used
// as an empty HMAC key.
func (a *Authenticator) GenerateAt(secret string, unixSeconds uint64) (string, error) {
	return HOTP(a.provider, DecodeBase32(secret), a.Counter(unixSeconds), a.digits)
}

// Verify checks code against the configured window around now.
func (a *Authenticator) Verify(secret, code string) (bool, error) {
	return a.VerifyWindow(secret, code, a.window)
}

// VerifyWindow checks code against 2*window+1 time steps centred on now.
func (a *Authenticator) VerifyWindow(secret, code string, window uint) (bool, error) {
	_, ok, err := a.Match(secret, code, window)
	return ok, err
}

// Match is VerifyWindow that also returns the counter of the matching step,
// so callers can reject a code whose step was already consumed.
// Offsets are tried from -window to +window; steps before the epoch are skipped.
func (a *Authenticator) Match(secret, code string, window uint) (uint64, bool, error) {
	if len(code) != a.digits {
		return 0, false, nil
	}

	key := DecodeBase32(secret)
	now := a.now().Unix()
	step := int64(a.period)
	for i := -int64(window); i <= int64(window); i++ {
		at := now + i*step
		if at < 0 {
			continue
		}
		counter := a.Counter(uint64(at))
		expected, err := HOTP(a.provider, key, counter, a.digits)
		if err != nil {
			return 0, false, errors.Join(ErrFailedToValidateTOTP, err)
		}
		if subtle.ConstantTimeCompare([]byte(expected), []byte(code)) == 1 {
			return counter, true, nil
		}
	}
	return 0, false, nil
}

// GenerateSecret returns SecretSize random bytes encoded as unpadded Base32.
func (a *Authenticator) GenerateSecret() (string, error) {
	raw, err := a.provider.RandomBytes(SecretSize)
	if err != nil {
		return "", errors.Join(ErrFailedToGenerateSecretKey, err)
	}
	return EncodeBase32(raw), nil
}

// ProvisioningURI returns the otpauth:// URI for secret and account using the
// configured issuer, digits and period.
func (a *Authenticator) ProvisioningURI(secret, account string) (string, error) {
	return buildURI(secret, account, a.issuer, a.digits, a.period)
}

// RecoveryCodes returns count recovery codes drawn from the configured provider.
func (a *Authenticator) RecoveryCodes(count int) ([]string, error) {
	return generateRecoveryCodes(a.provider, count)
}

// GenerateSecret generates a new Base32-encoded 160-bit secret.
func GenerateSecret() (string, error) {
	return defaultAuthenticator().GenerateSecret()
}

// GenerateTOTP generates the 6-digit code for the current 30-second window.
func GenerateTOTP(secret string) (string, error) {
	return defaultAuthenticator().Generate(secret)
}

// GenerateTOTPAt generates the 6-digit code for the window containing unixSeconds.
func GenerateTOTPAt(secret string, unixSeconds uint64) (string, error) {
	return defaultAuthenticator().GenerateAt(secret, unixSeconds)
}

// GenerateTOTPWithTime generates the code for the window containing t.
// Useful for testing or generating codes for specific moments.
func GenerateTOTPWithTime(secret string, t time.Time) (string, error) {
	if t.Unix() < 0 {
		return "", errors.Join(ErrFailedToGenerateTOTP, ErrTimeBeforeEpoch)
	}
	return GenerateTOTPAt(secret, uint64(t.Unix()))
}

// VerifyTOTP accepts codes from the previous, current and next 30-second windows.
func VerifyTOTP(secret, code string) (bool, error) {
	return defaultAuthenticator().Verify(secret, code)
}

// VerifyTOTPWindow accepts codes up to window steps before or after now.
func VerifyTOTPWindow(secret, code string, window uint) (bool, error) {
	return defaultAuthenticator().VerifyWindow(secret, code, window)
}
