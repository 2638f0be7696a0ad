package twofactor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/width"

	"github.com/biplatform/authkit/pkg/logger"
	"github.com/biplatform/authkit/pkg/totp"
)

// Option configures a Service.
type Option func(*Service)

// WithReplayGuard rejects codes from an already consumed time step.
func WithReplayGuard(g totp.ReplayGuard) Option {
	return func(s *Service) { s.guard = g }
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithEncryptionKey enables sealing of secrets with AES-256-GCM.
func WithEncryptionKey(key []byte) Option {
	return func(s *Service) { s.sealKey = key }
}

// WithRecoveryCodes sets how many recovery codes an enrollment gets and the
// bcrypt cost used to hash them. Zero values keep the defaults.
func WithRecoveryCodes(count, hashCost int) Option {
	return func(s *Service) {
		if count > 0 {
			s.recoveryCount = count
		}
		if hashCost != 0 {
			s.hashCost = hashCost
		}
	}
}

// Service runs two-factor enrollment and login-time checks. It owns no
// persistence: callers store the Enrollment and pass the secret back in.
type Service struct {
	auth          *totp.Authenticator
	guard         totp.ReplayGuard
	log           *slog.Logger
	sealKey       []byte
	recoveryCount int
	hashCost      int
}

// New creates a Service around auth.
func New(auth *totp.Authenticator, opts ...Option) (*Service, error) {
	s := &Service{
		auth:          auth,
		log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		recoveryCount: totp.DefaultRecoveryCodeCount,
		hashCost:      bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.hashCost < bcrypt.MinCost || s.hashCost > bcrypt.MaxCost {
		return nil, ErrInvalidRecoveryCost
	}
	if s.sealKey != nil && len(s.sealKey) != totp.AESKeySize {
		return nil, totp.ErrInvalidEncryptionKeyLength
	}
	s.log = s.log.With(logger.Component("twofactor"))
	return s, nil
}

// NewFromConfig builds the authenticator and service from cfg. Sealing is
// enabled when cfg.EncryptionKey is set.
func NewFromConfig(cfg totp.Config, opts ...Option) (*Service, error) {
	auth, err := totp.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	base := []Option{WithRecoveryCodes(cfg.RecoveryCodeCount, cfg.RecoveryHashCost)}
	if cfg.EncryptionKey != "" {
		key, err := totp.GetEncryptionKey(cfg)
		if err != nil {
			return nil, err
		}
		base = append(base, WithEncryptionKey(key))
	}
	return New(auth, append(base, opts...)...)
}

// ReplayTTL is how long a consumed step must be remembered: the full
// acceptance window of auth.
func ReplayTTL(auth *totp.Authenticator) time.Duration {
	steps := 2*uint64(auth.Window()) + 1
	return time.Duration(steps*auth.Period()) * time.Second
}

// Authenticator exposes the underlying authenticator.
func (s *Service) Authenticator() *totp.Authenticator { return s.auth }

// Enrollment is everything produced when a user turns on two-factor auth.
// Secret and RecoveryCodes are shown to the user once; the caller persists
// SealedSecret (or Secret) and RecoveryCodeHashes.
type Enrollment struct {
	ID                 uuid.UUID
	Account            string
	Secret             string
	SealedSecret       string
	URI                string
	RecoveryCodes      []string
	RecoveryCodeHashes []string
}

// Enroll mints a secret, its provisioning URI and a batch of recovery codes.
func (s *Service) Enroll(ctx context.Context, account string) (*Enrollment, error) {
	account = strings.TrimSpace(account)
	if account == "" {
		return nil, ErrMissingAccount
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Join(ErrEnrollmentFailed, err)
	}
	log := s.log.With(logger.EnrollmentID(id))

	secret, err := s.auth.GenerateSecret()
	if err != nil {
		log.ErrorContext(ctx, "secret generation failed", logger.Error(err))
		return nil, errors.Join(ErrEnrollmentFailed, err)
	}

	uri, err := s.auth.ProvisioningURI(secret, account)
	if err != nil {
		return nil, errors.Join(ErrEnrollmentFailed, err)
	}

	codes, err := s.auth.RecoveryCodes(s.recoveryCount)
	if err != nil {
		log.ErrorContext(ctx, "recovery code generation failed", logger.Error(err))
		return nil, errors.Join(ErrEnrollmentFailed, err)
	}

	hashes := make([]string, len(codes))
	for i, code := range codes {
		if hashes[i], err = totp.HashRecoveryCode(code, s.hashCost); err != nil {
			return nil, errors.Join(ErrEnrollmentFailed, err)
		}
	}

	e := &Enrollment{
		ID:                 id,
		Account:            account,
		Secret:             secret,
		URI:                uri,
		RecoveryCodes:      codes,
		RecoveryCodeHashes: hashes,
	}
	if s.sealKey != nil {
		if e.SealedSecret, err = s.auth.SealSecret(secret, s.sealKey); err != nil {
			return nil, errors.Join(ErrEnrollmentFailed, err)
		}
	}

	log.InfoContext(ctx, "two-factor enrollment created",
		slog.Int("recovery_codes", len(codes)),
		slog.Bool("sealed", e.SealedSecret != ""),
	)
	return e, nil
}

// NormalizeCode strips spaces and folds full-width digits, so input such as
// "１２３ ４５６" from a mobile keyboard compares equal to "123456".
func NormalizeCode(code string) string {
	code = width.Narrow.String(code)
	return strings.Join(strings.Fields(code), "")
}

// Verify checks a submitted code for subject. With a replay guard configured,
// a code from a time step that was already accepted is rejected.
// A mismatch is (false, nil); errors mean the check itself could not run.
func (s *Service) Verify(ctx context.Context, subject, secret, code string) (bool, error) {
	if s.guard != nil && subject == "" {
		return false, ErrMissingSubject
	}
	log := s.log.With(logger.Subject(subject))

	code = NormalizeCode(code)
	if len(code) != s.auth.Digits() || !isDigits(code) {
		log.DebugContext(ctx, "malformed code rejected")
		return false, nil
	}

	counter, ok, err := s.auth.Match(secret, code, s.auth.Window())
	if err != nil {
		log.ErrorContext(ctx, "totp verification failed", logger.Error(err))
		return false, errors.Join(ErrVerificationFailed, err)
	}
	if !ok {
		log.InfoContext(ctx, "totp rejected")
		return false, nil
	}

	if s.guard != nil {
		fresh, err := s.guard.Claim(ctx, subject, counter)
		if err != nil {
			log.ErrorContext(ctx, "replay guard failed", logger.Error(err))
			return false, errors.Join(ErrReplayGuardFailed, err)
		}
		if !fresh {
			log.WarnContext(ctx, "totp replay rejected", logger.Counter(counter))
			return false, nil
		}
	}

	log.InfoContext(ctx, "totp accepted", logger.Counter(counter))
	return true, nil
}

// VerifySealed is Verify for a secret stored with sealing enabled.
func (s *Service) VerifySealed(ctx context.Context, subject, sealedSecret, code string) (bool, error) {
	if s.sealKey == nil {
		return false, ErrSealingDisabled
	}
	secret, err := totp.DecryptSecret(sealedSecret, s.sealKey)
	if err != nil {
		s.log.ErrorContext(ctx, "sealed secret could not be opened", logger.Subject(subject), logger.Error(err))
		return false, errors.Join(ErrVerificationFailed, err)
	}
	return s.Verify(ctx, subject, secret, code)
}

// RedeemRecoveryCode checks code against the stored hashes. On success it
// returns the index of the hash the caller must delete.
func (s *Service) RedeemRecoveryCode(ctx context.Context, subject, code string, hashes []string) (int, bool) {
	idx, ok := totp.VerifyRecoveryCode(code, hashes)
	log := s.log.With(logger.Subject(subject))
	if !ok {
		log.InfoContext(ctx, "recovery code rejected")
		return -1, false
	}
	log.InfoContext(ctx, "recovery code redeemed", slog.Int("remaining", len(hashes)-1))
	return idx, true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
