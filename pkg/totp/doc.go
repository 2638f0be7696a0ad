// Package totp implements RFC 6238 time-based one-time passwords for
// two-factor authentication, built from primitive cryptographic operations
// rather than a ready-made OTP library.
//
// The package covers the whole enrollment and login-time surface: secret
// generation, an RFC 4648 Base32 codec, HOTP dynamic truncation (RFC 4226),
// TOTP generation and windowed verification, otpauth:// provisioning URIs,
// recovery codes, AES-256-GCM sealing of secrets and a replay guard contract.
// Persistence and QR rendering are left to the caller.
//
// # Crypto backend
//
// Randomness and HMAC-SHA1 come from a Provider. SystemProvider uses
// crypto/rand and crypto/hmac; ReaderProvider takes randomness from any
// io.Reader, which makes provisioning deterministic in tests:
//
//	a, _ := totp.New(totp.WithProvider(totp.ReaderProvider{Reader: bytes.NewReader(seed)}))
//
// Provider failures are returned as errors and never retried.
//
// # Base32
//
// EncodeBase32 never emits padding. DecodeBase32 strips trailing '=',
// upper-cases its input and silently skips characters outside the alphabet.
// Use ValidateSecret when typed-in secrets should be rejected instead.
//
// # Basic Usage
//
//	secret, err := totp.GenerateSecret()
//	if err != nil {
//		return err
//	}
//
//	uri, err := totp.BuildProvisioningURI(secret, "user@example.com", "BI Platform")
//	if err != nil {
//		return err
//	}
//
//	codes, err := totp.GenerateRecoveryCodes(10)
//
//	// at login
//	ok, err := totp.VerifyTOTP(secret, submitted)
//
// # Authenticator
//
// Authenticator carries an injected Provider and clock plus the code
// parameters. It is immutable after New and safe for concurrent use:
//
//	a, err := totp.New(
//		totp.WithIssuer("BI Platform"),
//		totp.WithWindow(1),
//	)
//	counter, ok, err := a.Match(secret, code, a.Window())
//
// # Replay protection
//
// Verification alone accepts the same code as long as it is inside the
// window. Match returns the accepted counter; pass it to a ReplayGuard
// (MemoryReplayGuard here, or the Redis-backed store in pkg/redis) to reject
// reuse of a consumed time step.
//
// # Recovery Codes
//
// GenerateRecoveryCodes returns XXXXX-XXXXX codes with 40 bits of entropy.
// Store HashRecoveryCode output and check logins with VerifyRecoveryCode,
// which returns the index of the matched hash so it can be removed.
package totp
