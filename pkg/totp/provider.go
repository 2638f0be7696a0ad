package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1" //nolint:gosec // RFC 6238 default algorithm
	"errors"
	"io"
)

// Provider is the cryptographic capability the package depends on.
// Swap it for a deterministic fixture in tests.
type Provider interface {
	// RandomBytes returns n cryptographically secure random bytes.
	RandomBytes(n int) ([]byte, error)
	// HMACSHA1 returns the 20-byte HMAC-SHA1 digest of msg under key.
	HMACSHA1(key, msg []byte) ([]byte, error)
}

// SystemProvider uses crypto/rand and crypto/hmac.
type SystemProvider struct{}

// DefaultProvider is used by package-level helpers and by Authenticator
// when no provider is configured.
var DefaultProvider Provider = SystemProvider{}

func (SystemProvider) RandomBytes(n int) ([]byte, error) {
	return ReaderProvider{Reader: rand.Reader}.RandomBytes(n)
}

func (SystemProvider) HMACSHA1(key, msg []byte) ([]byte, error) {
	mac := hmac.New(sha1.New, key)
	mac.Write(msg)
	return mac.Sum(nil), nil
}

// ReaderProvider draws randomness from an arbitrary reader and computes
// HMAC-SHA1 with the standard library. A bytes.Reader over a fixed buffer
// makes provisioning deterministic.
type ReaderProvider struct {
	Reader io.Reader
}

func (p ReaderProvider) RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(p.Reader, buf); err != nil {
		return nil, errors.Join(ErrShortRandomRead, err)
	}
	return buf, nil
}

func (ReaderProvider) HMACSHA1(key, msg []byte) ([]byte, error) {
	return SystemProvider{}.HMACSHA1(key, msg)
}
