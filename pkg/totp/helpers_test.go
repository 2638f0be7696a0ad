package totp_test

import (
	"bytes"
	"errors"
	"time"

	"github.com/biplatform/authkit/pkg/totp"
)

// rfcSecret is the ASCII key "12345678901234567890" from RFC 4226/6238.
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

var errProviderDown = errors.New("provider down")

type failingProvider struct {
	randomErr error
	hmacErr   error
}

func (p failingProvider) RandomBytes(n int) ([]byte, error) {
	if p.randomErr != nil {
		return nil, p.randomErr
	}
	return make([]byte, n), nil
}

func (p failingProvider) HMACSHA1(key, msg []byte) ([]byte, error) {
	if p.hmacErr != nil {
		return nil, p.hmacErr
	}
	return totp.SystemProvider{}.HMACSHA1(key, msg)
}

func seeded(b ...byte) totp.Provider {
	return totp.ReaderProvider{Reader: bytes.NewReader(b)}
}

func fixedClock(unix int64) func() time.Time {
	return func() time.Time { return time.Unix(unix, 0) }
}
