package totp

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var pow10 = [...]uint32{1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000}

// EncodeCounter returns counter as 8 big-endian bytes (RFC 4226 moving factor).
func EncodeCounter(counter uint64) [8]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], counter)
	return b
}

// Truncate applies RFC 4226 dynamic truncation to a 20-byte HMAC-SHA1 digest
// and reduces the 31-bit result modulo 10^digits.
func Truncate(digest []byte, digits int) (uint32, error) {
	if len(digest) != 20 {
		return 0, ErrInvalidDigestLength
	}
	if digits != 6 && digits != 8 {
		return 0, ErrInvalidDigits
	}
	offset := digest[len(digest)-1] & 0x0f
	code := binary.BigEndian.Uint32(digest[offset:offset+4]) & 0x7fffffff
	return code % pow10[digits], nil
}

// HOTP computes the RFC 4226 one-time password for key and counter,
// zero-padded to digits characters.
func HOTP(p Provider, key []byte, counter uint64, digits int) (string, error) {
	msg := EncodeCounter(counter)
	digest, err := p.HMACSHA1(key, msg[:])
	if err != nil {
		return "", errors.Join(ErrFailedToGenerateTOTP, err)
	}
	code, err := Truncate(digest, digits)
	if err != nil {
		return "", errors.Join(ErrFailedToGenerateTOTP, err)
	}
	return fmt.Sprintf("%0*d", digits, code), nil
}
