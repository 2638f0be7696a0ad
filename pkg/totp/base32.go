package totp

import (
	"regexp"
	"strings"
)

// Base32Alphabet is the RFC 4648 alphabet; value 0 is 'A' and value 31 is '7'.
const Base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// ValidateSecretKeyRegex matches a strictly formatted Base32 secret with optional padding.
var ValidateSecretKeyRegex = regexp.MustCompile("^[A-Z2-7]+=*$")

var base32Index = func() [256]int8 {
	var idx [256]int8
	for i := range idx {
		idx[i] = -1
	}
	for i := 0; i < len(Base32Alphabet); i++ {
		idx[Base32Alphabet[i]] = int8(i)
	}
	return idx
}()

// EncodeBase32 encodes b with the RFC 4648 alphabet without emitting padding.
// A trailing group of fewer than 5 bits is left-shifted into a full symbol.
func EncodeBase32(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow((len(b)*8 + 4) / 5)

	var value uint32
	bits := 0
	for _, c := range b {
		value = value<<8 | uint32(c)
		bits += 8
		for bits >= 5 {
			sb.WriteByte(Base32Alphabet[(value>>(bits-5))&31])
			bits -= 5
		}
		value &= 1<<bits - 1
	}
	if bits > 0 {
		sb.WriteByte(Base32Alphabet[(value<<(5-bits))&31])
	}
	return sb.String()
}

// DecodeBase32 decodes s leniently: trailing '=' is stripped, input is
// upper-cased, characters outside the alphabet are skipped and a trailing
// fragment shorter than 8 bits is discarded. It never fails.
func DecodeBase32(s string) []byte {
	s = strings.ToUpper(strings.TrimRight(s, "="))

	out := make([]byte, 0, len(s)*5/8)
	var value uint32
	bits := 0
	for i := 0; i < len(s); i++ {
		v := base32Index[s[i]]
		if v < 0 {
			continue
		}
		value = value<<5 | uint32(v)
		bits += 5
		if bits >= 8 {
			out = append(out, byte(value>>(bits-8)))
			bits -= 8
			value &= 1<<bits - 1
		}
	}
	return out
}

// ValidateSecret reports whether secret is well-formed Base32. The codec
// itself is lenient; use this where typed-in secrets should be rejected
// instead of silently shortened.
func ValidateSecret(secret string) error {
	secret = strings.ToUpper(strings.TrimSpace(secret))
	if secret == "" {
		return ErrMissingSecret
	}
	if !ValidateSecretKeyRegex.MatchString(secret) {
		return ErrInvalidSecret
	}
	return nil
}
