package totp

import (
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultRecoveryCodeCount = 10
	// RecoveryCodeBytes is the entropy per code: 40 bits, 10 hex characters.
	RecoveryCodeBytes = 5
)

// GenerateRecoveryCodes creates count backup codes formatted as XXXXX-XXXXX.
// A count of zero yields DefaultRecoveryCodeCount codes. Uniqueness within a
// batch relies on randomness alone.
func GenerateRecoveryCodes(count int) ([]string, error) {
	return generateRecoveryCodes(DefaultProvider, count)
}

func generateRecoveryCodes(p Provider, count int) ([]string, error) {
	if count < 0 {
		return nil, ErrInvalidRecoveryCodeCount
	}
	if count == 0 {
		count = DefaultRecoveryCodeCount
	}

	codes := make([]string, count)
	for i := range count {
		raw, err := p.RandomBytes(RecoveryCodeBytes)
		if err != nil {
			return nil, errors.Join(ErrFailedToGenerateRecoveryCode, err)
		}
		codes[i] = formatRecoveryCode(strings.ToUpper(hex.EncodeToString(raw)))
	}
	return codes, nil
}

func formatRecoveryCode(s string) string {
	return s[:5] + "-" + s[5:]
}

// NormalizeRecoveryCode trims and upper-cases input and restores the hyphen
// when the user left it out. Input that is not 10 characters long is returned
// without the hyphen handling.
func NormalizeRecoveryCode(code string) string {
	s := strings.ToUpper(strings.TrimSpace(code))
	s = strings.ReplaceAll(s, " ", "")
	flat := strings.ReplaceAll(s, "-", "")
	if len(flat) != RecoveryCodeBytes*2 {
		return s
	}
	return formatRecoveryCode(flat)
}

// IsRecoveryCodeFormat reports whether code looks like a recovery code rather than a TOTP.
func IsRecoveryCodeFormat(code string) bool {
	s := NormalizeRecoveryCode(code)
	if len(s) != RecoveryCodeBytes*2+1 || s[5] != '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i != 5 && !isUpperHex(s[i]) {
			return false
		}
	}
	return true
}

// IsTOTPFormat reports whether code is exactly DefaultDigits ASCII digits.
func IsTOTPFormat(code string) bool {
	code = strings.TrimSpace(code)
	if len(code) != DefaultDigits {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

func isUpperHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('A' <= c && c <= 'F')
}

// HashRecoveryCode hashes a normalized recovery code with bcrypt for storage.
// A cost of zero uses bcrypt.DefaultCost.
func HashRecoveryCode(code string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(NormalizeRecoveryCode(code)), cost)
	if err != nil {
		return "", errors.Join(ErrFailedToHashRecoveryCode, err)
	}
	return string(hash), nil
}

// VerifyRecoveryCode compares code against the stored hashes and returns the
// index of the first match so the caller can remove it. Every hash is checked
// so timing does not reveal the position of a match.
func VerifyRecoveryCode(code string, hashes []string) (int, bool) {
	normalized := []byte(NormalizeRecoveryCode(code))
	match := -1
	for i, h := range hashes {
		if bcrypt.CompareHashAndPassword([]byte(h), normalized) == nil && match < 0 {
			match = i
		}
	}
	return match, match >= 0
}
