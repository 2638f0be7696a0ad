package totp

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildProvisioningURI creates the otpauth:// URI consumed by authenticator apps.
// Issuer and account are percent-encoded; an empty issuer falls back to DefaultIssuer.
// The format follows https://github.com/google/google-authenticator/wiki/Key-Uri-Format
func BuildProvisioningURI(secret, account, issuer string) (string, error) {
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return buildURI(secret, account, issuer, DefaultDigits, DefaultPeriod)
}

func buildURI(secret, account, issuer string, digits int, period uint64) (string, error) {
	if err := ValidateSecret(secret); err != nil {
		return "", err
	}
	secret = strings.ToUpper(strings.TrimSpace(secret))
	if account == "" {
		return "", ErrMissingAccountName
	}

	iss := escapeComponent(issuer)
	return fmt.Sprintf(
		"otpauth://totp/%s:%s?secret=%s&issuer=%s&algorithm=%s&digits=%d&period=%d",
		iss, escapeComponent(account), secret, iss, DefaultAlgorithm, digits, period,
	), nil
}

// escapeComponent percent-encodes s for use in both the label and the query,
// encoding spaces as %20 rather than '+'.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
