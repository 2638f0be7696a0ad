package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biplatform/authkit/pkg/totp"
)

// "12345678901234567890" in Base32.
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSecretCommand(t *testing.T) {
	out, err := run(t, "secret")
	require.NoError(t, err)

	secret := strings.TrimSpace(out)
	assert.Len(t, secret, 32)
	assert.NoError(t, totp.ValidateSecret(secret))
}

func TestCodeCommand(t *testing.T) {
	out, err := run(t, "code", "--secret", rfcSecret, "--at", "1234567890")
	require.NoError(t, err)
	assert.Equal(t, "005924\n", out)
}

func TestCodeCommandRequiresSecret(t *testing.T) {
	_, err := run(t, "code")
	require.Error(t, err)
}

func TestURICommand(t *testing.T) {
	out, err := run(t, "uri", "-s", rfcSecret, "-a", "alice@example.com", "-i", "Acme")
	require.NoError(t, err)
	assert.Equal(t,
		"otpauth://totp/Acme:alice%40example.com?secret="+rfcSecret+"&issuer=Acme&algorithm=SHA1&digits=6&period=30\n",
		out)
}

func TestRecoveryCommand(t *testing.T) {
	out, err := run(t, "recovery", "-n", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.True(t, totp.IsRecoveryCodeFormat(l), l)
	}
}

func TestKeygenCommand(t *testing.T) {
	out, err := run(t, "keygen")
	require.NoError(t, err)

	key, ok := strings.CutPrefix(strings.TrimSpace(out), "TOTP_ENCRYPTION_KEY=")
	require.True(t, ok)
	_, err = totp.GetEncryptionKey(totp.Config{EncryptionKey: key})
	assert.NoError(t, err)
}

func TestVerifyCommand(t *testing.T) {
	t.Setenv("REDIS_URL", "")

	code, err := totp.GenerateTOTPWithTime(rfcSecret, time.Now())
	require.NoError(t, err)

	out, err := run(t, "verify", "-s", rfcSecret, "-c", code)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	_, err = run(t, "verify", "-s", rfcSecret, "-c", "12345")
	assert.ErrorIs(t, err, errCodeRejected)
}

func TestHealthCommandWithoutRedis(t *testing.T) {
	t.Setenv("REDIS_URL", "")

	out, err := run(t, "health")
	require.NoError(t, err)
	assert.Equal(t, "replay guard: memory\n", out)
}
