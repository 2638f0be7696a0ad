package totp_test

import (
	"testing"

	"github.com/biplatform/authkit/pkg/totp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const recoveryCodePattern = `^[0-9A-F]{5}-[0-9A-F]{5}$`

func TestGenerateRecoveryCodes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		count   int
		want    int
		wantErr bool
	}{
		{name: "Generate 8 codes", count: 8, want: 8},
		{name: "Generate 1 code", count: 1, want: 1},
		{name: "Zero uses the default", count: 0, want: totp.DefaultRecoveryCodeCount},
		{name: "Negative count", count: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			codes, err := totp.GenerateRecoveryCodes(tt.count)
			if tt.wantErr {
				assert.ErrorIs(t, err, totp.ErrInvalidRecoveryCodeCount)
				assert.Nil(t, codes)
				return
			}

			require.NoError(t, err)
			assert.Len(t, codes, tt.want)

			seen := make(map[string]bool)
			for _, code := range codes {
				assert.Regexp(t, recoveryCodePattern, code)
				assert.False(t, seen[code], "Duplicate code found")
				seen[code] = true
			}
		})
	}
}

func TestAuthenticator_RecoveryCodes(t *testing.T) {
	t.Parallel()

	t.Run("deterministic provider", func(t *testing.T) {
		t.Parallel()
		a, err := totp.New(totp.WithProvider(seeded(0xa1, 0xb2, 0xc3, 0xd4, 0xe5, 0x00, 0x0f, 0xf0, 0x12, 0x34)))
		require.NoError(t, err)

		codes, err := a.RecoveryCodes(2)
		require.NoError(t, err)
		assert.Equal(t, []string{"A1B2C-3D4E5", "000FF-01234"}, codes)
	})

	t.Run("provider failure", func(t *testing.T) {
		t.Parallel()
		a, err := totp.New(totp.WithProvider(failingProvider{randomErr: errProviderDown}))
		require.NoError(t, err)

		codes, err := a.RecoveryCodes(3)
		assert.Nil(t, codes)
		assert.ErrorIs(t, err, totp.ErrFailedToGenerateRecoveryCode)
		assert.ErrorIs(t, err, errProviderDown)
	})
}

func TestNormalizeRecoveryCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"A1B2C-3D4E5", "A1B2C-3D4E5"},
		{"a1b2c-3d4e5", "A1B2C-3D4E5"},
		{"  a1b2c3d4e5 ", "A1B2C-3D4E5"},
		{"A1B2C 3D4E5", "A1B2C-3D4E5"},
		{"A1B2-C3D4E5", "A1B2C-3D4E5"},
		{"123456", "123456"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, totp.NormalizeRecoveryCode(tt.in))
		})
	}
}

func TestCodeFormatDetection(t *testing.T) {
	t.Parallel()

	assert.True(t, totp.IsRecoveryCodeFormat("A1B2C-3D4E5"))
	assert.True(t, totp.IsRecoveryCodeFormat("a1b2c3d4e5"))
	assert.False(t, totp.IsRecoveryCodeFormat("G1B2C-3D4E5"))
	assert.False(t, totp.IsRecoveryCodeFormat("123456"))
	assert.False(t, totp.IsRecoveryCodeFormat(""))

	assert.True(t, totp.IsTOTPFormat("012345"))
	assert.True(t, totp.IsTOTPFormat(" 012345 "))
	assert.False(t, totp.IsTOTPFormat("01234"))
	assert.False(t, totp.IsTOTPFormat("01234a"))
	assert.False(t, totp.IsTOTPFormat("A1B2C-3D4E5"))
}

func TestHashAndVerifyRecoveryCode(t *testing.T) {
	t.Parallel()
	codes, err := totp.GenerateRecoveryCodes(3)
	require.NoError(t, err)

	hashes := make([]string, len(codes))
	for i, code := range codes {
		hashes[i], err = totp.HashRecoveryCode(code, bcrypt.MinCost)
		require.NoError(t, err)
		assert.NotEqual(t, code, hashes[i])
	}

	idx, ok := totp.VerifyRecoveryCode(codes[1], hashes)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	t.Run("user typed variant", func(t *testing.T) {
		t.Parallel()
		typed := "  " + codes[2][:5] + codes[2][6:] + " "
		idx, ok := totp.VerifyRecoveryCode(typed, hashes)
		assert.True(t, ok)
		assert.Equal(t, 2, idx)
	})

	t.Run("unknown code", func(t *testing.T) {
		t.Parallel()
		idx, ok := totp.VerifyRecoveryCode("GGGGG-GGGGG", hashes)
		assert.False(t, ok)
		assert.Equal(t, -1, idx)
	})

	t.Run("consumed code is gone", func(t *testing.T) {
		t.Parallel()
		remaining := []string{hashes[0], hashes[2]}
		_, ok := totp.VerifyRecoveryCode(codes[1], remaining)
		assert.False(t, ok)
	})

	t.Run("invalid cost", func(t *testing.T) {
		t.Parallel()
		_, err := totp.HashRecoveryCode(codes[0], bcrypt.MaxCost+1)
		assert.ErrorIs(t, err, totp.ErrFailedToHashRecoveryCode)
	})
}
