package totp

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"strings"
)

// AESKeySize is the key length for AES-256.
const AESKeySize = 32

// EncryptSecret seals a Base32 secret with AES-256-GCM for the external store.
// The result is base64(nonce || ciphertext).
func EncryptSecret(secret string, key []byte) (string, error) {
	return encryptSecret(DefaultProvider, secret, key)
}

func encryptSecret(p Provider, secret string, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", errors.Join(ErrFailedToEncryptSecret, err)
	}

	nonce, err := p.RandomBytes(gcm.NonceSize())
	if err != nil {
		return "", errors.Join(ErrFailedToEncryptSecret, err)
	}

	plain := []byte(strings.ToUpper(strings.TrimSpace(secret)))
	return base64.StdEncoding.EncodeToString(gcm.Seal(nonce, nonce, plain, nil)), nil
}

// DecryptSecret opens a value produced by EncryptSecret.
func DecryptSecret(sealed string, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", errors.Join(ErrFailedToDecryptSecret, err)
	}

	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", errors.Join(ErrFailedToDecryptSecret, err)
	}

	n := gcm.NonceSize()
	if len(raw) < n {
		return "", errors.Join(ErrFailedToDecryptSecret, ErrInvalidCipherTooShort)
	}

	plain, err := gcm.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return "", errors.Join(ErrFailedToDecryptSecret, err)
	}
	return string(plain), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != AESKeySize {
		return nil, ErrInvalidEncryptionKeyLength
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// GenerateEncryptionKey returns a random AESKeySize key.
func GenerateEncryptionKey() ([]byte, error) {
	key, err := DefaultProvider.RandomBytes(AESKeySize)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateEncryptionKey, err)
	}
	return key, nil
}

// GenerateEncodedEncryptionKey returns a new key encoded for TOTP_ENCRYPTION_KEY.
func GenerateEncodedEncryptionKey() (string, error) {
	key, err := GenerateEncryptionKey()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// GetEncryptionKey decodes the base64 key from the configuration.
func GetEncryptionKey(cfg Config) ([]byte, error) {
	if cfg.EncryptionKey == "" {
		return nil, errors.Join(ErrFailedToLoadEncryptionKey, ErrEncryptionKeyNotSet)
	}

	key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadEncryptionKey, err)
	}
	if len(key) != AESKeySize {
		return nil, errors.Join(ErrFailedToLoadEncryptionKey, ErrInvalidEncryptionKeyLength)
	}
	return key, nil
}

// SealSecret is EncryptSecret drawing the nonce from the authenticator's provider.
func (a *Authenticator) SealSecret(secret string, key []byte) (string, error) {
	return encryptSecret(a.provider, secret, key)
}
