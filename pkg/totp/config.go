package totp

// Config holds TOTP settings read from the environment.
type Config struct {
	Issuer            string `env:"TOTP_ISSUER" envDefault:"BI Platform"`
	Window            uint   `env:"TOTP_WINDOW" envDefault:"1"`
	RecoveryCodeCount int    `env:"TOTP_RECOVERY_CODE_COUNT" envDefault:"10"`
	RecoveryHashCost  int    `env:"TOTP_RECOVERY_HASH_COST" envDefault:"10"`
	EncryptionKey     string `env:"TOTP_ENCRYPTION_KEY"` // base64, 32 bytes; sealing is disabled when empty
}
