package redis

import "time"

// Config describes the Redis connection. An empty ConnectionURL means Redis is
// not configured and callers fall back to in-process state.
type Config struct {
	// ConnectionURL should be in the format "redis://:password@localhost:6379/0".
	ConnectionURL string `env:"REDIS_URL"`
	// RetryAttempts is the number of connection attempts made by Connect.
	RetryAttempts int `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	// RetryInterval is the pause between attempts, e.g. "5s".
	RetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	// ConnectTimeout bounds the whole Connect call.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	// KeyPrefix namespaces replay-guard keys.
	KeyPrefix string `env:"REDIS_REPLAY_KEY_PREFIX" envDefault:"totp:last_counter:"`
}
