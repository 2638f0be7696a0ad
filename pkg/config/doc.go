// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tag parsing) and caches each
// configuration type so it is parsed once per process:
//
//	var cfg totp.Config
//	config.MustLoad(&cfg)
//
// Reset clears the cache, which is handy in tests that change the environment.
package config
