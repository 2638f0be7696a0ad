package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	cache      sync.Map // reflect.Type -> *entry
	dotenvOnce sync.Once
)

// Load parses environment variables into v according to its `env` tags.
// The default .env file is loaded on first use if present. Each struct type
// is parsed once per process; later calls get a copy of the cached value
// (or the cached error).
//
//	var cfg totp.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() {
		// the file is optional
		_ = godotenv.Load()
	})

	e, _ := cache.LoadOrStore(reflect.TypeFor[T](), &entry{})
	ent := e.(*entry)
	ent.once.Do(func() {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			ent.err = errors.Join(ErrParsingConfig, err)
			return
		}
		ent.value = parsed
	})

	if ent.err != nil {
		return ent.err
	}
	*v = ent.value.(T)
	return nil
}

// MustLoad is Load that panics on failure. Use it for configuration the
// process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadFiles loads the given .env files into the process environment without
// overriding variables that are already set. Call it before the first Load.
func LoadFiles(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Reset drops every cached configuration. Intended for tests.
func Reset() {
	cache.Range(func(k, _ any) bool {
		cache.Delete(k)
		return true
	})
}
