package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/biplatform/authkit/pkg/config"
	"github.com/biplatform/authkit/pkg/logger"
	"github.com/biplatform/authkit/pkg/redis"
	"github.com/biplatform/authkit/pkg/totp"
	"github.com/biplatform/authkit/svc/twofactor"
)

// app holds the configured dependencies shared by subcommands.
type app struct {
	log   *slog.Logger
	svc   *twofactor.Service
	close func()
}

func loadApp(ctx context.Context) (*app, error) {
	var (
		logCfg   logger.Config
		totpCfg  totp.Config
		redisCfg redis.Config
	)
	if err := config.Load(&logCfg); err != nil {
		return nil, err
	}
	if err := config.Load(&totpCfg); err != nil {
		return nil, err
	}
	if err := config.Load(&redisCfg); err != nil {
		return nil, err
	}

	log, err := logger.NewFromConfig(logCfg, "totpctl", logger.WithOutput(os.Stderr))
	if err != nil {
		return nil, err
	}

	a := &app{log: log, close: func() {}}
	opts := []twofactor.Option{twofactor.WithLogger(log)}

	auth, err := totp.NewFromConfig(totpCfg)
	if err != nil {
		return nil, err
	}

	if redisCfg.ConnectionURL != "" {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		a.close = func() { _ = client.Close() }
		opts = append(opts, twofactor.WithReplayGuard(
			redis.NewReplayStore(client, redisCfg.KeyPrefix, twofactor.ReplayTTL(auth)),
		))
		log.DebugContext(ctx, "replay guard enabled", slog.String("backend", "redis"))
	}

	svc, err := twofactor.NewFromConfig(totpCfg, opts...)
	if err != nil {
		a.close()
		return nil, err
	}
	a.svc = svc
	return a, nil
}
