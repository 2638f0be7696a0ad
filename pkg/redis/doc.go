// Package redis provides the Redis pieces of the two-factor stack: a
// retrying Connect helper, a health probe and ReplayStore, which remembers
// the last accepted TOTP time step per subject so a code cannot be used twice.
//
// Configuration is described by Config, populated from environment variables
// via github.com/caarlos0/env.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	guard := redis.NewReplayStore(client, cfg.KeyPrefix, 90*time.Second)
//	fresh, err := guard.Claim(ctx, userID, counter)
//
// Claim runs a small Lua script so the compare-and-set is atomic across
// processes sharing the same Redis.
//
// # Errors
//
// Sentinel errors (ErrRedisNotReady, ErrReplayCheckFailed, ...) wrap the
// underlying go-redis errors using errors.Join.
package redis
