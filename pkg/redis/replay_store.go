package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultReplayTTL covers the previous, current and next 30-second steps.
const DefaultReplayTTL = 90 * time.Second

// claimScript stores ARGV[1] under KEYS[1] only when it is greater than the
// stored value, refreshing the TTL (ARGV[2], milliseconds) on success.
var claimScript = redis.NewScript(`
local last = redis.call("GET", KEYS[1])
if last and tonumber(last) >= tonumber(ARGV[1]) then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
return 1
`)

// ReplayStore remembers the last accepted TOTP time step per subject in Redis.
// It satisfies totp.ReplayGuard and is safe to share between processes.
type ReplayStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewReplayStore creates a store. A non-positive ttl uses DefaultReplayTTL and
// an empty prefix uses "totp:last_counter:".
func NewReplayStore(client redis.UniversalClient, prefix string, ttl time.Duration) *ReplayStore {
	if prefix == "" {
		prefix = "totp:last_counter:"
	}
	if ttl <= 0 {
		ttl = DefaultReplayTTL
	}
	return &ReplayStore{client: client, prefix: prefix, ttl: ttl}
}

// Claim records counter for subject if it is newer than the last accepted one.
func (s *ReplayStore) Claim(ctx context.Context, subject string, counter uint64) (bool, error) {
	if subject == "" {
		return false, ErrEmptySubject
	}

	res, err := claimScript.Run(ctx, s.client,
		[]string{s.key(subject)},
		strconv.FormatUint(counter, 10),
		s.ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return false, errors.Join(ErrReplayCheckFailed, err)
	}
	return res == 1, nil
}

// Forget removes the stored counter for subject.
func (s *ReplayStore) Forget(ctx context.Context, subject string) error {
	keys := []string{s.key(subject)}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Join(ErrReplayCheckFailed, err)
	}
	return nil
}

func (s *ReplayStore) key(subject string) string {
	return s.prefix + subject
}
