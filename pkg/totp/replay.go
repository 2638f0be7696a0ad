package totp

import (
	"context"
	"sync"
)

// ReplayGuard records the last accepted time step per subject.
// Claim returns true and stores counter only if it is strictly greater than
// the last accepted counter for subject.
type ReplayGuard interface {
	Claim(ctx context.Context, subject string, counter uint64) (bool, error)
}

// MemoryReplayGuard is an in-process ReplayGuard.
type MemoryReplayGuard struct {
	mu   sync.Mutex
	last map[string]uint64
}

// NewMemoryReplayGuard creates an empty in-memory guard.
func NewMemoryReplayGuard() *MemoryReplayGuard {
	return &MemoryReplayGuard{last: make(map[string]uint64)}
}

func (g *MemoryReplayGuard) Claim(ctx context.Context, subject string, counter uint64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if last, ok := g.last[subject]; ok && counter <= last {
		return false, nil
	}
	g.last[subject] = counter
	return true, nil
}

// Forget drops the stored counter for subject, e.g. after the secret is rotated.
func (g *MemoryReplayGuard) Forget(subject string) {
	g.mu.Lock()
	delete(g.last, subject)
	g.mu.Unlock()
}
