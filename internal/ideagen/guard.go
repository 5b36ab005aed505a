// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ideagen

// Guard is a single-flight token for callers that must keep at most one
// generation in flight. The zero value is not usable; call NewGuard.
type Guard struct {
	slot chan struct{}
}

// NewGuard returns a released Guard.
func NewGuard() *Guard {
	return &Guard{slot: make(chan struct{}, 1)}
}

// TryAcquire takes the token without blocking and reports whether it did.
func (g *Guard) TryAcquire() bool {
	select {
	case g.slot <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release returns the token. Releasing a free Guard is a no-op.
func (g *Guard) Release() {
	select {
	case <-g.slot:
	default:
	}
}

// InFlight reports whether the token is currently held.
func (g *Guard) InFlight() bool {
	return len(g.slot) == 1
}
