package auth

import "sync"

// Blacklist is the process-wide set of revoked tokens. A structurally valid,
// unexpired token that appears here must still be rejected.
//
// Entries are never pruned; growth is bounded in practice by the token TTL,
// since anything older than the TTL would be rejected on expiry anyway.
type Blacklist struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

// NewBlacklist creates an empty Blacklist.
func NewBlacklist() *Blacklist {
	return &Blacklist{tokens: make(map[string]struct{})}
}

// Add marks a token as revoked. Adding the same token twice is a no-op.
func (b *Blacklist) Add(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[token] = struct{}{}
}

// Contains reports whether a token has been revoked.
func (b *Blacklist) Contains(token string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.tokens[token]
	return ok
}
