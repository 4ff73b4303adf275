// Package blacklist keeps the server-side record of issued and revoked
// access tokens. State is process-local and lost on restart: a token revoked
// here regains validity after a restart until its natural expiry. Deployments
// that need restart-safe or multi-instance revocation have to back this with
// shared storage.
package blacklist

import (
	"context"
	"sync"
	"time"

	"github.com/agileboard/backend/internal/tokens"
)

// Ledger tracks active tokens per user and holds revoked tokens until their
// own expiry passes. Per token: tracked -> revoked -> purged; a purged entry
// never comes back.
type Ledger struct {
	mu sync.Mutex

	codec *tokens.Codec

	// revoked token -> its expiry. Entries exist only for tokens revoked
	// before natural expiry.
	revoked map[string]time.Time

	// user id -> tokens issued for that user and not yet individually
	// revoked.
	active map[uint]map[string]struct{}
}

func New(codec *tokens.Codec) *Ledger {
	return &Ledger{
		codec:   codec,
		revoked: make(map[string]time.Time),
		active:  make(map[uint]map[string]struct{}),
	}
}

// Track registers a freshly issued token as active for the user. Idempotent.
func (l *Ledger) Track(token string, userID uint, expiresAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	set, ok := l.active[userID]
	if !ok {
		set = make(map[string]struct{})
		l.active[userID] = set
	}
	set[token] = struct{}{}
}

// RevokeOne blacklists a single token until its embedded expiry. A token that
// no longer parses (expired, garbage, wrong key) is not worth blacklisting:
// it already fails verification on its own, so the call is a silent no-op.
func (l *Ledger) RevokeOne(token string) {
	claims, err := l.codec.Parse(token)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.revoked[token] = claims.ExpiresAtTime()
	if sub := claims.Subject(); sub.ByID() {
		l.dropFromActive(sub.UserID, token)
	}
}

// RevokeAll moves every still-valid token of the user onto the blacklist and
// clears the user's tracking entry. Tokens that already expired (or never
// parse) are dropped without blacklisting.
func (l *Ledger) RevokeAll(userID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for token := range l.active[userID] {
		claims, err := l.codec.Parse(token)
		if err != nil {
			continue
		}
		l.revoked[token] = claims.ExpiresAtTime()
	}
	delete(l.active, userID)
}

// IsRevoked reports whether the token was explicitly revoked and is still
// within its original lifetime. An entry whose expiry passed is purged here:
// the token would fail its own expiry check anyway, so there is nothing left
// to block.
func (l *Ledger) IsRevoked(token string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	expiresAt, ok := l.revoked[token]
	if !ok {
		return false
	}
	if time.Now().After(expiresAt) {
		l.remove(token)
		return false
	}
	return true
}

// PurgeExpired removes every blacklist entry whose expiry has passed.
// IsRevoked already purges lazily; this sweep bounds memory for tokens that
// are revoked and then never presented again.
func (l *Ledger) PurgeExpired() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for token, expiresAt := range l.revoked {
		if now.After(expiresAt) {
			l.remove(token)
		}
	}
}

// Run drives PurgeExpired on a ticker until ctx is cancelled.
func (l *Ledger) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.PurgeExpired()
		}
	}
}

// Clear empties both maps. Test hook.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.revoked = make(map[string]time.Time)
	l.active = make(map[uint]map[string]struct{})
}

// ActiveCount reports how many tokens are tracked for the user.
func (l *Ledger) ActiveCount(userID uint) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.active[userID])
}

// remove deletes a token from the blacklist and from whichever user tracks
// it. Caller holds the lock.
func (l *Ledger) remove(token string) {
	delete(l.revoked, token)
	for userID, set := range l.active {
		if _, ok := set[token]; ok {
			l.dropFromActive(userID, token)
			break
		}
	}
}

func (l *Ledger) dropFromActive(userID uint, token string) {
	set, ok := l.active[userID]
	if !ok {
		return
	}
	delete(set, token)
	if len(set) == 0 {
		delete(l.active, userID)
	}
}
