package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vncsmyrnk/digimarket/internal/core/domain"
)

// RevocationLedger keeps revoked tokens until their natural expiry.
type RevocationLedger struct {
	mu      sync.RWMutex
	entries map[string]domain.RevocationEntry
	now     func() time.Time
}

func NewRevocationLedger() *RevocationLedger {
	return &RevocationLedger{entries: make(map[string]domain.RevocationEntry), now: time.Now}
}

func (l *RevocationLedger) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[token]; ok {
		return domain.ErrDuplicateToken
	}
	l.entries[token] = domain.RevocationEntry{Token: token, ExpiresAt: expiresAt, CreatedAt: l.now()}
	return nil
}

func (l *RevocationLedger) IsRevoked(_ context.Context, token string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.entries[token]
	return ok, nil
}

func (l *RevocationLedger) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var n int64
	for token, e := range l.entries {
		if e.ExpiresAt.Before(now) {
			delete(l.entries, token)
			n++
		}
	}
	return n, nil
}

func (l *RevocationLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
