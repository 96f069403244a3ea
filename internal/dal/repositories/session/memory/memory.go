package memoryrepo

import (
	"context"
	"time"

	"github.com/ecodeclub/ekit/syncx"
)

// SessionMemoryRepository keeps sessions in process memory. Sessions are
// lost on restart.
type SessionMemoryRepository struct {
	sessions syncx.Map[string, time.Time]
	now      func() time.Time
}

func NewSessionMemoryRepository() *SessionMemoryRepository {
	return &SessionMemoryRepository{now: time.Now}
}

// Save stores the token and drops every session that has already expired.
func (r *SessionMemoryRepository) Save(_ context.Context, token string, ttl time.Duration) error {
	now := r.now()
	r.sessions.Range(func(key string, expiresAt time.Time) bool {
		if !now.Before(expiresAt) {
			r.sessions.Delete(key)
		}

		return true
	})
	r.sessions.Store(token, now.Add(ttl))

	return nil
}

func (r *SessionMemoryRepository) Exists(_ context.Context, token string) (bool, error) {
	expiresAt, ok := r.sessions.Load(token)
	if !ok {
		return false, nil
	}
	if !r.now().Before(expiresAt) {
		r.sessions.Delete(token)

		return false, nil
	}

	return true, nil
}

func (r *SessionMemoryRepository) Delete(_ context.Context, token string) error {
	r.sessions.Delete(token)

	return nil
}
