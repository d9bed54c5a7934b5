package account

import (
	"context"
	"sync"
	"time"

	"github.com/Pjt727/roster/server/view"
	"github.com/google/uuid"
)

// SessionStore keeps who is logged in behind an opaque token. A session lives
// for the configured duration and is extended by the active duration whenever
// it is used with less than that left
type SessionStore interface {
	Create(ctx context.Context, user view.User) (string, error)
	Get(ctx context.Context, token string) (view.User, bool, error)
	Delete(ctx context.Context, token string) error
}

type memorySession struct {
	user       view.User
	expireTime time.Time
}

// in memory sessions are fine for a single instance, use the redis store
// when running more than one
type MemoryStore struct {
	sessions       map[string]*memorySession
	duration       time.Duration
	activeDuration time.Duration
	now            func() time.Time
	mu             sync.Mutex
}

func NewMemoryStore(duration, activeDuration time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions:       map[string]*memorySession{},
		duration:       duration,
		activeDuration: activeDuration,
		now:            time.Now,
	}
}

func (s *MemoryStore) Create(ctx context.Context, user view.User) (string, error) {
	token := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = &memorySession{
		user:       user,
		expireTime: s.now().Add(s.duration),
	}
	return token, nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (view.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeExpired()
	session, ok := s.sessions[token]
	if !ok {
		return view.User{}, false, nil
	}
	if session.expireTime.Sub(s.now()) < s.activeDuration {
		session.expireTime = session.expireTime.Add(s.activeDuration)
	}
	return session.user, true, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// the expected number of sessions is small so a sweep on every lookup is fine
func (s *MemoryStore) removeExpired() {
	now := s.now()
	for token, session := range s.sessions {
		if now.After(session.expireTime) {
			delete(s.sessions, token)
		}
	}
}
