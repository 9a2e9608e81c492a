package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"adoptme-web/internal/ports/session"
)

type store struct {
	mu   sync.RWMutex
	byID map[string]session.Session
	ttl  time.Duration
	now  func() time.Time
}

// NewStore crea un store in-memory. ttl <= 0 => sin expiración.
func NewStore(ttl time.Duration) session.Store {
	return &store{
		byID: make(map[string]session.Session),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *store) Get(ctx context.Context, id string) (session.Session, error) {
	s.mu.RLock()
	sess, ok := s.byID[id]
	s.mu.RUnlock()

	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	if s.ttl > 0 && s.now().Sub(sess.UpdatedAt) > s.ttl {
		_ = s.Delete(ctx, id)
		return session.Session{}, session.ErrNotFound
	}
	return sess, nil
}

func (s *store) Save(ctx context.Context, sess session.Session) error {
	if strings.TrimSpace(sess.ID) == "" {
		return errors.New("session id required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess.UpdatedAt = s.now()
	s.byID[sess.ID] = sess
	return nil
}

func (s *store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byID, id)
	return nil
}
