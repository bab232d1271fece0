package store

import (
	"context"
	"sync"

	"pagos/internal/core"
)

// Memory keeps collections in a map. It backs tests and the DATA_BACKEND=memory
// mode; it honors the same contract as the durable stores.
type Memory struct {
	mu    sync.Mutex
	users map[string][]core.Payment
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string][]core.Payment)}
}

func (s *Memory) Load(_ context.Context, userID string) ([]core.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Payment, len(s.users[userID]))
	copy(out, s.users[userID])
	return out, nil
}

func (s *Memory) Save(_ context.Context, userID string, payments []core.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]core.Payment, len(payments))
	copy(cp, payments)
	s.users[userID] = cp
	return nil
}
