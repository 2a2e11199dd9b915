package history

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for tests and single-node deployments
// running without redis.
type MemoryStore struct {
	mu       sync.Mutex
	turns    map[string][]TurnEntry
	maxTurns int
}

func NewMemoryStore(maxTurns int) *MemoryStore {
	if maxTurns <= 0 {
		maxTurns = 50
	}
	return &MemoryStore{
		turns:    make(map[string][]TurnEntry),
		maxTurns: maxTurns,
	}
}

func (s *MemoryStore) GetRecentTurns(_ context.Context, conversationKey string, n int) ([]TurnEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	turns := s.turns[conversationKey]
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	out := make([]TurnEntry, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *MemoryStore) AppendTurn(_ context.Context, conversationKey, question, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(s.turns[conversationKey], TurnEntry{Question: question, Answer: answer})
	if len(turns) > s.maxTurns {
		turns = turns[len(turns)-s.maxTurns:]
	}
	s.turns[conversationKey] = turns
	return nil
}
