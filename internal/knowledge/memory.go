package knowledge

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore keeps the knowledge base in process memory. The default
// when Redis is not configured; learned entries last until restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry // keyed by lowercased question
	order   []string
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{entries: make(map[string]Entry)}
	s.seedLocked()
	return s
}

func (s *MemoryStore) seedLocked() {
	for _, e := range Seed {
		key := strings.ToLower(e.Question)
		if _, ok := s.entries[key]; !ok {
			s.entries[key] = e
			s.order = append(s.order, key)
		}
	}
}

func (s *MemoryStore) Lookup(_ context.Context, text string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	answer, ok := bestAnswer(text, s.snapshotLocked())
	return answer, ok, nil
}

func (s *MemoryStore) Learn(_ context.Context, question, answer string) error {
	if !learnable(question, answer) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(strings.TrimSpace(question))
	if _, ok := s.entries[key]; ok {
		return nil
	}
	s.entries[key] = Entry{Question: strings.TrimSpace(question), Answer: strings.TrimSpace(answer)}
	s.order = append(s.order, key)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(), nil
}

func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]Entry)
	s.order = nil
	s.seedLocked()
	return nil
}

func (s *MemoryStore) snapshotLocked() []Entry {
	out := make([]Entry, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.entries[key])
	}
	return out
}
