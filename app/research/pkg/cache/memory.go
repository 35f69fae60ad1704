package cache

import (
	"context"
	"sync"
	"time"

	"github.com/iWorld-y/company_radar/app/research/pkg/model"
)

// MemoryStore 进程内缓存
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
	expiry  time.Duration
	now     func() time.Time
}

// NewMemoryStore now 为 nil 时使用 time.Now
func NewMemoryStore(expiry time.Duration, now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		entries: make(map[string]Entry),
		expiry:  expiry,
		now:     now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok || !IsValid(e, s.now(), s.expiry) {
		return Entry{}, false, nil
	}
	e.Result = e.Result.Clone()
	return e, true, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, result model.ResearchResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = Entry{Result: result.Clone(), Timestamp: s.now()}
	return nil
}

func (s *MemoryStore) Sweep(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for k, e := range s.entries {
		if !IsValid(e, now, s.expiry) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed, nil
}

// Len 当前条目数，包含未清理的过期条目
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
