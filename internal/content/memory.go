package content

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

// Indexer receives identifier and name changes so a lookup backend can
// follow an in-memory store. *lookup.Memory satisfies it.
type Indexer interface {
	Add(resource, field string, values ...string)
	Remove(resource, field, value string)
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithIndex keeps idx in step with the store.
func WithIndex(idx Indexer) MemoryOption {
	return func(s *MemoryStore) {
		s.index = idx
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// MemoryStore keeps records in process. It backs the server's memory mode
// and the handler tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]map[string]Record
	index   Indexer
	now     func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		records: make(map[string]map[string]Record),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) List(_ context.Context, resource string, opts ListOptions) ([]Record, error) {
	q := strings.ToLower(opts.Query)

	s.mu.RLock()
	var out []Record
	for _, rec := range s.records[resource] {
		if q == "" || strings.Contains(strings.ToLower(rec.Name), q) || strings.Contains(rec.ID, q) {
			out = append(out, rec)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b Record) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	offset := min(max(opts.Offset, 0), len(out))
	end := min(offset+opts.limit(), len(out))
	return out[offset:end], nil
}

func (s *MemoryStore) Get(_ context.Context, resource, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[resource][id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) Create(_ context.Context, resource string, rec Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, ok := s.records[resource]
	if !ok {
		table = make(map[string]Record)
		s.records[resource] = table
	}
	if _, taken := table[rec.ID]; taken {
		return Record{}, ErrConflict
	}

	now := s.now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now
	table[rec.ID] = rec

	if s.index != nil {
		s.index.Add(resource, IdentifierField, rec.ID)
		s.index.Add(resource, SourceField, rec.Name)
	}
	return rec, nil
}

func (s *MemoryStore) Update(_ context.Context, resource string, rec Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.records[resource][rec.ID]
	if !ok {
		return Record{}, ErrNotFound
	}

	rec.CreatedAt = old.CreatedAt
	rec.UpdatedAt = s.now().UTC()
	s.records[resource][rec.ID] = rec

	if s.index != nil && old.Name != rec.Name {
		s.index.Remove(resource, SourceField, old.Name)
		s.index.Add(resource, SourceField, rec.Name)
	}
	return rec, nil
}

func (s *MemoryStore) Delete(_ context.Context, resource, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.records[resource][id]
	if !ok {
		return ErrNotFound
	}
	delete(s.records[resource], id)

	if s.index != nil {
		s.index.Remove(resource, IdentifierField, id)
		s.index.Remove(resource, SourceField, old.Name)
	}
	return nil
}

var _ Store = (*MemoryStore)(nil)
