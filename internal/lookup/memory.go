package lookup

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

// Memory keeps lookup values in process.
// It doubles as the index of the in-memory content store.
type Memory struct {
	mu     sync.RWMutex
	values map[slugfield.Target]map[string]int
}

// NewMemory creates an empty backend.
func NewMemory() *Memory {
	return &Memory{values: make(map[slugfield.Target]map[string]int)}
}

// Add records values under resource and field. Duplicates are counted.
func (m *Memory) Add(resource, field string, values ...string) {
	t := slugfield.Target{Resource: resource, Field: field}

	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.values[t]
	if !ok {
		set = make(map[string]int)
		m.values[t] = set
	}
	for _, v := range values {
		set[v]++
	}
}

// Remove drops one occurrence of value.
func (m *Memory) Remove(resource, field, value string) {
	t := slugfield.Target{Resource: resource, Field: field}

	m.mu.Lock()
	defer m.mu.Unlock()

	set := m.values[t]
	if set[value] <= 1 {
		delete(set, value)
		return
	}
	set[value]--
}

func (m *Memory) Count(ctx context.Context, resource, field, value string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[slugfield.Target{Resource: resource, Field: field}][value], nil
}

func (m *Memory) SelectPrefix(ctx context.Context, resource, field, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	var out []string
	for v := range m.values[slugfield.Target{Resource: resource, Field: field}] {
		if strings.HasPrefix(v, prefix) {
			out = append(out, v)
		}
	}
	m.mu.RUnlock()

	slices.Sort(out)
	return out, nil
}

var _ slugfield.Backend = (*Memory)(nil)
