package journal

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-rotation/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu       sync.RWMutex
	capacity int
	store    map[string][]*Entry
}

// NewInMemory creates a journal that keeps at most capacity entries per
// session. Zero uses DefaultCapacity.
func NewInMemory(capacity int) *InMemoryRepository {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &InMemoryRepository{
		capacity: capacity,
		store:    make(map[string][]*Entry),
	}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Append records an entry
func (r *InMemoryRepository) Append(_ context.Context, input *AppendInput) (*AppendOutput, error) {
	if input == nil || input.Entry == nil {
		return nil, errors.InvalidArgument("entry is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	entry := *input.Entry
	entry.SessionID = input.SessionID

	r.mu.Lock()
	defer r.mu.Unlock()

	entries := append([]*Entry{&entry}, r.store[input.SessionID]...)
	if len(entries) > r.capacity {
		entries = entries[:r.capacity]
	}
	r.store[input.SessionID] = entries

	return &AppendOutput{Size: int64(len(entries))}, nil
}

// List returns up to Limit entries, newest first
func (r *InMemoryRepository) List(_ context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.store[input.SessionID]
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > len(entries) {
		limit = len(entries)
	}

	out := make([]*Entry, limit)
	for i := 0; i < limit; i++ {
		e := *entries[i]
		out[i] = &e
	}

	return &ListOutput{Entries: out}, nil
}
