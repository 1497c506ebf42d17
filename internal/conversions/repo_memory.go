package conversions

import (
	"context"
	"sync"
)

// DefaultMemoryCapacity is the number of entries MemoryRepo retains.
const DefaultMemoryCapacity = 200

// MemoryRepo keeps the most recent conversions in a fixed-size ring.
type MemoryRepo struct {
	mu    sync.RWMutex
	ring  []Conversion
	next  int
	count int
}

// NewMemoryRepo constructs a MemoryRepo holding up to capacity entries.
func NewMemoryRepo(capacity int) *MemoryRepo {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryRepo{ring: make([]Conversion, capacity)}
}

// Create appends an entry, evicting the oldest one when full.
func (r *MemoryRepo) Create(ctx context.Context, c Conversion) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ring[r.next] = c
	r.next = (r.next + 1) % len(r.ring)
	if r.count < len(r.ring) {
		r.count++
	}
	return nil
}

// ListRecent returns entries newest-first.
func (r *MemoryRepo) ListRecent(ctx context.Context, limit int) ([]Conversion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit = ClampLimit(limit)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit > r.count {
		limit = r.count
	}
	out := make([]Conversion, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.next - i + len(r.ring)) % len(r.ring)
		out = append(out, r.ring[idx])
	}
	return out, nil
}
