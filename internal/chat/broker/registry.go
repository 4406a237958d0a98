package broker

import (
	"fmt"
	"sync"
)

// Registry - keeps limited set of chat members.
// Membership changes and iteration are serialized by single lock,
// any iteration observes complete membership.
type Registry struct {
	mu       sync.Mutex
	capacity int
	list     []*Member
}

// NewRegistry - builds registry for capacity members at most.
func NewRegistry(capacity int) (*Registry, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("broker.NewRegistry: invalid capacity (%d)", capacity)
	}
	return &Registry{
		capacity: capacity,
		list:     make([]*Member, 0, capacity),
	}, nil
}

// Cap - returns registry capacity.
func (r *Registry) Cap() int {
	return r.capacity
}

// Len - returns number of kept members.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.list)
}

func (r *Registry) index(m *Member) int {
	for i, member := range r.list {
		if member == m {
			return i
		}
	}
	return -1
}

// Add - keeps member if registry has room and does not keep it yet.
func (r *Registry) Add(m *Member) bool {
	if m == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.list) >= r.capacity || r.index(m) >= 0 {
		return false
	}
	r.list = append(r.list, m)
	return true
}

// Remove - drops member from registry, it is no-op for unknown member.
func (r *Registry) Remove(m *Member) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(m)
	if i < 0 {
		return
	}
	copy(r.list[i:], r.list[i+1:])
	r.list[len(r.list)-1] = nil
	r.list = r.list[:len(r.list)-1]
}

// Snapshot - returns copy of current membership in join order.
func (r *Registry) Snapshot() []*Member {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make([]*Member, len(r.list))
	copy(snapshot, r.list)
	return snapshot
}

// Each - calls f for every member while registry is locked.
// f must not block and must not call Registry methods.
func (r *Registry) Each(f func(*Member)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.list {
		f(m)
	}
}
