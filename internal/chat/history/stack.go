package history

import (
	"fmt"
	"sync"
)

// Stack - accumulates a limited number of strings.
// When stack length is reached max value, it drops the oldest item on every push.
type Stack struct {
	max  int
	mu   sync.RWMutex
	data []string
}

// NewStack - build history stack.
func NewStack(max int) (*Stack, error) {
	if max <= 0 {
		return nil, fmt.Errorf("history.NewStack: max (%d) must be greater than 0", max)
	}
	return &Stack{max: max, data: make([]string, 0, max)}, nil
}

// Len - returns number of currently kept items.
func (s *Stack) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Push - adds item to history.
func (s *Stack) Push(item string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.data) == s.max {
		copy(s.data, s.data[1:])
		s.data = s.data[:len(s.data)-1]
	}
	s.data = append(s.data, item)
}

// Tail - makes copy of last n-items from stack into resulting slice.
// The first item in resulting slice is the oldest.
func (s *Stack) Tail(n int) []string {
	if n < 0 {
		n *= -1
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.data) {
		n = len(s.data)
	}
	tail := make([]string, n)
	copy(tail, s.data[len(s.data)-n:])
	return tail
}
