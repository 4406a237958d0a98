package background

import (
	"context"
	"sync"
	"time"
)

// Scope - supervised concurrency scope.
// Every task started with Go receives the scope context and is awaited by Wait.
type Scope struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	tasks  sync.WaitGroup
}

// NewScope - builds scope derived from parent context.
func NewScope(parent context.Context) *Scope {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context - returns scope context, it is done after Cancel.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Go - starts task in background. Returns false and does nothing
// if the scope is already cancelled.
func (s *Scope) Go(task func(ctx context.Context)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		return false
	}
	s.tasks.Add(1)
	go func() {
		defer s.tasks.Done()
		task(s.ctx)
	}()
	return true
}

// Cancel - cancels scope context. No new tasks are accepted after.
func (s *Scope) Cancel() {
	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()
}

// Wait - waits for all started tasks at most timeout.
// Reports whether all tasks have finished. Non-positive timeout means wait forever.
func (s *Scope) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		s.tasks.Wait()
		close(done)
	}()
	if timeout <= 0 {
		<-done
		return true
	}
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
