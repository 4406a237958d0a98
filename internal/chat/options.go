package chat

import (
	"errors"
	"fmt"
	"io"
	"time"
)

type serverOption func(s *Server) error

// MessageHistory - ordered history of chat lines, *history.Stack is suitable.
type MessageHistory interface {
	// Push - push new line into history
	Push(string)
	// Tail - get a number of latest lines in chronological order
	Tail(n int) []string
}

// WithLogger - attach logger for diagnostic messages.
func WithLogger(l Logger) serverOption {
	return func(s *Server) error {
		if l == nil {
			return errors.New("chat.WithLogger: logger is nil")
		}
		s.logger = l
		return nil
	}
}

// WithDisplay - overwrites default operator console (os.Stdout) where client messages are printed.
func WithDisplay(w io.Writer) serverOption {
	return func(s *Server) error {
		s.display = NewDisplay(w)
		return nil
	}
}

// WithCapacity - overwrites default max number of simultaneous clients (10).
// Connections over capacity are refused.
func WithCapacity(capacity int) serverOption {
	return func(s *Server) error {
		if capacity < 1 {
			return fmt.Errorf("chat.WithCapacity: invalid capacity (%d)", capacity)
		}
		s.capacity = capacity
		return nil
	}
}

// WithBufferSize - overwrites default size of read buffer (1024 bytes).
// Every single read from client is treated as complete message.
func WithBufferSize(size int) serverOption {
	return func(s *Server) error {
		if size < 1 {
			return fmt.Errorf("chat.WithBufferSize: invalid size (%d)", size)
		}
		s.bufSize = size
		return nil
	}
}

// WithQueueSize - overwrites default number of outgoing messages (64) queued per client.
func WithQueueSize(size int) serverOption {
	return func(s *Server) error {
		if size < 1 {
			return fmt.Errorf("chat.WithQueueSize: invalid size (%d)", size)
		}
		s.queueSize = size
		return nil
	}
}

// WithWriteTimeout - overwrites default write timeout (10s) of outgoing message.
func WithWriteTimeout(timeout time.Duration) serverOption {
	return func(s *Server) error {
		if timeout <= 0 {
			return fmt.Errorf("chat.WithWriteTimeout: invalid timeout (%v)", timeout)
		}
		s.writeTimeout = timeout
		return nil
	}
}

// WithIdleTimeout - disconnect client after timeout without incoming data.
// Zero timeout (default) keeps idle clients forever.
func WithIdleTimeout(timeout time.Duration) serverOption {
	return func(s *Server) error {
		if timeout < 0 {
			return fmt.Errorf("chat.WithIdleTimeout: invalid timeout (%v)", timeout)
		}
		s.idleTimeout = timeout
		return nil
	}
}

// WithResolver - overwrites reverse lookup of client hostnames, nil disables lookup.
func WithResolver(r Resolver, timeout time.Duration) serverOption {
	return func(s *Server) error {
		if timeout <= 0 {
			return fmt.Errorf("chat.WithResolver: invalid timeout (%v)", timeout)
		}
		s.resolver = r
		s.lookupTimeout = timeout
		return nil
	}
}

// WithMessageHistory - keep chat lines in h and greet every new client with last n of them.
func WithMessageHistory(h MessageHistory, n int) serverOption {
	return func(s *Server) error {
		if h == nil {
			return errors.New("chat.WithMessageHistory: history is nil")
		}
		if n < 0 {
			return fmt.Errorf("chat.WithMessageHistory: invalid greets number (%d)", n)
		}
		s.history = h
		s.historyGreets = n
		return nil
	}
}

// WithClock - overwrites source of message timestamps (time.Now).
func WithClock(now func() time.Time) serverOption {
	return func(s *Server) error {
		if now == nil {
			return errors.New("chat.WithClock: clock is nil")
		}
		s.now = now
		return nil
	}
}
