package broker

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Transport - a stream to chat client. Any net.Conn is suitable.
type Transport interface {
	io.ReadWriteCloser
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

// Identity - display identity of chat client.
type Identity struct {
	// Addr - textual IP address of the peer
	Addr string
	// Hostname - result of reverse lookup or "Unknown"
	Hostname string
}

// Label - returns "<hostname> (<ip>)".
func (id Identity) Label() string {
	return fmt.Sprintf("%s (%s)", id.Hostname, id.Addr)
}

// Member - single chat connection kept by Registry.
// Messages are delivered by own writer goroutine from buffered outbox,
// so slow peer does not delay delivery to others.
type Member struct {
	ID       uuid.UUID
	Identity Identity

	transport    Transport
	outbox       chan string
	writeTimeout time.Duration
	dropped      uint64

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	opened    bool
	closeOnce sync.Once
	done      chan struct{}
}

type memberOption func(m *Member) error

// NewMember - builds member for given transport. Call Open to start delivery.
func NewMember(transport Transport, id Identity, options ...memberOption) (*Member, error) {
	if transport == nil {
		return nil, ErrTransportRequired
	}
	m := &Member{
		ID:           uuid.New(),
		Identity:     id,
		transport:    transport,
		writeTimeout: 10 * time.Second,
		done:         make(chan struct{}),
	}
	queueSize := 64
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(m); err != nil {
			return nil, err
		}
	}
	if m.outbox == nil {
		m.outbox = make(chan string, queueSize)
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	return m, nil
}

// WithQueueSize - overwrites default outbox capacity (64 messages).
func WithQueueSize(size int) memberOption {
	return func(m *Member) error {
		if size <= 0 {
			return fmt.Errorf("broker.WithQueueSize: invalid size (%d)", size)
		}
		m.outbox = make(chan string, size)
		return nil
	}
}

// WithWriteTimeout - overwrites default write timeout (10s) of single message.
func WithWriteTimeout(timeout time.Duration) memberOption {
	return func(m *Member) error {
		if timeout <= 0 {
			return fmt.Errorf("broker.WithWriteTimeout: invalid timeout (%v)", timeout)
		}
		m.writeTimeout = timeout
		return nil
	}
}

// Label - returns display label of the member.
func (m *Member) Label() string {
	return m.Identity.Label()
}

// Transport - returns underlying transport. The owner reads from it, Member only writes.
func (m *Member) Transport() Transport {
	return m.transport
}

// Open - starts outbox delivery in background. Does nothing after Close.
func (m *Member) Open() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.opened || m.ctx.Err() != nil {
		return
	}
	m.opened = true
	go m.maintainOutbox()
}

// Enqueue - puts message into outbox without blocking.
// Returns false if member is closed or its outbox is full; message is dropped then.
func (m *Member) Enqueue(message string) bool {
	if m.ctx.Err() != nil {
		return false
	}
	select {
	case m.outbox <- message:
		return true
	default:
		atomic.AddUint64(&m.dropped, 1)
		return false
	}
}

// Dropped - returns number of messages dropped due to full outbox.
func (m *Member) Dropped() uint64 {
	return atomic.LoadUint64(&m.dropped)
}

// Reject - writes notice directly to the transport and closes member.
// It is used for connections which are never opened.
func (m *Member) Reject(notice string) error {
	m.transport.SetWriteDeadline(time.Now().Add(m.writeTimeout))
	_, err := io.WriteString(m.transport, notice)
	m.Close()
	return err
}

// Close - stops delivery, writes what is left in outbox within single write timeout
// and closes transport. It is safe to call Close many times.
func (m *Member) Close() {
	m.closeOnce.Do(func() {
		m.cancel()
		m.mu.Lock()
		opened := m.opened
		m.opened = true
		m.mu.Unlock()
		if !opened {
			m.transport.Close()
			close(m.done)
		}
	})
}

// Done - returns channel which is closed after transport was released.
func (m *Member) Done() <-chan struct{} {
	return m.done
}

func (m *Member) maintainOutbox() {
	defer func() {
		m.cancel()
		//help to immediately release conn by related reader even if it is still blocked
		m.transport.Close()
		close(m.done)
	}()
	for {
		select {
		case message := <-m.outbox:
			if !m.write(message, time.Now().Add(m.writeTimeout)) {
				return
			}
		case <-m.ctx.Done():
			m.drain()
			return
		}
	}
}

func (m *Member) drain() {
	deadline := time.Now().Add(m.writeTimeout)
	for {
		select {
		case message := <-m.outbox:
			if !m.write(message, deadline) {
				return
			}
		default:
			return
		}
	}
}

func (m *Member) write(message string, deadline time.Time) bool {
	if message == "" {
		return true
	}
	m.transport.SetWriteDeadline(deadline)
	_, err := io.WriteString(m.transport, message)
	return err == nil
}
