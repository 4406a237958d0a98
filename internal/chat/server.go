package chat

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/wtask/chatrelay/internal/chat/broker"
	"github.com/wtask/chatrelay/pkg/background"
)

// Server - represents chat server over any net.Listener implementation.
// Every line received from client is sent to all other clients.
type Server struct {
	scope       *background.Scope
	registry    *broker.Registry
	broadcaster *broker.Broadcaster

	logger        Logger
	display       *Display
	resolver      Resolver
	history       MessageHistory
	historyGreets int
	now           func() time.Time

	capacity, bufSize, queueSize             int
	writeTimeout, idleTimeout, lookupTimeout time.Duration
}

// NewServer - creates new chat server which ready to serve several network listeners.
func NewServer(options ...serverOption) (*Server, error) {
	s := &Server{
		logger:        discardLogger{},
		display:       NewDisplay(os.Stdout),
		resolver:      net.DefaultResolver,
		lookupTimeout: 2 * time.Second,
		now:           time.Now,
		capacity:      10,
		bufSize:       1024,
		queueSize:     64,
		writeTimeout:  10 * time.Second,
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(s); err != nil {
			return nil, err
		}
	}
	registry, err := broker.NewRegistry(s.capacity)
	if err != nil {
		return nil, fmt.Errorf("chat.NewServer: %w", err)
	}
	s.registry = registry
	s.broadcaster = broker.NewBroadcaster(registry)
	s.scope = background.NewScope(context.Background())
	return s, nil
}

// Clients - returns number of currently connected clients.
func (s *Server) Clients() int {
	return s.registry.Len()
}

// Serve - accepts connections from listener until Shutdown.
// Listener is closed by server, ErrServerClosed is returned after Shutdown.
// Single accept failure is logged and does not stop serving.
func (s *Server) Serve(listener net.Listener) error {
	if listener == nil {
		return errors.New("chat.Server.Serve: listener is nil")
	}
	ctx := s.scope.Context()
	if ctx.Err() != nil {
		listener.Close()
		return ErrServerClosed
	}
	stop := context.AfterFunc(ctx, func() { listener.Close() })
	defer stop()

	logInfo(s.logger, "Listen", listener.Addr().Network(), listener.Addr().String())
	var delay time.Duration
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			delay = acceptDelay(delay)
			logError(s.logger, "Accept failed:", err)
			time.Sleep(delay)
			continue
		}
		delay = 0

		if !s.scope.Go(func(ctx context.Context) {
			s.handle(ctx, conn, conn.RemoteAddr().String())
		}) {
			conn.Close()
			return ErrServerClosed
		}
	}
}

// Handle - serves single client transport until it is disconnected,
// for transports which are accepted outside of Serve.
// remoteAddr is "host:port" or bare host of the client.
func (s *Server) Handle(transport broker.Transport, remoteAddr string) error {
	errc := make(chan error, 1)
	if !s.scope.Go(func(ctx context.Context) {
		errc <- s.handle(ctx, transport, remoteAddr)
	}) {
		transport.Close()
		return ErrServerClosed
	}
	return <-errc
}

// Broadcast - sends operator message to all clients.
func (s *Server) Broadcast(text string) {
	line := serverMessage(s.now(), text)
	historyPush(s.history, line)
	if _, dropped := s.broadcaster.Send(wire(line), nil); dropped > 0 {
		logError(s.logger, "Server message dropped for", dropped, "client(s)")
	}
}

// Shutdown - stops server with the specified timeout and returns stopping duration.
// Clients are notified, disconnected and awaited.
func (s *Server) Shutdown(timeout time.Duration) time.Duration {
	if s.scope.Context().Err() != nil {
		return 0
	}
	from := time.Now()
	s.Broadcast(shutdownNotice)
	s.scope.Cancel()
	if !s.scope.Wait(timeout) {
		logError(s.logger, "Shutdown timeout exceeded,", s.registry.Len(), "client(s) left")
	}
	return time.Since(from)
}

// acceptDelay - backoff between failed accepts, from 5ms up to 1s.
func acceptDelay(prev time.Duration) time.Duration {
	if prev == 0 {
		return 5 * time.Millisecond
	}
	if prev *= 2; prev > time.Second {
		return time.Second
	}
	return prev
}
