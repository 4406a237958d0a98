package chat

import (
	"context"
	"time"

	"github.com/wtask/chatrelay/internal/chat/broker"
	"github.com/wtask/chatrelay/internal/chat/message"
)

// handle - keeps client connection from registration to release.
// Transport is always closed on return.
func (s *Server) handle(ctx context.Context, transport broker.Transport, remoteAddr string) error {
	m, err := broker.NewMember(
		transport,
		s.identify(ctx, remoteAddr),
		broker.WithQueueSize(s.queueSize),
		broker.WithWriteTimeout(s.writeTimeout),
	)
	if err != nil {
		transport.Close()
		logError(s.logger, "Can't keep connection from", remoteAddr, err)
		return err
	}

	// greeting goes into outbox before registration, so it precedes any broadcast
	for _, line := range historyTail(s.history, s.historyGreets) {
		m.Enqueue(wire(line))
	}
	if !s.registry.Add(m) {
		logInfo(s.logger, "Client", m.ID, m.Label(), "is refused,", s.registry.Cap(), "client(s) connected already")
		m.Reject(wire(serverMessage(s.now(), fullNotice)))
		return ErrServerFull
	}

	m.Open()
	stop := context.AfterFunc(ctx, m.Close)
	reason := partLeft
	defer func() {
		stop()
		s.registry.Remove(m)
		m.Close()
		<-m.Done()
		logInfo(s.logger, "Client", m.ID, m.Label(), "has", reason)
	}()
	logInfo(s.logger, "Client", m.ID, m.Label(), "has joined")

	reason = s.receive(ctx, m)
	return nil
}

// receive - reads client messages until the connection is broken.
// Every non-empty read is single message.
func (s *Server) receive(ctx context.Context, m *broker.Member) partReason {
	transport := m.Transport()
	builder := message.Builder{}
	buf := make([]byte, s.bufSize)
	for {
		if s.idleTimeout > 0 {
			transport.SetReadDeadline(time.Now().Add(s.idleTimeout))
		}
		n, err := transport.Read(buf)
		if n > 0 {
			builder.Write(buf[:n])
			if text := builder.Flush(); text != "" {
				s.relay(m, text)
			}
		}
		if err != nil || n == 0 {
			return readPartReason(ctx, err)
		}
	}
}

// relay - prints client message to operator console and sends it to everyone else.
func (s *Server) relay(author *broker.Member, text string) {
	line := formatMessage(s.now(), author.Label(), text)
	s.display.Println(line)
	historyPush(s.history, line)
	if _, dropped := s.broadcaster.Send(wire(line), author); dropped > 0 {
		logError(s.logger, "Message of", author.ID, "dropped for", dropped, "client(s)")
	}
}

func historyPush(h MessageHistory, line string) {
	if h != nil {
		h.Push(line)
	}
}

func historyTail(h MessageHistory, n int) []string {
	if h == nil || n <= 0 {
		return nil
	}
	return h.Tail(n)
}
