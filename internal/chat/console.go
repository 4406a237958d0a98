package chat

import (
	"bufio"
	"context"
	"io"

	"github.com/wtask/chatrelay/internal/chat/message"
)

// RelayConsole - broadcasts every non-blank line read from r as server message.
// Returns nil at the end of input or after Shutdown, and read error otherwise.
func (s *Server) RelayConsole(r io.Reader) error {
	if r == nil {
		return nil
	}
	ctx := s.scope.Context()
	if ctx.Err() != nil {
		return ErrServerClosed
	}
	lines := make(chan string)
	errc := make(chan error, 1)
	// blocking read of r can't be interrupted, so the reader is not supervised
	// and quits on next line after Shutdown
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	done := make(chan error, 1)
	if !s.scope.Go(func(ctx context.Context) {
		done <- s.relayConsole(ctx, lines, errc)
	}) {
		return ErrServerClosed
	}
	return <-done
}

func (s *Server) relayConsole(ctx context.Context, lines <-chan string, errc <-chan error) error {
	builder := message.Builder{}
	for {
		select {
		case line := <-lines:
			builder.Write([]byte(line))
			if text := builder.Flush(); text != "" {
				s.Broadcast(text)
			}
		case err := <-errc:
			if err != nil {
				logError(s.logger, "Console input failed:", err)
			} else {
				logInfo(s.logger, "Console input closed")
			}
			return err
		case <-ctx.Done():
			return nil
		}
	}
}
