package chat

import (
	"context"
	"errors"
	"io"
	"net"
)

// partReason - describes the type of parting with client.
type partReason int

const (
	_ partReason = iota
	partLeft
	partTimeout
	partFailed
	partShutdown
)

func (r partReason) String() string {
	switch r {
	case partLeft:
		return "left"
	case partTimeout:
		return "timed out"
	case partFailed:
		return "failed"
	case partShutdown:
		return "been disconnected by server shutdown"
	default:
		return "parted for unknown reason"
	}
}

// readPartReason - classifies termination of client read loop.
func readPartReason(ctx context.Context, err error) partReason {
	if ctx.Err() != nil {
		return partShutdown
	}
	if err == nil || errors.Is(err, io.EOF) {
		return partLeft
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return partTimeout
	}
	return partFailed
}
