package chat

import (
	"context"
	"net"
	"strings"

	"github.com/wtask/chatrelay/internal/chat/broker"
)

const unknownHost = "Unknown"

// Resolver - reverse DNS lookup, *net.Resolver is suitable.
type Resolver interface {
	LookupAddr(ctx context.Context, addr string) (names []string, err error)
}

// identify - builds display identity for the remote address ("host:port" or bare host).
// Hostname falls back to "Unknown" when lookup fails.
func (s *Server) identify(ctx context.Context, remote string) broker.Identity {
	host, _, err := net.SplitHostPort(remote)
	if err != nil {
		host = remote
	}
	id := broker.Identity{Addr: host, Hostname: unknownHost}
	if s.resolver == nil || host == "" {
		return id
	}
	ctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()
	names, err := s.resolver.LookupAddr(ctx, host)
	if err != nil || len(names) == 0 {
		return id
	}
	if name := strings.TrimSuffix(names[0], "."); name != "" {
		id.Hostname = name
	}
	return id
}
