package chat

import "errors"

var (
	// ErrServerFull - returns when connection is refused because all client slots are taken.
	ErrServerFull = errors.New("chat.Server: no room for new client")

	// ErrServerClosed - returns by Server methods after Shutdown was called.
	ErrServerClosed = errors.New("chat.Server: closed")
)
