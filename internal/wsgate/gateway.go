// Package wsgate lets browser clients join TCP chat over WebSocket.
package wsgate

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/wtask/chatrelay/internal/chat/broker"
)

// Handler - serves chat transport until client leaves. *chat.Server is suitable.
type Handler interface {
	Handle(transport broker.Transport, remoteAddr string) error
}

// Logger - interface for logging gateway events
type Logger interface {
	Println(v ...interface{})
}

type gateway struct {
	handler  Handler
	logger   Logger
	upgrader websocket.Upgrader
}

// New - builds http.Handler which upgrades request to websocket and passes it to h.
func New(h Handler, l Logger) http.Handler {
	return &gateway{
		handler: h,
		logger:  l,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// chat has no authentication, any origin is accepted
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (g *gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already replied with error status
		g.log("ERR", "Websocket upgrade failed for", r.RemoteAddr, err)
		return
	}
	if err := g.handler.Handle(NewConn(ws), r.RemoteAddr); err != nil {
		g.log("Websocket client", r.RemoteAddr, "is not served:", err)
	}
}

func (g *gateway) log(v ...interface{}) {
	if g.logger == nil {
		return
	}
	g.logger.Println(v...)
}
