package wsgate

import (
	"bytes"
	"io"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const closeWait = time.Second

// Conn - adapts websocket connection to chat transport.
// Every data frame is read as separate chunk, every write is sent as text frame.
type Conn struct {
	ws        *websocket.Conn
	frame     io.Reader
	closeOnce sync.Once
}

// NewConn - wraps websocket connection.
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

// Read - reads current frame, moving to the next one when it is exhausted.
// Returns data of one frame at most.
func (c *Conn) Read(p []byte) (int, error) {
	for {
		if c.frame == nil {
			_, r, err := c.ws.NextReader()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return 0, io.EOF
				}
				return 0, err
			}
			c.frame = r
		}
		n, err := c.frame.Read(p)
		if err == io.EOF {
			c.frame = nil
			if n == 0 {
				// empty frame
				continue
			}
			return n, nil
		}
		return n, err
	}
}

// Write - sends p without trailing EOL as single text frame.
func (c *Conn) Write(p []byte) (int, error) {
	err := c.ws.WriteMessage(websocket.TextMessage, bytes.TrimRight(p, "\r\n"))
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close - sends close frame and closes underlying connection.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWait))
		err = c.ws.Close()
	})
	return err
}

func (c *Conn) SetReadDeadline(t time.Time) error {
	return c.ws.SetReadDeadline(t)
}

func (c *Conn) SetWriteDeadline(t time.Time) error {
	return c.ws.SetWriteDeadline(t)
}
