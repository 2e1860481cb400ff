package tmpchat

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Conn is the concrete Transport binding for this module: it wraps a
// *websocket.Conn and speaks one TMP frame per websocket text message,
// matching §4.5. It is the only file in this module importing
// github.com/gorilla/websocket — everything above it (registry, frame
// codec, state machine, broadcaster) depends only on the Socket interface
// (registry.go).
//
// gorilla/websocket allows only one concurrent writer; wmu serializes
// WriteFrame/Ping/Close the same way the teacher's Conn.wmu serializes
// writes to its transport (aznet.go).
type Conn struct {
	ws  *websocket.Conn
	id  string
	wmu sync.Mutex
}

// NewConn wraps an accepted *websocket.Conn. id is an opaque identifier used
// only for logging, the way the teacher's connID identifies a connection
// before it has a stable name (carried over via google/uuid, generated by
// the caller — Server.handleUpgrade).
func NewConn(ws *websocket.Conn, id string) *Conn {
	return &Conn{ws: ws, id: id}
}

// ID returns the connection's internal identifier (not part of the wire protocol).
func (c *Conn) ID() string { return c.id }

// RemoteAddr passes through the underlying socket's remote address, for logging.
func (c *Conn) RemoteAddr() net.Addr { return c.ws.RemoteAddr() }

// RecvFrame blocks until a frame arrives, the deadline passes, or the socket
// closes. deadline is the absolute time (derived by the connection driver
// from its current timeout budget, §4.3) after which ReadMessage returns a
// deadline-exceeded error; the driver treats that identically to any other
// recv failure (§7 taxonomy 4 vs. 5 is distinguished neither here nor by the
// caller).
func (c *Conn) RecvFrame(deadline time.Time, origin Origin) (Frame, []byte, error) {
	if err := c.ws.SetReadDeadline(deadline); err != nil {
		return Frame{}, nil, err
	}
	_, raw, err := c.ws.ReadMessage()
	if err != nil {
		return Frame{}, nil, err
	}
	f, err := Parse(string(raw), origin)
	if err != nil {
		return Frame{}, nil, err
	}
	return f, raw, nil
}

// WriteFrame encodes and sends f as a single websocket text message. It
// satisfies the Socket interface the Registry and Broadcaster use.
func (c *Conn) WriteFrame(f Frame) error {
	return c.WriteRaw([]byte(f.Encode()))
}

// WriteRaw sends data unchanged as a single websocket text message.
func (c *Conn) WriteRaw(data []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Ping sends a websocket ping control frame. There is no application-level
// keep-alive frame on the wire (§4.2 defines none), so the keep-alive
// goroutine (server.go) rides the websocket protocol's own ping/pong instead
// of the teacher's MsgTypePing application frame.
func (c *Conn) Ping() error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
}

// Close closes the underlying websocket connection.
func (c *Conn) Close() error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return c.ws.Close()
}

// upgrader is the shared websocket.Upgrader used by Server.handleUpgrade. Origin
// checking is intentionally permissive (any origin may connect): the spec
// places authentication beyond name uniqueness out of scope (§1 Non-goals).
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}
