//go:build !tinygo

// Package mirror tees display bus traffic to websocket viewers.
//
// Every command written to the wrapped panel is broadcast as one binary
// message: the command byte, the payload length as a big-endian uint32, then
// the payload.
package mirror

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"dotlcd/hal"

	"github.com/gorilla/websocket"
)

const (
	webSocketReadBufferSize  = 1024
	webSocketWriteBufferSize = 8192 * 2

	writeWait  = 2 * time.Second
	headerSize = 5

	// viewerQueue is how many frames a viewer may fall behind before it is
	// dropped.
	viewerQueue = 16
)

var ErrShortMessage = errors.New("mirror: short message")

// Mirror is a hal.Panel that forwards to another panel and copies every
// successful write to connected viewers.
type Mirror struct {
	next hal.Panel
	log  hal.Logger

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]*viewer
	closed  bool
}

type viewer struct {
	conn *websocket.Conn
	send chan []byte
}

// New wraps next. log may be nil.
func New(next hal.Panel, log hal.Logger) *Mirror {
	return &Mirror{
		next: next,
		log:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  webSocketReadBufferSize,
			WriteBufferSize: webSocketWriteBufferSize,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*viewer),
	}
}

func (m *Mirror) Width() int  { return m.next.Width() }
func (m *Mirror) Height() int { return m.next.Height() }

// WriteCmdData writes to the wrapped panel first. Viewers only see commands
// the panel accepted.
func (m *Mirror) WriteCmdData(cmd byte, data []byte) error {
	if err := m.next.WriteCmdData(cmd, data); err != nil {
		return err
	}
	m.broadcast(Encode(cmd, data))
	return nil
}

// Encode frames one bus command.
func Encode(cmd byte, data []byte) []byte {
	msg := make([]byte, headerSize+len(data))
	msg[0] = cmd
	binary.BigEndian.PutUint32(msg[1:headerSize], uint32(len(data)))
	copy(msg[headerSize:], data)
	return msg
}

// Decode splits a frame produced by Encode. data aliases msg.
func Decode(msg []byte) (cmd byte, data []byte, err error) {
	if len(msg) < headerSize {
		return 0, nil, ErrShortMessage
	}
	n := binary.BigEndian.Uint32(msg[1:headerSize])
	if uint64(len(msg)-headerSize) != uint64(n) {
		return 0, nil, fmt.Errorf("%w: header says %d bytes, have %d", ErrShortMessage, n, len(msg)-headerSize)
	}
	return msg[0], msg[headerSize:], nil
}

// broadcast queues msg for every viewer without blocking the caller. A viewer
// whose queue is full is dropped.
func (m *Mirror) broadcast(msg []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for c, v := range m.clients {
		select {
		case v.send <- msg:
		default:
			m.logf("mirror: drop %s: too slow", c.RemoteAddr())
			_, _ = m.removeLocked(v)
		}
	}
}

func (m *Mirror) writeLoop(v *viewer) {
	for msg := range v.send {
		_ = v.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := v.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			if m.remove(v) && !errors.Is(err, websocket.ErrCloseSent) {
				m.logf("mirror: drop %s: %v", v.conn.RemoteAddr(), err)
			}
			return
		}
	}
}

// remove reports whether v was still connected.
func (m *Mirror) remove(v *viewer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	ok, _ := m.removeLocked(v)
	return ok
}

// removeLocked forgets v, ends its write loop and closes the connection.
// m.mu must be held.
func (m *Mirror) removeLocked(v *viewer) (bool, error) {
	if m.clients[v.conn] != v {
		return false, nil
	}
	delete(m.clients, v.conn)
	close(v.send)
	return true, v.conn.Close()
}

// Handler upgrades requests to websocket viewers.
func (m *Mirror) Handler() http.Handler {
	return http.HandlerFunc(m.serve)
}

func (m *Mirror) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.logf("mirror: upgrade: %v", err)
		return
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		_ = conn.Close()
		return
	}
	v := &viewer{conn: conn, send: make(chan []byte, viewerQueue)}
	m.clients[conn] = v
	m.mu.Unlock()
	go m.writeLoop(v)
	m.logf("mirror: viewer %s connected", conn.RemoteAddr())

	// Viewers never send anything we use; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	_ = m.remove(v)
	m.logf("mirror: viewer %s disconnected", conn.RemoteAddr())
}

// Clients returns the number of connected viewers.
func (m *Mirror) Clients() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}

// Close disconnects every viewer and refuses new ones.
func (m *Mirror) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	var errs []error
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
	for c, v := range m.clients {
		_ = c.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		if _, err := m.removeLocked(v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Mirror) logf(format string, args ...any) {
	if m.log == nil {
		return
	}
	m.log.WriteLineString(fmt.Sprintf(format, args...))
}
