//go:build !tinygo

package mirror

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dotlcd/hal"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

type failingPanel struct{ hal.Panel }

func (failingPanel) WriteCmdData(byte, []byte) error { return errors.New("bus down") }

func dial(t *testing.T, m *Mirror) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(m.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return m.Clients() == 1 }, time.Second, 5*time.Millisecond)
	return conn
}

func TestEncodeDecode(t *testing.T) {
	msg := Encode(hal.CmdColumnAddressSet, []byte{0, 4, 0, 27})
	require.Equal(t, []byte{0x2A, 0, 0, 0, 4, 0, 4, 0, 27}, msg)

	cmd, data, err := Decode(msg)
	require.NoError(t, err)
	require.Equal(t, hal.CmdColumnAddressSet, cmd)
	require.Equal(t, []byte{0, 4, 0, 27}, data)

	_, _, err = Decode(msg[:3])
	require.ErrorIs(t, err, ErrShortMessage)
	_, _, err = Decode(msg[:7])
	require.ErrorIs(t, err, ErrShortMessage)
}

func TestMirrorForwardsAndBroadcasts(t *testing.T) {
	panel := hal.NewMemoryPanel(4, 4)
	m := New(panel, nil)
	require.Equal(t, 4, m.Width())
	require.Equal(t, 4, m.Height())

	conn := dial(t, m)

	require.NoError(t, m.WriteCmdData(hal.CmdColumnAddressSet, []byte{0, 1, 0, 1}))
	require.NoError(t, m.WriteCmdData(hal.CmdRowAddressSet, []byte{0, 2, 0, 2}))
	require.NoError(t, m.WriteCmdData(hal.CmdMemoryWrite, []byte{0xF8, 0x00}))
	require.Equal(t, uint16(0xF800), panel.Pixel(1, 2))

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var cmds []byte
	for i := 0; i < 3; i++ {
		typ, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		require.Equal(t, websocket.BinaryMessage, typ)
		cmd, _, err := Decode(msg)
		require.NoError(t, err)
		cmds = append(cmds, cmd)
	}
	require.Equal(t, []byte{hal.CmdColumnAddressSet, hal.CmdRowAddressSet, hal.CmdMemoryWrite}, cmds)
}

func TestMirrorSkipsFailedWrites(t *testing.T) {
	m := New(failingPanel{hal.NewMemoryPanel(2, 2)}, nil)
	conn := dial(t, m)

	require.Error(t, m.WriteCmdData(hal.CmdMemoryWrite, []byte{1, 2}))

	_ = conn.SetReadDeadline(time.Now().Add(50 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
}

func TestMirrorClose(t *testing.T) {
	m := New(hal.NewMemoryPanel(2, 2), nil)
	dial(t, m)

	require.NoError(t, m.Close())
	require.Zero(t, m.Clients())
	require.NoError(t, m.WriteCmdData(hal.CmdMemoryWrite, []byte{0, 0}))
}

func TestMirrorSlowViewerDoesNotBlockWrites(t *testing.T) {
	m := New(hal.NewMemoryPanel(2, 2), nil)
	// The viewer never reads, so its socket buffers fill up.
	dial(t, m)

	frame := make([]byte, 1<<20)
	start := time.Now()
	for i := 0; i < viewerQueue+64; i++ {
		require.NoError(t, m.WriteCmdData(0x00, frame))
	}
	require.Less(t, time.Since(start), writeWait)

	require.Eventually(t, func() bool { return m.Clients() == 0 }, 2*writeWait, 10*time.Millisecond)
}
