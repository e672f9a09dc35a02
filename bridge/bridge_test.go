package bridge_test

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ALuevanos/GamePad-UNO/bridge"
	"github.com/ALuevanos/GamePad-UNO/gamepad"
)

// startBridge runs a bridge on one end of an in-memory link and returns the
// bridge handle plus the peer end of the link.
func startBridge(t *testing.T) (*bridge.Bridge, net.Conn) {
	t.Helper()

	local, peer := net.Pipe()
	br := bridge.New(local, bridge.Options{
		TickPeriod: 200 * time.Microsecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- br.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
		local.Close()
		peer.Close()
	})
	return br, peer
}

func pollAll(t *testing.T, conn net.Conn) []byte {
	t.Helper()

	req := make([]byte, gamepad.StateSize)
	for i := range req {
		req[i] = byte(i)
	}
	_, err := conn.Write(req)
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	reply := make([]byte, gamepad.StateSize)
	_, err = io.ReadFull(conn, reply)
	require.NoError(t, err)
	return reply
}

func TestRoundTripOverLink(t *testing.T) {
	br, conn := startBridge(t)

	// Before any submit the bridge serves the blank snapshot.
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x80, 0x80, 0x80, 0x80}, pollAll(t, conn))

	st := gamepad.Blank()
	st.Press(gamepad.ButtonTriangle)
	st.LeftStickX = 200
	br.Submit(st)

	reply := pollAll(t, conn)
	expected, err := st.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, expected, reply)

	// The triangle bit lands in bit 0 of byte 0, leftStickX in byte 3.
	assert.Equal(t, byte(0x01), reply[0])
	assert.Equal(t, byte(200), reply[3])

	// Polling again without an intervening submit yields the same bytes.
	assert.Equal(t, reply, pollAll(t, conn))
}

func TestOutOfRangeOffsetIsIgnoredOverLink(t *testing.T) {
	_, conn := startBridge(t)

	_, err := conn.Write([]byte{gamepad.StateSize, 0x00})
	require.NoError(t, err)

	// The valid offset is answered.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	reply := make([]byte, 1)
	_, err = io.ReadFull(conn, reply)
	require.NoError(t, err)
	assert.Equal(t, byte(0x00), reply[0])

	// The out-of-range offset produced no reply byte.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, err = conn.Read(reply)
	var nerr net.Error
	require.ErrorAs(t, err, &nerr)
	assert.True(t, nerr.Timeout())
}

func TestPeerCloseStopsBridge(t *testing.T) {
	local, peer := net.Pipe()
	br := bridge.New(local, bridge.Options{TickPeriod: 200 * time.Microsecond})

	done := make(chan error, 1)
	go func() { done <- br.Run(context.Background()) }()

	require.NoError(t, peer.Close())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("bridge did not stop after peer close")
	}
}
