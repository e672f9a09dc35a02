package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ALuevanos/GamePad-UNO/gamepad"
	"github.com/ALuevanos/GamePad-UNO/internal/log"
)

// Watch connects to a TCP-mode bridge, pulls the full snapshot on an interval
// and prints the decoded controller state. It plays the communications chip's
// role on the wire: one request byte per offset, one reply byte back.
type Watch struct {
	Addr        string        `help:"Bridge TCP link address" default:"127.0.0.1:7401" env:"GAMEPADUNO_ADDR"`
	Interval    time.Duration `help:"Poll interval" default:"250ms"`
	ReadTimeout time.Duration `help:"Timeout waiting for a full snapshot" default:"2s"`
	Once        bool          `help:"Poll a single time and exit"`
}

// Run is called by Kong when the watch command is executed.
func (w *Watch) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := &net.Dialer{Timeout: 3 * time.Second}
	conn, err := d.DialContext(ctx, "tcp", w.Addr)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		if err := tcpConn.SetNoDelay(true); err != nil {
			logger.Warn("failed to set TCP_NODELAY", "error", err)
		}
	}

	logger.Info("watching bridge", "addr", w.Addr, "interval", w.Interval)

	if w.Once {
		return w.pollOnce(conn, rawLogger)
	}

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if err := w.pollOnce(conn, rawLogger); err != nil {
				return err
			}
		}
	}
}

// pollOnce requests offsets 0..StateSize-1 in one burst, reads the replies
// and prints the decoded state.
func (w *Watch) pollOnce(conn net.Conn, rawLogger log.RawLogger) error {
	req := make([]byte, gamepad.StateSize)
	for i := range req {
		req[i] = byte(i)
	}
	if _, err := conn.Write(req); err != nil {
		return fmt.Errorf("write requests: %w", err)
	}
	rawLogger.Log(false, req)

	if w.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(w.ReadTimeout))
	}
	reply := make([]byte, gamepad.StateSize)
	if _, err := io.ReadFull(conn, reply); err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	rawLogger.Log(true, reply)

	var st gamepad.State
	if err := st.UnmarshalBinary(reply); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	fmt.Println(formatState(st))
	return nil
}

func formatState(st gamepad.State) string {
	var pressed []string
	for _, name := range gamepad.ButtonOrder {
		if st.Pressed(gamepad.ButtonMasks[name]) {
			pressed = append(pressed, name)
		}
	}
	return fmt.Sprintf("buttons=[%s] lx=%d ly=%d rx=%d ry=%d",
		strings.Join(pressed, " "),
		st.LeftStickX, st.LeftStickY, st.RightStickX, st.RightStickY)
}
