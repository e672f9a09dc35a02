// Package cmd holds the kong command implementations.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ALuevanos/GamePad-UNO/bridge"
	"github.com/ALuevanos/GamePad-UNO/internal/log"
	"github.com/ALuevanos/GamePad-UNO/internal/script"
	"github.com/ALuevanos/GamePad-UNO/internal/serial"
)

// Serve runs the snapshot bridge on a serial port or a TCP link.
//
// With --serial the link is a real tty to the communications chip. With
// --listen the downstream side is emulated over TCP: one connection at a time
// becomes the link, which is how the tests and the watch command talk to the
// bridge during development.
type Serve struct {
	Serial     string        `help:"Serial device path (e.g. /dev/ttyUSB0)" env:"GAMEPADUNO_SERIAL"`
	Baud       int           `help:"Serial baud rate" default:"38400" env:"GAMEPADUNO_BAUD"`
	Listen     string        `help:"TCP listen address used instead of a serial port" env:"GAMEPADUNO_LISTEN"`
	Interval   int           `help:"Ticks between poll runs" default:"1" env:"GAMEPADUNO_INTERVAL"`
	TickPeriod time.Duration `help:"Tick period" default:"1ms" env:"GAMEPADUNO_TICK_PERIOD"`
	Script     string        `help:"Input script replayed while serving (YAML or TOML)" type:"existingfile" env:"GAMEPADUNO_SCRIPT"`
	Loop       bool          `help:"Replay the script in a loop" default:"true" negatable:""`
}

// Run is called by Kong when the serve command is executed.
func (s *Serve) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var frames []script.Frame
	if s.Script != "" {
		var err error
		frames, err = script.Load(s.Script)
		if err != nil {
			return err
		}
		logger.Info("loaded input script", "file", s.Script, "frames", len(frames))
	}

	switch {
	case s.Serial != "" && s.Listen != "":
		return fmt.Errorf("--serial and --listen are mutually exclusive")
	case s.Serial != "":
		return s.serveSerial(ctx, logger, rawLogger, frames)
	case s.Listen != "":
		return s.serveTCP(ctx, logger, rawLogger, frames)
	default:
		return fmt.Errorf("either --serial or --listen must be set")
	}
}

func (s *Serve) serveSerial(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger, frames []script.Frame) error {
	port, err := serial.Open(s.Serial, s.Baud)
	if err != nil {
		return err
	}
	defer port.Close()

	// Unblocks the pump's pending read on shutdown.
	go func() {
		<-ctx.Done()
		port.Close()
	}()

	logger.Info("serving snapshot link", "serial", s.Serial, "baud", s.Baud)
	return s.session(ctx, port, logger, rawLogger, frames)
}

func (s *Serve) serveTCP(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger, frames []script.Frame) error {
	ln, err := net.Listen("tcp", s.Listen)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	logger.Info("link listening", "addr", ln.Addr().String())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				logger.Info("link server stopped")
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		connLogger := logger.With("remote", conn.RemoteAddr().String())
		connLogger.Info("link connected")
		if tcpConn, ok := conn.(*net.TCPConn); ok {
			if err := tcpConn.SetNoDelay(true); err != nil {
				connLogger.Warn("failed to set TCP_NODELAY", "error", err)
			}
		}

		sessionCtx, cancel := context.WithCancel(ctx)
		go func() {
			<-sessionCtx.Done()
			conn.Close()
		}()
		err = s.session(sessionCtx, conn, connLogger, rawLogger, frames)
		cancel()
		if err != nil {
			connLogger.Error("link session ended", "error", err)
		} else {
			connLogger.Info("link disconnected")
		}
	}
}

// session runs one bridge on one link until the link drops or ctx is done.
func (s *Serve) session(ctx context.Context, port io.ReadWriter, logger *slog.Logger, rawLogger log.RawLogger, frames []script.Frame) error {
	br := bridge.New(port, bridge.Options{
		IntervalTicks: s.Interval,
		TickPeriod:    s.TickPeriod,
		Logger:        logger,
		RawLogger:     rawLogger,
		Status: func(on bool) {
			logger.Log(ctx, log.LevelTrace, "status line", "on", on)
		},
	})

	if len(frames) > 0 {
		replayCtx, stopReplay := context.WithCancel(ctx)
		defer stopReplay()
		go s.replay(replayCtx, br, frames, logger)
	}

	return br.Run(ctx)
}

// replay submits the scripted frames on schedule, standing in for the
// application loop that normally feeds the bridge.
func (s *Serve) replay(ctx context.Context, br *bridge.Bridge, frames []script.Frame, logger *slog.Logger) {
	for {
		for i, f := range frames {
			br.Submit(f.State)
			logger.Debug("submitted script frame", "frame", i, "hold", f.Hold)
			select {
			case <-ctx.Done():
				return
			case <-time.After(f.Hold):
			}
		}
		if !s.Loop {
			logger.Info("script finished")
			return
		}
	}
}
