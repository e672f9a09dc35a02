// Package bridge implements the offset-addressed snapshot protocol between
// the application and the communications peer.
//
// The application installs whole controller snapshots with Submit. A tick
// loop drives the poll cadence; each poll drains the request bytes buffered
// on the link and replies with the matching bytes of the serialized snapshot.
// The only shared state is the snapshot itself, replaced by an atomic pointer
// swap, so the poll path never observes a partially updated snapshot.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ALuevanos/GamePad-UNO/gamepad"
	"github.com/ALuevanos/GamePad-UNO/internal/log"
)

const (
	// DefaultTickPeriod approximates the 1 ms hardware tick of the original
	// controller board.
	DefaultTickPeriod = time.Millisecond

	// DefaultRxBufferSize matches the receive buffer of a small UART.
	DefaultRxBufferSize = 64
)

// Options configures a Bridge. The zero value is usable.
type Options struct {
	// IntervalTicks is the number of ticks between poll runs (default 1).
	IntervalTicks int
	// TickPeriod is the wall-clock length of one tick used by Run
	// (default DefaultTickPeriod).
	TickPeriod time.Duration
	// RxBufferSize bounds the inbound request buffer
	// (default DefaultRxBufferSize).
	RxBufferSize int
	// Status, when set, is toggled on around request processing. It stands in
	// for the diagnostic line of the original board and carries no protocol
	// meaning.
	Status func(bool)

	Logger    *slog.Logger
	RawLogger log.RawLogger
}

// Bridge wires the snapshot store, the poll scheduler and the serial
// responder onto one byte link.
type Bridge struct {
	port       io.ReadWriter
	store      *Store
	rx         *rxFIFO
	responder  *Responder
	poller     *Poller
	tickPeriod time.Duration
	logger     *slog.Logger
}

// New builds a Bridge on the given link, seeded with the blank snapshot.
func New(port io.ReadWriter, opts Options) *Bridge {
	if opts.TickPeriod <= 0 {
		opts.TickPeriod = DefaultTickPeriod
	}
	if opts.RxBufferSize <= 0 {
		opts.RxBufferSize = DefaultRxBufferSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RawLogger == nil {
		opts.RawLogger = log.NewRaw(nil)
	}

	store := NewStore()
	rx := newRxFIFO(opts.RxBufferSize)
	responder := &Responder{
		store:  store,
		rx:     rx,
		w:      port,
		status: opts.Status,
		logger: opts.Logger,
		raw:    opts.RawLogger,
	}
	b := &Bridge{
		port:       port,
		store:      store,
		rx:         rx,
		responder:  responder,
		tickPeriod: opts.TickPeriod,
		logger:     opts.Logger,
	}
	b.poller = NewPoller(opts.IntervalTicks, responder.Poll)
	return b
}

// Submit atomically installs a new snapshot. Submit is for the foreground
// application context only; it must not be called from the poll path.
func (b *Bridge) Submit(st gamepad.State) {
	b.store.Set(st)
}

// Snapshot returns a copy of the currently installed snapshot.
func (b *Bridge) Snapshot() gamepad.State {
	return b.store.Snapshot()
}

// Tick advances the poll scheduler by one tick. Run drives this from its own
// ticker; Tick is exposed so tests and alternative tick sources can drive the
// cadence directly.
func (b *Bridge) Tick() {
	b.poller.Tick()
}

// Run pumps inbound link bytes into the request buffer and drives the tick
// loop until ctx is done or the link fails. A closed link (io.EOF) is a
// normal shutdown.
//
// On ctx cancellation the pump goroutine stays blocked in the port read
// until the caller closes the port; close it after Run returns (or from a
// ctx watcher) to release the pump.
func (b *Bridge) Run(ctx context.Context) error {
	readErr := make(chan error, 1)
	go b.pump(readErr)

	t := time.NewTicker(b.tickPeriod)
	defer t.Stop()
	defer func() {
		b.logger.Debug("link stats",
			"rxDropped", b.rx.Dropped(),
			"badOffsets", b.responder.BadOffsets())
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				b.logger.Info("link closed by peer")
				return nil
			}
			return fmt.Errorf("link read: %w", err)
		case <-t.C:
			b.poller.Tick()
		}
	}
}

func (b *Bridge) pump(readErr chan<- error) {
	buf := make([]byte, DefaultRxBufferSize)
	for {
		n, err := b.port.Read(buf)
		for _, c := range buf[:n] {
			if !b.rx.Push(c) {
				b.logger.Log(context.Background(), log.LevelTrace,
					"rx overrun, request byte dropped", "byte", c)
			}
		}
		if err != nil {
			readErr <- err
			return
		}
	}
}
