package bridge

import (
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/ALuevanos/GamePad-UNO/internal/log"
)

// Responder answers offset-addressed byte requests against the stored
// snapshot. Each inbound byte names one offset of the serialized snapshot;
// the reply is exactly that byte. There is no framing, session or
// acknowledgment; every request is independent.
type Responder struct {
	store  *Store
	rx     *rxFIFO
	w      io.Writer
	status func(bool)
	logger *slog.Logger
	raw    log.RawLogger

	badOffsets atomic.Uint64
}

// Poll drains the request bytes already buffered when the invocation begins
// and answers each one. It never waits for a byte to arrive, and bytes that
// come in while replies are being written are left for the next poll, so one
// invocation never spans a later request burst.
//
// The snapshot is read once per invocation and the whole batch is answered
// from that copy, so a burst of offsets served here always reflects a single
// installed snapshot. A request offset outside the serialized form is
// ignored: nothing is written back for it, the violation is counted and
// logged. Adjacent state is never read.
func (r *Responder) Poll() {
	pending := r.rx.Buffered()
	if pending == 0 {
		return
	}
	if r.status != nil {
		r.status(true)
		defer r.status(false)
	}

	snap := r.store.Snapshot()
	buf, _ := snap.MarshalBinary()

	for i := 0; i < pending; i++ {
		req, ok := r.rx.TryPop()
		if !ok {
			return
		}
		r.raw.Log(true, []byte{req})
		if int(req) >= len(buf) {
			r.badOffsets.Add(1)
			r.logger.Debug("request offset out of range", "offset", req, "size", len(buf))
		} else {
			reply := []byte{buf[req]}
			if _, err := r.w.Write(reply); err != nil {
				r.logger.Error("write reply", "offset", req, "error", err)
				return
			}
			r.raw.Log(false, reply)
		}
	}
}

// BadOffsets returns the number of out-of-range requests ignored so far.
func (r *Responder) BadOffsets() uint64 {
	return r.badOffsets.Load()
}
