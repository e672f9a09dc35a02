package bridge

import "sync/atomic"

// rxFIFO stands in for the UART receive buffer: a fixed-capacity byte queue
// filled by the link pump and drained without blocking by the responder.
type rxFIFO struct {
	ch      chan byte
	dropped atomic.Uint64
}

func newRxFIFO(size int) *rxFIFO {
	return &rxFIFO{ch: make(chan byte, size)}
}

// Push enqueues b. When the buffer is full the byte is dropped and counted,
// matching a hardware receive overrun.
func (f *rxFIFO) Push(b byte) bool {
	select {
	case f.ch <- b:
		return true
	default:
		f.dropped.Add(1)
		return false
	}
}

// Buffered returns the number of bytes currently queued.
func (f *rxFIFO) Buffered() int {
	return len(f.ch)
}

// TryPop dequeues one byte without blocking.
func (f *rxFIFO) TryPop() (byte, bool) {
	select {
	case b := <-f.ch:
		return b, true
	default:
		return 0, false
	}
}

// Dropped returns the number of bytes lost to overruns.
func (f *rxFIFO) Dropped() uint64 {
	return f.dropped.Load()
}
