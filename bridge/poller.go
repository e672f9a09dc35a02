package bridge

// Poller converts a fast fixed-rate tick into a slower, configurable poll
// cadence: every interval-th tick fires the poll callback.
//
// Tick is not safe for concurrent use; exactly one goroutine owns the tick
// source, and the callback runs to completion on that goroutine before the
// next tick is processed. This mirrors a non-preemptible timer interrupt.
type Poller struct {
	interval int
	ticks    int
	poll     func()
}

// NewPoller returns a poller firing poll once per interval ticks.
// Intervals below 1 are treated as 1.
func NewPoller(interval int, poll func()) *Poller {
	if interval < 1 {
		interval = 1
	}
	return &Poller{interval: interval, poll: poll}
}

// Tick registers one elapsed tick and fires the poll callback when the
// configured interval has accumulated.
func (p *Poller) Tick() {
	p.ticks++
	if p.ticks >= p.interval {
		p.ticks = 0
		p.poll()
	}
}
