package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPollerCadence(t *testing.T) {
	const interval = 3

	var fired []int
	tick := 0
	p := NewPoller(interval, func() { fired = append(fired, tick) })

	for tick = 1; tick <= 9; tick++ {
		p.Tick()
	}

	// Exactly one poll per interval ticks, none in between.
	assert.Equal(t, []int{3, 6, 9}, fired)
}

func TestPollerDefaultInterval(t *testing.T) {
	polls := 0
	p := NewPoller(0, func() { polls++ })

	for i := 0; i < 4; i++ {
		p.Tick()
	}
	assert.Equal(t, 4, polls)
}

func TestStoreSeedsBlank(t *testing.T) {
	s := NewStore()
	b, err := s.Snapshot().MarshalBinary()
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x80, 0x80, 0x80, 0x80}, b)
}
