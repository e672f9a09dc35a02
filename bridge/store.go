package bridge

import (
	"sync/atomic"

	"github.com/ALuevanos/GamePad-UNO/gamepad"
)

// Store holds the one live controller snapshot.
//
// Replacement is a single atomic pointer swap, so the poll path always loads
// either the previous snapshot or the new one as a whole, never a torn mix.
// Set is meant for the foreground application context; calling it from the
// poll callback itself is not supported.
type Store struct {
	cur atomic.Pointer[gamepad.State]
}

// NewStore returns a store seeded with the blank snapshot.
func NewStore() *Store {
	s := &Store{}
	blank := gamepad.Blank()
	s.cur.Store(&blank)
	return s
}

// Set atomically replaces the held snapshot with a copy of st.
func (s *Store) Set(st gamepad.State) {
	s.cur.Store(&st)
}

// Snapshot returns a copy of the currently installed snapshot.
func (s *Store) Snapshot() gamepad.State {
	return *s.cur.Load()
}
