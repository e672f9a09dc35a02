// Package gamepad defines the controller snapshot and its fixed wire layout.
//
// The snapshot is the unit of exchange with the communications chip: the
// application installs whole snapshots, the peer pulls individual bytes of
// the serialized form by offset. The in-memory representation is decoupled
// from the wire bytes; only MarshalBinary/UnmarshalBinary define the layout.
package gamepad

import (
	"errors"
	"io"
)

const (
	// StateSize is the serialized snapshot length in bytes.
	StateSize = 7

	// AxisCenter is the neutral value for all four stick axes.
	AxisCenter = 128
)

// ErrOffsetOutOfRange is returned by ByteAt for offsets outside the
// serialized form.
var ErrOffsetOutOfRange = errors.New("gamepad: offset out of range")

// State is one complete, internally consistent set of button and axis values.
//
// Wire format (fixed 7 bytes, bit 0 first within each byte):
//
//	0: triangle circle square cross l1 l2 l3 r1
//	1: r2 r3 select start home dpadLeft dpadUp dpadRight
//	2: dpadDown + 7 padding bits (always 0)
//	3: LeftStickX
//	4: LeftStickY
//	5: RightStickX
//	6: RightStickY
type State struct {
	// Buttons is a bitfield of the 17 button flags, see the Button* masks.
	// Bits 17..31 are unused and never serialized.
	Buttons uint32

	// Stick axes: 0 is fully left or up, 255 fully right or down,
	// 128 centered.
	LeftStickX  uint8
	LeftStickY  uint8
	RightStickX uint8
	RightStickY uint8
}

// Blank returns the canonical neutral snapshot: no buttons pressed, all
// sticks centered.
func Blank() State {
	return State{
		LeftStickX:  AxisCenter,
		LeftStickY:  AxisCenter,
		RightStickX: AxisCenter,
		RightStickY: AxisCenter,
	}
}

// Pressed reports whether every button in mask is pressed.
func (s State) Pressed(mask uint32) bool { return s.Buttons&mask == mask }

// Press marks the buttons in mask as pressed.
func (s *State) Press(mask uint32) { s.Buttons |= mask }

// Release marks the buttons in mask as released.
func (s *State) Release(mask uint32) { s.Buttons &^= mask }

// MarshalBinary encodes State to the fixed 7-byte wire format.
func (s State) MarshalBinary() ([]byte, error) {
	b := make([]byte, StateSize)
	b[0] = byte(s.Buttons)
	b[1] = byte(s.Buttons >> 8)
	b[2] = byte(s.Buttons>>16) & 0x01
	b[3] = s.LeftStickX
	b[4] = s.LeftStickY
	b[5] = s.RightStickX
	b[6] = s.RightStickY
	return b, nil
}

// UnmarshalBinary decodes State from the fixed 7-byte wire format.
// Padding bits are discarded.
func (s *State) UnmarshalBinary(data []byte) error {
	if len(data) < StateSize {
		return io.ErrUnexpectedEOF
	}
	s.Buttons = uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2]&0x01)<<16
	s.LeftStickX = data[3]
	s.LeftStickY = data[4]
	s.RightStickX = data[5]
	s.RightStickY = data[6]
	return nil
}

// ByteAt returns the i-th byte of the serialized form.
func (s State) ByteAt(i int) (byte, error) {
	if i < 0 || i >= StateSize {
		return 0, ErrOffsetOutOfRange
	}
	b, _ := s.MarshalBinary()
	return b[i], nil
}
