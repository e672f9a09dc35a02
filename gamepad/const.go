package gamepad

// Button bitmasks for the Buttons field. The bit order is the wire order:
// bit 0 is the first button of serialized byte 0, bit 16 (dpad-down) is the
// single used bit of serialized byte 2.
const (
	ButtonTriangle  = 1 << 0
	ButtonCircle    = 1 << 1
	ButtonSquare    = 1 << 2
	ButtonCross     = 1 << 3
	ButtonL1        = 1 << 4
	ButtonL2        = 1 << 5
	ButtonL3        = 1 << 6
	ButtonR1        = 1 << 7
	ButtonR2        = 1 << 8
	ButtonR3        = 1 << 9
	ButtonSelect    = 1 << 10
	ButtonStart     = 1 << 11
	ButtonHome      = 1 << 12
	ButtonDPadLeft  = 1 << 13
	ButtonDPadUp    = 1 << 14
	ButtonDPadRight = 1 << 15
	ButtonDPadDown  = 1 << 16
)

// ButtonMasks maps script/config button names to their bitmask.
var ButtonMasks = map[string]uint32{
	"triangle":   ButtonTriangle,
	"circle":     ButtonCircle,
	"square":     ButtonSquare,
	"cross":      ButtonCross,
	"l1":         ButtonL1,
	"l2":         ButtonL2,
	"l3":         ButtonL3,
	"r1":         ButtonR1,
	"r2":         ButtonR2,
	"r3":         ButtonR3,
	"select":     ButtonSelect,
	"start":      ButtonStart,
	"home":       ButtonHome,
	"dpad_left":  ButtonDPadLeft,
	"dpad_up":    ButtonDPadUp,
	"dpad_right": ButtonDPadRight,
	"dpad_down":  ButtonDPadDown,
}

// ButtonOrder lists button names in wire bit order, for stable display output.
var ButtonOrder = []string{
	"triangle", "circle", "square", "cross",
	"l1", "l2", "l3", "r1",
	"r2", "r3", "select", "start",
	"home", "dpad_left", "dpad_up", "dpad_right",
	"dpad_down",
}
