package script_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ALuevanos/GamePad-UNO/gamepad"
	"github.com/ALuevanos/GamePad-UNO/internal/script"
)

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeScript(t, "demo.yaml", `
frames:
  - hold: 250ms
    buttons: [cross, dpad_up]
    left_x: 200
  - hold: 1s
`)

	frames, err := script.Load(path)
	require.NoError(t, err)
	require.Len(t, frames, 2)

	assert.Equal(t, 250*time.Millisecond, frames[0].Hold)
	assert.True(t, frames[0].State.Pressed(gamepad.ButtonCross|gamepad.ButtonDPadUp))
	assert.False(t, frames[0].State.Pressed(gamepad.ButtonTriangle))
	assert.Equal(t, uint8(200), frames[0].State.LeftStickX)
	// Unlisted axes stay centered.
	assert.Equal(t, uint8(gamepad.AxisCenter), frames[0].State.LeftStickY)
	assert.Equal(t, uint8(gamepad.AxisCenter), frames[0].State.RightStickX)

	assert.Equal(t, time.Second, frames[1].Hold)
	assert.Equal(t, gamepad.Blank(), frames[1].State)
}

func TestLoadTOML(t *testing.T) {
	path := writeScript(t, "demo.toml", `
[[frames]]
hold = "50ms"
buttons = ["triangle"]
right_y = 10

[[frames]]
buttons = ["start", "select"]
`)

	frames, err := script.Load(path)
	require.NoError(t, err)
	require.Len(t, frames, 2)

	assert.Equal(t, 50*time.Millisecond, frames[0].Hold)
	assert.True(t, frames[0].State.Pressed(gamepad.ButtonTriangle))
	assert.Equal(t, uint8(10), frames[0].State.RightStickY)

	// Missing hold falls back to the default.
	assert.Equal(t, script.DefaultHold, frames[1].Hold)
	assert.True(t, frames[1].State.Pressed(gamepad.ButtonStart|gamepad.ButtonSelect))
}

func TestLoadErrors(t *testing.T) {
	type testCase struct {
		name    string
		file    string
		content string
		errLike string
	}

	cases := []testCase{
		{
			name:    "unknown button",
			file:    "bad.yaml",
			content: "frames:\n  - buttons: [warp]\n",
			errLike: "unknown button",
		},
		{
			name:    "bad hold",
			file:    "bad.yaml",
			content: "frames:\n  - hold: soon\n",
			errLike: "bad hold duration",
		},
		{
			name:    "negative hold",
			file:    "bad.yaml",
			content: "frames:\n  - hold: -5ms\n",
			errLike: "must be positive",
		},
		{
			name:    "no frames",
			file:    "empty.yaml",
			content: "frames: []\n",
			errLike: "no frames",
		},
		{
			name:    "unsupported extension",
			file:    "script.ini",
			content: "whatever",
			errLike: "unsupported file type",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeScript(t, tc.file, tc.content)
			_, err := script.Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errLike)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := script.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
