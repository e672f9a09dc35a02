// Package script loads controller input scripts for replay.
//
// A script is a list of frames; each frame names the buttons held and the
// stick positions for a duration. Scripts are plain YAML or TOML files,
// chosen by file extension:
//
//	frames:
//	  - hold: 250ms
//	    buttons: [cross, dpad_up]
//	    left_x: 200
//	  - hold: 1s
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/ALuevanos/GamePad-UNO/gamepad"
)

// DefaultHold is used for frames that do not specify a hold duration.
const DefaultHold = 100 * time.Millisecond

// Frame is one scripted snapshot and how long to hold it.
type Frame struct {
	Hold  time.Duration
	State gamepad.State
}

type frameSpec struct {
	Hold    string   `yaml:"hold" toml:"hold"`
	Buttons []string `yaml:"buttons" toml:"buttons"`
	LeftX   *uint8   `yaml:"left_x" toml:"left_x"`
	LeftY   *uint8   `yaml:"left_y" toml:"left_y"`
	RightX  *uint8   `yaml:"right_x" toml:"right_x"`
	RightY  *uint8   `yaml:"right_y" toml:"right_y"`
}

type fileSpec struct {
	Frames []frameSpec `yaml:"frames" toml:"frames"`
}

// Load parses the script at path. Unlisted axes are centered; unknown button
// names are an error.
func Load(path string) ([]Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	var spec fileSpec
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("parse script %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("parse script %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("script: unsupported file type %q (want .yaml, .yml or .toml)", ext)
	}

	if len(spec.Frames) == 0 {
		return nil, fmt.Errorf("script %s: no frames", path)
	}

	frames := make([]Frame, 0, len(spec.Frames))
	for i, fs := range spec.Frames {
		f, err := fs.frame()
		if err != nil {
			return nil, fmt.Errorf("script %s: frame %d: %w", path, i, err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func (fs frameSpec) frame() (Frame, error) {
	f := Frame{Hold: DefaultHold, State: gamepad.Blank()}

	if fs.Hold != "" {
		d, err := time.ParseDuration(fs.Hold)
		if err != nil {
			return Frame{}, fmt.Errorf("bad hold duration %q: %w", fs.Hold, err)
		}
		if d <= 0 {
			return Frame{}, fmt.Errorf("hold duration %q must be positive", fs.Hold)
		}
		f.Hold = d
	}

	for _, name := range fs.Buttons {
		mask, ok := gamepad.ButtonMasks[strings.ToLower(name)]
		if !ok {
			return Frame{}, fmt.Errorf("unknown button %q", name)
		}
		f.State.Press(mask)
	}

	if fs.LeftX != nil {
		f.State.LeftStickX = *fs.LeftX
	}
	if fs.LeftY != nil {
		f.State.LeftStickY = *fs.LeftY
	}
	if fs.RightX != nil {
		f.State.RightStickX = *fs.RightX
	}
	if fs.RightY != nil {
		f.State.RightStickY = *fs.RightY
	}
	return f, nil
}
