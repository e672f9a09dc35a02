// Package config defines the CLI structure and configuration for GamePad-UNO.
package config

import (
	"github.com/ALuevanos/GamePad-UNO/internal/cmd"
)

type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"GAMEPADUNO_LOG_LEVEL"`
	File    string `help:"Log file path (default: none; logs only to console)" env:"GAMEPADUNO_LOG_FILE"`
	RawFile string `help:"Raw wire log file path (default: none)" env:"GAMEPADUNO_LOG_RAW_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Log    `embed:"" prefix:"log."`
	Config string `help:"Config file path" env:"GAMEPADUNO_CONFIG"`

	Serve cmd.Serve `cmd:"" help:"Run the snapshot bridge over a serial port or TCP link"`
	Watch cmd.Watch `cmd:"" help:"Poll a running bridge and print the decoded controller state"`
}
