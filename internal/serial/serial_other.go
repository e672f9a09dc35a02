//go:build !linux

package serial

import (
	"fmt"
	"io"
	"runtime"
)

// Open is unsupported off Linux; use the TCP link mode instead.
func Open(path string, baud int) (io.ReadWriteCloser, error) {
	return nil, fmt.Errorf("serial: ports are not supported on %s, use --listen instead", runtime.GOOS)
}
