//go:build windows

package pager

import (
	"errors"
	"os"
	"syscall"
)

// errNoData is ERROR_NO_DATA, reported when the reading end of a pipe is
// being closed.
const errNoData = syscall.Errno(232)

func terminateProcess(p *os.Process) error {
	return p.Kill()
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.ERROR_BROKEN_PIPE) || errors.Is(err, errNoData)
}
