//go:build !windows

package pager

import (
	"errors"
	"os"
	"syscall"
)

func terminateProcess(p *os.Process) error {
	return p.Signal(syscall.SIGTERM)
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE)
}
