package app

import (
	"errors"
	"fmt"

	"github.com/tnwei/nbread/internal/config"
)

// UnhandledError is a failure during rendering that no component handled:
// a panic, or an error of a kind the run does not expect. Stack is the
// goroutine trace at the point it was caught.
type UnhandledError struct {
	Value any
	Stack []byte
}

func (e *UnhandledError) Error() string {
	return fmt.Sprintf("unhandled error: %v", e.Value)
}

func (e *UnhandledError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Exit codes returned by the nbread command.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitConfigError = 2
)

// ExitCode maps a Run result to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}
	return ExitFailure
}
