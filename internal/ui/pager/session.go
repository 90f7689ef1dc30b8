// Package pager streams rendered output into an external pager process
// and owns that process from spawn to reaping.
package pager

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"
)

// ErrClosed is returned by writes once the pager has gone away, usually
// because the user quit it. It is not a failure of the run.
var ErrClosed = errors.New("pager closed")

// DefaultTerminateTimeout is how long cleanup waits after asking a pager
// to terminate before killing it.
const DefaultTerminateTimeout = 2 * time.Second

// Options configures a Session.
type Options struct {
	// Stdout and Stderr are handed to the pager. They default to the
	// process's own.
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	// TerminateTimeout defaults to DefaultTerminateTimeout.
	TerminateTimeout time.Duration
}

// Session is one running pager. Only the goroutine that started it may
// write to it; Done and State are safe for concurrent use.
type Session struct {
	cmd    *exec.Cmd
	stdin  *os.File
	w      *bufio.Writer
	logger *slog.Logger

	timeout time.Duration

	state   atomic.Int32
	aborted atomic.Bool

	done    chan struct{}
	waitErr error

	signals    chan os.Signal
	interrupts atomic.Int32

	cleanupOnce sync.Once
	cleanupErr  error
}

// Start spawns argv with a pipe as its standard input.
func Start(argv []string, opts Options) (*Session, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty pager command")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	timeout := opts.TerminateTimeout
	if timeout <= 0 {
		timeout = DefaultTerminateTimeout
	}
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("create pager pipe: %w", err)
	}

	cmd := commandBuilder(argv[0], argv[1:]...)
	cmd.Stdin = r
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	s := &Session{
		cmd:     cmd,
		stdin:   w,
		w:       bufio.NewWriter(w),
		logger:  logger,
		timeout: timeout,
		done:    make(chan struct{}),
		signals: make(chan os.Signal, 1),
	}

	// The pager shares our terminal and handles Ctrl-C itself.
	signal.Notify(s.signals, os.Interrupt)
	go s.ignoreInterrupts()

	if err := cmd.Start(); err != nil {
		signal.Stop(s.signals)
		close(s.signals)
		_ = r.Close()
		_ = w.Close()
		return nil, fmt.Errorf("start pager %s: %w", argv[0], err)
	}
	_ = r.Close()

	logger.Debug("pager started", "argv", argv, "pid", cmd.Process.Pid)
	s.setState(StateActive)
	go s.wait()
	return s, nil
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Aborted reports whether the session ended through the abort path.
func (s *Session) Aborted() bool {
	return s.aborted.Load()
}

// Done is closed once the pager process has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Interrupts returns how many interrupt signals arrived while the
// session was open.
func (s *Session) Interrupts() int {
	return int(s.interrupts.Load())
}

func (s *Session) setState(next State) {
	prev := State(s.state.Swap(int32(next)))
	if prev != next {
		s.logger.Debug("pager state", "from", prev, "to", next)
	}
}

func (s *Session) wait() {
	err := s.cmd.Wait()
	s.waitErr = err
	close(s.done)
}

func (s *Session) exited() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *Session) ignoreInterrupts() {
	for range s.signals {
		s.interrupts.Add(1)
		s.logger.Debug("interrupt received while paging; left to the pager")
	}
}

// WriteLines sends lines to the pager, each after prefix, and flushes so
// the pager can show them right away. It returns ErrClosed once the pager
// has gone away.
func (s *Session) WriteLines(lines []string, prefix string) error {
	if s.State() != StateActive || s.exited() {
		return ErrClosed
	}
	for _, line := range lines {
		if _, err := s.w.WriteString(prefix + line + "\n"); err != nil {
			return s.writeFailed(err)
		}
	}
	if err := s.w.Flush(); err != nil {
		return s.writeFailed(err)
	}
	return nil
}

func (s *Session) writeFailed(err error) error {
	if isBrokenPipe(err) || errors.Is(err, os.ErrClosed) || s.exited() {
		s.logger.Debug("pager input closed", "err", err)
		return ErrClosed
	}
	return fmt.Errorf("write to pager: %w", err)
}

// Close finishes a successful run: it closes the pager's input and waits
// until the user quits the pager.
func (s *Session) Close() error {
	if s.State() == StateActive {
		s.setState(StateClosing)
		if err := s.w.Flush(); err != nil && !isBrokenPipe(err) {
			s.logger.Debug("flush before close failed", "err", err)
		}
		_ = s.stdin.Close()
		<-s.done
	}
	return s.cleanup()
}

// Abort ends the session early, terminating the pager if it is still
// running.
func (s *Session) Abort() error {
	if st := s.State(); st == StateActive || st == StateClosing {
		s.aborted.Store(true)
		s.setState(StateAborted)
	}
	return s.cleanup()
}

// cleanup runs once, whichever path reaches it first.
func (s *Session) cleanup() error {
	s.cleanupOnce.Do(func() {
		if err := s.stdin.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			s.logger.Debug("closing pager input", "err", err)
		}
		if !s.exited() {
			s.cleanupErr = s.terminate()
		}
		signal.Stop(s.signals)
		close(s.signals)
		s.setState(StateDone)
		if s.exited() {
			s.logger.Debug("pager cleaned up", "aborted", s.Aborted(), "exit", s.waitErr)
		}
	})
	return s.cleanupErr
}

func (s *Session) terminate() error {
	if err := terminateProcess(s.cmd.Process); err != nil && !errors.Is(err, os.ErrProcessDone) {
		s.logger.Debug("terminate pager", "err", err)
	}
	select {
	case <-s.done:
		return nil
	case <-time.After(s.timeout):
	}
	s.logger.Warn("pager did not exit; killing it", "pid", s.cmd.Process.Pid)
	if err := s.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill pager: %w", err)
	}
	<-s.done
	return nil
}
