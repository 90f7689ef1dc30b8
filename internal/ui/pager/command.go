package pager

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/tnwei/nbread/internal/config"
)

var (
	commandBuilder = exec.Command
	lookPath       = exec.LookPath
)

// Args builds the pager argv for command in mode. less gets -R so colour
// sequences pass through, plus -F in auto mode so that it quits by itself
// when everything fits on one screen. Other pagers are run as given.
func Args(command string, mode config.PagingMode) []string {
	args := parseCommand(command)
	if len(args) == 0 {
		return nil
	}
	name := strings.TrimSuffix(strings.ToLower(filepath.Base(args[0])), ".exe")
	if name == "less" {
		args = append(args, "-R")
		if mode == config.PagingAuto {
			args = append(args, "-F")
		}
	}
	return args
}

// Resolve returns the argv for command in mode with the executable located
// on PATH. A missing pager is a configuration error.
func Resolve(command string, mode config.PagingMode) ([]string, error) {
	args := Args(command, mode)
	if len(args) == 0 {
		return nil, &config.ConfigError{Field: "pager", Message: "no pager command configured"}
	}
	path, err := lookPath(args[0])
	if err != nil {
		msg := fmt.Sprintf("pager %q not found; install it or run with --paging never", args[0])
		if errors.Is(err, exec.ErrNotFound) {
			err = nil
		}
		return nil, &config.ConfigError{Field: "pager", Message: msg, Err: err}
	}
	args[0] = path
	return args, nil
}

// parseCommand splits a command line honouring single and double quotes
// and expands a leading ~ in the program name.
func parseCommand(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	var args []string
	var current strings.Builder
	inSingle := false
	inDouble := false

	for _, r := range cmd {
		switch {
		case r == '\'' && !inDouble:
			inSingle = !inSingle
		case r == '"' && !inSingle:
			inDouble = !inDouble
		case !inSingle && !inDouble && unicode.IsSpace(r):
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}

	if len(args) > 0 {
		args[0] = expandUserPath(args[0])
	}
	return args
}

func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}
	if path[1] != '/' && path[1] != '\\' {
		return path
	}
	return filepath.Join(home, path[2:])
}
