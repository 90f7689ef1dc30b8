// Package config holds the run options and the layers that fill them:
// built-in defaults, the TOML config file, environment variables and
// finally command-line flags.
package config

import (
	"fmt"
	"strings"
)

// PagingMode selects whether output goes through the external pager.
type PagingMode string

const (
	// PagingAuto pages, letting the pager quit by itself when the content
	// fits on one screen.
	PagingAuto PagingMode = "auto"
	// PagingNever writes straight to stdout.
	PagingNever PagingMode = "never"
	// PagingAlways always keeps the pager open.
	PagingAlways PagingMode = "always"
)

// PagingModes lists the accepted values in display order.
var PagingModes = []PagingMode{PagingAuto, PagingNever, PagingAlways}

// ParsePagingMode validates s, which must be one of PagingModes exactly.
func ParsePagingMode(s string) (PagingMode, error) {
	mode := PagingMode(s)
	for _, known := range PagingModes {
		if mode == known {
			return mode, nil
		}
	}
	return "", &ConfigError{
		Field:   "paging",
		Message: fmt.Sprintf("invalid mode %q (want auto, never or always)", s),
	}
}

const (
	DefaultTheme = "ansi_dark"
	DefaultPager = "less"
)

// Options is everything a run needs besides the input path. Head and Tail
// use 0 for "not set".
type Options struct {
	Theme        string
	Lexer        string
	Head         int
	Tail         int
	LineNumbers  bool
	IndentGuides bool
	WordWrap     bool
	Paging       PagingMode
	Hyperlinks   bool
	ForceColor   bool
	NoColor      bool
	Pager        string
	Debug        bool
}

// Default returns the built-in defaults.
func Default() Options {
	return Options{
		Theme:  DefaultTheme,
		Paging: PagingAuto,
		Pager:  DefaultPager,
	}
}

// Validate checks the options as a whole.
func (o Options) Validate() error {
	if o.Head < 0 {
		return &ConfigError{Field: "head", Message: "must be a positive integer"}
	}
	if o.Tail < 0 {
		return &ConfigError{Field: "tail", Message: "must be a positive integer"}
	}
	if o.Head > 0 && o.Tail > 0 {
		return ErrHeadAndTail()
	}
	if _, err := ParsePagingMode(string(o.Paging)); err != nil {
		return err
	}
	if strings.TrimSpace(o.Theme) == "" {
		return &ConfigError{Field: "theme", Message: "must not be empty"}
	}
	if o.Paging != PagingNever && strings.TrimSpace(o.Pager) == "" {
		return &ConfigError{Field: "pager", Message: "must not be empty when paging is enabled"}
	}
	return nil
}

// ErrHeadAndTail is the error for requesting both line windows.
func ErrHeadAndTail() error {
	return &ConfigError{Message: "cannot specify both head and tail"}
}
