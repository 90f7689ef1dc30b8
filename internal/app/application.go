// Package app wires configuration, the notebook loader, the renderers and
// the chosen output sink into one run.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"github.com/tnwei/nbread/internal/config"
	"github.com/tnwei/nbread/internal/highlight"
	"github.com/tnwei/nbread/internal/markdown"
	"github.com/tnwei/nbread/internal/notebook"
	"github.com/tnwei/nbread/internal/ui/pager"
	"github.com/tnwei/nbread/internal/ui/render"
)

// runPager is swapped in tests to avoid spawning a real pager.
var runPager = pager.Run

// Environment is what a run needs from the process around it.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Logger *slog.Logger
}

// Application renders one notebook.
type Application struct {
	path   string
	opts   config.Options
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	logger *slog.Logger
	tty    bool
}

// NewApplication prepares a run for the notebook at path.
func NewApplication(path string, opts config.Options, env Environment) *Application {
	app := &Application{
		path:   path,
		opts:   opts,
		stdout: env.Stdout,
		stderr: env.Stderr,
		getenv: env.Getenv,
		logger: env.Logger,
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	if app.getenv == nil {
		app.getenv = os.Getenv
	}
	if app.logger == nil {
		app.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	app.tty = isTerminal(app.stdout)
	return app
}

// Run validates the options, loads the document and renders it. Config and
// load errors are returned before anything is written. Failures during
// rendering come back as *UnhandledError once any pager has been cleaned
// up.
func (app *Application) Run(ctx context.Context) error {
	if err := app.opts.Validate(); err != nil {
		return err
	}
	theme, err := highlight.LookupTheme(app.opts.Theme)
	if err != nil {
		return &config.ConfigError{Field: "theme", Message: err.Error()}
	}
	argv, err := app.pagerCommand()
	if err != nil {
		return err
	}

	doc, err := notebook.Load(app.path)
	if err != nil {
		return err
	}
	app.logger.Debug("notebook loaded", "path", doc.Path, "cells", len(doc.Cells))

	pipeline := &render.Pipeline{
		Cells:   render.NewCellRenderer(doc, app.cellOptions(theme)),
		Outputs: render.NewOutputRenderer(render.DefaultPalette()),
		Logger:  app.logger,
	}
	console := render.NewConsole(
		terminalWidth(app.stdout, app.tty, app.getenv),
		colorProfile(app.stdout, app.tty, app.opts),
		app.opts.Hyperlinks,
	)

	return app.guard(func() error {
		if argv == nil {
			return pipeline.Run(ctx, doc, render.NewDirectSink(app.stdout, console))
		}
		opts := pager.Options{Stdout: app.stdout, Stderr: app.stderr, Logger: app.logger}
		return runPager(argv, opts, console, func(sink render.Sink) error {
			return pipeline.Run(ctx, doc, sink)
		})
	})
}

// pagerCommand returns the pager argv, or nil when output goes straight
// to stdout.
func (app *Application) pagerCommand() ([]string, error) {
	switch app.opts.Paging {
	case config.PagingNever:
		return nil, nil
	case config.PagingAuto:
		if !app.tty {
			app.logger.Debug("stdout is not a terminal; not paging")
			return nil, nil
		}
	}
	return pager.Resolve(app.opts.Pager, app.opts.Paging)
}

func (app *Application) cellOptions(theme *highlight.Theme) render.CellOptions {
	styles := markdown.DarkStyles()
	if strings.Contains(strings.ToLower(theme.Name), "light") {
		styles = markdown.LightStyles()
	}
	return render.CellOptions{
		Theme:        theme,
		Lexer:        app.opts.Lexer,
		Head:         app.opts.Head,
		Tail:         app.opts.Tail,
		LineNumbers:  app.opts.LineNumbers,
		IndentGuides: app.opts.IndentGuides,
		WordWrap:     app.opts.WordWrap,
		Hyperlinks:   app.opts.Hyperlinks,
		Markdown:     styles,
		Palette:      render.DefaultPalette(),
	}
}

// guard runs fn and converts panics and unexpected errors into
// *UnhandledError. Typed errors and cancellation pass through.
func (app *Application) guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &UnhandledError{Value: r, Stack: debug.Stack()}
		}
	}()

	err = fn()
	if err == nil || expected(err) {
		return err
	}
	return &UnhandledError{Value: fmt.Errorf("render: %w", err), Stack: debug.Stack()}
}

func expected(err error) bool {
	var cfgErr *config.ConfigError
	var loadErr *notebook.LoadError
	return errors.As(err, &cfgErr) ||
		errors.As(err, &loadErr) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
