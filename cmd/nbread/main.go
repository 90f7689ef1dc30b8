package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tnwei/nbread/internal/app"
	"github.com/tnwei/nbread/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

// flagValues holds the raw command-line values before they are layered
// over the file and environment settings.
type flagValues struct {
	theme       string
	lexer       string
	head        int
	tail        int
	lineNumbers bool
	guides      bool
	wrap        bool
	paging      string
	hyperlinks  bool
	forceColor  bool
	configPath  string
	debug       bool
}

func run(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	var runErr error
	cmd := newRootCommand(stdout, stderr, getenv, &runErr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil && runErr == nil {
		runErr = usageError(err)
	}
	if runErr == nil {
		return app.ExitOK
	}

	var unhandled *app.UnhandledError
	if errors.As(runErr, &unhandled) {
		fmt.Fprintf(stderr, "nbread: %v\n\n%s", unhandled, unhandled.Stack)
	} else {
		fmt.Fprintf(stderr, "nbread: %v\n", runErr)
	}
	return app.ExitCode(runErr)
}

// usageError classifies cobra's own failures as configuration errors.
func usageError(err error) error {
	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		return err
	}
	return &config.ConfigError{Field: "usage", Message: err.Error()}
}

func newRootCommand(stdout, stderr io.Writer, getenv func(string) string, runErr *error) *cobra.Command {
	var fv flagValues
	cmd := &cobra.Command{
		Use:           "nbread [flags] <notebook.ipynb>",
		Short:         "Render Jupyter notebooks in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &config.ConfigError{Field: "path", Message: fmt.Sprintf("expected one notebook path, got %d", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd, fv, getenv)
			if err != nil {
				*runErr = err
				return nil
			}
			logger := newLogger(stderr, opts.Debug)
			application := app.NewApplication(args[0], opts, app.Environment{
				Stdout: stdout,
				Stderr: stderr,
				Getenv: getenv,
				Logger: logger,
			})
			*runErr = application.Run(context.Background())
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &config.ConfigError{Field: "flags", Message: err.Error()}
	})

	flags := cmd.Flags()
	flags.StringVarP(&fv.theme, "theme", "t", config.DefaultTheme, "syntax theme: ansi_dark, ansi_light or a chroma style name")
	flags.StringVarP(&fv.lexer, "lexer", "l", "", "lexer for code cells (default: from notebook metadata)")
	flags.IntVar(&fv.head, "head", 0, "show only the first N lines of each code cell")
	flags.IntVar(&fv.tail, "tail", 0, "show only the last N lines of each code cell")
	flags.BoolVarP(&fv.lineNumbers, "line-numbers", "n", false, "show line numbers in code cells")
	flags.BoolVarP(&fv.guides, "guides", "g", false, "show indent guides in code cells")
	flags.BoolVarP(&fv.wrap, "wrap", "w", false, "word-wrap code instead of cropping")
	flags.StringVar(&fv.paging, "paging", string(config.PagingAuto), "paging mode: auto, never or always")
	flags.BoolVar(&fv.hyperlinks, "hyperlinks", false, "emit terminal hyperlinks for markdown links")
	flags.BoolVar(&fv.forceColor, "force-color", false, "emit colour even when stdout is not a terminal")
	flags.StringVar(&fv.configPath, "config", "", "config file (default $NBREAD_CONFIG or the user config dir)")
	flags.BoolVar(&fv.debug, "debug", false, "log debug output to stderr")
	return cmd
}

// resolveOptions layers defaults, the config file, the environment and
// explicitly set flags, in that order.
func resolveOptions(cmd *cobra.Command, fv flagValues, getenv func(string) string) (config.Options, error) {
	opts := config.Default()

	path, required := fv.configPath, fv.configPath != ""
	if !required {
		path = config.DefaultFilePath(getenv)
	}
	if err := config.LoadFile(path, required, &opts); err != nil {
		return opts, err
	}
	if err := config.ApplyEnv(getenv, &opts); err != nil {
		return opts, err
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		opts.Theme = fv.theme
	}
	if flags.Changed("lexer") {
		opts.Lexer = fv.lexer
	}
	if flags.Changed("head") {
		opts.Head = fv.head
	}
	if flags.Changed("tail") {
		opts.Tail = fv.tail
	}
	if flags.Changed("line-numbers") {
		opts.LineNumbers = fv.lineNumbers
	}
	if flags.Changed("guides") {
		opts.IndentGuides = fv.guides
	}
	if flags.Changed("wrap") {
		opts.WordWrap = fv.wrap
	}
	if flags.Changed("paging") {
		mode, err := config.ParsePagingMode(fv.paging)
		if err != nil {
			return opts, err
		}
		opts.Paging = mode
	}
	if flags.Changed("hyperlinks") {
		opts.Hyperlinks = fv.hyperlinks
	}
	if flags.Changed("force-color") {
		opts.ForceColor = fv.forceColor
	}
	if flags.Changed("debug") {
		opts.Debug = fv.debug
	}
	return opts, opts.Validate()
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
