// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/eclasspath/eclasspath/internal/config"
	"github.com/eclasspath/eclasspath/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. Every Cobra handler
	// receives it and reaches configuration and output through it.
	App struct {
		Config  ConfigProvider
		Environ func() []string
		stdout  io.Writer
		stderr  io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config  ConfigProvider
		Environ func() []string
		Stdout  io.Writer
		Stderr  io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// rootFlagValues holds the persistent flags of the root command.
	rootFlagValues struct {
		verbose    bool
		configPath string
	}

	// session is the per-invocation state shared by the subcommands.
	session struct {
		cfg        *config.Config
		configPath string
		verbose    bool
		log        *log.Logger
	}
)

// NewApp builds an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:  deps.Config,
		Environ: deps.Environ,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Environ == nil {
		app.Environ = os.Environ
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// newSession loads the configuration and builds the logger. A broken config
// fails the command; silently falling back to defaults would hide it.
func (a *App) newSession(ctx context.Context, flags *rootFlagValues) (*session, error) {
	opts := config.LoadOptions{ConfigFilePath: types.FilesystemPath(flags.configPath)}

	cfg, err := a.Config.Load(ctx, opts)
	if err != nil {
		return nil, err
	}

	configPath, err := config.ResolvePath(opts)
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, err
	}

	s := &session{
		cfg:        cfg,
		configPath: configPath,
		verbose:    flags.verbose || cfg.UI.Verbose,
	}

	switch cfg.UI.ColorScheme {
	case config.ColorSchemeDark:
		lipgloss.SetHasDarkBackground(true)
	case config.ColorSchemeLight:
		lipgloss.SetHasDarkBackground(false)
	}

	s.log = newLogger(a.stderr, s.verbose)
	return s, nil
}

// newLogger logs to w at debug level when verbose, info otherwise.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

// issueStyle is the glamour style for catalog entries.
func (s *session) issueStyle() string {
	if s == nil || s.cfg == nil {
		return string(config.ColorSchemeAuto)
	}
	return string(s.cfg.UI.ColorScheme)
}
