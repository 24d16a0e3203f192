// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/eclasspath/eclasspath/internal/config"
	"github.com/eclasspath/eclasspath/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `eclasspath config` command tree.
func newConfigCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage eclasspath configuration",
		Long: `Manage eclasspath configuration.

Configuration is stored in:
  - Linux: ~/.config/eclasspath/config.cue
  - macOS: ~/Library/Application Support/eclasspath/config.cue
  - Windows: %APPDATA%\eclasspath\config.cue

Every value can be overridden with an ECLASSPATH_* environment variable,
e.g. ECLASSPATH_DEFAULT_CONTAINER=17 or ECLASSPATH_UI_VERBOSE=true.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return showConfig(cmd, app, rootFlags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			path, err := config.CreateDefaultConfig()
			if err != nil {
				return reportError(app.stderr, nil, issue.NewErrorContext().
					WithOperation("create configuration").
					WithIssue(issue.ConfigLoadFailedId).
					WithSuggestion("Check that the config directory is writable").
					Wrap(err).
					BuildError())
			}
			fmt.Fprintf(app.stdout, "%s Configuration file: %s\n", successIcon, PathStyle.Render(path))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			dir, err := config.ConfigDir()
			if err != nil {
				return reportError(app.stderr, nil, issue.WrapWithContext(err, "locate configuration directory", ""))
			}
			fmt.Fprintln(app.stdout, filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := app.newSession(cmd.Context(), rootFlags)
			if err != nil {
				return reportError(app.stderr, nil, err)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(s.cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App, rootFlags *rootFlagValues) error {
	s, err := app.newSession(cmd.Context(), rootFlags)
	if err != nil {
		return reportError(app.stderr, nil, err)
	}
	cfg := s.cfg
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)
	if s.configPath != "" {
		fmt.Fprintf(out, "%s: %s\n", PathStyle.Render("Config file"), s.configPath)
	} else {
		fmt.Fprintf(out, "%s: %s\n", PathStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	show := func(indent, key, value string) {
		if value == "" {
			value = SubtitleStyle.Render("(unset)")
		} else {
			value = SuccessStyle.Render(value)
		}
		fmt.Fprintf(out, "%s%s: %s\n", indent, PathStyle.Render(key), value)
	}

	show("", "description_file", cfg.DescriptionFile)
	show("", "target_file", cfg.TargetFile)
	show("", "default_container", cfg.DefaultContainer)
	show("", "default_source_pattern", cfg.DefaultSourcePattern)
	show("", "mode", cfg.Mode.String())

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", PathStyle.Render("ui"))
	show("  ", "color_scheme", cfg.UI.ColorScheme.String())
	show("  ", "verbose", fmt.Sprintf("%v", cfg.UI.Verbose))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", PathStyle.Render("watch"))
	show("  ", "debounce", cfg.Watch.Debounce.String())

	return nil
}
