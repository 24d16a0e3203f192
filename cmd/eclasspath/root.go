// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "eclasspath",
		Short: "Generate Eclipse .classpath descriptors",
		Long: TitleStyle.Render("eclasspath") + SubtitleStyle.Render(" - Generate Eclipse .classpath descriptors") + `

eclasspath reads a classpath description (classpath.cue or classpath.toml)
and writes the .classpath file Eclipse JDT uses: the JRE container, source
folders, libraries and classpath variables with their source attachments,
and the output folder.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create classpath.cue in your project directory
  2. Declare sources, libraries and the output folder
  3. Run: eclasspath generate

` + SubtitleStyle.Render("Examples:") + `
  eclasspath generate          Write ./.classpath
  eclasspath generate --watch  Rewrite it on every change
  eclasspath validate          Check the description
  eclasspath config show       Show current configuration`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $HOME/.config/eclasspath/config.cue)")

	rootCmd.AddCommand(newGenerateCommand(app, flags))
	rootCmd.AddCommand(newValidateCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(app, flags))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the command's status. It is called by
// main.main.
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Code.Validate() == nil && !exitErr.Code.IsSuccess() {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
