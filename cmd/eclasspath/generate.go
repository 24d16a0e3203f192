// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/eclasspath/eclasspath/internal/classpath"
	"github.com/eclasspath/eclasspath/internal/target"
	"github.com/eclasspath/eclasspath/internal/watch"
	"github.com/eclasspath/eclasspath/pkg/classpathfile"
	"github.com/eclasspath/eclasspath/pkg/fspath"
	"github.com/eclasspath/eclasspath/pkg/types"

	"github.com/spf13/cobra"
)

// generateFlagValues holds the flags of the generate command.
type generateFlagValues struct {
	projectFlags
	target string
	mode   string
	force  bool
	watch  bool
}

// newGenerateCommand creates the `eclasspath generate` command.
func newGenerateCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &generateFlagValues{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the Eclipse .classpath descriptor",
		Long: `Write the Eclipse .classpath descriptor of a project.

The description (classpath.cue or classpath.toml) is read from the base
directory unless --file is given. The descriptor is skipped when it is newer
than the description and the configuration; use --force to always write it.

With --watch the descriptor is regenerated whenever the description or a
*.jar / *.zip file under the base directory changes.

Examples:
  eclasspath generate                          Generate in the current directory
  eclasspath generate --basedir ./app          Generate for another project
  eclasspath generate --mode aspectj --force   Always write, with the AspectJ runtime
  eclasspath generate --watch                  Regenerate on every change`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runGenerate(cmd.Context(), app, rootFlags, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "description file (default is <basedir>/classpath.cue)")
	cmd.Flags().StringVarP(&flags.baseDir, "basedir", "C", "", "project base directory (default is the working directory)")
	cmd.Flags().StringVarP(&flags.target, "target", "o", "", "descriptor to write (default is <basedir>/.classpath)")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "processing mode: normal or aspectj (overrides the description)")
	cmd.Flags().BoolVar(&flags.force, "force", false, "write the descriptor even when it is up to date")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "regenerate on changes until interrupted")

	return cmd
}

func runGenerate(ctx context.Context, app *App, rootFlags *rootFlagValues, flags *generateFlagValues) error {
	s, err := app.newSession(ctx, rootFlags)
	if err != nil {
		return reportError(app.stderr, nil, err)
	}

	mode := classpathfile.Mode(flags.mode)
	if err := mode.Validate(); err != nil {
		return reportError(app.stderr, s, fmt.Errorf("--mode: %w", err))
	}

	if _, err := s.generateOnce(ctx, app, flags, flags.force); err != nil {
		if !flags.watch {
			return reportError(app.stderr, s, err)
		}
		// The user may fix the description and save again.
		fmt.Fprintf(app.stderr, "%s %s\n", warningIcon, formatErrorForDisplay(err, s.verbose))
	}

	if !flags.watch {
		return nil
	}
	return s.watch(ctx, app, flags)
}

// generateOnce loads the project and writes the descriptor. The description
// is re-read on every call so watch mode picks up edits.
func (s *session) generateOnce(ctx context.Context, app *App, flags *generateFlagValues, force bool) (classpath.Result, error) {
	p, err := s.loadProject(flags.projectFlags, app.Environ())
	if err != nil {
		return classpath.Result{}, err
	}

	targetPath := s.targetPath(p, flags)
	inputs := []string{p.descriptionPath}
	if s.configPath != "" {
		inputs = append(inputs, s.configPath)
	}
	file := &target.File{Path: targetPath, Inputs: inputs, Force: force}

	// An explicit --mode wins, then the description, then the config.
	mode := classpathfile.Mode(flags.mode)
	if mode == "" && p.description.Mode == "" {
		mode = s.cfg.Mode
	}

	res, err := classpath.NewGenerator(s.log).Generate(ctx, classpath.Request{
		Description:          p.description,
		BaseDir:              p.baseDir,
		Resolver:             p.resolver,
		Target:               file,
		Freshness:            file,
		Mode:                 mode,
		DefaultContainer:     s.cfg.DefaultContainer,
		DefaultSourcePattern: s.cfg.DefaultSourcePattern,
	})
	if err != nil {
		return res, classifyGenerateError(err, targetPath)
	}

	printResult(app, p, res)
	return res, nil
}

func (s *session) targetPath(p *project, flags *generateFlagValues) string {
	path := flags.target
	if path == "" {
		path = s.cfg.TargetFile
	}
	if fspath.IsAbs(types.FilesystemPath(path)) {
		return path
	}
	return fspath.JoinStr(types.FilesystemPath(p.baseDir), path).String()
}

func printResult(app *App, p *project, res classpath.Result) {
	name := res.Target
	if rel, err := filepath.Rel(p.baseDir, res.Target); err == nil && !strings.HasPrefix(rel, "..") {
		name = rel
	}

	switch res.Skipped {
	case classpath.SkipUpToDate:
		fmt.Fprintf(app.stdout, "%s %s is up to date\n", successIcon, PathStyle.Render(name))
	case classpath.SkipNoClasspath:
		fmt.Fprintf(app.stdout, "%s %s declares no classpath, nothing written\n", warningIcon, PathStyle.Render(p.descriptionPath))
	default:
		fmt.Fprintf(app.stdout, "%s Wrote %s %s\n", successIcon, PathStyle.Render(name),
			SubtitleStyle.Render(fmt.Sprintf("(container %s, sources %d, libraries %d, variables %d)",
				res.Container, res.Sources, res.Libraries, res.Variables)))
	}
}

// watch regenerates on every relevant change until ctx is cancelled.
func (s *session) watch(ctx context.Context, app *App, flags *generateFlagValues) error {
	baseDir, err := flags.resolveBaseDir()
	if err != nil {
		return reportError(app.stderr, s, err)
	}

	patterns := []string{"**/*.jar", "**/*.zip"}
	var ignore []string

	descPath := flags.file
	if descPath == "" {
		descPath = s.cfg.DescriptionFile
	}
	if rel, ok := relativeTo(baseDir, descPath); ok {
		patterns = append(patterns, rel)
	}

	targetPath := flags.target
	if targetPath == "" {
		targetPath = s.cfg.TargetFile
	}
	if rel, ok := relativeTo(baseDir, targetPath); ok {
		ignore = append(ignore, rel)
	}

	w, err := watch.New(watch.Config{
		BaseDir:  baseDir,
		Patterns: patterns,
		Ignore:   ignore,
		Debounce: s.cfg.Watch.Debounce,
		Log:      s.log,
		OnChange: func(ctx context.Context, changed []string) error {
			fmt.Fprintf(app.stdout, "%s Detected %d change(s), regenerating\n", arrowIcon, len(changed))
			_, genErr := s.generateOnce(ctx, app, flags, true)
			return genErr
		},
	})
	if err != nil {
		return reportError(app.stderr, s, fmt.Errorf("failed to start watcher: %w", err))
	}

	fmt.Fprintf(app.stdout, "%s Watching %s for changes (Ctrl+C to stop)\n", arrowIcon, PathStyle.Render(baseDir))
	if err := w.Run(ctx); err != nil {
		return reportError(app.stderr, s, err)
	}
	return nil
}

// relativeTo returns path relative to baseDir in slash form, false when it
// lies outside.
func relativeTo(baseDir, path string) (string, bool) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	rel, err := filepath.Rel(baseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
