// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/eclasspath/eclasspath/internal/issue"
	"github.com/eclasspath/eclasspath/internal/pathref"
	"github.com/eclasspath/eclasspath/pkg/classpathfile"

	"github.com/spf13/cobra"
)

// newValidateCommand creates the `eclasspath validate` command.
func newValidateCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &projectFlags{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a classpath description without writing anything",
		Long: `Check a classpath description without writing anything.

The description is parsed, its properties are expanded, every entry is
validated and every path reference is resolved. All problems are reported at
once.

Examples:
  eclasspath validate                          Validate ./classpath.cue
  eclasspath validate --file build/cp.toml     Validate another description`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runValidate(cmd, app, rootFlags, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "description file (default is <basedir>/classpath.cue)")
	cmd.Flags().StringVarP(&flags.baseDir, "basedir", "C", "", "project base directory (default is the working directory)")

	return cmd
}

func runValidate(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *projectFlags) error {
	s, err := app.newSession(cmd.Context(), rootFlags)
	if err != nil {
		return reportError(app.stderr, nil, err)
	}

	p, err := s.loadProject(*flags, app.Environ())
	if err != nil {
		return reportError(app.stderr, s, err)
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render("Description Validation"))
	fmt.Fprintf(app.stdout, "%s Path: %s\n", arrowIcon, PathStyle.Render(p.descriptionPath))
	fmt.Fprintln(app.stdout)

	kinds := refKinds(p.description.Classpath)
	var refErrs []error
	for _, name := range slices.Sorted(maps.Keys(p.description.PathRefs)) {
		selected := kinds[name]
		if len(selected) == 0 {
			selected = []pathref.Kind{pathref.Files}
		}
		for _, kind := range selected {
			paths, resolveErr := p.resolver.Resolve(name, kind)
			if resolveErr != nil {
				refErrs = append(refErrs, resolveErr)
				break
			}
			fmt.Fprintf(app.stdout, "%s path reference %s: %d path(s) (%s)\n", successIcon, PathStyle.Render(name), len(paths), kind)
		}
	}

	if len(refErrs) > 0 {
		for _, refErr := range refErrs {
			fmt.Fprintf(app.stderr, "%s %v\n", errorIcon, refErr)
		}
		return reportError(app.stderr, s, issue.NewErrorContext().
			WithOperation("resolve path references").
			WithResource(p.descriptionPath).
			WithIssue(issue.PathReferenceFailedId).
			WithSuggestion("Fix the patterns listed above").
			Wrap(fmt.Errorf("%d path reference(s) failed", len(refErrs))).
			BuildError())
	}

	cp := p.description.Classpath
	if cp == nil {
		fmt.Fprintf(app.stdout, "%s No classpath declared; generate will skip this project\n", warningIcon)
		return nil
	}

	fmt.Fprintf(app.stdout, "%s %d source(s), %d librar%s, %d variable(s)\n", successIcon,
		len(cp.Sources), len(cp.Libraries), plural(len(cp.Libraries), "y", "ies"), len(cp.Variables))
	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s Description is valid\n", successIcon)
	return nil
}

// refKinds returns, per reference name, what its include patterns select:
// directories for source folders, files for libraries and variables. Unused
// references are checked as files.
func refKinds(cp *classpathfile.Classpath) map[string][]pathref.Kind {
	kinds := make(map[string][]pathref.Kind)
	use := func(name string, kind pathref.Kind) {
		if name != "" && !slices.Contains(kinds[name], kind) {
			kinds[name] = append(kinds[name], kind)
		}
	}
	if cp != nil {
		for _, s := range cp.Sources {
			use(s.PathRef, pathref.Dirs)
		}
		for _, b := range slices.Concat(cp.Variables, cp.Libraries) {
			use(b.PathRef, pathref.Files)
		}
	}
	return kinds
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
