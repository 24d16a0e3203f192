// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/eclasspath/eclasspath/internal/issue"
	"github.com/eclasspath/eclasspath/internal/pathref"
	"github.com/eclasspath/eclasspath/internal/props"
	"github.com/eclasspath/eclasspath/pkg/classpathfile"
	"github.com/eclasspath/eclasspath/pkg/fspath"
	"github.com/eclasspath/eclasspath/pkg/types"
)

type (
	// projectFlags are the flags shared by generate and validate.
	projectFlags struct {
		file    string
		baseDir string
	}

	// project is a parsed, expanded and validated description with the
	// paths it was resolved against.
	project struct {
		baseDir         string
		descriptionPath string
		description     *classpathfile.Description
		resolver        *pathref.GlobResolver
	}
)

// resolveBaseDir returns the absolute project directory.
func (f projectFlags) resolveBaseDir() (string, error) {
	dir := f.baseDir
	if dir == "" {
		dir = "."
	}
	typed, err := fspath.Abs(types.FilesystemPath(dir))
	if err != nil {
		return "", issue.WrapWithContext(err, "resolve base directory", dir)
	}
	abs := typed.String()
	info, err := os.Stat(abs)
	if err != nil {
		return "", issue.NewErrorContext().
			WithOperation("open project").
			WithResource(abs).
			WithIssue(issue.DescriptionNotFoundId).
			WithSuggestion("Check the --basedir value").
			Wrap(err).
			BuildError()
	}
	if !info.IsDir() {
		return "", issue.NewErrorContext().
			WithOperation("open project").
			WithResource(abs).
			WithSuggestion("--basedir must name a directory").
			Wrap(fmt.Errorf("%s is not a directory", abs)).
			BuildError()
	}
	return abs, nil
}

// loadProject runs the description pipeline: locate, parse, expand
// properties, validate, and build the path reference resolver.
func (s *session) loadProject(flags projectFlags, environ []string) (*project, error) {
	baseDir, err := flags.resolveBaseDir()
	if err != nil {
		return nil, err
	}

	descPath := flags.file
	if descPath == "" {
		descPath = s.cfg.DescriptionFile
	}
	if !fspath.IsAbs(types.FilesystemPath(descPath)) {
		descPath = fspath.JoinStr(types.FilesystemPath(baseDir), descPath).String()
	}

	if _, statErr := os.Stat(descPath); statErr != nil {
		id := issue.DescriptionNotFoundId
		if errors.Is(statErr, fs.ErrPermission) {
			id = issue.PermissionDeniedId
		}
		return nil, issue.NewErrorContext().
			WithOperation("load classpath description").
			WithResource(descPath).
			WithIssue(id).
			WithSuggestion("Create " + classpathfile.DefaultFileName + " in the project directory").
			WithSuggestion("Or pass an existing description with --file").
			Wrap(statErr).
			BuildError()
	}

	s.log.Debug("loading description", "path", descPath)
	desc, err := classpathfile.ParseFile(descPath)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse classpath description").
			WithResource(descPath).
			WithIssue(issue.DescriptionParseErrorId).
			WithSuggestion("Fix the reported field and run 'eclasspath validate'").
			Wrap(err).
			BuildError()
	}

	expander, err := props.New(baseDir, desc.Properties, environ)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read description properties").
			WithResource(descPath).
			WithIssue(issue.DescriptionParseErrorId).
			WithSuggestion("Property names may contain letters, digits and underscores").
			Wrap(err).
			BuildError()
	}
	if err := desc.ExpandPaths(expander.Expand); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("expand description properties").
			WithResource(descPath).
			WithIssue(issue.DescriptionParseErrorId).
			WithSuggestion("Declare the property under 'properties' or export it").
			WithSuggestion("Use ${name:-default} for optional values").
			Wrap(err).
			BuildError()
	}

	if err := desc.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate classpath description").
			WithResource(descPath).
			WithIssue(issue.ConfigurationInvalidId).
			WithSuggestion("Every library and variable needs exactly one of path and pathref").
			Wrap(err).
			BuildError()
	}

	return &project{
		baseDir:         baseDir,
		descriptionPath: descPath,
		description:     desc,
		resolver:        pathref.NewGlobResolver(baseDir, desc.PathRefs),
	}, nil
}
