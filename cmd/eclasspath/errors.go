// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/eclasspath/eclasspath/internal/classpath"
	"github.com/eclasspath/eclasspath/internal/issue"
	"github.com/eclasspath/eclasspath/internal/pathref"
	"github.com/eclasspath/eclasspath/pkg/types"
)

// classifyGenerateError wraps a generator error into an ActionableError
// linked to the matching catalog entry.
func classifyGenerateError(err error, targetPath string) error {
	if err == nil {
		return nil
	}

	ec := issue.NewErrorContext().WithOperation("generate classpath").WithResource(targetPath).Wrap(err)

	var ioErr *classpath.IOError
	switch {
	case errors.Is(err, pathref.ErrUnknownReference), errors.Is(err, pathref.ErrBadPattern):
		ec.WithIssue(issue.PathReferenceFailedId).
			WithSuggestion("Check the 'paths' section of the description")
	case errors.Is(err, classpath.ErrConfiguration):
		ec.WithIssue(issue.ConfigurationInvalidId).
			WithSuggestion("Run 'eclasspath validate' to list every invalid entry")
	case errors.Is(err, fs.ErrPermission):
		ec.WithIssue(issue.PermissionDeniedId).
			WithSuggestion("Check the permissions of " + targetPath)
	case errors.As(err, &ioErr):
		ec.WithIssue(issue.DescriptorWriteFailedId).
			WithSuggestion(fmt.Sprintf("The %s step failed; check the target directory", ioErr.Op))
	}

	return ec.BuildError()
}

// exitCodeFor maps an error to the process exit status.
func exitCodeFor(err error) types.ExitCode {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return types.ExitFailure
	}
	switch ae.IssueId {
	case issue.ConfigurationInvalidId, issue.PathReferenceFailedId, issue.DescriptionParseErrorId:
		return types.ExitConfiguration
	case issue.DescriptorWriteFailedId, issue.PermissionDeniedId:
		return types.ExitIO
	default:
		return types.ExitFailure
	}
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// show their suggestions, and in verbose mode the full error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// reportError prints err to stderr (with the catalog entry in verbose mode)
// and returns the ExitError the command finishes with.
func reportError(stderr io.Writer, s *session, err error) error {
	verbose := s != nil && s.verbose
	fmt.Fprintf(stderr, "%s %s\n", errorIcon, formatErrorForDisplay(err, verbose))

	var ae *issue.ActionableError
	if verbose && errors.As(err, &ae) {
		if entry := ae.Issue(); entry != nil {
			rendered, renderErr := entry.Render(s.issueStyle())
			if renderErr != nil {
				s.log.Warn("failed to render issue catalog entry", "issue", ae.IssueId, "err", renderErr)
			} else {
				fmt.Fprint(stderr, rendered)
			}
		}
	}

	return &ExitError{Code: exitCodeFor(err)}
}
