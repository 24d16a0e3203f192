// SPDX-License-Identifier: MPL-2.0

// Package pathref expands named path references into concrete filesystem
// paths. A reference lists literal paths and doublestar include/exclude
// patterns evaluated below a directory of the project.
package pathref

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/eclasspath/eclasspath/pkg/classpathfile"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrUnknownReference is returned when a reference name is not declared.
	ErrUnknownReference = errors.New("unknown path reference")
	// ErrBadPattern is returned when an include or exclude pattern is malformed.
	ErrBadPattern = errors.New("bad path pattern")
)

const (
	// Files selects regular files, the entries of libraries and variables.
	Files Kind = iota
	// Dirs selects directories, the entries of source folders.
	Dirs
)

type (
	// Kind selects what include patterns may match. Literal paths are
	// returned whatever the kind.
	Kind int

	// Resolver expands a named reference into zero or more paths.
	Resolver interface {
		Resolve(name string, kind Kind) ([]string, error)
	}

	// GlobResolver resolves references declared in a description. Results
	// are absolute paths rooted at the base directory.
	GlobResolver struct {
		baseDir string
		refs    map[string]classpathfile.PathRef
	}
)

// NewGlobResolver creates a resolver for refs relative to baseDir.
func NewGlobResolver(baseDir string, refs map[string]classpathfile.PathRef) *GlobResolver {
	return &GlobResolver{baseDir: baseDir, refs: refs}
}

// String returns "files" or "dirs".
func (k Kind) String() string {
	if k == Dirs {
		return "dirs"
	}
	return "files"
}

// Resolve returns the literal paths of the reference followed by the files
// or directories (per kind) matching each include pattern in order. Matches
// of one pattern are sorted; duplicates keep their first position. A missing
// directory yields no matches.
func (r *GlobResolver) Resolve(name string, kind Kind) ([]string, error) {
	ref, ok := r.refs[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownReference, name)
	}

	for _, pattern := range slices.Concat(ref.Include, ref.Exclude) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("path reference %q: %w %q", name, ErrBadPattern, pattern)
		}
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, p := range ref.Paths {
		add(r.absolute(p))
	}

	dir := r.absolute(ref.Dir)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return out, nil
	}
	fsys := os.DirFS(dir)

	for _, pattern := range ref.Include {
		matches, err := glob(fsys, pattern, kind)
		if err != nil {
			return nil, fmt.Errorf("path reference %q: glob %q: %w", name, pattern, err)
		}
		slices.Sort(matches)
		for _, m := range matches {
			if excluded(ref.Exclude, m) {
				continue
			}
			add(filepath.Join(dir, filepath.FromSlash(m)))
		}
	}

	return out, nil
}

func glob(fsys fs.FS, pattern string, kind Kind) ([]string, error) {
	if kind == Files {
		return doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	}
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(matches, func(m string) bool {
		info, statErr := fs.Stat(fsys, m)
		return statErr != nil || !info.IsDir()
	}), nil
}

func (r *GlobResolver) absolute(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(r.baseDir, p)
}

func excluded(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, rel); err == nil && matched {
			return true
		}
	}
	return false
}

// Static is a Resolver over fixed results, useful for callers that resolve
// references elsewhere.
type Static map[string][]string

// Resolve returns a copy of the paths registered under name. The kind is
// ignored.
func (s Static) Resolve(name string, _ Kind) ([]string, error) {
	paths, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownReference, name)
	}
	return slices.Clone(paths), nil
}
