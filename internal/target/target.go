// SPDX-License-Identifier: MPL-2.0

// Package target manages the generated descriptor file: opening it for
// writing and deciding whether it is already up to date with its inputs.
package target

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileName is the Eclipse classpath descriptor name.
const DefaultFileName = ".classpath"

type (
	// Opener creates the descriptor for writing.
	Opener interface {
		Create() (io.WriteCloser, error)
	}

	// Checker reports whether the descriptor is newer than its inputs.
	Checker interface {
		UpToDate() (bool, error)
	}

	// File is a descriptor on disk. Inputs are the files it is generated
	// from; missing inputs are ignored.
	File struct {
		Path   string
		Inputs []string
		// Force makes UpToDate always report false.
		Force bool
	}
)

// Create truncates or creates the descriptor, creating parent directories.
func (f *File) Create() (io.WriteCloser, error) {
	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory for %s: %w", f.Path, err)
		}
	}
	out, err := os.Create(f.Path)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpToDate reports true when the descriptor exists and none of the inputs
// was modified after it.
func (f *File) UpToDate() (bool, error) {
	if f.Force {
		return false, nil
	}

	info, err := os.Stat(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", f.Path, err)
	}

	for _, input := range f.Inputs {
		in, err := os.Stat(input)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("stat %s: %w", input, err)
		}
		if in.ModTime().After(info.ModTime()) {
			return false, nil
		}
	}
	return true, nil
}

// String returns the descriptor path.
func (f *File) String() string { return f.Path }
