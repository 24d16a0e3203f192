// SPDX-License-Identifier: MPL-2.0

package classpath

import (
	"errors"
	"fmt"
)

const (
	// StageContainer resolves and writes the container entry.
	StageContainer Stage = "container"
	// StageSource resolves and writes the source folder entries.
	StageSource Stage = "source"
	// StageBinary merges and writes the library and variable entries.
	StageBinary Stage = "binary"
	// StageOutput resolves and writes the output folder entry.
	StageOutput Stage = "output"
	// StageDocument covers the descriptor as a whole: freshness, open, flush, close.
	StageDocument Stage = "document"
)

var (
	// ErrConfiguration is wrapped by every ConfigurationError.
	ErrConfiguration = errors.New("invalid classpath configuration")
	// ErrIO is wrapped by every IOError.
	ErrIO = errors.New("classpath descriptor i/o failed")
)

type (
	// Stage names the generation stage an error was raised in.
	Stage string

	// ConfigurationError reports a declared spec that failed validation or
	// could not be resolved. Generation stops before the descriptor is opened.
	ConfigurationError struct {
		Stage Stage
		Spec  string
		Err   error
	}

	// IOError reports a failure to open, write or close the descriptor.
	IOError struct {
		Stage Stage
		Op    string
		Path  string
		Err   error
	}
)

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s stage: %s: %v", e.Stage, e.Spec, e.Err)
}

// Unwrap returns ErrConfiguration and the underlying cause.
func (e *ConfigurationError) Unwrap() []error { return []error{ErrConfiguration, e.Err} }

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s stage: %s %s: %v", e.Stage, e.Op, e.Path, e.Err)
}

// Unwrap returns ErrIO and the underlying cause.
func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }
