// SPDX-License-Identifier: MPL-2.0

package classpathfile

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrInvalidMode is returned when a Mode value is not recognized.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrInvalidContainerSpec is the sentinel error wrapped by InvalidSpecError for containers.
	ErrInvalidContainerSpec = errors.New("invalid container spec")
	// ErrInvalidSourceSpec is the sentinel error wrapped by InvalidSpecError for sources.
	ErrInvalidSourceSpec = errors.New("invalid source spec")
	// ErrInvalidBinarySpec is the sentinel error wrapped by InvalidSpecError for libraries and variables.
	ErrInvalidBinarySpec = errors.New("invalid binary spec")
	// ErrInvalidOutputSpec is the sentinel error wrapped by InvalidSpecError for the output folder.
	ErrInvalidOutputSpec = errors.New("invalid output spec")
	// ErrInvalidPathRef is the sentinel error wrapped by InvalidSpecError for path references.
	ErrInvalidPathRef = errors.New("invalid path reference")
	// ErrInvalidDescription is the sentinel error wrapped by InvalidDescriptionError.
	ErrInvalidDescription = errors.New("invalid description")
)

type (
	// InvalidModeError is returned when a Mode value is not recognized.
	InvalidModeError struct {
		Value Mode
	}

	// InvalidSpecError reports the field-level problems of one declared spec.
	// It wraps the sentinel matching the spec kind.
	InvalidSpecError struct {
		Sentinel    error
		Spec        string
		FieldErrors []error
	}

	// InvalidDescriptionError collects every spec error of a description.
	InvalidDescriptionError struct {
		FieldErrors []error
	}
)

// Error implements the error interface.
func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid mode %q (valid: %s, %s)", e.Value, ModeNormal, ModeAspectJ)
}

// Unwrap returns ErrInvalidMode for errors.Is() compatibility.
func (e *InvalidModeError) Unwrap() error { return ErrInvalidMode }

// Error implements the error interface.
func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("%s: %s", e.Spec, errors.Join(e.FieldErrors...))
}

// Unwrap returns the spec sentinel and the field errors.
func (e *InvalidSpecError) Unwrap() []error {
	return append([]error{e.Sentinel}, e.FieldErrors...)
}

// Error implements the error interface.
func (e *InvalidDescriptionError) Error() string {
	return fmt.Sprintf("invalid description: %d error(s): %s", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidDescription and the collected errors.
func (e *InvalidDescriptionError) Unwrap() []error {
	return append([]error{ErrInvalidDescription}, e.FieldErrors...)
}

// Validate returns an error if the Mode is neither empty nor a known mode.
func (m Mode) Validate() error {
	switch m {
	case "", ModeNormal, ModeAspectJ:
		return nil
	default:
		return &InvalidModeError{Value: m}
	}
}

// Validate checks that the container path is present.
func (s ContainerSpec) Validate() error {
	if isBlank(s.Path) {
		return specError(ErrInvalidContainerSpec, s.String(), errors.New("path is required"))
	}
	return nil
}

// Validate checks that the source folder is declared by path or by
// reference, not both.
func (s SourceSpec) Validate() error {
	var errs []error
	if s.Path != "" && s.PathRef != "" {
		errs = append(errs, errors.New("path and pathref are mutually exclusive"))
	}
	if s.PathRef != "" && isBlank(s.PathRef) {
		errs = append(errs, errors.New("pathref must not be whitespace-only"))
	}
	if s.Output != "" && isBlank(s.Output) {
		errs = append(errs, errors.New("output must not be whitespace-only"))
	}
	if len(errs) > 0 {
		return specError(ErrInvalidSourceSpec, s.String(), errs...)
	}
	return nil
}

// Validate checks a library (kind "library") or variable (kind "variable")
// declaration: exactly one of path and pathref, and no whitespace-only
// source or javadoc location.
func (s BinarySpec) Validate(kind string) error {
	var errs []error
	hasPath, hasRef := !isBlank(s.Path), !isBlank(s.PathRef)
	switch {
	case !hasPath && !hasRef:
		errs = append(errs, errors.New("either path or pathref is required"))
	case hasPath && hasRef:
		errs = append(errs, errors.New("path and pathref are mutually exclusive"))
	}
	if s.Source != "" && isBlank(s.Source) {
		errs = append(errs, errors.New("source must not be whitespace-only"))
	}
	if s.Javadoc != "" && isBlank(s.Javadoc) {
		errs = append(errs, errors.New("javadoc must not be whitespace-only"))
	}
	if len(errs) > 0 {
		return specError(ErrInvalidBinarySpec, s.Describe(kind), errs...)
	}
	return nil
}

// Validate checks that an explicitly declared output path is not whitespace-only.
func (s OutputSpec) Validate() error {
	if s.Path != "" && isBlank(s.Path) {
		return specError(ErrInvalidOutputSpec, s.String(), errors.New("path must not be whitespace-only"))
	}
	return nil
}

// Validate checks that a path reference selects something.
func (r PathRef) Validate(name string) error {
	var errs []error
	if isBlank(name) {
		errs = append(errs, errors.New("name is required"))
	}
	if len(r.Include) == 0 && len(r.Paths) == 0 {
		errs = append(errs, errors.New("at least one include pattern or literal path is required"))
	}
	for i, p := range r.Include {
		if isBlank(p) {
			errs = append(errs, fmt.Errorf("include[%d] must not be blank", i))
		}
	}
	if len(errs) > 0 {
		return specError(ErrInvalidPathRef, fmt.Sprintf("pathref %q", name), errs...)
	}
	return nil
}

// Validate checks the whole description and returns every problem found.
// Path references named by specs must be declared.
func (d *Description) Validate() error {
	var errs []error
	if err := d.Mode.Validate(); err != nil {
		errs = append(errs, err)
	}
	for _, name := range slices.Sorted(maps.Keys(d.PathRefs)) {
		if err := d.PathRefs[name].Validate(name); err != nil {
			errs = append(errs, err)
		}
	}

	if cp := d.Classpath; cp != nil {
		if cp.Container != nil {
			if err := cp.Container.Validate(); err != nil {
				errs = append(errs, err)
			}
		}
		for _, s := range cp.Sources {
			if err := s.Validate(); err != nil {
				errs = append(errs, err)
			}
			errs = appendMissingRef(errs, d.PathRefs, s.PathRef, s.String())
		}
		for _, group := range []struct {
			kind  string
			specs []BinarySpec
		}{{"variable", cp.Variables}, {"library", cp.Libraries}} {
			for _, s := range group.specs {
				if err := s.Validate(group.kind); err != nil {
					errs = append(errs, err)
				}
				errs = appendMissingRef(errs, d.PathRefs, s.PathRef, s.Describe(group.kind))
			}
		}
		if cp.Output != nil {
			if err := cp.Output.Validate(); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if len(errs) > 0 {
		return &InvalidDescriptionError{FieldErrors: errs}
	}
	return nil
}

func appendMissingRef(errs []error, refs map[string]PathRef, name, spec string) []error {
	if isBlank(name) {
		return errs
	}
	if _, ok := refs[name]; !ok {
		return append(errs, specError(ErrInvalidPathRef, spec, fmt.Errorf("path reference %q is not declared", name)))
	}
	return errs
}

func specError(sentinel error, spec string, errs ...error) *InvalidSpecError {
	return &InvalidSpecError{Sentinel: sentinel, Spec: spec, FieldErrors: errs}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
