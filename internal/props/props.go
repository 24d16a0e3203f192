// SPDX-License-Identifier: MPL-2.0

// Package props expands property references in description path values using
// shell parameter syntax: $name, ${name} and ${name:-default}. Names resolve
// against ${basedir}, the description properties and the process environment,
// in that order of precedence. Unset names and command substitutions are
// errors.
package props

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// BaseDirName is the property holding the project base directory.
const BaseDirName = "basedir"

// ErrInvalidPropertyName is returned for property names that are not valid
// shell identifiers.
var ErrInvalidPropertyName = errors.New("invalid property name")

// Expander expands property references in single values.
type Expander struct {
	env expand.Environ
}

// New builds an Expander. environ is a KEY=VALUE list such as os.Environ().
func New(baseDir string, properties map[string]string, environ []string) (*Expander, error) {
	pairs := make([]string, 0, len(environ)+len(properties)+1)
	pairs = append(pairs, environ...)
	for _, name := range slices.Sorted(maps.Keys(properties)) {
		if !syntax.ValidName(name) {
			return nil, fmt.Errorf("%w %q: use letters, digits and underscores", ErrInvalidPropertyName, name)
		}
		pairs = append(pairs, name+"="+properties[name])
	}
	pairs = append(pairs, BaseDirName+"="+baseDir)

	return &Expander{env: expand.ListEnviron(pairs...)}, nil
}

// Expand returns value with every property reference substituted. Values
// without "$" or "`" are returned as-is, so Windows separators survive.
func (e *Expander) Expand(value string) (string, error) {
	if !strings.ContainsAny(value, "$`") {
		return value, nil
	}

	word, err := syntax.NewParser().Document(strings.NewReader(value))
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", value, err)
	}

	cfg := &expand.Config{Env: e.env, NoUnset: true}
	out, err := expand.Document(cfg, word)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", value, err)
	}
	return out, nil
}
