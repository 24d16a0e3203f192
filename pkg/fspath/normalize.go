// SPDX-License-Identifier: MPL-2.0

package fspath

import (
	"path/filepath"
	"strings"
)

// Separator is the separator used by classpath descriptor paths.
const Separator = "/"

// StripBase removes base and the separator following it from the front of
// path. Paths that do not start with base are returned unchanged; a path equal
// to base yields the empty (project root) path.
//
// The comparison is a plain string prefix check, so "/foobar/x" is cut by the
// base "/foo" as well.
func StripBase(path, base string) string {
	if !strings.HasPrefix(path, base) {
		return path
	}
	cut := len(base) + len(string(filepath.Separator))
	if cut >= len(path) {
		return ""
	}
	return path[cut:]
}

// DirectoryOf returns the directory portion of path, always terminated by a
// separator unless the result is empty. Whitespace-only input is not a path.
//
//	DirectoryOf("lib/dist/a.jar")  == "lib/dist/"
//	DirectoryOf("/a.jar")          == "/"
//	DirectoryOf("a.jar")           == ""
func DirectoryOf(path string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}

	rooted := strings.HasPrefix(path, Separator)
	segments := strings.FieldsFunc(path, func(r rune) bool { return string(r) == Separator })
	if len(segments) < 2 {
		if rooted {
			return Separator
		}
		return ""
	}

	var b strings.Builder
	if rooted {
		b.WriteString(Separator)
	}
	for _, segment := range segments[:len(segments)-1] {
		b.WriteString(segment)
		b.WriteString(Separator)
	}
	return b.String()
}

// RemoveExtension drops the last "."-delimited segment of name. Names without
// a dot are returned unchanged.
func RemoveExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return name
	}
	return name[:idx]
}
