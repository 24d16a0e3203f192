// SPDX-License-Identifier: MPL-2.0

package classpath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eclasspath/eclasspath/pkg/fspath"
)

// archiveExtensions are probed in order for every source pattern.
var archiveExtensions = []string{".jar", ".zip"}

// SourceQuery describes one source attachment lookup.
type SourceQuery struct {
	// BaseDir is the directory candidates are resolved against.
	BaseDir string
	// Item is the library path, relative to BaseDir unless absolute.
	Item string
	// Patterns is a comma-separated list of suffixes, e.g. "sources,src".
	Patterns string
	// Explicit is a declared source attachment. When set, no probing happens.
	Explicit string
}

// DiscoverSource returns the source attachment for q.Item.
//
// An explicit source is returned verbatim. Otherwise, for each pattern in
// order, "<item without extension>-<pattern>.jar" and then ".zip" are probed
// under q.BaseDir and the first readable candidate is returned in the same
// form as q.Item. A missing or unreadable base directory, a blank item or a
// blank pattern list skip discovery. None of these cases is an error.
func DiscoverSource(q SourceQuery, log Logger) (string, bool) {
	if q.Explicit != "" {
		log.Debug("skipping source discovery, source is set", "item", q.Item, "source", q.Explicit)
		return q.Explicit, true
	}
	if strings.TrimSpace(q.Item) == "" {
		log.Debug("skipping source discovery, item is blank")
		return "", false
	}
	if strings.TrimSpace(q.Patterns) == "" {
		log.Debug("skipping source discovery, source pattern is blank", "item", q.Item)
		return "", false
	}
	if !readableDir(q.BaseDir) {
		log.Debug("skipping source discovery, base directory is not a readable directory", "basedir", q.BaseDir)
		return "", false
	}

	stem := fspath.RemoveExtension(q.Item)
	for _, pattern := range strings.Split(q.Patterns, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		log.Debug("trying source pattern", "item", q.Item, "pattern", pattern)
		for _, ext := range archiveExtensions {
			candidate := fmt.Sprintf("%s-%s%s", stem, pattern, ext)
			if readable(probePath(q.BaseDir, candidate)) {
				log.Info("discovered source archive", "item", q.Item, "source", candidate)
				return candidate, true
			}
		}
	}

	log.Debug("discovered no sources", "item", q.Item)
	return "", false
}

func probePath(baseDir, candidate string) string {
	native := filepath.FromSlash(candidate)
	if filepath.IsAbs(native) {
		return native
	}
	return filepath.Join(baseDir, native)
}

func readableDir(dir string) bool {
	if strings.TrimSpace(dir) == "" {
		return false
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	return readable(dir)
}

func readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}
