// SPDX-License-Identifier: MPL-2.0

package classpath

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("PK"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiscoverSource_Explicit(t *testing.T) {
	t.Parallel()

	// The explicit source wins even when nothing about the query is usable.
	q := SourceQuery{BaseDir: filepath.Join(t.TempDir(), "missing"), Explicit: "given-src.zip"}
	got, ok := DiscoverSource(q, NopLogger)
	if !ok || got != "given-src.zip" {
		t.Errorf("DiscoverSource() = %q, %v; want given-src.zip", got, ok)
	}
}

func TestDiscoverSource_Skipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "lib/a-src.jar", "plain.txt")

	tests := []struct {
		name string
		q    SourceQuery
	}{
		{"blank pattern", SourceQuery{BaseDir: dir, Item: "lib/a.jar", Patterns: "  "}},
		{"empty pattern", SourceQuery{BaseDir: dir, Item: "lib/a.jar"}},
		{"blank item", SourceQuery{BaseDir: dir, Item: " ", Patterns: "src"}},
		{"missing base directory", SourceQuery{BaseDir: filepath.Join(dir, "missing"), Item: "lib/a.jar", Patterns: "src"}},
		{"base directory is a file", SourceQuery{BaseDir: filepath.Join(dir, "plain.txt"), Item: "lib/a.jar", Patterns: "src"}},
		{"empty base directory", SourceQuery{Item: "lib/a.jar", Patterns: "src"}},
		{"no candidate", SourceQuery{BaseDir: dir, Item: "lib/a.jar", Patterns: "sources,source"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got, ok := DiscoverSource(tt.q, NopLogger); ok || got != "" {
				t.Errorf("DiscoverSource() = %q, %v; want no source", got, ok)
			}
		})
	}
}

func TestDiscoverSource_Probing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		files    []string
		item     string
		patterns string
		want     string
	}{
		{"source jar", []string{"lib/dist/someLibrary-source.jar"}, "lib/dist/someLibrary.jar", "source", "lib/dist/someLibrary-source.jar"},
		{"src jar", []string{"lib/dist/someLibrary-src.jar"}, "lib/dist/someLibrary.jar", "src", "lib/dist/someLibrary-src.jar"},
		{"zip fallback", []string{"lib/a-src.zip"}, "lib/a.jar", "src", "lib/a-src.zip"},
		{"jar before zip", []string{"lib/a-src.zip", "lib/a-src.jar"}, "lib/a.jar", "src", "lib/a-src.jar"},
		{"pattern order", []string{"lib/a-src.jar", "lib/a-sources.zip"}, "lib/a.jar", "sources,src", "lib/a-sources.zip"},
		{"later pattern", []string{"lib/a-src.jar"}, "lib/a.jar", "sources, src", "lib/a-src.jar"},
		{"item without extension", []string{"lib/a-src.jar"}, "lib/a", "src", "lib/a-src.jar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFiles(t, dir, tt.files...)

			got, ok := DiscoverSource(SourceQuery{BaseDir: dir, Item: tt.item, Patterns: tt.patterns}, NopLogger)
			if !ok || got != tt.want {
				t.Errorf("DiscoverSource() = %q, %v; want %q", got, ok, tt.want)
			}
		})
	}
}

func TestDiscoverSource_AbsoluteItem(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	elsewhere := t.TempDir()
	writeFiles(t, elsewhere, "a-src.jar")

	item := filepath.ToSlash(filepath.Join(elsewhere, "a.jar"))
	got, ok := DiscoverSource(SourceQuery{BaseDir: base, Item: item, Patterns: "src"}, NopLogger)
	if want := filepath.ToSlash(filepath.Join(elsewhere, "a-src.jar")); !ok || got != want {
		t.Errorf("DiscoverSource() = %q, %v; want %q", got, ok, want)
	}
}
