// SPDX-License-Identifier: MPL-2.0

package target

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func TestFile_UpToDate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	desc := filepath.Join(dir, "classpath.cue")
	out := filepath.Join(dir, DefaultFileName)
	old := time.Now().Add(-time.Hour)
	now := time.Now()

	f := &File{Path: out, Inputs: []string{desc, filepath.Join(dir, "missing.cue")}}

	touch(t, desc, old)
	if ok, err := f.UpToDate(); err != nil || ok {
		t.Errorf("missing target: UpToDate() = %v, %v; want false", ok, err)
	}

	touch(t, out, now)
	if ok, err := f.UpToDate(); err != nil || !ok {
		t.Errorf("newer target: UpToDate() = %v, %v; want true", ok, err)
	}

	touch(t, desc, now.Add(time.Minute))
	if ok, err := f.UpToDate(); err != nil || ok {
		t.Errorf("newer input: UpToDate() = %v, %v; want false", ok, err)
	}

	touch(t, desc, old)
	f.Force = true
	if ok, err := f.UpToDate(); err != nil || ok {
		t.Errorf("forced: UpToDate() = %v, %v; want false", ok, err)
	}
}

func TestFile_Create(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "project", DefaultFileName)
	f := &File{Path: path}
	w, err := f.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := w.Write([]byte("<classpath />")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "<classpath />" {
		t.Errorf("ReadFile() = %q, %v", data, err)
	}
}
