// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/eclasspath/eclasspath/internal/config"
	"github.com/eclasspath/eclasspath/internal/testutil"
)

func TestConfigPathCommand_FollowsHome(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	home := t.TempDir()
	testutil.SetHomeDir(t, home)

	stdout, stderr, err := execCLI(t, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v\n%s", err, stderr)
	}
	got := strings.TrimSpace(stdout)
	if !strings.HasPrefix(got, home) {
		t.Errorf("config path = %q, want it below %q", got, home)
	}
	if want := filepath.Join(config.AppName, "config.cue"); !strings.HasSuffix(got, want) {
		t.Errorf("config path = %q, want suffix %q", got, want)
	}
}

func TestConfigPathCommand_NoHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("the config directory falls back to USERPROFILE on Windows")
	}
	config.Reset()
	t.Cleanup(config.Reset)

	testutil.MustUnsetenv(t, "XDG_CONFIG_HOME")
	testutil.MustUnsetenv(t, "HOME")

	_, stderr, err := execCLI(t, "config", "path")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("config path error = %v, want *ExitError", err)
	}
	if !strings.Contains(stderr, "failed to locate configuration directory") {
		t.Errorf("stderr = %q", stderr)
	}
}
