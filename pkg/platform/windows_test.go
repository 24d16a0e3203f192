// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"path/filepath"
	"testing"
)

func TestIsWindowsReservedName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"CON lowercase", "con", true},
		{"CON mixed case", "Con", true},
		{"NUL", "nul", true},
		{"COM9", "com9", true},
		{"LPT1", "lpt1", true},
		{"with extension", "nul.classpath", true},
		{"with two extensions", "aux.tar.gz", true},
		{"slash path", "eclipse/prn", true},
		{"native path", filepath.Join("eclipse", "com1.xml"), true},

		{"default descriptor", ".classpath", false},
		{"nested descriptor", "eclipse/.classpath", false},
		{"contains reserved", "confile", false},
		{"COM10", "com10", false},
		{"reserved directory", "nul/.classpath", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsWindowsReservedName(tt.input); got != tt.expected {
				t.Errorf("IsWindowsReservedName(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWindowsReservedNames(t *testing.T) {
	t.Parallel()

	expectedNames := []string{
		"CON", "PRN", "AUX", "NUL",
		"COM1", "COM2", "COM3", "COM4", "COM5", "COM6", "COM7", "COM8", "COM9",
		"LPT1", "LPT2", "LPT3", "LPT4", "LPT5", "LPT6", "LPT7", "LPT8", "LPT9",
	}
	for _, name := range expectedNames {
		if !windowsReservedNames[name] {
			t.Errorf("windowsReservedNames missing %q", name)
		}
	}
	if len(windowsReservedNames) != len(expectedNames) {
		t.Errorf("windowsReservedNames has %d entries, want %d", len(windowsReservedNames), len(expectedNames))
	}
}
