// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestIsFatalFsnotifyError(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name string
		err  error
		want bool
	}
	var tests []testCase
	for _, errno := range fatalErrnos {
		tests = append(tests,
			testCase{name: errno.Error(), err: errno, want: true},
			testCase{name: "wrapped " + errno.Error(), err: fmt.Errorf("fsnotify: %w", errno), want: true},
		)
	}
	tests = append(tests,
		testCase{name: "not exist", err: os.ErrNotExist, want: false},
		testCase{name: "generic", err: errors.New("something went wrong"), want: false},
		testCase{name: "nil", err: nil, want: false},
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isFatalFsnotifyError(tt.err); got != tt.want {
				t.Errorf("isFatalFsnotifyError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
