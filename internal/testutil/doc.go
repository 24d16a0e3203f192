// SPDX-License-Identifier: MPL-2.0

// Package testutil holds test helpers that fail the test on error and undo
// their changes through t.Cleanup.
package testutil
