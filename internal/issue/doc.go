// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the file involved and
// remediation hints; the Issue catalog adds a markdown explanation per
// failure class, rendered with glamour by the CLI.
package issue
