// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the CUE parsing flow shared by the description
// loader (classpath.cue) and the user configuration loader (config.cue):
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with the schema definition
//  3. Validate and decode into a Go struct
//
// Errors are reported with JSON-path prefixes, e.g.
// "classpath.cue: classpath.libraries[2].path: conflicting values".
package cueutil
