// SPDX-License-Identifier: MPL-2.0

// Package types defines small validated value types shared by the description
// model, the generator and the CLI layer.
//
// This package is a leaf dependency: it imports only the standard library.
package types
