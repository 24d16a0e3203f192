// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It names the GOOS values the configuration layer switches on and rejects
// file names Windows reserves for devices, so a descriptor target chosen on
// one system stays writable on the others.
package platform
