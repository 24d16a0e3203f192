// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the eclasspath CLI commands.
//
// The root command wires the config provider, the logger and the styled
// error output. Subcommands:
//   - generate: writes the .classpath descriptor, optionally watching for changes
//   - validate: parses, expands and checks the description without writing
//   - config:   shows, initializes and dumps the user configuration
package cmd
