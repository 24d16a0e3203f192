// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/eclasspath/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/eclasspath/config.cue on macOS, %APPDATA%\eclasspath\config.cue
// on Windows), falling back to ./config.cue. It supplies the defaults of the generate command:
// description and target file names, default container and source pattern, mode, UI and
// watch settings. ECLASSPATH_* environment variables override file values.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
