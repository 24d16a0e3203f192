// SPDX-License-Identifier: MPL-2.0

package classpathfile

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eclasspath/eclasspath/pkg/cueutil"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultFileName is the description file looked up when none is given.
	DefaultFileName = "classpath.cue"

	extCUE  = ".cue"
	extTOML = ".toml"
)

// ErrUnsupportedFormat is returned by ParseFile for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported description format")

//go:embed classpath_schema.cue
var schemaBytes []byte

// ParseFile reads and parses a description file. The format is chosen by
// extension: ".cue" or ".toml".
func ParseFile(path string) (*Description, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != extCUE && ext != extTOML {
		return nil, fmt.Errorf("%s: %w %q (use %s or %s)", path, ErrUnsupportedFormat, ext, extCUE, extTOML)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read description: %w", err)
	}

	if ext == extTOML {
		return ParseTOML(data, path)
	}
	return Parse(data, path)
}

// Parse decodes CUE description data, unified with the embedded #Description schema.
func Parse(data []byte, filename string) (*Description, error) {
	result, err := cueutil.ParseAndDecode[Description](schemaBytes, data, "#Description",
		cueutil.WithFilename(filename),
	)
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}

// ParseTOML decodes TOML description data. Unknown keys are rejected.
func ParseTOML(data []byte, filename string) (*Description, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
		return nil, err
	}

	var d Description
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return nil, fmt.Errorf("%s: %s", filename, strictErr.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, fmt.Errorf("%s:%d:%d: %w", filename, row, col, err)
		}
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &d, nil
}
