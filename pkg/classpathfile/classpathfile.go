// SPDX-License-Identifier: MPL-2.0

package classpathfile

import "fmt"

const (
	// ModeNormal generates a plain Java classpath.
	ModeNormal Mode = "normal"
	// ModeAspectJ additionally guarantees the AspectJ runtime variable entry.
	ModeAspectJ Mode = "aspectj"
)

type (
	// Mode selects the processing mode of a description.
	Mode string

	// Description is the root of a classpath description file.
	Description struct {
		// Mode is the processing mode; empty means ModeNormal.
		Mode Mode `json:"mode,omitempty" toml:"mode,omitempty"`
		// Properties are names usable as ${name} inside path values.
		Properties map[string]string `json:"properties,omitempty" toml:"properties,omitempty"`
		// PathRefs are named path collections referenced by pathref fields.
		PathRefs map[string]PathRef `json:"paths,omitempty" toml:"paths,omitempty"`
		// Classpath is the classpath declaration. A nil Classpath means the
		// description declares nothing to generate.
		Classpath *Classpath `json:"classpath,omitempty" toml:"classpath,omitempty"`
	}

	// Classpath lists the declared entries in declaration order.
	Classpath struct {
		Container *ContainerSpec `json:"container,omitempty" toml:"container,omitempty"`
		Sources   []SourceSpec   `json:"sources,omitempty" toml:"sources,omitempty"`
		Libraries []BinarySpec   `json:"libraries,omitempty" toml:"libraries,omitempty"`
		Variables []BinarySpec   `json:"variables,omitempty" toml:"variables,omitempty"`
		Output    *OutputSpec    `json:"output,omitempty" toml:"output,omitempty"`
	}

	// PathRef is a named collection of paths. Literal Paths come first, then
	// the entries under Dir matching Include, minus those matching Exclude.
	// Include patterns select directories when the reference names source
	// folders and regular files when it names libraries or variables.
	PathRef struct {
		Dir     string   `json:"dir,omitempty" toml:"dir,omitempty"`
		Include []string `json:"include,omitempty" toml:"include,omitempty"`
		Exclude []string `json:"exclude,omitempty" toml:"exclude,omitempty"`
		Paths   []string `json:"paths,omitempty" toml:"paths,omitempty"`
	}

	// ContainerSpec names the classpath container.
	ContainerSpec struct {
		Path string `json:"path" toml:"path"`
	}

	// SourceSpec declares a source folder, either literally or through a
	// path reference. An empty Path is the project root.
	SourceSpec struct {
		Path      string `json:"path,omitempty" toml:"path,omitempty"`
		PathRef   string `json:"pathref,omitempty" toml:"pathref,omitempty"`
		Excluding string `json:"excluding,omitempty" toml:"excluding,omitempty"`
		Output    string `json:"output,omitempty" toml:"output,omitempty"`
	}

	// BinarySpec declares a library or a variable entry. Exactly one of Path
	// and PathRef must be set. A non-empty Source disables source discovery;
	// SourcePattern is a comma-separated list of discovery suffixes.
	BinarySpec struct {
		Path          string `json:"path,omitempty" toml:"path,omitempty"`
		PathRef       string `json:"pathref,omitempty" toml:"pathref,omitempty"`
		Exported      bool   `json:"exported,omitempty" toml:"exported,omitempty"`
		Source        string `json:"source,omitempty" toml:"source,omitempty"`
		SourcePattern string `json:"sourcepattern,omitempty" toml:"sourcepattern,omitempty"`
		Javadoc       string `json:"javadoc,omitempty" toml:"javadoc,omitempty"`
	}

	// OutputSpec names the output folder. An empty Path is the project root.
	OutputSpec struct {
		Path string `json:"path" toml:"path"`
	}
)

// String returns the string representation of the Mode.
func (m Mode) String() string { return string(m) }

// EffectiveMode returns the declared mode, defaulting to ModeNormal.
func (d *Description) EffectiveMode() Mode {
	if d.Mode == "" {
		return ModeNormal
	}
	return d.Mode
}

// HasVariable reports whether a variable with exactly the given path is declared.
func (c *Classpath) HasVariable(path string) bool {
	for i := range c.Variables {
		if c.Variables[i].Path == path {
			return true
		}
	}
	return false
}

// String describes the spec for error messages.
func (s ContainerSpec) String() string { return fmt.Sprintf("container %q", s.Path) }

// String describes the spec for error messages.
func (s SourceSpec) String() string {
	if s.PathRef != "" {
		return fmt.Sprintf("source pathref %q", s.PathRef)
	}
	return fmt.Sprintf("source %q", s.Path)
}

// Describe names the spec for error messages; kind is "library" or "variable".
func (s BinarySpec) Describe(kind string) string {
	if s.PathRef != "" {
		return fmt.Sprintf("%s pathref %q", kind, s.PathRef)
	}
	return fmt.Sprintf("%s %q", kind, s.Path)
}

// String describes the spec for error messages.
func (s OutputSpec) String() string { return fmt.Sprintf("output %q", s.Path) }
