// SPDX-License-Identifier: MPL-2.0

package classpathfile

import (
	"errors"
	"strings"
	"testing"
)

func TestDescription_ExpandPaths(t *testing.T) {
	t.Parallel()

	d := &Description{
		PathRefs: map[string]PathRef{"compile": {Dir: "@lib", Include: []string{"*.jar"}, Paths: []string{"@x.jar"}}},
		Classpath: &Classpath{
			Container: &ContainerSpec{Path: "@jre"},
			Sources:   []SourceSpec{{Path: "@src", Output: "@bin"}},
			Libraries: []BinarySpec{{Path: "@lib/a.jar", Javadoc: "@doc"}},
			Variables: []BinarySpec{{Path: "VAR/b.jar", Source: "@VAR_SRC"}},
			Output:    &OutputSpec{Path: "@out"},
		},
	}

	err := d.ExpandPaths(func(v string) (string, error) {
		return strings.ReplaceAll(v, "@", "x/"), nil
	})
	if err != nil {
		t.Fatalf("ExpandPaths() error = %v", err)
	}

	cp := d.Classpath
	checks := []struct{ got, want string }{
		{d.PathRefs["compile"].Dir, "x/lib"},
		{d.PathRefs["compile"].Paths[0], "x/x.jar"},
		{cp.Container.Path, "x/jre"},
		{cp.Sources[0].Path, "x/src"},
		{cp.Sources[0].Output, "x/bin"},
		{cp.Libraries[0].Path, "x/lib/a.jar"},
		{cp.Libraries[0].Javadoc, "x/doc"},
		{cp.Variables[0].Path, "VAR/b.jar"},
		{cp.Variables[0].Source, "x/VAR_SRC"},
		{cp.Output.Path, "x/out"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("expanded value = %q, want %q", c.got, c.want)
		}
	}
	if cp.Sources[0].Excluding != "" {
		t.Errorf("empty excluding should stay empty, got %q", cp.Sources[0].Excluding)
	}
}

func TestDescription_ExpandPaths_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("unset")
	d := &Description{Classpath: &Classpath{Libraries: []BinarySpec{{Path: "$NOPE/a.jar"}}}}
	err := d.ExpandPaths(func(string) (string, error) { return "", boom })
	if !errors.Is(err, boom) {
		t.Fatalf("ExpandPaths() error = %v, want wrapped %v", err, boom)
	}
	if !strings.Contains(err.Error(), "libraries[0].path") {
		t.Errorf("error should name the field, got: %v", err)
	}
}
