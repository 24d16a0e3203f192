// SPDX-License-Identifier: MPL-2.0

package classpathfile

import (
	"fmt"
	"maps"
	"slices"
)

type field struct {
	name  string
	value *string
}

// ExpandFunc rewrites one path-like value, e.g. by substituting ${name}
// references.
type ExpandFunc func(value string) (string, error)

// ExpandPaths applies expand to every path-like field of the description in
// place: path references, and the path, source, javadoc, excluding and output
// fields of all specs. Empty values are left untouched.
func (d *Description) ExpandPaths(expand ExpandFunc) error {
	apply := func(name string, v *string) error {
		if *v == "" {
			return nil
		}
		out, err := expand(*v)
		if err != nil {
			return fmt.Errorf("expand %s: %w", name, err)
		}
		*v = out
		return nil
	}

	for _, name := range slices.Sorted(maps.Keys(d.PathRefs)) {
		ref := d.PathRefs[name]
		if err := apply(fmt.Sprintf("paths[%q].dir", name), &ref.Dir); err != nil {
			return err
		}
		for i := range ref.Paths {
			if err := apply(fmt.Sprintf("paths[%q].paths[%d]", name, i), &ref.Paths[i]); err != nil {
				return err
			}
		}
		d.PathRefs[name] = ref
	}

	cp := d.Classpath
	if cp == nil {
		return nil
	}
	if cp.Container != nil {
		if err := apply("container.path", &cp.Container.Path); err != nil {
			return err
		}
	}
	for i := range cp.Sources {
		s := &cp.Sources[i]
		for _, f := range []field{{"path", &s.Path}, {"excluding", &s.Excluding}, {"output", &s.Output}} {
			if err := apply(fmt.Sprintf("sources[%d].%s", i, f.name), f.value); err != nil {
				return err
			}
		}
	}
	for _, group := range []struct {
		name  string
		specs []BinarySpec
	}{{"variables", cp.Variables}, {"libraries", cp.Libraries}} {
		for i := range group.specs {
			s := &group.specs[i]
			for _, f := range []field{{"path", &s.Path}, {"source", &s.Source}, {"javadoc", &s.Javadoc}} {
				if err := apply(fmt.Sprintf("%s[%d].%s", group.name, i, f.name), f.value); err != nil {
					return err
				}
			}
		}
	}
	if cp.Output != nil {
		if err := apply("output.path", &cp.Output.Path); err != nil {
			return err
		}
	}
	return nil
}
