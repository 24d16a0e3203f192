// SPDX-License-Identifier: MPL-2.0

// Package classpath generates Eclipse .classpath descriptors from a
// classpathfile.Description.
//
// Generation is a single pass through five stages: the container entry, the
// source folders, the merged binary entries (variables, then libraries) and
// the output folder. Binary entries are merged by their project-relative path:
// the first declaration of a path fixes its position in the document, the last
// one fixes its attributes. Libraries without an explicit source attachment get
// one by probing for "<name>-<pattern>.jar" and "<name>-<pattern>.zip" next to
// the library.
package classpath
