// SPDX-License-Identifier: MPL-2.0

// Package classpathfile defines the declarative description of a project's
// compile-time dependencies and loads it from classpath.cue (validated against
// an embedded CUE schema) or classpath.toml.
//
// A description declares at most one container, any number of source folders,
// libraries and variables, at most one output folder, and the named path
// references that source and binary specs may point at instead of a literal
// path:
//
//	mode: "normal"
//	paths: "compile.classpath": {dir: "lib", include: ["**/*.jar"]}
//	classpath: {
//		container: path: "1.8"
//		sources: [{path: "src"}, {path: "test", output: "bin-test"}]
//		libraries: [{pathref: "compile.classpath", sourcepattern: "sources,src"}]
//		output: path: "bin"
//	}
package classpathfile
