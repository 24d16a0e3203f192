// SPDX-License-Identifier: MPL-2.0

package classpath

import "strings"

const (
	// JREContainer is the Eclipse JRE container id, also the default container.
	JREContainer = "org.eclipse.jdt.launching.JRE_CONTAINER"
	// StandardVMContainer prefixes bare VM names such as "1.5".
	StandardVMContainer = JREContainer + "/org.eclipse.jdt.internal.debug.ui.launcher.StandardVMType/"
)

// containerRule maps a declared container path to the path written to the
// descriptor. Rules are tried in order; the first match wins.
type containerRule struct {
	name    string
	matches func(path string) bool
	expand  func(path string) string
}

var containerRules = []containerRule{
	{name: "qualified path", matches: func(p string) bool { return strings.Contains(p, "/") }, expand: keep},
	{name: "jre container", matches: hasPrefix(JREContainer), expand: keep},
	{name: "junit container", matches: hasPrefix("org.eclipse.jdt.junit.JUNIT_CONTAINER"), expand: keep},
	{name: "plugin dependencies", matches: hasPrefix("org.eclipse.pde.core.requiredPlugins"), expand: keep},
	{name: "maven dependencies", matches: hasPrefix("org.eclipse.m2e.MAVEN2_CLASSPATH_CONTAINER"), expand: keep},
	{name: "vm name", matches: func(string) bool { return true }, expand: func(p string) string { return StandardVMContainer + p }},
}

// ResolveContainer returns the descriptor path for a declared container path
// and the name of the rule that produced it.
func ResolveContainer(path string) (string, string) {
	for _, r := range containerRules {
		if r.matches(path) {
			return r.expand(path), r.name
		}
	}
	return path, ""
}

func keep(p string) string { return p }

func hasPrefix(prefix string) func(string) bool {
	return func(p string) bool { return strings.HasPrefix(p, prefix) }
}
