// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	DescriptionNotFoundId Id = iota + 1
	DescriptionParseErrorId
	ConfigurationInvalidId
	PathReferenceFailedId
	DescriptorWriteFailedId
	ConfigLoadFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation of the descriptor format
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "](" + string(link) + ")\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "](" + string(link) + ")\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

const eclipseClasspathDocs HttpLink = "https://help.eclipse.org/latest/topic/org.eclipse.jdt.doc.isv/reference/api/org/eclipse/jdt/core/IClasspathEntry.html"

var (
	render = glamour.Render

	descriptionNotFoundIssue = &Issue{
		id: DescriptionNotFoundId,
		mdMsg: `
# No classpath description found!

We looked for a description file but couldn't find one.

## Search order:
1. The path given with ` + "`--file`" + `
2. ` + "`description_file`" + ` from your config
3. ` + "`classpath.cue`" + ` in the base directory

## Things you can try:
- Create a ` + "`classpath.cue`" + ` next to your sources:
~~~cue
classpath: {
	sources: [{path: "src"}]
	libraries: [{path: "lib/junit.jar", sourcepattern: "sources,src"}]
	output: {path: "bin"}
}
~~~

- Or point at an existing description:
~~~
$ eclasspath generate --file build/classpath.toml
~~~`,
	}

	descriptionParseErrorIssue = &Issue{
		id: DescriptionParseErrorId,
		mdMsg: `
# Failed to parse the classpath description!

Your description contains syntax errors or fields the schema does not know.

## Common issues:
- Invalid CUE or TOML syntax (missing quotes, braces, etc.)
- Misspelled field names (` + "`sourcepattern`" + `, ` + "`pathref`" + `, ` + "`javadoc`" + `)
- A ` + "`mode`" + ` other than ` + "`normal`" + ` or ` + "`aspectj`" + `
- An undefined ` + "`${property}`" + ` inside a path

## Things you can try:
- Check the error message above for the specific line/column
- Run the validator for the full list of problems:
~~~
$ eclasspath validate --verbose
~~~`,
	}

	configurationInvalidIssue = &Issue{
		id: ConfigurationInvalidId,
		mdMsg: `
# Invalid classpath entry!

One of the declared entries is incomplete or contradictory. Nothing was
written to the descriptor.

## Rules:
- Every library and variable needs exactly one of ` + "`path`" + ` and ` + "`pathref`" + `
- A source folder takes either ` + "`path`" + ` or ` + "`pathref`" + `, not both
- A declared container needs a non-empty ` + "`path`" + `

## Example:
~~~cue
classpath: {
	container: {path: "17"}
	variables: [{path: "M2_REPO/junit/junit/4.13/junit-4.13.jar"}]
	libraries: [{pathref: "deps", exported: true}]
}
~~~`,
		docLinks: []HttpLink{eclipseClasspathDocs},
	}

	pathReferenceFailedIssue = &Issue{
		id: PathReferenceFailedId,
		mdMsg: `
# Path reference could not be resolved!

An entry names a ` + "`pathref`" + ` that is not declared under ` + "`paths`" + `, or one of
its patterns is malformed.

## Things you can try:
- Declare the reference:
~~~cue
paths: deps: {
	dir: "lib"
	include: ["**/*.jar"]
	exclude: ["**/*-sources.jar"]
}
~~~

- Patterns use doublestar syntax (` + "`**`" + ` matches any number of directories)`,
		extLinks: []HttpLink{"https://github.com/bmatcuk/doublestar#patterns"},
	}

	descriptorWriteFailedIssue = &Issue{
		id: DescriptorWriteFailedId,
		mdMsg: `
# Failed to write the .classpath descriptor!

The descriptor could not be opened, written or closed. A partially written
file may be left behind.

## Things you can try:
- Check that the target directory exists and is writable
- Check that the disk is not full
- Write somewhere else:
~~~
$ eclasspath generate --target /tmp/.classpath
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your eclasspath configuration file could not be loaded.

## Config file location:
- Linux: ` + "`~/.config/eclasspath/config.cue`" + `
- macOS: ` + "`~/Library/Application Support/eclasspath/config.cue`" + `
- Windows: ` + "`%APPDATA%\\eclasspath\\config.cue`" + `

## Things you can try:
- Check the config file syntax (CUE format)
- Reset to defaults:
~~~
$ eclasspath config init
~~~

- View current configuration:
~~~
$ eclasspath config show
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to read the description or write the descriptor.

## Things you can try:
- Check file and directory permissions
- Run eclasspath from a project directory you own`,
	}

	issues = map[Id]*Issue{
		descriptionNotFoundIssue.Id():   descriptionNotFoundIssue,
		descriptionParseErrorIssue.Id(): descriptionParseErrorIssue,
		configurationInvalidIssue.Id():  configurationInvalidIssue,
		pathReferenceFailedIssue.Id():   pathReferenceFailedIssue,
		descriptorWriteFailedIssue.Id(): descriptorWriteFailedIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		permissionDeniedIssue.Id():      permissionDeniedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
