// SPDX-License-Identifier: MPL-2.0

package classpath

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/eclasspath/eclasspath/internal/pathref"
	"github.com/eclasspath/eclasspath/internal/target"
	"github.com/eclasspath/eclasspath/internal/xmlwriter"
	"github.com/eclasspath/eclasspath/pkg/classpathfile"
	"github.com/eclasspath/eclasspath/pkg/fspath"
	"github.com/eclasspath/eclasspath/pkg/types"
)

const (
	// AspectJRuntimeVariable is the variable guaranteed in AspectJ mode.
	AspectJRuntimeVariable = "ASPECTJRT_LIB"
	// AspectJSourceVariable is the source attachment of AspectJRuntimeVariable.
	AspectJSourceVariable = "ASPECTJRT_SRC"

	encoding = "UTF-8"
)

const (
	// SkipNone means the descriptor was written.
	SkipNone SkipReason = ""
	// SkipNoClasspath means the description declares no classpath.
	SkipNoClasspath SkipReason = "no classpath declared"
	// SkipUpToDate means the descriptor is newer than its inputs.
	SkipUpToDate SkipReason = "up to date"
)

type (
	// SkipReason explains why Generate did not write the descriptor.
	SkipReason string

	// Request holds the inputs of one generation pass.
	Request struct {
		// Description is the parsed and expanded description.
		Description *classpathfile.Description
		// BaseDir is the absolute project directory paths are made relative to.
		BaseDir string
		// Resolver expands pathref names.
		Resolver pathref.Resolver
		// Target receives the descriptor.
		Target target.Opener
		// Freshness is consulted before any work; nil means never up to date.
		Freshness target.Checker
		// Mode overrides the description mode when set.
		Mode classpathfile.Mode
		// DefaultContainer replaces JREContainer as the container used when
		// none is declared.
		DefaultContainer string
		// DefaultSourcePattern applies to binary specs without a source pattern.
		DefaultSourcePattern string
	}

	// Result summarizes one generation pass.
	Result struct {
		Skipped   SkipReason
		Target    string
		Container string
		Sources   int
		Libraries int
		Variables int
	}

	// Generator writes classpath descriptors.
	Generator struct {
		log Logger
	}

	sourceEntry struct {
		path      string
		excluding string
		output    string
	}

	// plan is the fully resolved document, computed before the target is opened.
	plan struct {
		container string
		sources   []sourceEntry
		binaries  *MergeTable
		output    string
	}
)

// NewGenerator creates a Generator logging to log; nil discards messages.
func NewGenerator(log Logger) *Generator {
	if log == nil {
		log = NopLogger
	}
	return &Generator{log: log}
}

// Generate resolves the request and writes the descriptor.
//
// Every spec is validated and resolved before the target is opened, so a
// ConfigurationError never leaves a partial file behind. An IOError may: the
// descriptor is not written atomically. The target is closed on every path
// once opened.
func (g *Generator) Generate(ctx context.Context, req Request) (res Result, err error) {
	res.Target = targetName(req.Target)

	if req.Description == nil || req.Description.Classpath == nil {
		g.log.Warn("there was no description of a classpath found")
		res.Skipped = SkipNoClasspath
		return res, nil
	}

	if req.Freshness != nil {
		upToDate, checkErr := req.Freshness.UpToDate()
		if checkErr != nil {
			return res, &IOError{Stage: StageDocument, Op: "check", Path: res.Target, Err: checkErr}
		}
		if upToDate {
			g.log.Warn("the classpath definition is up-to-date", "target", res.Target)
			res.Skipped = SkipUpToDate
			return res, nil
		}
	}

	p, err := g.plan(req)
	if err != nil {
		return res, err
	}
	res.Container = p.container
	res.Sources = len(p.sources)
	res.Libraries = p.binaries.Count(KindLibrary)
	res.Variables = p.binaries.Count(KindVariable)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("generate canceled: %w", ctxErr)
	}

	g.log.Info("writing the classpath definition", "target", res.Target)
	out, err := req.Target.Create()
	if err != nil {
		return res, &IOError{Stage: StageDocument, Op: "open", Path: res.Target, Err: err}
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = &IOError{Stage: StageDocument, Op: "close", Path: res.Target, Err: closeErr}
		}
	}()

	if err := g.write(xmlwriter.New(out), p, res.Target); err != nil {
		return res, err
	}
	return res, nil
}

// plan validates and resolves every stage in document order.
func (g *Generator) plan(req Request) (*plan, error) {
	if err := types.FilesystemPath(req.BaseDir).Validate(); err != nil {
		return nil, &ConfigurationError{Stage: StageDocument, Spec: "base directory", Err: err}
	}
	if req.Target == nil {
		return nil, &ConfigurationError{Stage: StageDocument, Spec: "target", Err: errors.New("no target configured")}
	}

	cp := req.Description.Classpath
	mode := req.Mode
	if mode == "" {
		mode = req.Description.EffectiveMode()
	}
	if err := mode.Validate(); err != nil {
		return nil, &ConfigurationError{Stage: StageDocument, Spec: "mode", Err: err}
	}

	variables := slices.Clone(cp.Variables)
	if mode == classpathfile.ModeAspectJ && !cp.HasVariable(AspectJRuntimeVariable) {
		g.log.Debug("adding the AspectJ runtime variable", "variable", AspectJRuntimeVariable)
		variables = append(variables, classpathfile.BinarySpec{
			Path:   AspectJRuntimeVariable,
			Source: AspectJSourceVariable,
		})
	}

	p := &plan{binaries: NewMergeTable()}
	var err error
	if p.container, err = g.resolveContainer(cp.Container, req.DefaultContainer); err != nil {
		return nil, err
	}
	if p.sources, err = g.resolveSources(req, cp.Sources); err != nil {
		return nil, err
	}
	if err := g.mergeBinaries(req, p.binaries, KindVariable, variables); err != nil {
		return nil, err
	}
	if err := g.mergeBinaries(req, p.binaries, KindLibrary, cp.Libraries); err != nil {
		return nil, err
	}
	if p.output, err = g.resolveOutput(req, cp.Output); err != nil {
		return nil, err
	}
	return p, nil
}

func (g *Generator) resolveContainer(spec *classpathfile.ContainerSpec, fallback string) (string, error) {
	if spec == nil {
		if fallback == "" {
			fallback = JREContainer
		}
		g.log.Debug("no container found, a default one added", "container", fallback)
		spec = &classpathfile.ContainerSpec{Path: fallback}
	}
	if err := spec.Validate(); err != nil {
		return "", &ConfigurationError{Stage: StageContainer, Spec: spec.String(), Err: err}
	}

	path, rule := ResolveContainer(spec.Path)
	if path != spec.Path {
		g.log.Debug("prepending the container class name", "container", spec.Path, "rule", rule)
	}
	g.log.Debug("adding container", "path", path)
	return path, nil
}

func (g *Generator) resolveSources(req Request, specs []classpathfile.SourceSpec) ([]sourceEntry, error) {
	if len(specs) == 0 {
		g.log.Debug("no source found, the current directory added")
		specs = []classpathfile.SourceSpec{{}}
	}

	var entries []sourceEntry
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, &ConfigurationError{Stage: StageSource, Spec: spec.String(), Err: err}
		}

		var items []string
		if spec.PathRef != "" {
			resolved, err := resolveRef(req.Resolver, spec.PathRef, pathref.Dirs)
			if err != nil {
				return nil, &ConfigurationError{Stage: StageSource, Spec: spec.String(), Err: err}
			}
			items = resolved
		} else {
			if spec.Path == "" {
				g.log.Debug("using the current directory as a default source path")
			}
			items = []string{spec.Path}
		}

		for _, item := range items {
			path := normalize(item, req.BaseDir)
			g.log.Debug("adding sources", "path", path)
			entries = append(entries, sourceEntry{path: path, excluding: spec.Excluding, output: spec.Output})
		}
	}
	return entries, nil
}

func (g *Generator) mergeBinaries(req Request, table *MergeTable, kind EntryKind, specs []classpathfile.BinarySpec) error {
	label := "library"
	if kind == KindVariable {
		label = "variable"
	}

	for _, spec := range specs {
		if err := spec.Validate(label); err != nil {
			return &ConfigurationError{Stage: StageBinary, Spec: spec.Describe(label), Err: err}
		}

		var items []string
		if spec.PathRef != "" {
			resolved, err := resolveRef(req.Resolver, spec.PathRef, pathref.Files)
			if err != nil {
				return &ConfigurationError{Stage: StageBinary, Spec: spec.Describe(label), Err: err}
			}
			items = resolved
		} else {
			items = splitPathList(spec.Path, req.BaseDir)
		}

		patterns := spec.SourcePattern
		if patterns == "" {
			patterns = req.DefaultSourcePattern
		}

		for _, item := range items {
			path := normalize(item, req.BaseDir)
			source, _ := DiscoverSource(SourceQuery{
				BaseDir:  req.BaseDir,
				Item:     path,
				Patterns: patterns,
				Explicit: spec.Source,
			}, g.log)

			entry := BinaryEntry{
				Kind:            kind,
				Path:            path,
				Exported:        spec.Exported,
				SourcePath:      source,
				JavadocLocation: spec.Javadoc,
			}
			if table.Upsert(entry) {
				g.log.Debug("processing binary dependency", "path", path, "kind", kind)
			} else {
				g.log.Debug("updating binary dependency", "path", path, "kind", kind)
			}
		}
	}
	return nil
}

func (g *Generator) resolveOutput(req Request, spec *classpathfile.OutputSpec) (string, error) {
	if spec == nil {
		g.log.Debug("no output found, the current directory added")
		spec = &classpathfile.OutputSpec{}
	}
	if err := spec.Validate(); err != nil {
		return "", &ConfigurationError{Stage: StageOutput, Spec: spec.String(), Err: err}
	}
	path := normalize(spec.Path, req.BaseDir)
	g.log.Debug("adding output", "path", path)
	return path, nil
}

func (g *Generator) write(w *xmlwriter.Writer, p *plan, name string) error {
	w.WriteXMLDeclaration(encoding)
	w.OpenElement("classpath")

	openEntry(w, "con", p.container)
	w.CloseDegeneratedElement()
	if err := w.Err(); err != nil {
		return &IOError{Stage: StageContainer, Op: "write", Path: name, Err: err}
	}

	for _, s := range p.sources {
		openEntry(w, "src", s.path)
		if s.excluding != "" {
			w.AppendAttribute("excluding", s.excluding)
		}
		if s.output != "" {
			w.AppendAttribute("output", s.output)
		}
		w.CloseDegeneratedElement()
	}
	if err := w.Err(); err != nil {
		return &IOError{Stage: StageSource, Op: "write", Path: name, Err: err}
	}

	for _, e := range p.binaries.Entries() {
		g.log.Debug("adding binary dependency", "path", e.Path, "kind", e.Kind)
		openEntry(w, string(e.Kind), e.Path)
		if e.Exported {
			w.AppendAttribute("exported", "true")
		}
		if e.SourcePath != "" {
			w.AppendAttribute("sourcepath", e.SourcePath)
		}
		if e.JavadocLocation == "" {
			w.CloseDegeneratedElement()
			continue
		}
		w.CloseOpeningTag()
		w.OpenElement("attributes")
		w.OpenOpeningTag("attribute")
		w.AppendAttribute("value", e.JavadocLocation)
		w.AppendAttribute("name", "javadoc_location")
		w.CloseDegeneratedElement()
		w.CloseElement("attributes")
		w.CloseElement("classpathentry")
	}
	if err := w.Err(); err != nil {
		return &IOError{Stage: StageBinary, Op: "write", Path: name, Err: err}
	}

	openEntry(w, "output", p.output)
	w.CloseDegeneratedElement()
	if err := w.Err(); err != nil {
		return &IOError{Stage: StageOutput, Op: "write", Path: name, Err: err}
	}

	w.CloseElement("classpath")
	if err := w.Flush(); err != nil {
		return &IOError{Stage: StageDocument, Op: "write", Path: name, Err: err}
	}
	return nil
}

func openEntry(w *xmlwriter.Writer, kind, path string) {
	w.OpenOpeningTag("classpathentry")
	w.AppendAttribute("kind", kind)
	w.AppendAttribute("path", path)
}

func resolveRef(r pathref.Resolver, name string, kind pathref.Kind) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("%w %q: no resolver configured", pathref.ErrUnknownReference, name)
	}
	return r.Resolve(name, kind)
}

// normalize makes path relative to baseDir and uses "/" separators.
func normalize(path, baseDir string) string {
	return filepath.ToSlash(fspath.StripBase(path, baseDir))
}

// splitPathList splits a literal path list the way a build tool path does:
// on the OS list separator, each relative element resolved against baseDir.
func splitPathList(list, baseDir string) []string {
	var items []string
	for _, item := range filepath.SplitList(list) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		native := filepath.FromSlash(item)
		if !filepath.IsAbs(native) {
			native = filepath.Join(baseDir, native)
		}
		items = append(items, native)
	}
	return items
}

func targetName(t target.Opener) string {
	if s, ok := t.(fmt.Stringer); ok {
		return s.String()
	}
	return target.DefaultFileName
}
