// SPDX-License-Identifier: MPL-2.0

package classpath

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eclasspath/eclasspath/internal/pathref"
	"github.com/eclasspath/eclasspath/pkg/classpathfile"
)

var errDisk = errors.New("disk on fire")

type (
	memTarget struct {
		buf       bytes.Buffer
		created   int
		closed    int
		createErr error
		writeErr  error
		closeErr  error
	}

	memHandle struct{ t *memTarget }

	fixedFreshness struct {
		upToDate bool
		err      error
	}
)

func (m *memTarget) Create() (io.WriteCloser, error) {
	m.created++
	if m.createErr != nil {
		return nil, m.createErr
	}
	return memHandle{m}, nil
}

func (m *memTarget) String() string { return "mem/.classpath" }

func (h memHandle) Write(p []byte) (int, error) {
	if h.t.writeErr != nil {
		return 0, h.t.writeErr
	}
	return h.t.buf.Write(p)
}

func (h memHandle) Close() error {
	h.t.closed++
	return h.t.closeErr
}

func (f fixedFreshness) UpToDate() (bool, error) { return f.upToDate, f.err }

func generate(t *testing.T, req Request) (Result, *memTarget, error) {
	t.Helper()
	out := &memTarget{}
	if req.Target == nil {
		req.Target = out
	} else if m, ok := req.Target.(*memTarget); ok {
		out = m
	}
	if req.BaseDir == "" {
		req.BaseDir = t.TempDir()
	}
	res, err := NewGenerator(nil).Generate(context.Background(), req)
	return res, out, err
}

func TestGenerate_Document(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	desc := &classpathfile.Description{Classpath: &classpathfile.Classpath{
		Container: &classpathfile.ContainerSpec{Path: "1.5"},
		Sources: []classpathfile.SourceSpec{
			{Path: "src", Excluding: "**/*.txt", Output: "build/src"},
			{PathRef: "gen"},
		},
		Variables: []classpathfile.BinarySpec{{Path: "M2_REPO/x/x.jar", Exported: true}},
		Libraries: []classpathfile.BinarySpec{
			{Path: "lib/a.jar", Javadoc: "http://example.com/api"},
			{PathRef: "deps", Exported: true},
			{Path: "lib/b.jar", Source: "lib/b-src.zip"},
		},
		Output: &classpathfile.OutputSpec{Path: "bin"},
	}}
	resolver := pathref.Static{
		"gen":  {filepath.Join(dir, "gen", "a"), filepath.Join(dir, "gen", "b")},
		"deps": {filepath.Join(dir, "lib", "a.jar"), filepath.Join(dir, "lib", "c.jar")},
	}

	res, out, err := generate(t, Request{Description: desc, BaseDir: dir, Resolver: resolver})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := `<?xml version="1.0" encoding="UTF-8"?>
<classpath>
	<classpathentry kind="con" path="org.eclipse.jdt.launching.JRE_CONTAINER/org.eclipse.jdt.internal.debug.ui.launcher.StandardVMType/1.5" />
	<classpathentry kind="src" path="src" excluding="**/*.txt" output="build/src" />
	<classpathentry kind="src" path="gen/a" />
	<classpathentry kind="src" path="gen/b" />
	<classpathentry kind="var" path="M2_REPO/x/x.jar" exported="true" />
	<classpathentry kind="lib" path="lib/a.jar" exported="true" />
	<classpathentry kind="lib" path="lib/c.jar" exported="true" />
	<classpathentry kind="lib" path="lib/b.jar" sourcepath="lib/b-src.zip" />
	<classpathentry kind="output" path="bin" />
</classpath>
`
	if got := out.buf.String(); got != want {
		t.Errorf("document mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
	if out.closed != 1 {
		t.Errorf("target closed %d times, want 1", out.closed)
	}

	wantRes := Result{
		Target:    "mem/.classpath",
		Container: StandardVMContainer + "1.5",
		Sources:   3,
		Libraries: 3,
		Variables: 1,
	}
	if res != wantRes {
		t.Errorf("Result = %+v, want %+v", res, wantRes)
	}
}

func TestGenerate_GlobReferences(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir,
		"modules/a/src/A.java",
		"modules/b/src/B.java",
		"modules/c/src",
		"modules/a/lib/a.jar",
		"modules/b/lib/b.jar",
	)

	desc := &classpathfile.Description{
		PathRefs: map[string]classpathfile.PathRef{
			"srcs": {Include: []string{"modules/*/src"}},
			"jars": {Dir: "modules", Include: []string{"**/*.jar"}},
		},
		Classpath: &classpathfile.Classpath{
			Sources:   []classpathfile.SourceSpec{{PathRef: "srcs"}},
			Libraries: []classpathfile.BinarySpec{{PathRef: "jars"}},
		},
	}
	resolver := pathref.NewGlobResolver(dir, desc.PathRefs)

	res, out, err := generate(t, Request{Description: desc, BaseDir: dir, Resolver: resolver})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	doc := out.buf.String()
	for _, want := range []string{
		`<classpathentry kind="src" path="modules/a/src" />`,
		`<classpathentry kind="src" path="modules/b/src" />`,
		`<classpathentry kind="lib" path="modules/a/lib/a.jar" />`,
		`<classpathentry kind="lib" path="modules/b/lib/b.jar" />`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document lacks %s\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "modules/c/src") {
		t.Errorf("a regular file was emitted as a source folder:\n%s", doc)
	}
	if res.Sources != 2 || res.Libraries != 2 {
		t.Errorf("Result = %+v, want 2 sources and 2 libraries", res)
	}
}

func TestGenerate_Defaults(t *testing.T) {
	t.Parallel()

	desc := &classpathfile.Description{Classpath: &classpathfile.Classpath{}}
	_, out, err := generate(t, Request{Description: desc})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := `<?xml version="1.0" encoding="UTF-8"?>
<classpath>
	<classpathentry kind="con" path="org.eclipse.jdt.launching.JRE_CONTAINER" />
	<classpathentry kind="src" path="" />
	<classpathentry kind="output" path="" />
</classpath>
`
	if got := out.buf.String(); got != want {
		t.Errorf("document mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerate_DefaultContainerOverride(t *testing.T) {
	t.Parallel()

	desc := &classpathfile.Description{Classpath: &classpathfile.Classpath{}}
	res, out, err := generate(t, Request{Description: desc, DefaultContainer: "21"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Container != StandardVMContainer+"21" {
		t.Errorf("Container = %q", res.Container)
	}
	if !strings.Contains(out.buf.String(), `path="`+StandardVMContainer+`21"`) {
		t.Errorf("document lacks the expanded default container:\n%s", out.buf.String())
	}
}

func TestGenerate_SourceDiscovery(t *testing.T) {
	t.Parallel()

	for _, pattern := range []string{"source", "src"} {
		t.Run(pattern, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFiles(t, dir, "lib/dist/someLibrary.jar", "lib/dist/someLibrary-"+pattern+".jar")

			desc := &classpathfile.Description{Classpath: &classpathfile.Classpath{
				Libraries: []classpathfile.BinarySpec{{Path: "lib/dist/someLibrary.jar", SourcePattern: pattern}},
			}}
			_, out, err := generate(t, Request{Description: desc, BaseDir: dir})
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			want := `<classpathentry kind="lib" path="lib/dist/someLibrary.jar" sourcepath="lib/dist/someLibrary-` + pattern + `.jar" />`
			if !strings.Contains(out.buf.String(), want) {
				t.Errorf("document lacks %s\n%s", want, out.buf.String())
			}
		})
	}
}

func TestGenerate_DefaultSourcePattern(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "lib/a-sources.jar", "lib/b-src.jar")

	desc := &classpathfile.Description{Classpath: &classpathfile.Classpath{
		Libraries: []classpathfile.BinarySpec{
			{Path: "lib/a.jar"},
			{Path: "lib/b.jar", SourcePattern: "src"},
		},
	}}
	_, out, err := generate(t, Request{Description: desc, BaseDir: dir, DefaultSourcePattern: "sources"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	doc := out.buf.String()
	for _, want := range []string{
		`path="lib/a.jar" sourcepath="lib/a-sources.jar"`,
		`path="lib/b.jar" sourcepath="lib/b-src.jar"`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document lacks %s\n%s", want, doc)
		}
	}
}

func TestGenerate_Javadoc(t *testing.T) {
	t.Parallel()

	desc := &classpathfile.Description{Classpath: &classpathfile.Classpath{
		Libraries: []classpathfile.BinarySpec{{Path: "lib/a.jar", Javadoc: "http://example.com/api?a=1&b=2"}},
	}}
	_, out, err := generate(t, Request{Description: desc})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := `	<classpathentry kind="lib" path="lib/a.jar">
		<attributes>
			<attribute value="http://example.com/api?a=1&amp;b=2" name="javadoc_location" />
		</attributes>
	</classpathentry>
`
	if !strings.Contains(out.buf.String(), want) {
		t.Errorf("document lacks the javadoc attribute block\n%s", out.buf.String())
	}
}

func TestGenerate_AspectJ(t *testing.T) {
	t.Parallel()

	const runtimeEntry = `<classpathentry kind="var" path="ASPECTJRT_LIB" sourcepath="ASPECTJRT_SRC" />`

	t.Run("synthesized", func(t *testing.T) {
		t.Parallel()

		desc := &classpathfile.Description{
			Mode: classpathfile.ModeAspectJ,
			Classpath: &classpathfile.Classpath{
				Variables: []classpathfile.BinarySpec{{Path: "M2_REPO/a.jar"}},
			},
		}
		res, out, err := generate(t, Request{Description: desc})
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if n := strings.Count(out.buf.String(), runtimeEntry); n != 1 {
			t.Errorf("runtime variable emitted %d times, want 1\n%s", n, out.buf.String())
		}
		if res.Variables != 2 {
			t.Errorf("Variables = %d, want 2", res.Variables)
		}
		if len(desc.Classpath.Variables) != 1 {
			t.Errorf("description variables mutated: %+v", desc.Classpath.Variables)
		}
	})

	t.Run("declared", func(t *testing.T) {
		t.Parallel()

		desc := &classpathfile.Description{
			Mode: classpathfile.ModeAspectJ,
			Classpath: &classpathfile.Classpath{
				Variables: []classpathfile.BinarySpec{{Path: AspectJRuntimeVariable, Exported: true}},
			},
		}
		res, out, err := generate(t, Request{Description: desc})
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if strings.Contains(out.buf.String(), runtimeEntry) {
			t.Errorf("declared runtime variable was replaced\n%s", out.buf.String())
		}
		if n := strings.Count(out.buf.String(), `path="ASPECTJRT_LIB"`); n != 1 {
			t.Errorf("runtime variable emitted %d times, want 1", n)
		}
		if res.Variables != 1 {
			t.Errorf("Variables = %d, want 1", res.Variables)
		}
	})

	t.Run("mode override", func(t *testing.T) {
		t.Parallel()

		desc := &classpathfile.Description{Classpath: &classpathfile.Classpath{}}
		_, out, err := generate(t, Request{Description: desc, Mode: classpathfile.ModeAspectJ})
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if !strings.Contains(out.buf.String(), runtimeEntry) {
			t.Errorf("mode override did not add the runtime variable\n%s", out.buf.String())
		}
	})

	t.Run("normal", func(t *testing.T) {
		t.Parallel()

		desc := &classpathfile.Description{Classpath: &classpathfile.Classpath{}}
		_, out, err := generate(t, Request{Description: desc})
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if strings.Contains(out.buf.String(), AspectJRuntimeVariable) {
			t.Errorf("normal mode added the runtime variable\n%s", out.buf.String())
		}
	})
}

func TestGenerate_Skipped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  Request
		want SkipReason
	}{
		{
			name: "up to date",
			req: Request{
				Description: &classpathfile.Description{Classpath: &classpathfile.Classpath{}},
				Freshness:   fixedFreshness{upToDate: true},
			},
			want: SkipUpToDate,
		},
		{
			name: "no classpath",
			req:  Request{Description: &classpathfile.Description{}},
			want: SkipNoClasspath,
		},
		{
			name: "no description",
			req:  Request{},
			want: SkipNoClasspath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, out, err := generate(t, tt.req)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if res.Skipped != tt.want {
				t.Errorf("Skipped = %q, want %q", res.Skipped, tt.want)
			}
			if out.created != 0 {
				t.Errorf("target created %d times, want 0", out.created)
			}
		})
	}
}

func TestGenerate_ConfigurationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		classpath *classpathfile.Classpath
		mode      classpathfile.Mode
		stage     Stage
		sentinel  error
	}{
		{
			name:      "blank container",
			classpath: &classpathfile.Classpath{Container: &classpathfile.ContainerSpec{Path: " "}},
			stage:     StageContainer,
			sentinel:  classpathfile.ErrInvalidContainerSpec,
		},
		{
			name:      "source path and pathref",
			classpath: &classpathfile.Classpath{Sources: []classpathfile.SourceSpec{{Path: "src", PathRef: "gen"}}},
			stage:     StageSource,
			sentinel:  classpathfile.ErrInvalidSourceSpec,
		},
		{
			name:      "unknown source pathref",
			classpath: &classpathfile.Classpath{Sources: []classpathfile.SourceSpec{{PathRef: "missing"}}},
			stage:     StageSource,
			sentinel:  pathref.ErrUnknownReference,
		},
		{
			name:      "library without path",
			classpath: &classpathfile.Classpath{Libraries: []classpathfile.BinarySpec{{Exported: true}}},
			stage:     StageBinary,
			sentinel:  classpathfile.ErrInvalidBinarySpec,
		},
		{
			name:      "variable without path",
			classpath: &classpathfile.Classpath{Variables: []classpathfile.BinarySpec{{Source: "X_SRC"}}},
			stage:     StageBinary,
			sentinel:  classpathfile.ErrInvalidBinarySpec,
		},
		{
			name:      "blank output",
			classpath: &classpathfile.Classpath{Output: &classpathfile.OutputSpec{Path: "  "}},
			stage:     StageOutput,
			sentinel:  classpathfile.ErrInvalidOutputSpec,
		},
		{
			name:      "unknown mode",
			classpath: &classpathfile.Classpath{},
			mode:      "weaving",
			stage:     StageDocument,
			sentinel:  classpathfile.ErrInvalidMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			desc := &classpathfile.Description{Mode: tt.mode, Classpath: tt.classpath}
			_, out, err := generate(t, Request{Description: desc, Resolver: pathref.Static{}})
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("Generate() error = %v, want ErrConfiguration", err)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("Generate() error = %v, want %v", err, tt.sentinel)
			}

			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Generate() error type = %T, want *ConfigurationError", err)
			}
			if cfgErr.Stage != tt.stage {
				t.Errorf("Stage = %q, want %q", cfgErr.Stage, tt.stage)
			}
			if cfgErr.Spec == "" {
				t.Error("ConfigurationError carries no spec description")
			}
			if out.created != 0 {
				t.Errorf("target created %d times before validation finished", out.created)
			}
		})
	}
}

func TestGenerate_BlankBaseDir(t *testing.T) {
	t.Parallel()

	desc := &classpathfile.Description{Classpath: &classpathfile.Classpath{}}
	_, _, err := generate(t, Request{Description: desc, BaseDir: "   "})

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Stage != StageDocument {
		t.Errorf("Generate() error = %v, want document stage ConfigurationError", err)
	}
}

func TestGenerate_IOErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		target     *memTarget
		freshness  fixedFreshness
		op         string
		wantClosed int
	}{
		{"open", &memTarget{createErr: errDisk}, fixedFreshness{}, "open", 0},
		{"write", &memTarget{writeErr: errDisk}, fixedFreshness{}, "write", 1},
		{"close", &memTarget{closeErr: errDisk}, fixedFreshness{}, "close", 1},
		{"freshness", &memTarget{}, fixedFreshness{err: errDisk}, "check", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			desc := &classpathfile.Description{Classpath: &classpathfile.Classpath{}}
			_, out, err := generate(t, Request{Description: desc, Target: tt.target, Freshness: tt.freshness})
			if !errors.Is(err, ErrIO) || !errors.Is(err, errDisk) {
				t.Fatalf("Generate() error = %v, want ErrIO wrapping errDisk", err)
			}

			var ioErr *IOError
			if !errors.As(err, &ioErr) {
				t.Fatalf("Generate() error type = %T, want *IOError", err)
			}
			if ioErr.Op != tt.op || ioErr.Stage != StageDocument {
				t.Errorf("IOError = %s/%s, want %s/%s", ioErr.Stage, ioErr.Op, StageDocument, tt.op)
			}
			if ioErr.Path != "mem/.classpath" {
				t.Errorf("IOError.Path = %q", ioErr.Path)
			}
			if out.closed != tt.wantClosed {
				t.Errorf("target closed %d times, want %d", out.closed, tt.wantClosed)
			}
		})
	}
}

func TestGenerate_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := &memTarget{}
	desc := &classpathfile.Description{Classpath: &classpathfile.Classpath{}}
	_, err := NewGenerator(NopLogger).Generate(ctx, Request{Description: desc, BaseDir: t.TempDir(), Target: out})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
	if out.created != 0 {
		t.Errorf("target created %d times, want 0", out.created)
	}
}
