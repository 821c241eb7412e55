package render

import (
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/buildergen/internal/compiler"
	"github.com/roach88/buildergen/internal/ir"
	"github.com/roach88/buildergen/internal/source"
	"github.com/roach88/buildergen/internal/synth"
	"github.com/roach88/buildergen/internal/testutil"
)

const commandSrc = `package command

import "github.com/roach88/buildergen/pkg/opt"

//buildergen:builder
type Command struct {
	executable string
	args       []string
	currentDir opt.Option[string]
}
`

const entrySrc = `package cache

import (
	"fmt"
	"time"

	"github.com/roach88/buildergen/pkg/opt"
)

//buildergen:builder
type Entry[K comparable, V any] struct {
	Key   K
	Value V
	TTL   opt.Option[time.Duration]
}

func (e Entry[K, V]) String() string { return fmt.Sprint(e.Key) }
`

// build runs the whole pipeline for every selected record of src.
func build(t *testing.T, path, src string) (*ir.SourceFile, []*ir.Artifact, Options) {
	t.Helper()
	file, err := source.ParseFile(token.NewFileSet(), path, src, source.Selection{})
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Runtime = RuntimeQualifier(file, opts.RuntimePath, "opt")

	wrapper := ImportedAs(file, opts.RuntimePath)
	if wrapper == "" {
		wrapper = opts.Runtime
	}
	copts := compiler.DefaultOptions()
	copts.Wrapper = compiler.NamedWrapper{Qualifier: wrapper, Name: "Option"}

	var arts []*ir.Artifact
	for _, spec := range file.Specs {
		desc, err := compiler.Compile(spec, file.Position(spec.Pos()), copts)
		require.NoError(t, err)
		arts = append(arts, synth.Synthesize(desc, synth.Options{Runtime: opts.Runtime}))
	}
	return file, arts, opts
}

func TestFileCommand(t *testing.T) {
	file, arts, opts := build(t, "command.go", commandSrc)
	out, err := File(file, arts, opts)
	require.NoError(t, err)
	testutil.AssertGolden(t, "command", out)
}

func TestFileGeneric(t *testing.T) {
	file, arts, opts := build(t, "entry.go", entrySrc)
	out, err := File(file, arts, opts)
	require.NoError(t, err)
	testutil.AssertGolden(t, "entry", out)
}

func TestFileRenamedRuntime(t *testing.T) {
	src := `package job

import (
	"github.com/example/opt"
	o "github.com/roach88/buildergen/pkg/opt"
)

//buildergen:builder
type Job struct {
	Name  string
	Retry o.Option[opt.Policy]
}
`
	file, arts, opts := build(t, "job.go", src)
	assert.Equal(t, "o", opts.Runtime)

	out, err := File(file, arts, opts)
	require.NoError(t, err)
	testutil.AssertGolden(t, "job", out)
}

func TestFileMultipleRecords(t *testing.T) {
	src := `package p

//buildergen:builder
type A struct{ X int }

//buildergen:builder
type B struct{ Y string }
`
	file, arts, opts := build(t, "p.go", src)
	require.Len(t, arts, 2)

	out, err := File(file, arts, opts)
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "type ABuilder struct")
	assert.Contains(t, text, "type BBuilder struct")
	assert.Less(t, strings.Index(text, "type ABuilder"), strings.Index(text, "type BBuilder"))
}

func TestFileVersionedImport(t *testing.T) {
	src := `package deploy

import "example.com/api/core/v1"

//buildergen:builder
type Deploy struct {
	Pod v1.Pod
}
`
	file, arts, opts := build(t, "deploy.go", src)
	out, err := File(file, arts, opts)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "\tv1 \"example.com/api/core/v1\"\n")
	assert.Contains(t, text, "pod opt.Option[v1.Pod]")
}

func TestFileDeclaredPackageName(t *testing.T) {
	src := `package deploy

import "example.com/golang-lru/v2"

//buildergen:builder
type Deploy struct {
	Cache *lru.Cache
}
`
	file, arts, opts := build(t, "deploy.go", src)
	file.Imports[0].Package = "lru"

	out, err := File(file, arts, opts)
	require.NoError(t, err)
	assert.Contains(t, string(out), "\t\"example.com/golang-lru/v2\"\n")
	assert.NotContains(t, string(out), "lru \"example.com")
}

func TestFileUnresolvedImport(t *testing.T) {
	src := `package deploy

import "example.com/golang-lru/v2"

//buildergen:builder
type Deploy struct {
	Cache *lru.Cache
}
`
	file, arts, opts := build(t, "deploy.go", src)
	_, err := File(file, arts, opts)

	var unresolved *UnresolvedError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "lru", unresolved.Qualifier)
	assert.Equal(t, "deploy.go", unresolved.File)
}

func TestFileLocalTypeNamedLikeReceiver(t *testing.T) {
	src := `package p

type b int

//buildergen:builder
type Rec struct {
	X b
}
`
	file, arts, opts := build(t, "rec.go", src)
	out, err := File(file, arts, opts)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "return &RecBuilder{\n\t\tx: opt.None[b](),\n\t}")
	assert.NotContains(t, text, "b :=")
}

func TestFileRuntimeShadowedByTypeParam(t *testing.T) {
	src := `package p

import "github.com/roach88/buildergen/pkg/opt"

//buildergen:builder
type G[opt any] struct {
	X opt
}

//buildergen:builder
type H struct {
	Y opt.Option[int]
}
`
	file, arts, opts := build(t, "p.go", src)
	assert.Equal(t, "opt2", opts.Runtime)

	out, err := File(file, arts, opts)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "opt2 \"github.com/roach88/buildergen/pkg/opt\"")
	assert.Contains(t, text, "x opt2.Option[opt]")
	assert.Contains(t, text, "y opt2.Option[int]")
	// H.Y is still recognized as optional through the file's own import name.
	assert.Contains(t, text, "func (b *HBuilder) Y(value int) *HBuilder")
}

func TestDecls(t *testing.T) {
	_, arts, _ := build(t, "command.go", commandSrc)
	out, err := Decls(arts[0])
	require.NoError(t, err)

	text := string(out)
	assert.NotContains(t, text, "package")
	assert.Contains(t, text, "// CommandBuilder accumulates field values until Build is called.\ntype CommandBuilder struct")
	// Bodies are never collapsed onto the signature line.
	assert.Contains(t, text, "func (b *CommandBuilder) Args(value []string) *CommandBuilder {\n\tb.args = opt.Some(value)\n\treturn b\n}")
	assert.Contains(t, text, "\treturn &CommandBuilder{\n\t\texecutable: opt.None[string](),\n\t\targs:       opt.None[[]string](),\n")
}

func TestOutputPath(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, "command_builder.go", OutputPath("command.go", opts))
	assert.Equal(t, "pkg/x/cmd_builder.go", OutputPath("pkg/x/cmd.go", opts))

	opts.OutputSuffix = ".gen.go"
	assert.Equal(t, "cmd.gen.go", OutputPath("cmd.go", opts))
}

func TestRuntimeQualifier(t *testing.T) {
	tests := []struct {
		name    string
		imports []ir.Import
		want    string
	}{
		{"no imports", nil, "opt"},
		{"imported", []ir.Import{{Path: DefaultRuntimePath}}, "opt"},
		{"renamed", []ir.Import{{Name: "o", Path: DefaultRuntimePath}}, "o"},
		{"taken", []ir.Import{{Path: "github.com/example/opt"}}, "opt2"},
		{"taken twice", []ir.Import{{Path: "a.com/opt"}, {Name: "opt2", Path: "b.com/x"}}, "opt3"},
		{"blank", []ir.Import{{Name: "_", Path: DefaultRuntimePath}}, "opt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := &ir.SourceFile{Imports: tt.imports}
			assert.Equal(t, tt.want, RuntimeQualifier(file, DefaultRuntimePath, "opt"))
		})
	}
}

func TestRuntimeQualifierLocalNames(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"type param", "//buildergen:builder\ntype G[opt any] struct{ X opt }", "opt2"},
		{"local type", "type opt int\n\n//buildergen:builder\ntype R struct{ X []opt }", "opt2"},
		{"field name only", "//buildergen:builder\ntype R struct{ opt int }", "opt"},
		{"qualified", "//buildergen:builder\ntype R struct{ X opt.Duration }", "opt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "package p\n\n" + tt.src + "\n"
			file, err := source.ParseFile(token.NewFileSet(), "p.go", src, source.Selection{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, RuntimeQualifier(file, DefaultRuntimePath, "opt"))
		})
	}
}

func TestRuntimeQualifierShadowedImport(t *testing.T) {
	src := `package p

import "github.com/roach88/buildergen/pkg/opt"

var _ opt.Option[int]

//buildergen:builder
type G[opt any] struct{ X opt }
`
	file, err := source.ParseFile(token.NewFileSet(), "p.go", src, source.Selection{})
	require.NoError(t, err)
	assert.Equal(t, "opt2", RuntimeQualifier(file, DefaultRuntimePath, "opt"))
	assert.Equal(t, "opt", ImportedAs(file, DefaultRuntimePath))
	// Names the generated methods declare are never used for the runtime.
	assert.Equal(t, "value2", RuntimeQualifier(&ir.SourceFile{}, DefaultRuntimePath, "value"))
}

func TestImportBlock(t *testing.T) {
	got := importBlock([]ir.Import{
		{Path: "github.com/roach88/buildergen/pkg/opt"},
		{Path: "time"},
		{Name: "u", Path: "net/url"},
	})
	assert.Equal(t, "import (\n\tu \"net/url\"\n\t\"time\"\n\n\t\"github.com/roach88/buildergen/pkg/opt\"\n)\n", got)

	assert.Equal(t, "import \"github.com/roach88/buildergen/pkg/opt\"\n",
		importBlock([]ir.Import{{Path: "github.com/roach88/buildergen/pkg/opt"}}))
}

func TestIsStd(t *testing.T) {
	assert.True(t, isStd("time"))
	assert.True(t, isStd("net/http"))
	assert.False(t, isStd("github.com/x/y"))
	assert.False(t, isStd("gopkg.in/yaml.v3"))
}
