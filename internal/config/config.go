// Package config loads buildergen settings.
//
// Settings come from .buildergen.yaml, .buildergen.yml or .buildergen.cue.
// Either format is unified with the embedded CUE schema, which fills in
// defaults and rejects invalid values before anything is decoded.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/format"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSrc []byte

// FileNames are the config files Discover looks for, in order.
var FileNames = []string{".buildergen.yaml", ".buildergen.yml", ".buildergen.cue"}

// Config holds generation settings.
type Config struct {
	BuilderSuffix string    `yaml:"builder_suffix" json:"builder_suffix"`
	FactoryPrefix string    `yaml:"factory_prefix" json:"factory_prefix"`
	FinalizeName  string    `yaml:"finalize_name" json:"finalize_name"`
	OutputSuffix  string    `yaml:"output_suffix" json:"output_suffix"`
	Directive     string    `yaml:"directive" json:"directive"`
	Runtime       Runtime   `yaml:"runtime" json:"runtime"`
	Wrappers      []Wrapper `yaml:"wrappers,omitempty" json:"wrappers,omitempty"`
}

// Runtime names the package generated code imports for Option.
type Runtime struct {
	Path string `yaml:"path" json:"path"`
	Name string `yaml:"name" json:"name"`
}

// Wrapper is an additional generic type treated as an optional wrapper.
type Wrapper struct {
	Qualifier string `yaml:"qualifier,omitempty" json:"qualifier,omitempty"`
	Name      string `yaml:"name" json:"name"`
}

// Error reports a config file that could not be read or does not satisfy
// the schema.
type Error struct {
	File    string
	Field   string // dotted path into the document, if known
	Message string
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.File != "" {
		sb.WriteString(e.File + ": ")
	}
	if e.Field != "" {
		sb.WriteString(e.Field + ": ")
	}
	sb.WriteString(e.Message)
	return sb.String()
}

// Default returns the schema defaults.
func Default() *Config {
	cfg, err := decode(cuecontext.New(), "", func(ctx *cue.Context) cue.Value {
		return ctx.CompileString("{}")
	})
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema: %v", err))
	}
	return cfg
}

// Load reads a YAML or CUE config file, chosen by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{File: path, Message: err.Error()}
	}
	return Parse(path, data)
}

// Parse is Load for in-memory content; path only selects the format and
// labels errors.
func Parse(path string, data []byte) (*Config, error) {
	ctx := cuecontext.New()

	switch filepath.Ext(path) {
	case ".cue":
		return decode(ctx, path, func(ctx *cue.Context) cue.Value {
			return ctx.CompileBytes(data, cue.Filename(path))
		})
	case ".yaml", ".yml":
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &Error{File: path, Message: err.Error()}
		}
		if doc == nil {
			doc = map[string]any{}
		}
		return decode(ctx, path, func(ctx *cue.Context) cue.Value {
			return ctx.Encode(doc)
		})
	default:
		return nil, &Error{File: path, Message: "unsupported config format, want .yaml, .yml or .cue"}
	}
}

// decode unifies a document with #Config, checks the result is concrete and
// decodes it.
func decode(ctx *cue.Context, path string, build func(*cue.Context) cue.Value) (*Config, error) {
	schema := ctx.CompileBytes(schemaSrc, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fromCUE(path, err)
	}

	doc := build(ctx)
	if err := doc.Err(); err != nil {
		return nil, fromCUE(path, err)
	}

	v := schema.LookupPath(cue.ParsePath("#Config")).Unify(doc)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fromCUE(path, err)
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return nil, fromCUE(path, err)
	}
	return &cfg, nil
}

// fromCUE keeps the first error of a CUE error list.
func fromCUE(path string, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &Error{File: path, Message: err.Error()}
	}
	first := errs[0]
	msg, args := first.Msg()
	return &Error{
		File:    path,
		Field:   strings.Join(first.Path(), "."),
		Message: fmt.Sprintf(msg, args...),
	}
}

// Discover looks for a config file in dir and its parents, stopping after
// the first directory holding a go.mod. It returns "" when there is none.
func Discover(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range FileNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p, nil
			}
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Write stores cfg at path, as CUE when path ends in .cue and YAML
// otherwise. Existing files are not overwritten.
func Write(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if filepath.Ext(path) == ".cue" {
		data, err = marshalCUE(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// marshalCUE prints cfg as top-level CUE fields, without enclosing braces.
func marshalCUE(cfg *Config) ([]byte, error) {
	c := *cfg
	if c.Wrappers == nil {
		c.Wrappers = []Wrapper{}
	}
	v := cuecontext.New().Encode(c)
	if err := v.Err(); err != nil {
		return nil, err
	}
	node := v.Syntax(cue.Concrete(true))
	if lit, ok := node.(*ast.StructLit); ok {
		node = &ast.File{Decls: lit.Elts}
	}
	return format.Node(node)
}
