package generate

import (
	"github.com/roach88/buildergen/internal/compiler"
	"github.com/roach88/buildergen/internal/config"
	"github.com/roach88/buildergen/internal/ir"
	"github.com/roach88/buildergen/internal/render"
	"github.com/roach88/buildergen/internal/source"
)

// Selection returns the source selection for cfg and explicit type names.
func Selection(cfg *config.Config, types []string) source.Selection {
	return source.Selection{Types: types, Directive: cfg.Directive}
}

// RenderOptions resolves the runtime qualifier for one file.
func RenderOptions(cfg *config.Config, file *ir.SourceFile) render.Options {
	return render.Options{
		RuntimePath:  cfg.Runtime.Path,
		Runtime:      render.RuntimeQualifier(file, cfg.Runtime.Path, cfg.Runtime.Name),
		OutputSuffix: cfg.OutputSuffix,
	}
}

// CompileOptions recognises runtime.Option under the file's qualifier plus
// any configured wrappers. Configured wrappers must be aliases of the
// runtime Option, since Build assigns slots to optional fields directly.
func CompileOptions(cfg *config.Config, runtime string) compiler.Options {
	ws := compiler.Wrappers{compiler.NamedWrapper{Qualifier: runtime, Name: "Option"}}
	for _, w := range cfg.Wrappers {
		ws = append(ws, compiler.NamedWrapper{Qualifier: w.Qualifier, Name: w.Name})
	}
	return compiler.Options{
		Wrapper: ws,
		Naming: compiler.Naming{
			BuilderSuffix: cfg.BuilderSuffix,
			FactoryPrefix: cfg.FactoryPrefix,
			Finalize:      cfg.FinalizeName,
		},
	}
}

// ConfigHash identifies the settings that affect generated output.
func ConfigHash(cfg *config.Config) (string, error) {
	wrappers := make([]any, len(cfg.Wrappers))
	for i, w := range cfg.Wrappers {
		wrappers[i] = map[string]any{"qualifier": w.Qualifier, "name": w.Name}
	}
	return ir.SettingsHash(map[string]any{
		"tool_version":   ir.ToolVersion,
		"builder_suffix": cfg.BuilderSuffix,
		"factory_prefix": cfg.FactoryPrefix,
		"finalize_name":  cfg.FinalizeName,
		"output_suffix":  cfg.OutputSuffix,
		"runtime_path":   cfg.Runtime.Path,
		"runtime_name":   cfg.Runtime.Name,
		"wrappers":       wrappers,
	})
}

// fileSettingsHash extends the config hash with the file's imports, which
// decide qualifiers and the import block of the output.
func fileSettingsHash(configHash string, file *ir.SourceFile) (string, error) {
	imports := make([]any, len(file.Imports))
	for i, imp := range file.Imports {
		imports[i] = map[string]any{"name": imp.Name, "path": imp.Path, "package": imp.Package}
	}
	return ir.SettingsHash(map[string]any{
		"config":  configHash,
		"imports": imports,
	})
}

// sourceRuntime is the qualifier the record declarations themselves use for
// the runtime. It can differ from the generated code's when a type parameter
// shadows the file's import.
func sourceRuntime(cfg *config.Config, f *ir.SourceFile) string {
	if name := render.ImportedAs(f, cfg.Runtime.Path); name != "" {
		return name
	}
	return RenderOptions(cfg, f).Runtime
}

// CompileFile compiles every selected record of f, stopping at the first
// error.
func CompileFile(cfg *config.Config, f *ir.SourceFile) ([]*ir.Descriptor, error) {
	copts := CompileOptions(cfg, sourceRuntime(cfg, f))
	descs := make([]*ir.Descriptor, 0, len(f.Specs))
	for _, spec := range f.Specs {
		desc, err := compiler.Compile(spec, f.Position(spec.Pos()), copts)
		if err != nil {
			return nil, err
		}
		descs = append(descs, desc)
	}
	return descs, nil
}
