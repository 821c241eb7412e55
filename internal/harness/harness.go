package harness

import (
	"fmt"
	"go/token"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/buildergen/internal/config"
	"github.com/roach88/buildergen/internal/generate"
	"github.com/roach88/buildergen/internal/ir"
	"github.com/roach88/buildergen/internal/render"
	"github.com/roach88/buildergen/internal/source"
	"github.com/roach88/buildergen/internal/synth"
)

// inlineName is the file name inline sources are parsed under.
const inlineName = "scenario.go"

// Run generates for the scenario's source in memory and evaluates its
// assertions. Nothing is written to disk.
//
// Generation failures are part of the result, not a returned error; Run
// only fails when the scenario itself cannot be set up.
func Run(scenario *Scenario) (*Result, error) {
	cfg, err := scenarioConfig(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario config: %w", err)
	}

	file, err := parseSource(scenario, generate.Selection(cfg, scenario.Types))
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	result := NewResult()
	result.Output, result.Err = generateFile(cfg, file, result)

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// scenarioConfig applies the scenario's overrides through the same schema
// a config file goes through.
func scenarioConfig(s *Scenario) (*config.Config, error) {
	if len(s.Config) == 0 {
		return config.Default(), nil
	}
	data, err := yaml.Marshal(s.Config)
	if err != nil {
		return nil, err
	}
	return config.Parse(s.Name+".yaml", data)
}

func parseSource(s *Scenario, sel source.Selection) (*ir.SourceFile, error) {
	fset := token.NewFileSet()
	path, src := s.Source, any(nil)
	if s.Code != "" {
		path, src = inlineName, s.Code
	}

	file, err := source.ParseFile(fset, path, src, sel)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, fmt.Errorf("%s is a generated file", filepath.Base(path))
	}
	if err := sel.Check([]*ir.SourceFile{file}); err != nil {
		return nil, err
	}
	return file, nil
}

// generateFile compiles, synthesizes and renders file, recording each
// compiled record in result.
func generateFile(cfg *config.Config, file *ir.SourceFile, result *Result) ([]byte, error) {
	descs, err := generate.CompileFile(cfg, file)
	if err != nil {
		return nil, err
	}

	ropts := generate.RenderOptions(cfg, file)
	artifacts := make([]*ir.Artifact, 0, len(descs))
	for _, d := range descs {
		result.Records = append(result.Records, summarize(d))
		artifacts = append(artifacts, synth.Synthesize(d, synth.Options{Runtime: ropts.Runtime}))
	}
	if len(artifacts) == 0 {
		return nil, nil
	}
	return render.File(file, artifacts, ropts)
}

func summarize(d *ir.Descriptor) RecordSummary {
	s := RecordSummary{
		Name:     d.Record.Name,
		Builder:  d.Builder,
		Fields:   []string{},
		Optional: []string{},
	}
	for _, f := range d.Fields {
		s.Fields = append(s.Fields, f.Name)
		if f.Optional {
			s.Optional = append(s.Optional, f.Name)
		}
	}
	return s
}
