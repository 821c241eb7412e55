package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario describes one generation run and its expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Source is the Go file to generate for, relative to the scenario file.
	Source string `yaml:"source,omitempty"`

	// Code is an inline Go file, used instead of Source.
	Code string `yaml:"code,omitempty"`

	// Types selects structs by name instead of by directive.
	Types []string `yaml:"types,omitempty"`

	// Config overrides settings of the default config, using the keys of
	// a .buildergen.yaml file.
	Config map[string]any `yaml:"config,omitempty"`

	// Golden compares the rendered file against testdata/golden/<name>.golden.
	Golden bool `yaml:"golden,omitempty"`

	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates the outcome of a scenario.
type Assertion struct {
	// Type is one of record, compile_error, output_contains, output_imports.
	Type string `yaml:"type"`

	// Record and Fields/Optional are used by record.
	Record   string   `yaml:"record,omitempty"`
	Fields   []string `yaml:"fields,omitempty"`
	Optional []string `yaml:"optional,omitempty"`

	// Code is the expected error code (compile_error).
	Code string `yaml:"code,omitempty"`

	// Text is a substring of the error message (compile_error) or of the
	// rendered file (output_contains).
	Text string `yaml:"text,omitempty"`

	// Imports are the expected import paths (output_imports).
	Imports []string `yaml:"imports,omitempty"`
}

// Assertion type constants.
const (
	AssertRecord         = "record"
	AssertCompileError   = "compile_error"
	AssertOutputContains = "output_contains"
	AssertOutputImports  = "output_imports"
)

// LoadScenario reads and validates a scenario file. Unknown keys are
// rejected, and Source is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Source != "" && !filepath.IsAbs(scenario.Source) {
		scenario.Source = filepath.Join(filepath.Dir(path), scenario.Source)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Source == "" && s.Code == "":
		return fmt.Errorf("one of source or code is required")
	case s.Source != "" && s.Code != "":
		return fmt.Errorf("source and code are mutually exclusive")
	case s.Source != "":
		if _, err := os.Stat(s.Source); os.IsNotExist(err) {
			return fmt.Errorf("source file not found: %s", s.Source)
		}
	}

	if len(s.Assertions) == 0 && !s.Golden {
		return fmt.Errorf("assertions list is required unless golden is set")
	}
	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertRecord:
		if a.Record == "" {
			return fmt.Errorf("assertions[%d]: record is required for record", index)
		}
	case AssertCompileError:
		if a.Code == "" {
			return fmt.Errorf("assertions[%d]: code is required for compile_error", index)
		}
	case AssertOutputContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for output_contains", index)
		}
	case AssertOutputImports:
		// An empty list asserts the output has no imports.
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
