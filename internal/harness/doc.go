// Package harness runs generation scenarios as conformance tests.
//
// A scenario names one Go source file, optional config overrides, and the
// outcome generation must have:
//
//	name: command
//	description: "mandatory and optional fields of a plain struct"
//	source: ../sources/command.go
//	golden: true
//	assertions:
//	  - type: record
//	    record: Command
//	    fields: [executable, args, currentDir]
//	    optional: [currentDir]
//	  - type: output_contains
//	    text: "func (b *CommandBuilder) Build() (Command, error) {"
//
// Source paths are relative to the scenario file. Inline sources go in
// code instead of source.
//
// # Assertion Types
//
//   - record: a record compiled with exactly the listed fields, in order,
//     and exactly the listed optional ones
//   - compile_error: generation failed with the given code, and the message
//     contains the given text
//   - output_contains: the rendered file contains the given text
//   - output_imports: the rendered file imports exactly the given paths
//
// With golden set, the rendered file is also compared against
// testdata/golden/<name>.golden.
package harness
