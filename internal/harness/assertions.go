package harness

import (
	"fmt"
	"go/parser"
	"go/token"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/roach88/buildergen/internal/cli"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion against result and returns the
// messages of those that failed, in order.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertRecord:
		return assertRecord(result, a)
	case AssertCompileError:
		return assertCompileError(result, a)
	case AssertOutputContains:
		return assertOutputContains(result, a)
	case AssertOutputImports:
		return assertOutputImports(result, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertRecord(result *Result, a Assertion) error {
	idx := slices.IndexFunc(result.Records, func(r RecordSummary) bool { return r.Name == a.Record })
	if idx < 0 {
		actual := "no records"
		if result.Err != nil {
			actual = "generation failed: " + result.Err.Error()
		}
		return &AssertionError{Type: AssertRecord, Expected: "record " + a.Record, Actual: actual}
	}
	rec := result.Records[idx]

	if a.Fields != nil && !slices.Equal(rec.Fields, a.Fields) {
		return &AssertionError{
			Type:     AssertRecord,
			Expected: fmt.Sprintf("%s fields %v", a.Record, a.Fields),
			Actual:   fmt.Sprint(rec.Fields),
		}
	}
	want := a.Optional
	if want == nil {
		want = []string{}
	}
	if !slices.Equal(rec.Optional, want) {
		return &AssertionError{
			Type:     AssertRecord,
			Expected: fmt.Sprintf("%s optional fields %v", a.Record, want),
			Actual:   fmt.Sprint(rec.Optional),
		}
	}
	return nil
}

func assertCompileError(result *Result, a Assertion) error {
	if result.Err == nil {
		return &AssertionError{Type: AssertCompileError, Expected: "error " + a.Code, Actual: "generation succeeded"}
	}
	if code := cli.ErrorCode(result.Err); code != a.Code {
		return &AssertionError{Type: AssertCompileError, Expected: "error " + a.Code, Actual: code + ": " + result.Err.Error()}
	}
	if !strings.Contains(result.Err.Error(), a.Text) {
		return &AssertionError{
			Type:     AssertCompileError,
			Expected: fmt.Sprintf("message containing %q", a.Text),
			Actual:   result.Err.Error(),
		}
	}
	return nil
}

func assertOutputContains(result *Result, a Assertion) error {
	if !strings.Contains(string(result.Output), a.Text) {
		return &AssertionError{
			Type:     AssertOutputContains,
			Expected: fmt.Sprintf("output containing %q", a.Text),
			Actual:   string(result.Output),
		}
	}
	return nil
}

func assertOutputImports(result *Result, a Assertion) error {
	got, err := outputImports(result.Output)
	if err != nil {
		return &AssertionError{Type: AssertOutputImports, Expected: "parseable output", Actual: err.Error()}
	}
	want := slices.Clone(a.Imports)
	sort.Strings(want)
	if !slices.Equal(got, want) {
		return &AssertionError{
			Type:     AssertOutputImports,
			Expected: fmt.Sprint(want),
			Actual:   fmt.Sprint(got),
		}
	}
	return nil
}

// outputImports returns the sorted import paths of a rendered file.
func outputImports(out []byte) ([]string, error) {
	if len(out) == 0 {
		return nil, fmt.Errorf("no output")
	}
	f, err := parser.ParseFile(token.NewFileSet(), "", out, parser.ImportsOnly)
	if err != nil {
		return nil, err
	}
	paths := []string{}
	for _, imp := range f.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}
