package harness

import (
	"testing"

	"github.com/roach88/buildergen/internal/testutil"
)

// RunWithGolden runs a scenario and, when it sets golden, compares the
// rendered file against testdata/golden/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if scenario.Golden {
		testutil.AssertGolden(t, scenario.Name, result.Output)
	}
	return result, nil
}
