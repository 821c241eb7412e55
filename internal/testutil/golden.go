// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenDir is where golden files live, relative to the package under test.
const GoldenDir = "testdata/golden"

// Golden returns a goldie instance reading testdata/golden/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/render -update
func Golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
}

// AssertGolden compares got against testdata/golden/<name>.golden.
func AssertGolden(t *testing.T, name string, got []byte) {
	t.Helper()
	Golden(t).Assert(t, name, got)
}
