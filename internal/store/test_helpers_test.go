package store

import (
	"path/filepath"
	"testing"
)

// createTestStore opens a fresh ledger in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRun(id string) Run {
	return Run{
		ID:           id,
		ToolVersion:  "0.1.0",
		IRVersion:    "1",
		ConfigHash:   "config-hash",
		FileCount:    1,
		WrittenCount: 1,
	}
}

func testArtifact(output string) Artifact {
	return Artifact{
		OutputPath:  output,
		SourcePath:  "command.go",
		Fingerprint: "fp-1",
		ContentHash: "content-1",
		Records:     []string{"Command"},
	}
}
