package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWritesCompanion(t *testing.T) {
	dir, cfg := workspace(t)
	src := writeGo(t, dir, "command.go", commandSrc)

	out, _, err := execute(t, "--config", cfg, "generate", src)
	require.NoError(t, err)
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "(Command)")

	data, err := os.ReadFile(filepath.Join(dir, "command_builder.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "func (b *CommandBuilder) Build() (Command, error) {")
}

func TestGenerateWithLedger(t *testing.T) {
	dir, cfg := workspace(t)
	src := writeGo(t, dir, "command.go", commandSrc)
	db := filepath.Join(dir, "ledger.db")

	_, _, err := execute(t, "--config", cfg, "generate", "--cache", db, src)
	require.NoError(t, err)

	out, _, err := execute(t, "--config", cfg, "generate", "--cache", db, src)
	require.NoError(t, err)
	assert.Contains(t, out, "unchanged")

	out, _, err = execute(t, "--format", "json", "history", "--cache", db, "--files")
	require.NoError(t, err)

	var resp struct {
		Status string    `json:"status"`
		Data   []RunJSON `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, int64(2), resp.Data[0].Seq)
	assert.Equal(t, 1, resp.Data[0].Unchanged)
	assert.Equal(t, 1, resp.Data[1].Written)
	require.Len(t, resp.Data[0].Artifacts, 1)
	assert.Equal(t, []string{"Command"}, resp.Data[0].Artifacts[0].Records)
}

func TestGenerateDryRunPrint(t *testing.T) {
	dir, cfg := workspace(t)
	src := writeGo(t, dir, "command.go", commandSrc)

	out, errOut, err := execute(t, "--config", cfg, "generate", "--dry-run", "--print", src)
	require.NoError(t, err)
	assert.Contains(t, out, "would be written")
	assert.Contains(t, errOut, "type CommandBuilder struct")

	_, err = os.Stat(filepath.Join(dir, "command_builder.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateCompileFailure(t *testing.T) {
	dir, cfg := workspace(t)
	bad := writeGo(t, dir, "names.go", notStructSrc)

	out, _, err := execute(t, "--config", cfg, "generate", bad)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E101")
	assert.Contains(t, out, "only structs are supported")
}

func TestGenerateCompileFailureJSON(t *testing.T) {
	dir, cfg := workspace(t)
	bad := writeGo(t, dir, "names.go", notStructSrc)
	good := writeGo(t, dir, "command.go", commandSrc)

	out, _, err := execute(t, "--config", cfg, "--format", "json", "generate", bad, good)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "E101", resp.Error.Code)

	_, err = os.Stat(filepath.Join(dir, "command_builder.go"))
	assert.NoError(t, err, "the valid file is still generated")
}

func TestGenerateTypeNotFound(t *testing.T) {
	dir, cfg := workspace(t)
	src := writeGo(t, dir, "command.go", commandSrc)

	out, _, err := execute(t, "--config", cfg, "generate", "--type", "Missing", src)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E105")
	assert.Contains(t, out, "type Missing not found")
}

func TestGenerateParseError(t *testing.T) {
	dir, cfg := workspace(t)
	src := writeGo(t, dir, "bad.go", "package p\n\ntype struct {")

	out, _, err := execute(t, "--config", cfg, "generate", src)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E004")
}

func TestGenerateInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, ".buildergen.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("finalize_name: build\n"), 0o644))
	src := writeGo(t, dir, "command.go", commandSrc)

	out, _, err := execute(t, "--config", cfg, "generate", src)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E008")
}
