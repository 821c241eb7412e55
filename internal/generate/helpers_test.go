package generate

import (
	"go/token"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/buildergen/internal/config"
	"github.com/roach88/buildergen/internal/ir"
	"github.com/roach88/buildergen/internal/source"
	"github.com/roach88/buildergen/internal/store"
)

const commandSrc = `package command

import "github.com/roach88/buildergen/pkg/opt"

//buildergen:builder
type Command struct {
	executable string
	args       []string
	currentDir opt.Option[string]
}
`

const embeddedSrc = `package command

import "io"

//buildergen:builder
type Broken struct {
	io.Reader
	name string
}
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeSource writes src into dir and parses it with the default selection.
func writeSource(t *testing.T, dir, name, src string) *ir.SourceFile {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	sf, err := source.ParseFile(token.NewFileSet(), path, nil, Selection(config.Default(), nil))
	require.NoError(t, err)
	require.NotNil(t, sf)
	return sf
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
