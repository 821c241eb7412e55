package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/buildergen/internal/config"
)

func TestInitWritesDefaults(t *testing.T) {
	for _, tt := range []struct {
		name string
		args []string
		file string
	}{
		{"yaml", nil, ".buildergen.yaml"},
		{"cue", []string{"--cue"}, ".buildergen.cue"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			args := append([]string{"init", "--dir", dir}, tt.args...)

			out, _, err := execute(t, args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.file)

			cfg, err := config.Load(filepath.Join(dir, tt.file))
			require.NoError(t, err)
			assert.Equal(t, config.Default(), cfg)
		})
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, "init", "--dir", dir)
	require.NoError(t, err)

	out, _, err := execute(t, "init", "--dir", dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "already exists")
}
