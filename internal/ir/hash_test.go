package ir

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, err := parser.ParseExpr(src)
	require.NoError(t, err)
	return expr
}

func commandRecord(t *testing.T) *Record {
	return &Record{
		Name: "Command",
		Fields: []RawField{
			{Name: "executable", Type: mustExpr(t, "string")},
			{Name: "args", Type: mustExpr(t, "[]string")},
			{Name: "currentDir", Type: mustExpr(t, "opt.Option[string]")},
		},
	}
}

func TestFingerprintStable(t *testing.T) {
	a, err := Fingerprint("command", []*Record{commandRecord(t)}, "settings")
	require.NoError(t, err)
	b, err := Fingerprint("command", []*Record{commandRecord(t)}, "settings")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestFingerprintIgnoresPositions(t *testing.T) {
	moved := commandRecord(t)
	moved.Pos = token.Position{Filename: "command.go", Line: 40}

	a, err := Fingerprint("command", []*Record{commandRecord(t)}, "s")
	require.NoError(t, err)
	b, err := Fingerprint("command", []*Record{moved}, "s")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFingerprintChangesWithInputs(t *testing.T) {
	base, err := Fingerprint("command", []*Record{commandRecord(t)}, "s")
	require.NoError(t, err)

	changed := commandRecord(t)
	changed.Fields[1].Type = mustExpr(t, "[]int")

	cases := map[string]func() (string, error){
		"field type": func() (string, error) { return Fingerprint("command", []*Record{changed}, "s") },
		"package":    func() (string, error) { return Fingerprint("other", []*Record{commandRecord(t)}, "s") },
		"settings":   func() (string, error) { return Fingerprint("command", []*Record{commandRecord(t)}, "t") },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := fn()
			require.NoError(t, err)
			assert.NotEqual(t, base, got)
		})
	}
}

func TestContentHashDomainSeparated(t *testing.T) {
	data := []byte("package command\n")
	assert.Equal(t, ContentHash(data), ContentHash(data))
	assert.NotEqual(t, ContentHash(data), hashWithDomain(DomainFingerprint, data))
}

func TestSettingsHash(t *testing.T) {
	a, err := SettingsHash(map[string]any{"suffix": "Builder"})
	require.NoError(t, err)
	b, err := SettingsHash(map[string]any{"suffix": "Maker"})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	_, err = SettingsHash(map[string]any{"bad": 1.5})
	assert.Error(t, err)
}
