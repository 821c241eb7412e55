package cli

import (
	"errors"
	"fmt"
	"go/scanner"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/buildergen/internal/compiler"
	"github.com/roach88/buildergen/internal/config"
	"github.com/roach88/buildergen/internal/generate"
	"github.com/roach88/buildergen/internal/render"
	"github.com/roach88/buildergen/internal/source"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"compile", &compiler.CompileError{Reason: compiler.ReasonNestedOptional}, "E104"},
		{"wrapped compile", fmt.Errorf("file: %w", &compiler.CompileError{Reason: compiler.ReasonNotARecord}), "E101"},
		{"type not found", &source.NotFoundError{Type: "X"}, ErrCodeTypeNotFound},
		{"no files", source.ErrNoGoFiles, ErrCodeNoFiles},
		{"syntax", fmt.Errorf("parse a.go: %w", scanner.ErrorList{}), ErrCodeParseFailed},
		{"package", &source.PackageError{Package: "p"}, ErrCodeLoadFailed},
		{"missing path", fmt.Errorf("parse: %w", &fs.PathError{Op: "open", Path: "x.go", Err: fs.ErrNotExist}), ErrCodeNotFound},
		{"write", &generate.WriteError{Path: "x", Err: errors.New("denied")}, ErrCodeWriteFailed},
		{"config", &config.Error{Message: "bad"}, ErrCodeConfigInvalid},
		{"ledger", &generate.LedgerError{Err: errors.New("locked")}, ErrCodeLedger},
		{"unresolved import", fmt.Errorf("render: %w", &render.UnresolvedError{File: "a.go", Qualifier: "lru"}), ErrCodeUnresolved},
		{"other", errors.New("boom"), ErrCodeGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}
