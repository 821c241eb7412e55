package cli

import (
	"errors"
	"go/scanner"
	"os"

	"github.com/roach88/buildergen/internal/compiler"
	"github.com/roach88/buildergen/internal/config"
	"github.com/roach88/buildergen/internal/generate"
	"github.com/roach88/buildergen/internal/render"
	"github.com/roach88/buildergen/internal/source"
)

// Error codes. E1xx codes for records come from compiler.Reason.Code.
const (
	ErrCodeGeneric       = "E001" // anything unclassified
	ErrCodeNoFiles       = "E003" // inputs hold no Go files
	ErrCodeParseFailed   = "E004" // Go syntax error
	ErrCodeNotFound      = "E005" // path not found
	ErrCodeLoadFailed    = "E006" // go/packages reported errors
	ErrCodeWriteFailed   = "E007" // output or config file not written
	ErrCodeConfigInvalid = "E008" // config unreadable or violates the schema
	ErrCodeLedger        = "E009" // ledger could not be opened, read or written
	ErrCodeUnresolved    = "E010" // a field type's package qualifier matches no import
	ErrCodeTypeNotFound  = "E105" // --type names an undeclared type
)

// ErrorCode classifies err.
func ErrorCode(err error) string {
	var (
		compileErr *compiler.CompileError
		notFound   *source.NotFoundError
		pkgErr     *source.PackageError
		syntaxErr  scanner.ErrorList
		writeErr   *generate.WriteError
		configErr  *config.Error
		ledgerErr  *generate.LedgerError
		unresolved *render.UnresolvedError
	)
	switch {
	case errors.As(err, &compileErr):
		return compileErr.Reason.Code()
	case errors.As(err, &notFound):
		return ErrCodeTypeNotFound
	case errors.As(err, &configErr):
		return ErrCodeConfigInvalid
	case errors.As(err, &ledgerErr):
		return ErrCodeLedger
	case errors.As(err, &unresolved):
		return ErrCodeUnresolved
	case errors.As(err, &writeErr):
		return ErrCodeWriteFailed
	case errors.Is(err, source.ErrNoGoFiles):
		return ErrCodeNoFiles
	case errors.As(err, &syntaxErr):
		return ErrCodeParseFailed
	case errors.As(err, &pkgErr):
		return ErrCodeLoadFailed
	case errors.Is(err, os.ErrNotExist):
		return ErrCodeNotFound
	default:
		return ErrCodeGeneric
	}
}
