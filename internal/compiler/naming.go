package compiler

import (
	"go/token"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Naming controls the names of synthesized declarations.
type Naming struct {
	BuilderSuffix string
	FactoryPrefix string
	Finalize      string
}

// DefaultNaming yields CommandBuilder, NewCommandBuilder and Build.
func DefaultNaming() Naming {
	return Naming{
		BuilderSuffix: "Builder",
		FactoryPrefix: "New",
		Finalize:      "Build",
	}
}

// Builder returns the builder type name for a record.
func (n Naming) Builder(record string) string {
	return record + n.BuilderSuffix
}

// Factory returns the factory function name for a record.
func (n Naming) Factory(record string) string {
	return n.FactoryPrefix + n.Builder(record)
}

// SetterName title-cases the first letter of a field name:
// currentDir becomes CurrentDir.
func SetterName(field string) string {
	// Casers keep state between calls, so each call gets its own.
	return cases.Title(language.Und, cases.NoLower).String(field)
}

// SlotName lowers the leading upper-case run of a field name so that the
// builder's storage never clashes with its setters: Executable becomes
// executable, URLPath becomes urlPath and ID becomes id. Keywords get a
// trailing underscore.
func SlotName(field string) string {
	runes := []rune(field)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	// Keep the last capital of an acronym when a word follows it.
	if n > 1 && n < len(runes) && unicode.IsLower(runes[n]) {
		n--
	}
	name := cases.Lower(language.Und).String(string(runes[:n])) + string(runes[n:])
	if token.IsKeyword(name) {
		name += "_"
	}
	return name
}
