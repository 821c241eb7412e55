// Package render prints synthesized builders as Go source.
//
// Declarations are printed one at a time with go/format and assembled into
// a file with a generated-code header, a package clause and the imports the
// declarations need. The assembled file goes through
// golang.org/x/tools/imports in format-only mode, so imports are grouped
// and sorted the way goimports would leave them.
package render
