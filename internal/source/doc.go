// Package source finds the record declarations to generate builders for.
//
// Files are read with go/parser, packages with golang.org/x/tools/go/packages.
// Either way the result is an ir.SourceFile per input file, carrying the
// file's imports and the type declarations picked by a Selection.
// Generated files are skipped, so a package's own *_builder.go companions
// never feed back into generation.
package source
