// Package ir defines the descriptors that flow through the builder generator.
//
// Records come in from the source frontend as go/ast declarations, are
// normalised into Record and Field descriptors by the compiler, and leave the
// synthesizer as an Artifact of go/ast declarations. ir imports nothing
// internal, so every other package can depend on it.
//
// Type expressions are kept as ast.Expr exactly as written in the source.
// TypeString renders them for fingerprints and diagnostics.
package ir
