// Package synth turns a compiled ir.Descriptor into go/ast declarations:
// the builder struct, its factory, one setter per field and the finalize
// method.
//
// The four synthesizers are independent of each other and depend only on
// the descriptor and the runtime package qualifier. Nodes are built without
// positions; render prints them against a fresh file set.
package synth
