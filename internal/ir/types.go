package ir

import (
	"go/ast"
	"go/token"
)

// Record is the normalised declaration of one struct type.
type Record struct {
	Name       string
	TypeParams []TypeParam
	Fields     []RawField
	Pos        token.Position
}

// RawField is a named field exactly as declared.
type RawField struct {
	Name string
	Type ast.Expr
}

// TypeParam is one type parameter of a generic record.
type TypeParam struct {
	Name       string
	Constraint ast.Expr
}

// Generic reports whether the record declares type parameters.
func (r *Record) Generic() bool {
	return len(r.TypeParams) > 0
}

// Field is a classified field.
//
// VisibleType is the inner type when Optional is set and DeclaredType
// otherwise. It is the parameter type of the field's setter.
type Field struct {
	Name         string
	DeclaredType ast.Expr
	Optional     bool
	VisibleType  ast.Expr

	Slot   string // builder storage field
	Setter string // setter method
}

// BuilderType describes the synthesized builder struct.
type BuilderType struct {
	Name  string
	Slots []Slot
}

// Slot is one storage field of a builder. Type is always the wrapped
// visible type, whether or not the field is optional.
type Slot struct {
	Name  string
	Field string
	Type  ast.Expr
}

// Descriptor is the compiled form of a record, ready for synthesis.
type Descriptor struct {
	Record   *Record
	Fields   []Field
	Builder  string
	Factory  string
	Finalize string
}

// Mandatory returns the fields that must be set before Build succeeds,
// in declaration order.
func (d *Descriptor) Mandatory() []Field {
	var out []Field
	for _, f := range d.Fields {
		if !f.Optional {
			out = append(out, f)
		}
	}
	return out
}

// Decl is a synthesized declaration with its doc comment text.
type Decl struct {
	Name string
	Doc  string
	Node ast.Decl
}

// Artifact is everything synthesized for one record.
type Artifact struct {
	Record   *Record
	Type     BuilderType
	Builder  Decl
	Factory  Decl
	Setters  []Decl
	Finalize Decl
}

// Decls returns the declarations in emission order.
func (a *Artifact) Decls() []Decl {
	decls := make([]Decl, 0, 3+len(a.Setters))
	decls = append(decls, a.Builder, a.Factory)
	decls = append(decls, a.Setters...)
	decls = append(decls, a.Finalize)
	return decls
}

// SourceFile is one parsed Go file and the record declarations selected
// from it.
type SourceFile struct {
	Path    string
	Package string
	Imports []Import
	Specs   []*ast.TypeSpec
	Fset    *token.FileSet
}

// Position returns the source position of a node in this file.
func (f *SourceFile) Position(pos token.Pos) token.Position {
	if f.Fset == nil {
		return token.Position{Filename: f.Path}
	}
	return f.Fset.Position(pos)
}

// Import is an import declaration of a source file. Name is empty when the
// import is not renamed. Package is the name the imported package declares,
// empty until something has looked it up.
type Import struct {
	Name    string
	Path    string
	Package string
}
