package compiler

import (
	"fmt"
	"go/token"
)

// Reason discriminates why a declaration cannot get a builder.
type Reason string

const (
	ReasonNotARecord     Reason = "not_a_record"
	ReasonUnnamedFields  Reason = "unnamed_fields"
	ReasonNameCollision  Reason = "name_collision"
	ReasonNestedOptional Reason = "nested_optional"
)

// Error codes reported for each reason: E101-E104, and E100 for a reason
// this package does not know.
const (
	ErrNotARecord     = "E101"
	ErrUnnamedFields  = "E102"
	ErrNameCollision  = "E103"
	ErrNestedOptional = "E104"
	ErrUnknownReason  = "E100"
)

// Code returns the error code for r.
func (r Reason) Code() string {
	switch r {
	case ReasonNotARecord:
		return ErrNotARecord
	case ReasonUnnamedFields:
		return ErrUnnamedFields
	case ReasonNameCollision:
		return ErrNameCollision
	case ReasonNestedOptional:
		return ErrNestedOptional
	default:
		return ErrUnknownReason
	}
}

// CompileError is a fatal, generation-time error for one declaration.
// No artifact is produced for a file containing one.
type CompileError struct {
	Reason  Reason
	Type    string // declared type name
	Field   string // offending field, empty when the whole type is rejected
	Message string
	Pos     token.Position
}

func (e *CompileError) Error() string {
	subject := e.Type
	if e.Field != "" {
		subject = e.Type + "." + e.Field
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s: %s",
			e.Pos.Filename, e.Pos.Line, e.Pos.Column,
			e.Reason.Code(), subject, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Reason.Code(), subject, e.Message)
}
