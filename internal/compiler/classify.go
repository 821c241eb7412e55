package compiler

import "github.com/roach88/buildergen/internal/ir"

// Classify tags each field of rec as mandatory or optional and derives its
// builder-visible type and names. It has no side effects and never fails.
func Classify(rec *ir.Record, w Unwrapper) []ir.Field {
	fields := make([]ir.Field, 0, len(rec.Fields))
	for _, raw := range rec.Fields {
		f := ir.Field{
			Name:         raw.Name,
			DeclaredType: raw.Type,
			VisibleType:  raw.Type,
			Slot:         SlotName(raw.Name),
			Setter:       SetterName(raw.Name),
		}
		if inner, ok := w.Unwrap(raw.Type); ok {
			f.Optional = true
			f.VisibleType = inner
		}
		fields = append(fields, f)
	}
	return fields
}
