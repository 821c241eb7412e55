// Package opt provides the optional wrapper used by generated builders.
//
// Option[T] is a two-state slot: Present(value) or Empty. Builders store
// every field as an Option, record fields declared as opt.Option[T] are
// treated as optional by the generator, and MissingFieldError is what a
// generated Build returns when a mandatory field was never set.
//
// Slot transitions are explicit:
//
//	Empty   -> Present   Some / Set
//	Present -> Present   Set (last write wins)
//	Present -> Empty     Take
package opt
