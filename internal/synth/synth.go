package synth

import "github.com/roach88/buildergen/internal/ir"

// Options configures synthesis.
type Options struct {
	// Runtime is the qualifier the generated file uses for the runtime
	// package, normally "opt".
	Runtime string
}

// DefaultOptions refers to the runtime package as opt.
func DefaultOptions() Options {
	return Options{Runtime: "opt"}
}

// Synthesize produces every declaration for one compiled record.
func Synthesize(desc *ir.Descriptor, opts Options) *ir.Artifact {
	bt, builder := BuilderType(desc, opts)
	return &ir.Artifact{
		Record:   desc.Record,
		Type:     bt,
		Builder:  builder,
		Factory:  Factory(desc, opts),
		Setters:  Setters(desc, opts),
		Finalize: Finalize(desc, opts),
	}
}
