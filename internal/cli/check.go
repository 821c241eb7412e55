package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/buildergen/internal/config"
	"github.com/roach88/buildergen/internal/generate"
	"github.com/roach88/buildergen/internal/ir"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Types []string
}

// RecordJSON describes one compiled record.
type RecordJSON struct {
	Name    string      `json:"name"`
	File    string      `json:"file"`
	Line    int         `json:"line"`
	Builder string      `json:"builder"`
	Fields  []FieldJSON `json:"fields"`
}

// FieldJSON describes one classified field.
type FieldJSON struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional"`
	Setter   string `json:"setter"`
}

// CheckFailure is a file whose records did not compile.
type CheckFailure struct {
	File    string `json:"file"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CheckResult is the JSON form of a check run.
type CheckResult struct {
	Records  []RecordJSON   `json:"records"`
	Failures []CheckFailure `json:"failures,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Compile selected structs without writing anything",
		Long: `Compile every selected struct and report how each field is classified.

Nothing is rendered or written. The exit code is 1 when any struct cannot
get a builder.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Types, "type", "t", nil, "struct to check (repeatable); overrides the directive")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions, args []string) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts.RootOptions, formatter)
	if err != nil {
		return fail(formatter, err)
	}
	files, err := loadSources(cmd.Context(), args, generate.Selection(cfg, opts.Types))
	if err != nil {
		return fail(formatter, err)
	}

	result := check(cfg, files)
	return outputCheckResult(formatter, result)
}

func check(cfg *config.Config, files []*ir.SourceFile) CheckResult {
	result := CheckResult{Records: []RecordJSON{}}
	for _, f := range files {
		descs, err := generate.CompileFile(cfg, f)
		if err != nil {
			result.Failures = append(result.Failures, CheckFailure{
				File:    f.Path,
				Code:    ErrorCode(err),
				Message: err.Error(),
			})
			continue
		}
		for _, d := range descs {
			rec := RecordJSON{
				Name:    d.Record.Name,
				File:    f.Path,
				Line:    d.Record.Pos.Line,
				Builder: d.Builder,
			}
			for _, fld := range d.Fields {
				rec.Fields = append(rec.Fields, FieldJSON{
					Name:     fld.Name,
					Type:     ir.TypeString(fld.VisibleType),
					Optional: fld.Optional,
					Setter:   fld.Setter,
				})
			}
			result.Records = append(result.Records, rec)
		}
	}
	return result
}

func outputCheckResult(formatter *OutputFormatter, result CheckResult) error {
	if formatter.JSON() {
		if len(result.Failures) == 0 {
			return formatter.Success(result)
		}
		first := result.Failures[0]
		_ = formatter.Error(first.Code, first.Message, result)
		return NewExitError(ExitFailure, "check failed")
	}

	w := formatter.Writer
	for _, r := range result.Records {
		fmt.Fprintf(w, "%s (%s:%d) -> %s\n", r.Name, relPath(r.File), r.Line, r.Builder)
		for _, f := range r.Fields {
			kind := "mandatory"
			if f.Optional {
				kind = "optional"
			}
			fmt.Fprintf(w, "  %-16s %-24s %s\n", f.Name, f.Type, kind)
		}
	}
	for _, f := range result.Failures {
		fmt.Fprintf(w, "✗ %s\n  %s\n", relPath(f.File), f.Message)
	}

	if len(result.Failures) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("check failed for %d file(s)", len(result.Failures)))
	}
	fmt.Fprintf(w, "✓ %d struct(s) OK\n", len(result.Records))
	return nil
}
