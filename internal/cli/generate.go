package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/buildergen/internal/generate"
	"github.com/roach88/buildergen/internal/store"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Types  []string
	Cache  string
	Force  bool
	DryRun bool
	Print  bool
}

// GenerateResult is the JSON form of a generate run.
type GenerateResult struct {
	RunID string             `json:"run_id"`
	Files []GenerateFileJSON `json:"files"`
}

// GenerateFileJSON is one source file of a GenerateResult.
type GenerateFileJSON struct {
	Source  string   `json:"source"`
	Output  string   `json:"output"`
	Records []string `json:"records"`
	Status  string   `json:"status"`
	Code    string   `json:"code,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate [paths...]",
		Short: "Write builder companions for annotated structs",
		Long: `Write a <file>_builder.go companion for every Go file that declares a
selected struct.

Arguments ending in .go are parsed as files; anything else is a package
pattern such as ./... . With no arguments the package in the working
directory is used. Structs are selected by the //buildergen:builder
directive unless --type names them explicitly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Types, "type", "t", nil, "struct to generate for (repeatable); overrides the directive")
	cmd.Flags().StringVar(&opts.Cache, "cache", "", "generation ledger database; enables skipping unchanged outputs")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "rewrite outputs even when unchanged")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "render without writing files")
	cmd.Flags().BoolVar(&opts.Print, "print", false, "print the generated declarations to stderr")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *GenerateOptions, args []string) error {
	ctx := cmd.Context()
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts.RootOptions, formatter)
	if err != nil {
		return fail(formatter, err)
	}

	files, err := loadSources(ctx, args, generate.Selection(cfg, opts.Types))
	if err != nil {
		return fail(formatter, err)
	}
	formatter.VerboseLog("Loaded %d file(s)", len(files))

	g := &generate.Generator{
		Config: cfg,
		Logger: newLogger(opts.RootOptions, cmd.ErrOrStderr()),
		Force:  opts.Force,
		DryRun: opts.DryRun,
	}
	if opts.Print {
		g.Diagnostics = cmd.ErrOrStderr()
	}
	if opts.Cache != "" {
		s, err := store.Open(opts.Cache)
		if err != nil {
			return fail(formatter, &generate.LedgerError{Err: err})
		}
		defer s.Close()
		g.Store = s
	}

	report, err := g.Run(ctx, files)
	if err != nil {
		return fail(formatter, err)
	}
	return outputGenerateReport(formatter, report)
}

func outputGenerateReport(formatter *OutputFormatter, report *generate.Report) error {
	failed := report.Failed()

	if formatter.JSON() {
		result := toGenerateResult(report)
		if len(failed) == 0 {
			return formatter.Success(result)
		}
		_ = formatter.Error(ErrorCode(failed[0].Err),
			fmt.Sprintf("generation failed for %d file(s)", len(failed)), result)
		return NewExitError(ExitFailure, "generation failed")
	}

	w := formatter.Writer
	for _, f := range report.Files {
		switch f.Status {
		case generate.StatusWritten:
			fmt.Fprintf(w, "✓ %s (%s)\n", relPath(f.Output), strings.Join(f.Records, ", "))
		case generate.StatusUnchanged:
			fmt.Fprintf(w, "= %s unchanged\n", relPath(f.Output))
		case generate.StatusDryRun:
			fmt.Fprintf(w, "~ %s would be written (%s)\n", relPath(f.Output), strings.Join(f.Records, ", "))
		case generate.StatusFailed:
			fmt.Fprintf(w, "✗ %s\n  %s: %v\n", relPath(f.Source), ErrorCode(f.Err), f.Err)
		}
	}

	if len(report.Files) == 0 {
		fmt.Fprintln(w, "No annotated structs found")
	}
	if len(failed) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("generation failed for %d file(s)", len(failed)))
	}
	return nil
}

func toGenerateResult(report *generate.Report) GenerateResult {
	result := GenerateResult{RunID: report.RunID, Files: []GenerateFileJSON{}}
	for _, f := range report.Files {
		fj := GenerateFileJSON{
			Source:  f.Source,
			Output:  f.Output,
			Records: f.Records,
			Status:  string(f.Status),
		}
		if fj.Records == nil {
			fj.Records = []string{}
		}
		if f.Err != nil {
			fj.Code = ErrorCode(f.Err)
			fj.Error = f.Err.Error()
		}
		result.Files = append(result.Files, fj)
	}
	return result
}

// relPath shortens path relative to the working directory when possible.
func relPath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	if wd, err := filepath.Abs("."); err == nil {
		if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return path
}
