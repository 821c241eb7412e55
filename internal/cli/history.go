package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/buildergen/internal/generate"
	"github.com/roach88/buildergen/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Cache string
	Limit int
	Files bool
}

// RunJSON is one ledger run.
type RunJSON struct {
	Seq         int64          `json:"seq"`
	ID          string         `json:"id"`
	ToolVersion string         `json:"tool_version"`
	Files       int            `json:"files"`
	Written     int            `json:"written"`
	Unchanged   int            `json:"unchanged"`
	Failed      int            `json:"failed"`
	Artifacts   []ArtifactJSON `json:"artifacts,omitempty"`
}

// ArtifactJSON is one ledger artifact.
type ArtifactJSON struct {
	Output  string   `json:"output"`
	Source  string   `json:"source"`
	Records []string `json:"records"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "List recorded generation runs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Cache, "cache", "", "generation ledger database (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 10, "number of runs to show, 0 for all")
	cmd.Flags().BoolVar(&opts.Files, "files", false, "list the outputs each run last touched")
	_ = cmd.MarkFlagRequired("cache")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	ctx := cmd.Context()
	formatter := newFormatter(opts.RootOptions, cmd)

	s, err := store.Open(opts.Cache)
	if err != nil {
		return fail(formatter, &generate.LedgerError{Err: err})
	}
	defer s.Close()

	runs, err := s.ListRuns(ctx, opts.Limit)
	if err != nil {
		return fail(formatter, &generate.LedgerError{Err: err})
	}

	out := make([]RunJSON, 0, len(runs))
	for _, r := range runs {
		rj := RunJSON{
			Seq:         r.Seq,
			ID:          r.ID,
			ToolVersion: r.ToolVersion,
			Files:       r.FileCount,
			Written:     r.WrittenCount,
			Unchanged:   r.SkippedCount,
			Failed:      r.FailedCount,
		}
		if opts.Files {
			arts, err := s.ListArtifacts(ctx, r.ID)
			if err != nil {
				return fail(formatter, &generate.LedgerError{Err: err})
			}
			for _, a := range arts {
				rj.Artifacts = append(rj.Artifacts, ArtifactJSON{Output: a.OutputPath, Source: a.SourcePath, Records: a.Records})
			}
		}
		out = append(out, rj)
	}

	if formatter.JSON() {
		return formatter.Success(out)
	}

	w := formatter.Writer
	if len(out) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return nil
	}
	for _, r := range out {
		fmt.Fprintf(w, "#%d %s  files=%d written=%d unchanged=%d failed=%d\n",
			r.Seq, r.ID, r.Files, r.Written, r.Unchanged, r.Failed)
		for _, a := range r.Artifacts {
			fmt.Fprintf(w, "  %s <- %s\n", relPath(a.Output), relPath(a.Source))
		}
	}
	return nil
}
