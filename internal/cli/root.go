package cli

import (
	"context"
	"fmt"
	"go/token"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/buildergen/internal/config"
	"github.com/roach88/buildergen/internal/ir"
	"github.com/roach88/buildergen/internal/source"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // config file; discovered from the working directory when empty
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the buildergen command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "buildergen",
		Short: "Generate builders for Go structs",
		Long: `buildergen writes a companion builder for each annotated struct.

Mark a struct with a //buildergen:builder comment and run
"buildergen generate" (usually from a go:generate line). Fields of type
opt.Option[T] are optional; every other field must be set before Build
succeeds.`,
		Version:       ir.ToolVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (.yaml, .yml or .cue)")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewInitCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// newLogger logs text to w, at debug level in verbose mode.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads --config, or the discovered config file, or falls back
// to the defaults.
func loadConfig(opts *RootOptions, f *OutputFormatter) (*config.Config, error) {
	path := opts.Config
	if path == "" {
		found, err := config.Discover(".")
		if err != nil {
			return nil, err
		}
		path = found
	}
	if path == "" {
		f.VerboseLog("Using default config")
		return config.Default(), nil
	}
	f.VerboseLog("Using config %s", path)
	return config.Load(path)
}

// loadSources reads the inputs named on the command line. Arguments ending
// in .go are files; anything else is a package pattern. No arguments means
// the package in the working directory.
func loadSources(ctx context.Context, args []string, sel source.Selection) ([]*ir.SourceFile, error) {
	var files, patterns []string
	for _, a := range args {
		if strings.HasSuffix(a, ".go") {
			files = append(files, a)
		} else {
			patterns = append(patterns, a)
		}
	}
	if len(files) == 0 && len(patterns) == 0 {
		patterns = []string{"."}
	}

	var out []*ir.SourceFile
	if len(files) > 0 {
		parsed, err := source.ParseFiles(token.NewFileSet(), files, sel)
		if err != nil {
			return nil, err
		}
		if err := source.ResolveImports(ctx, parsed); err != nil {
			return nil, err
		}
		out = append(out, parsed...)
	}
	if len(patterns) > 0 {
		loaded, err := source.LoadPackages(ctx, "", patterns, sel)
		if err != nil {
			return nil, err
		}
		out = append(out, loaded...)
	}

	if err := sel.Check(out); err != nil {
		return nil, err
	}
	return out, nil
}
