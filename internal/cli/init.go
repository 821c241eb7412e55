package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/buildergen/internal/config"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	Dir string
	CUE bool
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "init",
		Short:         "Write a config file with the default settings",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", ".", "directory to write the config file into")
	cmd.Flags().BoolVar(&opts.CUE, "cue", false, "write .buildergen.cue instead of .buildergen.yaml")

	return cmd
}

func runInit(cmd *cobra.Command, opts *InitOptions) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	name := config.FileNames[0]
	if opts.CUE {
		name = ".buildergen.cue"
	}
	path := filepath.Join(opts.Dir, name)

	if err := config.Write(path, config.Default()); err != nil {
		if errors.Is(err, os.ErrExist) {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("%s already exists", path), nil)
			return WrapExitError(ExitCommandError, ErrCodeWriteFailed, err)
		}
		return fail(formatter, err)
	}

	if formatter.JSON() {
		return formatter.Success(map[string]string{"path": path})
	}
	fmt.Fprintf(formatter.Writer, "✓ Wrote %s\n", path)
	return nil
}
