// Command buildergen generates builders for Go structs.
//
// Typical use is a go:generate line next to an annotated struct:
//
//	//go:generate go run github.com/roach88/buildergen/cmd/buildergen generate
//
//	//buildergen:builder
//	type Command struct { ... }
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/roach88/buildergen/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		code := cli.ExitCommandError
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.Code
		} else {
			// Flag and usage errors are not printed by the commands.
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(code)
	}
}
