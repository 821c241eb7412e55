// Package command shows a struct with a generated builder.
package command

import (
	"strings"

	"github.com/roach88/buildergen/pkg/opt"
)

//go:generate go run github.com/roach88/buildergen/cmd/buildergen generate command.go

//buildergen:builder
type Command struct {
	executable string
	args       []string
	currentDir opt.Option[string]
}

// String renders the command line, prefixed by the working directory when
// one is set.
func (c Command) String() string {
	line := strings.Join(append([]string{c.executable}, c.args...), " ")
	if dir, ok := c.currentDir.Get(); ok {
		return "(cd " + dir + " && " + line + ")"
	}
	return line
}
