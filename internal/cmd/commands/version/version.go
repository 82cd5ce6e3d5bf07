package version

import (
	"github.com/hashicorp-forge/tansdk/internal/cmd/base"
	"github.com/hashicorp-forge/tansdk/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the tanctl version"
}

func (c *Command) Help() string {
	return `Usage: tanctl version

  Print the tanctl version.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("tanctl " + version.String())
	return 0
}
