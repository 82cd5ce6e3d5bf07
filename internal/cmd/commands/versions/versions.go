package versions

import (
	"flag"
	"fmt"

	"github.com/hashicorp-forge/tansdk/internal/cmd/base"
	"github.com/hashicorp-forge/tansdk/pkg/apiobjects"
)

type Command struct {
	*base.Command

	flagType string
}

type moduleInfo struct {
	Type       string                  `json:"type" yaml:"type"`
	Version    apiobjects.VersionParts `json:"version" yaml:"version"`
	DateFormat string                  `json:"date_format" yaml:"date_format"`
}

func (c *Command) Synopsis() string {
	return "List the schema modules known to the SDK"
}

func (c *Command) Help() string {
	return `Usage: tanctl versions [options]

  List every schema module, or the modules of one API type.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("versions", flag.ContinueOnError))
	c.ConfigFlag(f)

	f.StringVar(
		&c.flagType, "type", "",
		"API type to list (soap or rest). All types are listed when empty.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading config: %v", err))
		return 1
	}

	types := apiobjects.Types()
	if c.flagType != "" {
		types = []string{c.flagType}
	}

	var out []moduleInfo
	for _, t := range types {
		mods, err := apiobjects.GetVersions(t)
		if err != nil {
			c.UI.Error(err.Error())
			return 1
		}
		for _, m := range mods {
			out = append(out, moduleInfo{Type: m.Type, Version: m.Parts(), DateFormat: m.DateFormat})
		}
	}

	c.Log.Debug("listed modules", "count", len(out))
	if err := c.Render(out, cfg.Output); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
