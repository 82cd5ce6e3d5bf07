package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/tansdk/internal/cmd/base"
	"github.com/hashicorp-forge/tansdk/internal/cmd/commands/call"
	"github.com/hashicorp-forge/tansdk/internal/cmd/commands/classes"
	"github.com/hashicorp-forge/tansdk/internal/cmd/commands/decode"
	"github.com/hashicorp-forge/tansdk/internal/cmd/commands/version"
	"github.com/hashicorp-forge/tansdk/internal/cmd/commands/versions"
)

func commands(log hclog.Logger, ui cli.Ui, fsys afero.Fs) map[string]cli.CommandFactory {
	b := base.NewCommand(log, ui)
	b.Fs = fsys

	return map[string]cli.CommandFactory{
		"call": func() (cli.Command, error) {
			return &call.Command{Command: b}, nil
		},
		"classes": func() (cli.Command, error) {
			return &classes.Command{Command: b}, nil
		},
		"decode": func() (cli.Command, error) {
			return &decode.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
		"versions": func() (cli.Command, error) {
			return &versions.Command{Command: b}, nil
		},
	}
}
