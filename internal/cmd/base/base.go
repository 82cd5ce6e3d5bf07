// Package base holds what every tanctl command shares: the logger, the UI,
// the filesystem, flag help and output rendering.
package base

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/hashicorp-forge/tansdk/internal/config"
	"github.com/hashicorp-forge/tansdk/pkg/wire"
)

// ConfigEnv names the variable consulted when -config is not set.
const ConfigEnv = "TANCTL_CONFIG"

// Command is embedded by every command.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
	Fs  afero.Fs

	flagConfig string
}

// NewCommand returns a Command reading files from the OS filesystem.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{Log: log, UI: ui, Fs: afero.NewOsFs()}
}

// ConfigFlag registers -config on f.
func (c *Command) ConfigFlag(f *FlagSet) {
	f.StringVar(
		&c.flagConfig, "config", "",
		"["+ConfigEnv+"] Path to an HCL or JSON config file",
	)
}

// LoadConfig reads the file named by -config or $TANCTL_CONFIG, or returns
// the defaults when neither is set. The logger level follows the config.
func (c *Command) LoadConfig() (*config.Config, error) {
	path := c.flagConfig
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}

	cfg := config.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = config.Load(c.Fs, path); err != nil {
			return nil, err
		}
	}

	if level := hclog.LevelFromString(cfg.LogLevel); level != hclog.NoLevel {
		c.Log.SetLevel(level)
	}
	c.Log.Debug("loaded config", "path", path, "api_type", cfg.API.Type, "format", cfg.Output.Format)
	return cfg, nil
}

// ReadFile reads path from the command filesystem. "-" reads nothing and
// returns an empty string.
func (c *Command) ReadFile(path string) (string, error) {
	if path == "" || path == "-" {
		return "", nil
	}
	b, err := afero.ReadFile(c.Fs, path)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", path, err)
	}
	return string(b), nil
}

// SignalContext returns a context cancelled on interrupt or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Render writes v to the UI in the configured format.
func (c *Command) Render(v any, out *config.Output) error {
	text, err := Marshal(v, out.Format, out.Indent)
	if err != nil {
		return err
	}
	c.UI.Output(text)
	return nil
}

// Marshal renders v as json or yaml.
func Marshal(v any, format string, indent int) (string, error) {
	switch format {
	case "json":
		text, err := wire.EncodeJSON(v, indent)
		if err != nil {
			return "", fmt.Errorf("error encoding json: %w", err)
		}
		return text, nil

	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		if indent > 0 {
			enc.SetIndent(indent)
		}
		if err := enc.Encode(v); err != nil {
			return "", fmt.Errorf("error encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("error encoding yaml: %w", err)
		}
		return strings.TrimRight(buf.String(), "\n"), nil

	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

// FlagSet adds help rendering to a flag.FlagSet.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f. Parse errors are returned rather than printed.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(&bytes.Buffer{})
	return &FlagSet{FlagSet: f}
}

// Help renders the flags for a command's help text.
func (f *FlagSet) Help() string {
	var b strings.Builder
	first := true
	f.VisitAll(func(fl *flag.Flag) {
		if first {
			b.WriteString("\n\nOptions:\n")
			first = false
		}
		b.WriteString("\n  -" + fl.Name)
		if fl.DefValue != "" && fl.DefValue != "false" {
			b.WriteString("=" + fl.DefValue)
		}
		b.WriteString("\n")
		for _, line := range strings.Split(fl.Usage, "\n") {
			b.WriteString("      " + line + "\n")
		}
	})
	return b.String()
}
