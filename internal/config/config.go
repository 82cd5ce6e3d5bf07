// Package config loads the tanctl configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/hashicorp-forge/tansdk/pkg/apiobjects"
	"github.com/hashicorp-forge/tansdk/pkg/transport"
	"github.com/hashicorp-forge/tansdk/pkg/versions"
)

// ErrConfig is matched by every error returned from this package.
var ErrConfig = errors.New("config error")

// Config is the root of a configuration file.
type Config struct {
	// LogLevel is one of trace, debug, info, warn, error or off.
	LogLevel string `hcl:"log_level,optional" json:"log_level" yaml:"log_level"`

	API    *API    `hcl:"api,block" json:"api" yaml:"api"`
	Output *Output `hcl:"output,block" json:"output" yaml:"output"`
	Grid   *Grid   `hcl:"grid,block" json:"grid" yaml:"grid"`

	// Server is only needed by commands that talk to the platform.
	Server *transport.Config `hcl:"server,block" json:"server,omitempty" yaml:"server,omitempty"`
}

// API selects the schema module.
type API struct {
	Type    string               `hcl:"type,optional" json:"type" yaml:"type"`
	Version *versions.Requirement `hcl:"version,block" json:"version,omitempty" yaml:"version,omitempty"`
}

// Output controls how commands render values.
type Output struct {
	// Format is json or yaml.
	Format string `hcl:"format,optional" json:"format" yaml:"format"`
	Indent int    `hcl:"indent,optional" json:"indent" yaml:"indent"`

	// Empty includes unset attributes.
	Empty bool `hcl:"empty,optional" json:"empty" yaml:"empty"`

	Exclude []string `hcl:"exclude,optional" json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// Grid controls how result grids are flattened into rows.
type Grid struct {
	Meta   bool   `hcl:"meta,optional" json:"meta" yaml:"meta"`
	Hashes bool   `hcl:"hashes,optional" json:"hashes" yaml:"hashes"`
	Join   bool   `hcl:"join,optional" json:"join" yaml:"join"`
	Joiner string `hcl:"joiner,optional" json:"joiner" yaml:"joiner"`
}

var (
	logLevels = []any{"trace", "debug", "info", "warn", "error", "off"}
	formats   = []any{"json", "yaml"}
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	c := &Config{}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.API == nil {
		c.API = &API{}
	}
	if c.API.Type == "" {
		c.API.Type = apiobjects.DefaultType
	}
	if c.API.Version == nil {
		c.API.Version = &versions.Requirement{}
	}
	if c.Output == nil {
		c.Output = &Output{}
	}
	if c.Output.Format == "" {
		c.Output.Format = "json"
	}
	if c.Output.Indent == 0 {
		c.Output.Indent = 2
	}
	if c.Grid == nil {
		c.Grid = &Grid{}
	}
	if c.Grid.Joiner == "" {
		c.Grid.Joiner = "\n"
	}
}

// Query returns the schema query for the API block.
func (c *Config) Query() apiobjects.Query {
	q := apiobjects.Query{Type: c.API.Type}
	if v := c.API.Version; v != nil {
		q.VMin, q.VMax, q.VEq = v.Min, v.Max, v.Eq
	}
	return q
}

// Validate checks every block and reports all problems at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.Required, validation.In(logLevels...)),
	); err != nil {
		result = multierror.Append(result, err)
	}

	if c.API != nil {
		if err := validation.ValidateStruct(c.API,
			validation.Field(&c.API.Type, validation.Required, validation.In(typeNames()...)),
		); err != nil {
			result = multierror.Append(result, fmt.Errorf("api: %w", err))
		}
		if v := c.API.Version; v != nil {
			if err := validation.ValidateStruct(v,
				validation.Field(&v.Min, validation.By(dotted)),
				validation.Field(&v.Max, validation.By(dotted)),
				validation.Field(&v.Eq, validation.By(dotted)),
			); err != nil {
				result = multierror.Append(result, fmt.Errorf("api.version: %w", err))
			}
			if v.Min != "" && v.Max != "" && versions.Compare(v.Min, v.Max, versions.ShrinkToOther) > 0 {
				result = multierror.Append(result, fmt.Errorf("api.version: min %s is above max %s", v.Min, v.Max))
			}
		}
	}

	if c.Output != nil {
		if err := validation.ValidateStruct(c.Output,
			validation.Field(&c.Output.Format, validation.Required, validation.In(formats...)),
			validation.Field(&c.Output.Indent, validation.Min(0), validation.Max(8)),
		); err != nil {
			result = multierror.Append(result, fmt.Errorf("output: %w", err))
		}
	}

	if c.Server != nil {
		if err := c.Server.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("server: %w", err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return nil
}

func typeNames() []any {
	var out []any
	for _, t := range apiobjects.Types() {
		out = append(out, t)
	}
	return out
}

func dotted(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	for _, part := range versions.Split(s) {
		if part == "" || strings.Trim(part, "0123456789") != "" {
			return fmt.Errorf("%q is not a dotted version", s)
		}
	}
	return nil
}

// Load reads, decodes and validates the file at path. Unset values take
// their defaults.
func Load(fs afero.Fs, path string) (*Config, error) {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrConfig, path, err)
	}
	return Parse(path, src)
}

// Parse decodes src. The file name selects native HCL (.hcl) or JSON (.json)
// syntax.
func Parse(filename string, src []byte) (*Config, error) {
	var c Config
	if err := hclsimple.Decode(filename, src, evalContext(), &c); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", ErrConfig, filename, err)
	}
	c.setDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"env": envFunc,
		},
	}
}

// envFunc reads an environment variable. An optional second argument is
// returned when the variable is unset.
var envFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "name", Type: cty.String},
	},
	VarParam: &function.Parameter{Name: "default", Type: cty.String},
	Type:     function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		if v, ok := os.LookupEnv(args[0].AsString()); ok {
			return cty.StringVal(v), nil
		}
		if len(args) > 1 {
			return args[1], nil
		}
		return cty.StringVal(""), nil
	},
})
