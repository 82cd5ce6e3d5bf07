package base

import (
	"flag"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	v := map[string]any{"b": []any{"x", "y"}, "a": 1}

	cases := []struct {
		format string
		indent int
		want   string
	}{
		{format: "json", want: `{"a":1,"b":["x","y"]}`},
		{format: "json", indent: 2, want: "{\n  \"a\": 1,\n  \"b\": [\n    \"x\",\n    \"y\"\n  ]\n}"},
		// yaml.v3 quotes "y" since YAML 1.1 reads it as a bool.
		{format: "yaml", indent: 2, want: "a: 1\nb:\n  - x\n  - \"y\""},
	}
	for _, c := range cases {
		t.Run(c.format, func(t *testing.T) {
			got, err := Marshal(v, c.format, c.indent)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}

	_, err := Marshal(v, "toml", 0)
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/env.hcl", []byte(`log_level = "debug"`), 0o644))

	log := hclog.New(&hclog.LoggerOptions{Level: hclog.Warn})
	c := &Command{Log: log, UI: cli.NewMockUi(), Fs: fsys}

	t.Setenv(ConfigEnv, "")
	cfg, err := c.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)

	t.Setenv(ConfigEnv, "/env.hcl")
	cfg, err = c.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, log.IsDebug())

	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	c.ConfigFlag(f)
	require.NoError(t, f.Parse([]string{"-config=/missing.hcl"}))
	_, err = c.LoadConfig()
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/body", []byte("hello"), 0o644))
	c := &Command{Log: hclog.NewNullLogger(), UI: cli.NewMockUi(), Fs: fsys}

	got, err := c.ReadFile("/body")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	got, err = c.ReadFile("-")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = c.ReadFile("/nope")
	assert.Error(t, err)
}

func TestFlagSetHelp(t *testing.T) {
	var s string
	var b bool
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	f.StringVar(&s, "type", "soap", "API type")
	f.BoolVar(&b, "raw", false, "Print raw")

	help := f.Help()
	assert.Contains(t, help, "Options:")
	assert.Contains(t, help, "-type=soap\n      API type")
	assert.Contains(t, help, "-raw\n      Print raw")

	assert.Empty(t, NewFlagSet(flag.NewFlagSet("empty", flag.ContinueOnError)).Help())
}
