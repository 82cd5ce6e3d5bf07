package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/tansdk/pkg/apiobjects"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, apiobjects.TypeSOAP, c.API.Type)
	assert.Equal(t, "json", c.Output.Format)
	assert.Equal(t, 2, c.Output.Indent)
	assert.Equal(t, "\n", c.Grid.Joiner)
	assert.Equal(t, apiobjects.Query{Type: apiobjects.TypeSOAP}, c.Query())
}

func TestLoad(t *testing.T) {
	t.Setenv("TANCTL_TEST_TYPE", "rest")
	t.Setenv("TANCTL_TEST_SESSION", "token-1")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/tanctl.hcl", []byte(`
log_level = "debug"

api {
  type = env("TANCTL_TEST_TYPE")

  version {
    min = "7.2"
    max = "7.4"
  }
}

output {
  format  = "yaml"
  exclude = ["cache_info"]
}

grid {
  join   = true
  joiner = env("TANCTL_TEST_UNSET", ", ")
}

server {
  url     = "https://tanium.example.com"
  session = env("TANCTL_TEST_SESSION")
}
`), 0o644))

	c, err := Load(fs, "/etc/tanctl.hcl")
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, apiobjects.TypeREST, c.API.Type)
	assert.Equal(t, "yaml", c.Output.Format)
	assert.Equal(t, 2, c.Output.Indent)
	assert.Equal(t, []string{"cache_info"}, c.Output.Exclude)
	assert.True(t, c.Grid.Join)
	assert.Equal(t, ", ", c.Grid.Joiner)
	assert.Equal(t, apiobjects.Query{Type: "rest", VMin: "7.2", VMax: "7.4"}, c.Query())
	require.NotNil(t, c.Server)
	assert.Equal(t, "https://tanium.example.com", c.Server.URL)
	assert.Equal(t, "token-1", c.Server.Session)
}

func TestLoadJSON(t *testing.T) {
	c, err := Parse("tanctl.json", []byte(`{"api": {"type": "soap"}, "output": {"indent": 4}}`))
	require.NoError(t, err)
	assert.Equal(t, "soap", c.API.Type)
	assert.Equal(t, 4, c.Output.Indent)
	assert.Equal(t, "json", c.Output.Format)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		contains []string
	}{
		{
			name:     "syntax",
			src:      `log_level = `,
			contains: []string{"decoding"},
		},
		{
			name:     "unknown attribute",
			src:      `colour = "red"`,
			contains: []string{"decoding"},
		},
		{
			name: "every invalid field is reported",
			src: `
log_level = "loud"
api {
  type = "grpc"
}
output {
  format = "xml"
}
`,
			contains: []string{"log_level", "api:", "output:"},
		},
		{
			name: "bad versions",
			src: `
api {
  version {
    min = "7.x"
  }
}
`,
			contains: []string{"api.version", "not a dotted version"},
		},
		{
			name: "bad server",
			src: `
server {
  url     = "ftp:/nowhere here"
  timeout = "soon"
}
`,
			contains: []string{"server:", "timeout"},
		},
		{
			name: "min above max",
			src: `
api {
  version {
    min = "7.4"
    max = "7.2"
  }
}
`,
			contains: []string{"min 7.4 is above max 7.2"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse("tanctl.hcl", []byte(c.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)
			for _, s := range c.contains {
				assert.Contains(t, err.Error(), s)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(afero.NewMemMapFs(), "/nope.hcl")
		assert.ErrorIs(t, err, ErrConfig)
	})
}
