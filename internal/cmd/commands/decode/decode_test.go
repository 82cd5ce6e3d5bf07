package decode

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/tansdk/internal/cmd/base"
	"github.com/hashicorp-forge/tansdk/internal/config"
	"github.com/hashicorp-forge/tansdk/pkg/apimodels"
	"github.com/hashicorp-forge/tansdk/pkg/apiobjects"
)

func newCommand(t *testing.T, fsys afero.Fs) (*Command, *cli.MockUi) {
	t.Helper()
	t.Setenv(base.ConfigEnv, "")
	ui := cli.NewMockUi()
	return &Command{Command: &base.Command{Log: hclog.NewNullLogger(), UI: ui, Fs: fsys}}, ui
}

func TestResponse(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/req", []byte("<req/>"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/resp", []byte("<resp/>"), 0o644))

	t.Run("soap defaults to post", func(t *testing.T) {
		c, _ := newCommand(t, fsys)
		c.flagStatus, c.flagRequest, c.flagResponse = 200, "/req", "/resp"
		resp, err := c.response(apiobjects.TypeSOAP)
		require.NoError(t, err)
		assert.Equal(t, "POST", resp.Method)
		assert.Equal(t, "<req/>", resp.RequestBody)
		assert.Equal(t, "<resp/>", resp.ResponseBody)
	})

	t.Run("rest defaults to get", func(t *testing.T) {
		c, _ := newCommand(t, fsys)
		c.flagURL, c.flagResponse = "https://tanium.example.com/api/v2/users", "/resp"
		resp, err := c.response(apiobjects.TypeREST)
		require.NoError(t, err)
		assert.Equal(t, "GET", resp.Method)
		assert.Empty(t, resp.RequestBody)
	})

	t.Run("explicit method", func(t *testing.T) {
		c, _ := newCommand(t, fsys)
		c.flagURL, c.flagMethod, c.flagResponse = "https://tanium.example.com/api/v2/users", "POST", "/resp"
		resp, err := c.response(apiobjects.TypeREST)
		require.NoError(t, err)
		assert.Equal(t, "POST", resp.Method)
	})

	t.Run("soap needs a request", func(t *testing.T) {
		c, _ := newCommand(t, fsys)
		c.flagResponse = "/resp"
		_, err := c.response(apiobjects.TypeSOAP)
		assert.ErrorContains(t, err, "request flag is required")
	})

	t.Run("rest needs a url", func(t *testing.T) {
		c, _ := newCommand(t, fsys)
		c.flagResponse = "/resp"
		_, err := c.response(apiobjects.TypeREST)
		assert.ErrorContains(t, err, "url flag is required")
	})

	t.Run("missing file", func(t *testing.T) {
		c, _ := newCommand(t, fsys)
		c.flagURL, c.flagResponse = "https://tanium.example.com/api/v2/users", "/nope"
		_, err := c.response(apiobjects.TypeREST)
		assert.ErrorContains(t, err, "/nope")
	})
}

func TestGrid(t *testing.T) {
	objs, err := apiobjects.Load(apiobjects.Query{Type: apiobjects.TypeREST})
	require.NoError(t, err)
	g := config.DefaultConfig().Grid

	m, err := objs.MustClass("ResultSetList").Construct(map[string]any{
		"now": "2019/01/29 00:16:10 GMT-0000",
		"result_sets": []any{map[string]any{
			"id": 12,
			"columns": []any{
				map[string]any{"hash": 3409330187, "name": "Computer Name", "type": 1},
				map[string]any{"hash": 3209138996, "name": "IP Address", "type": 5},
			},
			"rows": []any{map[string]any{
				"id":  1,
				"cid": 99,
				"data": []any{
					[]any{map[string]any{"text": "host1"}},
					[]any{map[string]any{"text": "10.0.0.1"}, map[string]any{"text": "10.0.0.2"}},
				},
			}},
		}},
	})
	require.NoError(t, err)
	sets := m.(*apimodels.List)

	out, err := grid(sets, g)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(12), out[0].ID)
	assert.Equal(t, []string{"Computer Name", "IP Address"}, out[0].Columns)
	require.Len(t, out[0].Rows, 1)
	assert.Equal(t, []string{"host1"}, out[0].Rows[0]["Computer Name"])
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, out[0].Rows[0]["IP Address"])

	joined := *g
	joined.Join = true
	out, err = grid(sets.ItemsOf()[0], &joined)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "10.0.0.1\n10.0.0.2", out[0].Rows[0]["IP Address"])

	_, err = grid(objs.MustClass("User").MustNewItem(nil), g)
	assert.ErrorContains(t, err, "User is not a result set")

	_, err = grid(objs.MustClass("UserList").MustNewList(), g)
	assert.ErrorContains(t, err, "UserList does not hold result sets")
}

func TestRun(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/user.json", []byte(`{"data": {"id": 1, "name": "alice"}}`), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/missing.json", []byte(`{"text": "404 Not Found: user 9"}`), 0o644))

	tests := []struct {
		name   string
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{
			name:   "object",
			args:   []string{"-type=rest", "-url=https://tanium.example.com/api/v2/users/1", "-response=/user.json"},
			stdout: `"name": "alice"`,
		},
		{
			name:   "raw",
			args:   []string{"-type=rest", "-raw", "-url=https://tanium.example.com/api/v2/users/1", "-response=/user.json"},
			stdout: `"id": 1`,
		},
		{
			name:   "classified error",
			args:   []string{"-type=rest", "-status=404", "-url=https://tanium.example.com/api/v2/users/9", "-response=/missing.json"},
			code:   exitResponse,
			stderr: "object not found",
		},
		{
			name:   "grid on an object",
			args:   []string{"-type=rest", "-grid", "-url=https://tanium.example.com/api/v2/users/1", "-response=/user.json"},
			code:   exitError,
			stderr: "is not a result set",
		},
		{name: "no response", args: []string{"-type=rest"}, code: exitError, stderr: "response flag is required"},
		{name: "bad type", args: []string{"-type=grpc", "-response=/user.json"}, code: exitError, stderr: "error loading schema"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ui := newCommand(t, fsys)
			require.Equal(t, tt.code, c.Run(tt.args), ui.ErrorWriter.String())
			if tt.stdout != "" {
				assert.Contains(t, ui.OutputWriter.String(), tt.stdout)
			}
			if tt.stderr != "" {
				assert.Contains(t, ui.ErrorWriter.String(), tt.stderr)
			}
		})
	}
}
