package classes

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/tansdk/internal/cmd/base"
	"github.com/hashicorp-forge/tansdk/pkg/apiobjects"
)

func newCommand(t *testing.T) (*Command, *cli.MockUi) {
	t.Helper()
	t.Setenv(base.ConfigEnv, "")
	ui := cli.NewMockUi()
	return &Command{Command: &base.Command{Log: hclog.NewNullLogger(), UI: ui, Fs: afero.NewMemMapFs()}}, ui
}

func TestDescribe(t *testing.T) {
	objs, err := apiobjects.Load(apiobjects.Query{Type: apiobjects.TypeREST})
	require.NoError(t, err)

	user := describe(objs.MustClass("User"), true)
	assert.Equal(t, "User", user.Name)
	assert.Equal(t, "user", user.APIName)
	assert.Equal(t, "item", user.Kind)
	assert.Equal(t, "UserList", user.ListClass)
	assert.Empty(t, user.ItemAttr)
	require.NotEmpty(t, user.Attrs)
	assert.Equal(t, attrInfo{Name: "id", Type: "int"}, user.Attrs[0])
	assert.Contains(t, user.Attrs, attrInfo{Name: "roles", Type: "UserRoleList", Class: true})

	users := describe(objs.MustClass("UserList"), false)
	assert.Equal(t, "list", users.Kind)
	assert.Equal(t, "user", users.ItemAttr)
	assert.Equal(t, "User", users.ItemType)
	assert.Empty(t, users.Attrs)
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		code     int
		contains string
	}{
		{name: "all", args: []string{"-type=soap"}, code: 0, contains: `"name": "UserList"`},
		{name: "lists only", args: []string{"-kind=list"}, code: 0, contains: `"kind": "list"`},
		{name: "by api name", args: []string{"-name=user"}, code: 0, contains: `"attrs"`},
		{name: "unknown name", args: []string{"-name=badwolf"}, code: 1},
		{name: "bad kind", args: []string{"-kind=both"}, code: 1},
		{name: "bad type", args: []string{"-type=grpc"}, code: 1},
		{name: "bad flag", args: []string{"-nope"}, code: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ui := newCommand(t)
			code := c.Run(tt.args)
			require.Equal(t, tt.code, code, ui.ErrorWriter.String())
			if tt.contains != "" {
				assert.Contains(t, ui.OutputWriter.String(), tt.contains)
			}
			if tt.code != 0 {
				assert.NotEmpty(t, ui.ErrorWriter.String())
			}
		})
	}

	t.Run("kind filter", func(t *testing.T) {
		c, ui := newCommand(t)
		require.Equal(t, 0, c.Run([]string{"-kind=item"}))
		assert.NotContains(t, ui.OutputWriter.String(), `"kind": "list"`)
	})
}
