package apiobjects

import (
	"errors"
	"testing"
	"time"

	"github.com/hashicorp-forge/tansdk/pkg/apimodels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersions(t *testing.T) {
	t.Run("known types", func(t *testing.T) {
		for _, typ := range Types() {
			mods, err := GetVersions(typ)
			require.NoError(t, err)
			require.NotEmpty(t, mods)
			for _, m := range mods {
				assert.Equal(t, typ, m.Type)
			}
		}
	})

	t.Run("default type", func(t *testing.T) {
		mods, err := GetVersions("")
		require.NoError(t, err)
		assert.Equal(t, TypeSOAP, mods[0].Type)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := GetVersions("badwolf")
		assert.ErrorIs(t, err, ErrNoVersionFound)
		assert.ErrorIs(t, err, ErrModule)
	})
}

func TestFindVersion(t *testing.T) {
	cases := []struct {
		name    string
		query   Query
		wantErr bool
	}{
		{name: "no bounds", query: Query{Type: TypeREST}},
		{name: "min", query: Query{Type: TypeSOAP, VMin: "7.3"}},
		{name: "max", query: Query{Type: TypeSOAP, VMax: "7.3"}},
		{name: "eq short", query: Query{Type: TypeREST, VEq: "7.3.314"}},
		{name: "eq full", query: Query{Type: TypeREST, VEq: "7.3.314.3409"}},
		{name: "min too high", query: Query{Type: TypeSOAP, VMin: "8"}, wantErr: true},
		{name: "eq missing", query: Query{Type: TypeSOAP, VEq: "9.9.9.9"}, wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, err := FindVersion(c.query)
			if c.wantErr {
				assert.ErrorIs(t, err, ErrNoVersionFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "7.3.314.3409", m.Version)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("bad type", func(t *testing.T) {
		_, err := Load(Query{Type: "badwolf"})
		assert.ErrorIs(t, err, ErrModule)
		assert.NotErrorIs(t, err, ErrNoVersionFound)
	})

	for _, typ := range Types() {
		t.Run(typ, func(t *testing.T) {
			objs, err := Load(Query{Type: typ})
			require.NoError(t, err)
			assert.Equal(t, typ, objs.ModuleType())
			assert.Equal(t, "7.3.314.3409", objs.ModuleVersion())
			assert.Equal(t, VersionParts{
				String: "7.3.314.3409", Major: 7, Minor: 3, Revision: 314, Build: 3409,
			}, objs.ModuleVersionParts())
			assert.Contains(t, objs.String(), typ)
			require.NoError(t, objs.Schema().Validate())
		})
	}
}

func TestNameMaps(t *testing.T) {
	for _, typ := range Types() {
		t.Run(typ, func(t *testing.T) {
			objs, err := Load(Query{Type: typ})
			require.NoError(t, err)

			items, err := objs.ClsNameMapItem()
			require.NoError(t, err)
			lists, err := objs.ClsNameMapList()
			require.NoError(t, err)
			all, err := objs.ClsNameMapAll()
			require.NoError(t, err)

			assert.Len(t, items, len(objs.ClsItem()))
			assert.Len(t, lists, len(objs.ClsList()))
			assert.Len(t, all, len(items)+len(lists))

			user, err := objs.ClsItemByName("user")
			require.NoError(t, err)
			assert.Equal(t, "User", user.Name)

			users, err := objs.ClsListByName("users")
			require.NoError(t, err)
			assert.Equal(t, "UserList", users.Name)
			assert.Equal(t, "user", users.ItemAttr)

			role, err := objs.ClsByName("role")
			require.NoError(t, err)
			assert.Equal(t, "UserRole", role.Name)
		})
	}
}

func TestUnknownAPIName(t *testing.T) {
	objs, err := Load(Query{Type: TypeSOAP})
	require.NoError(t, err)

	_, err = objs.ClsItemByName("users")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModule)

	var unknown *UnknownAPINameError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "users", unknown.Name)
	assert.Contains(t, unknown.Valid, "user")
	assert.NotContains(t, unknown.Valid, "users")
	assert.IsIncreasing(t, unknown.Valid)
	assert.Contains(t, err.Error(), `Unable to find a matching API class for API name "users"`)
	assert.Contains(t, err.Error(), "API module: soap 7.3.314.3409")

	_, err = objs.ClsByName("badwolf")
	assert.ErrorIs(t, err, ErrModule)
}

func TestDuplicateAPINames(t *testing.T) {
	objs, err := Load(Query{Type: TypeSOAP})
	require.NoError(t, err)

	objs.MustClass("Group").APIName = "user"
	objs.MustClass("GroupList").APIName = "users"

	_, err = objs.ClsNameMapItem()
	assert.ErrorIs(t, err, ErrModule)
	assert.Contains(t, err.Error(), `"user"`)

	_, err = objs.ClsNameMapList()
	assert.ErrorIs(t, err, ErrModule)

	_, err = objs.ClsNameMapAll()
	assert.ErrorIs(t, err, ErrModule)
	assert.Contains(t, err.Error(), `"users"`)

	_, err = objs.ClsByName("sensor")
	assert.ErrorIs(t, err, ErrModule)

	// Edits stay on the instance they were made on.
	fresh, err := Load(Query{Type: TypeSOAP})
	require.NoError(t, err)
	_, err = fresh.ClsNameMapAll()
	assert.NoError(t, err)
}

func TestModuleDTFormat(t *testing.T) {
	objs, err := Load(Query{Type: TypeREST})
	require.NoError(t, err)

	want := time.Date(2018, 12, 1, 23, 23, 10, 0, time.UTC)
	for _, text := range []string{
		"2018-12-01T23:23:10",
		"2018-12-01T23:23:10Z",
		" 2018-12-01T23:23:10 ",
		"2018-12-01 23:23:10",
	} {
		t.Run(text, func(t *testing.T) {
			got, err := objs.ModuleDTFormat(text)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}

	_, err = objs.ModuleDTFormat("not a date")
	assert.ErrorIs(t, err, ErrModule)
}

func TestClassName(t *testing.T) {
	cases := map[string]string{
		"user":             "User",
		"content_set_role": "ContentSetRole",
		"result_set":       "ResultSet",
		"computer_id_list": "ComputerIdList",
	}
	for in, want := range cases {
		assert.Equal(t, want, ClassName(in), in)
	}
}

func TestSoapResultSet(t *testing.T) {
	objs, err := Load(Query{Type: TypeSOAP})
	require.NoError(t, err)

	rs, err := objs.MustClass("ResultSetList").Construct(map[string]any{
		"now": "2019/02/19 20:50:43 GMT-0000",
		"result_set": map[string]any{
			"id":        int64(12),
			"row_count": "2",
			"cs": map[string]any{"c": []any{
				map[string]any{"wh": int64(3409330187), "dn": "Computer Name", "rt": int64(1)},
				map[string]any{"wh": int64(1092986182), "dn": "IP Address", "rt": int64(5)},
			}},
			"rs": map[string]any{"r": []any{
				map[string]any{"id": int64(1), "cid": int64(99), "c": []any{
					map[string]any{"v": "host1"},
					map[string]any{"v": []any{"10.0.0.1", "10.0.0.2"}},
				}},
				map[string]any{"id": int64(2), "cid": int64(100), "c": []any{
					map[string]any{"v": "host2"},
					map[string]any{"v": map[string]any{"h": int64(7), "text": "10.0.0.3"}},
				}},
			}},
		},
	})
	require.NoError(t, err)

	list := rs.(*apimodels.List)
	assert.Equal(t, "2019/02/19 20:50:43 GMT-0000", list.Get("now"))
	require.Equal(t, 1, list.Len())

	set := list.ItemAt(0)
	rowCount, _ := set.Int("row_count")
	assert.EqualValues(t, 2, rowCount)

	cols := set.List("columns")
	require.NotNil(t, cols)
	require.Equal(t, 2, cols.Len())
	assert.Equal(t, "IP Address", cols.ItemAt(1).Get("name"))

	rows := set.List("rows")
	require.Equal(t, 2, rows.Len())
	rowCols := rows.ItemAt(0).List("columns")
	require.Equal(t, 2, rowCols.Len())
	assert.Equal(t, 2, rowCols.ListAt(1).Len())
	assert.Equal(t, "10.0.0.2", rowCols.ListAt(1).ItemAt(1).Get("value"))

	hashed := rows.ItemAt(1).List("c").ListAt(1).ItemAt(0)
	assert.EqualValues(t, 7, hashed.Get("hash"))
	assert.Equal(t, "10.0.0.3", hashed.Get("text"))
}

func TestRestResultSet(t *testing.T) {
	objs, err := Load(Query{Type: TypeREST})
	require.NoError(t, err)

	rs, err := objs.MustClass("ResultSetList").Construct(map[string]any{
		"now":               "2019/02/19 20:50:43 GMT-0000",
		"max_available_age": "",
		"result_sets": []any{map[string]any{
			"id": int64(12),
			"columns": []any{
				map[string]any{"hash": int64(3409330187), "name": "Computer Name", "type": int64(1)},
			},
			"rows": []any{
				map[string]any{"id": int64(1), "cid": int64(99), "data": []any{
					[]any{map[string]any{"text": "host1"}},
				}},
			},
		}},
	})
	require.NoError(t, err)

	set := rs.(*apimodels.List).ItemAt(0)
	assert.Equal(t, "Computer Name", set.List("columns").ItemAt(0).Get("name"))
	data := set.List("rows").ItemAt(0).List("data")
	require.Equal(t, 1, data.Len())
	assert.Equal(t, "host1", data.ListAt(0).ItemAt(0).Get("text"))
}

func TestSerializeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		typ   string
		class string
		attrs map[string]any
	}{
		{
			name:  "soap user with role lists",
			typ:   TypeSOAP,
			class: "User",
			attrs: map[string]any{
				"id":         "5",
				"name":       "alice",
				"locked_out": true,
				"roles":      []any{map[string]any{"id": 2, "name": "Admin"}},
				"content_set_roles": map[string]any{
					"content_set_role": []any{map[string]any{"id": "3"}, map[string]any{"id": 4}},
				},
			},
		},
		{
			name:  "rest group with nested groups",
			typ:   TypeREST,
			class: "Group",
			attrs: map[string]any{
				"id":         7,
				"name":       "All Windows",
				"and_flag":   1,
				"sub_groups": []any{map[string]any{"id": 8, "name": "Servers"}},
			},
		},
		{
			name:  "rest question with a user",
			typ:   TypeREST,
			class: "Question",
			attrs: map[string]any{
				"id":             "12",
				"query_text":     "Get Computer Name from all machines",
				"expire_seconds": 600.0,
				"user":           map[string]any{"id": 1, "name": "bob"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objs, err := Load(Query{Type: tt.typ})
			require.NoError(t, err)
			cls := objs.MustClass(tt.class)
			orig, err := cls.NewItem(tt.attrs)
			require.NoError(t, err)

			for _, opts := range []apimodels.SerializeOptions{
				{NoWrapName: true},
				{NoWrapName: true, NoWrapItemAttr: true},
			} {
				m, ok := orig.Serialize(opts).(map[string]any)
				require.True(t, ok)
				rebuilt, err := cls.NewItem(m)
				require.NoError(t, err)
				assert.True(t, orig.Equal(rebuilt), "%+v: %#v", opts, m)
			}
		})
	}
}
