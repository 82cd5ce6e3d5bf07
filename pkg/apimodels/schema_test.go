package apimodels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSchema builds a small user/question schema shaped like the platform's.
func testSchema(t *testing.T) *Schema {
	t.Helper()

	s := NewSchema(nil)
	s.Add(&Class{
		Name: "User", APIName: "user", Kind: KindItem, ListClass: "UserList",
		Attrs: []Attr{
			{Name: "id", Scalar: TypeInt},
			{Name: "name", Scalar: TypeString},
			{Name: "locked_out", Scalar: TypeInt},
			{Name: "roles", Class: "UserRoleList"},
			{Name: "content_set_roles", Class: "ContentSetRoleList"},
		},
		StrAttrs: []string{"id", "name"},
	})
	s.Add(&Class{
		Name: "UserList", APIName: "users", Kind: KindList,
		ItemAttr: "user", ItemClass: "User",
	})
	s.Add(&Class{
		Name: "UserRole", APIName: "role", Kind: KindItem, ListClass: "UserRoleList",
		Attrs:    []Attr{{Name: "id", Scalar: TypeInt}, {Name: "name", Scalar: TypeString}},
		StrAttrs: []string{"id", "name"},
	})
	s.Add(&Class{
		Name: "UserRoleList", APIName: "roles", Kind: KindList,
		ItemAttr: "role", ItemClass: "UserRole",
	})
	s.Add(&Class{
		Name: "ContentSetRole", APIName: "content_set_role", Kind: KindItem, ListClass: "ContentSetRoleList",
		Attrs: []Attr{
			{Name: "id", Scalar: TypeInt},
			{Name: "name", Scalar: TypeString},
			{Name: "description", Scalar: TypeString},
		},
		StrAttrs: []string{"id", "name"},
	})
	s.Add(&Class{
		Name: "ContentSetRoleList", APIName: "content_set_roles", Kind: KindList,
		ItemAttr: "content_set_role", ItemClass: "ContentSetRole",
	})
	s.Add(&Class{
		Name: "Question", APIName: "question", Kind: KindItem,
		Attrs: []Attr{
			{Name: "id", Scalar: TypeInt},
			{Name: "selects", Class: "SelectList"},
		},
		StrAttrs: []string{"id"},
	})
	s.Add(&Class{
		Name: "Select", APIName: "select", Kind: KindItem, ListClass: "SelectList",
		Attrs: []Attr{{Name: "sensor", Class: "Sensor"}},
	})
	s.Add(&Class{
		Name: "SelectList", APIName: "selects", Kind: KindList,
		ItemAttr: "select", ItemClass: "Select",
	})
	s.Add(&Class{
		Name: "Sensor", APIName: "sensor", Kind: KindItem,
		Attrs:    []Attr{{Name: "id", Scalar: TypeInt}, {Name: "name", Scalar: TypeString}},
		StrAttrs: []string{"id", "name"},
	})
	s.Add(&Class{
		Name: "ComputerIdList", APIName: "computer_id_list", Kind: KindList,
		ItemAttr: "id", ItemScalar: TypeInt,
	})
	s.Add(&Class{
		Name: "RowValue", APIName: "v", Kind: KindItem,
		Attrs:      []Attr{{Name: "h", Scalar: TypeInt}, {Name: "text", Scalar: TypeString}},
		Aliases:    map[string]string{"hash": "h", "value": "text"},
		ScalarAttr: "text",
	})
	s.Add(&Class{
		Name: "RowColumn", APIName: "c", Kind: KindList,
		ItemAttr: "v", ItemClass: "RowValue",
	})

	require.NoError(t, s.Validate())
	return s
}

func TestSchema_Validate(t *testing.T) {
	t.Run("unknown complex class", func(t *testing.T) {
		s := NewSchema(nil)
		s.Add(&Class{Name: "A", APIName: "a", Attrs: []Attr{{Name: "b", Class: "B"}}})
		assert.ErrorIs(t, s.Validate(), ErrModel)
	})

	t.Run("list without item attr", func(t *testing.T) {
		s := NewSchema(nil)
		s.Add(&Class{Name: "AList", APIName: "as", Kind: KindList, ItemScalar: TypeInt})
		assert.ErrorIs(t, s.Validate(), ErrModel)
	})

	t.Run("valid", func(t *testing.T) {
		s := testSchema(t)
		assert.Len(t, s.Classes(), 13)
		assert.Equal(t, "ComputerIdList", s.Names()[0])
	})
}

func TestClass_Attr(t *testing.T) {
	s := testSchema(t)
	rv := s.MustClass("RowValue")

	a, ok := rv.Attr("hash")
	require.True(t, ok)
	assert.Equal(t, "h", a.Name)
	assert.True(t, a.Simple())

	_, ok = rv.Attr("nope")
	assert.False(t, ok)

	user := s.MustClass("User")
	user.SetAttr(Attr{Name: "floatilla", Scalar: TypeFloat})
	assert.Contains(t, user.AttrNames(), "floatilla")
	assert.Equal(t, "UserList", user.ListCls().Name)
	assert.Equal(t, "User", s.MustClass("UserList").ItemCls().Name)
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		typ     ScalarType
		in      any
		want    any
		wantErr bool
	}{
		{"int from string", TypeInt, "1", int64(1), false},
		{"int from int", TypeInt, 1, int64(1), false},
		{"int from bool", TypeInt, true, int64(1), false},
		{"int from whole float", TypeInt, 3.0, int64(3), false},
		{"int from fraction", TypeInt, 3.5, nil, true},
		{"int from word", TypeInt, "abc", nil, true},
		{"float from string", TypeFloat, "0.3", 0.3, false},
		{"float from int", TypeFloat, 2, 2.0, false},
		{"float from word", TypeFloat, "abc", nil, true},
		{"string from int", TypeString, 123, "123", false},
		{"string from float", TypeString, 0.5, "0.5", false},
		{"string from map", TypeString, map[string]any{}, nil, true},
		{"string from slice", TypeString, []any{}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.typ, tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
