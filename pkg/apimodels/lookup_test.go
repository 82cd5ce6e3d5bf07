package apimodels

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_GetItemByAttr(t *testing.T) {
	tests := []struct {
		name    string
		match   Match
		wantID  int64
		wantErr bool
	}{
		{"default attr", Match{Value: "boom4"}, 4, false},
		{"id attr", Match{Attr: "id", Value: 3}, 3, false},
		{"no match", Match{Value: "boom5"}, 0, true},
		{"wrong type", Match{Value: 4}, 0, true},
		{"regex", Match{Value: ".*4", Regex: true}, 4, false},
		{"regex on int", Match{Attr: "id", Value: ".*4", Regex: true}, 4, false},
		{"regex too many", Match{Value: "boom.*", Regex: true}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cls, items := usersFixture(t)
			l := cls.MustNewList(items[0], items[1], items[2], items[3])

			got, err := l.GetItemByAttr(tt.match)
			if tt.wantErr {
				var single *GetSingleItemError
				require.True(t, errors.As(err, &single))
				assert.ErrorIs(t, err, ErrModel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.Get("id"))
			assert.Equal(t, 4, l.Len())
		})
	}
}

func TestList_PopItemByAttr(t *testing.T) {
	tests := []struct {
		name    string
		match   Match
		wantID  int64
		wantErr bool
	}{
		{"default attr", Match{Value: "boom4"}, 4, false},
		{"id attr", Match{Attr: "id", Value: 3}, 3, false},
		{"no match", Match{Value: "boom5"}, 0, true},
		{"wrong type", Match{Value: 4}, 0, true},
		{"regex", Match{Value: ".*4", Regex: true}, 4, false},
		{"regex too many", Match{Value: "boom.*", Regex: true}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cls, items := usersFixture(t)
			l := cls.MustNewList(items[0], items[1], items[2], items[3])

			got, err := l.PopItemByAttr(tt.match)
			if tt.wantErr {
				var single *GetSingleItemError
				require.True(t, errors.As(err, &single))
				assert.Equal(t, 4, l.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.Get("id"))
			assert.Equal(t, 3, l.Len())
			assert.False(t, l.Contains(got))
		})
	}
}

func TestList_GetItemsByAttr(t *testing.T) {
	tests := []struct {
		name    string
		match   Match
		wantIDs []int64
	}{
		{"one", Match{Value: "boom4"}, []int64{4}},
		{"none", Match{Value: "boom5"}, []int64{}},
		{"regex", Match{Value: "boom[34]", Regex: true}, []int64{3, 4}},
		{"regex none", Match{Value: "boom[56]", Regex: true}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cls, items := usersFixture(t)
			l := cls.MustNewList(items[0], items[1], items[2], items[3])

			found, err := l.GetItemsByAttr(tt.match)
			require.NoError(t, err)
			ids := make([]int64, 0, len(found))
			for _, it := range found {
				ids = append(ids, it.Get("id").(int64))
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, 4, l.Len())

			asList, err := l.GetItemsByAttrList(tt.match)
			require.NoError(t, err)
			assert.Equal(t, "UserList", asList.Class().Name)
			assert.Equal(t, len(tt.wantIDs), asList.Len())
		})
	}
}

func TestList_PopItemsByAttr(t *testing.T) {
	tests := []struct {
		name    string
		match   Match
		wantIDs []int64
	}{
		{"one", Match{Value: "boom4"}, []int64{4}},
		{"none", Match{Value: "boom5"}, []int64{}},
		{"regex", Match{Value: "boom[34]", Regex: true}, []int64{3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cls, items := usersFixture(t)
			l := cls.MustNewList(items[0], items[1], items[2], items[3])

			found, err := l.PopItemsByAttr(tt.match)
			require.NoError(t, err)
			require.Len(t, found, len(tt.wantIDs))
			for i, it := range found {
				assert.Equal(t, tt.wantIDs[i], it.Get("id"))
				assert.False(t, l.Contains(it))
			}
			assert.Equal(t, 4-len(tt.wantIDs), l.Len())
		})
	}

	t.Run("as list", func(t *testing.T) {
		_, cls, items := usersFixture(t)
		l := cls.MustNewList(items[0], items[1], items[2], items[3])
		found, err := l.PopItemsByAttrList(Match{Value: "boom[12]", Regex: true})
		require.NoError(t, err)
		assert.Equal(t, 2, found.Len())
		assert.Equal(t, 2, l.Len())
		assert.False(t, l.Contains(found.ItemAt(0)))
	})
}

func TestList_BadPattern(t *testing.T) {
	_, cls, items := usersFixture(t)
	l := cls.MustNewList(items[0])
	_, err := l.GetItemsByAttr(Match{Value: "(", Regex: true})
	assert.ErrorIs(t, err, ErrModel)
}

func TestList_Sort(t *testing.T) {
	newList := func(t *testing.T) (*List, []*Item) {
		s := testSchema(t)
		user := s.MustClass("User")
		items := []*Item{
			user.MustNewItem(map[string]any{"id": 7, "name": "abc1"}),
			user.MustNewItem(map[string]any{"id": 4, "name": "mno"}),
			user.MustNewItem(map[string]any{"id": 10, "name": "wxy"}),
			user.MustNewItem(map[string]any{"id": 1, "name": "abc2"}),
		}
		return s.MustClass("UserList").MustNewList(items[0], items[1], items[2], items[3]), items
	}

	tests := []struct {
		name  string
		sort  func(l *List)
		order []int
	}{
		{"id", func(l *List) { l.Sort(false) }, []int{3, 1, 0, 2}},
		{"id reverse", func(l *List) { l.Sort(true) }, []int{2, 0, 1, 3}},
		{"name", func(l *List) { l.SortBy("name", false) }, []int{0, 3, 1, 2}},
		{"name reverse", func(l *List) { l.SortBy("name", true) }, []int{2, 1, 3, 0}},
		{"func", func(l *List) {
			l.SortFunc(func(a, b any) int {
				return compareValues(a.(*Item).Get("name"), b.(*Item).Get("name"))
			})
		}, []int{0, 3, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, items := newList(t)
			tt.sort(l)
			for pos, idx := range tt.order {
				assert.Same(t, items[idx], l.ItemAt(pos))
			}
		})
	}
}
