package apimodels

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
)

const regexCacheSize = 256

var regexCache, _ = lru.New[string, *regexp.Regexp](regexCacheSize)

func compileCached(pattern string) (*regexp.Regexp, error) {
	if re, ok := regexCache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	regexCache.Add(pattern, re)
	return re, nil
}

// Match selects list items by the value of one attribute.
type Match struct {
	// Attr defaults to "name".
	Attr string

	// Value is compared to the attribute after numeric normalization, so
	// 4 never matches "4". With Regex set it is a pattern searched for in
	// the attribute's string form.
	Value any
	Regex bool
}

func (m Match) attr() string {
	if m.Attr == "" {
		return "name"
	}
	return m.Attr
}

type matcher func(*Item) bool

func (m Match) compile() (matcher, error) {
	attr := m.attr()
	if !m.Regex {
		want := normalize(m.Value)
		return func(it *Item) bool {
			have := it.Get(attr)
			if have == nil || want == nil {
				return have == want
			}
			return valuesEqual(have, want)
		}, nil
	}

	re, err := compileCached(fmt.Sprint(m.Value))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pattern %v: %s", ErrModel, m.Value, err)
	}
	return func(it *Item) bool {
		have := it.Get(attr)
		if have == nil {
			return false
		}
		return re.MatchString(fmt.Sprint(have))
	}, nil
}

func (l *List) matching(m Match) ([]int, error) {
	match, err := m.compile()
	if err != nil {
		return nil, err
	}
	var idx []int
	for i, v := range l.items {
		if it, ok := v.(*Item); ok && match(it) {
			idx = append(idx, i)
		}
	}
	return idx, nil
}

// GetItemsByAttr returns every item matching m.
func (l *List) GetItemsByAttr(m Match) ([]*Item, error) {
	idx, err := l.matching(m)
	if err != nil {
		return nil, err
	}
	out := make([]*Item, 0, len(idx))
	for _, i := range idx {
		out = append(out, l.items[i].(*Item))
	}
	return out, nil
}

// GetItemsByAttrList is like GetItemsByAttr but returns a list of the same
// class.
func (l *List) GetItemsByAttrList(m Match) (*List, error) {
	found, err := l.GetItemsByAttr(m)
	if err != nil {
		return nil, err
	}
	return l.withItems(found), nil
}

// GetItemByAttr returns the only item matching m, or a *GetSingleItemError.
func (l *List) GetItemByAttr(m Match) (*Item, error) {
	found, err := l.GetItemsByAttr(m)
	if err != nil {
		return nil, err
	}
	if len(found) != 1 {
		return nil, &GetSingleItemError{Class: l.cls.Name, Match: m, Found: len(found)}
	}
	return found[0], nil
}

// PopItemsByAttr removes and returns every item matching m.
func (l *List) PopItemsByAttr(m Match) ([]*Item, error) {
	idx, err := l.matching(m)
	if err != nil {
		return nil, err
	}
	out := make([]*Item, 0, len(idx))
	for _, i := range idx {
		out = append(out, l.items[i].(*Item))
	}
	for n := len(idx) - 1; n >= 0; n-- {
		l.items = slices.Delete(l.items, idx[n], idx[n]+1)
	}
	return out, nil
}

// PopItemsByAttrList is like PopItemsByAttr but returns a list of the same
// class.
func (l *List) PopItemsByAttrList(m Match) (*List, error) {
	found, err := l.PopItemsByAttr(m)
	if err != nil {
		return nil, err
	}
	return l.withItems(found), nil
}

// PopItemByAttr removes and returns the only item matching m. The list is
// left untouched when the match count is not one.
func (l *List) PopItemByAttr(m Match) (*Item, error) {
	idx, err := l.matching(m)
	if err != nil {
		return nil, err
	}
	if len(idx) != 1 {
		return nil, &GetSingleItemError{Class: l.cls.Name, Match: m, Found: len(idx)}
	}
	it := l.items[idx[0]].(*Item)
	l.items = slices.Delete(l.items, idx[0], idx[0]+1)
	return it, nil
}

func (l *List) withItems(items []*Item) *List {
	out := &List{fields: newFields(l.cls), items: make([]any, len(items))}
	for i, it := range items {
		out.items[i] = it
	}
	return out
}

// Sort orders the elements by their "id" attribute. Lists of scalars are
// sorted by value.
func (l *List) Sort(reverse bool) { l.SortBy("id", reverse) }

// SortBy orders the elements by attr. Unset values sort first. The sort is
// stable.
func (l *List) SortBy(attr string, reverse bool) {
	key := func(v any) any {
		if it, ok := v.(*Item); ok {
			return it.Get(attr)
		}
		return v
	}
	l.SortFunc(func(a, b any) int {
		c := compareValues(key(a), key(b))
		if reverse {
			return -c
		}
		return c
	})
}

// SortFunc orders the elements with a comparison function returning a
// negative number when a sorts before b. The sort is stable.
func (l *List) SortFunc(fn func(a, b any) int) {
	slices.SortStableFunc(l.items, fn)
}

func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	a, b = normalize(a), normalize(b)
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			return cmp.Compare(fa, fb)
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
