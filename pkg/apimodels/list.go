package apimodels

import (
	"fmt"
	"slices"
	"strings"
)

// List is an instance of a list class: an ordered set of elements plus the
// list's own attributes.
type List struct {
	fields
	items []any
}

// NewList builds a list of class c. Elements come from items and from the
// item attribute key of attrs, which may hold nil, a slice or a single
// element. The remaining keys of attrs set list attributes.
func (c *Class) NewList(items []any, attrs map[string]any) (*List, error) {
	if c.Kind != KindList {
		return nil, fmt.Errorf("%w: %s is not a list class", ErrModel, c.Name)
	}
	l := &List{fields: newFields(c)}
	if err := l.setMap(attrs, c.ItemAttr); err != nil {
		return nil, err
	}
	if v, ok := attrs[c.ItemAttr]; ok && v != nil {
		if err := l.extendAny(v); err != nil {
			return nil, err
		}
	}
	for _, v := range items {
		if err := l.Append(v); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// MustNewList is like NewList but panics on error.
func (c *Class) MustNewList(items ...any) *List {
	l, err := c.NewList(items, nil)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *List) extendAny(v any) error {
	if s, ok := toSlice(v); ok {
		for _, e := range s {
			if err := l.Append(e); err != nil {
				return err
			}
		}
		return nil
	}
	return l.Append(v)
}

// Class returns the class of the list.
func (l *List) Class() *Class { return l.cls }

// Get returns a list attribute.
func (l *List) Get(name string) any { return l.get(name) }

// Set assigns a list attribute.
func (l *List) Set(name string, v any) error { return l.set(name, v) }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// APIAttrs returns the names of the set declared list attributes.
func (l *List) APIAttrs() []string { return l.declaredNames() }

// Warnings returns the undefined attribute warnings raised on this instance.
func (l *List) Warnings() []*AttrUndefinedWarning { return l.warnings }

// Items returns the elements. The slice is shared with the list.
func (l *List) Items() []any { return l.items }

// Index returns the element at i. Negative values count from the end.
func (l *List) Index(i int) any {
	i, ok := l.index(i)
	if !ok {
		return nil
	}
	return l.items[i]
}

// ItemAt returns the element at i as an item, or nil.
func (l *List) ItemAt(i int) *Item {
	it, _ := l.Index(i).(*Item)
	return it
}

// ListAt returns the element at i as a list, or nil. Lists whose elements
// are lists, such as a row's columns, use it.
func (l *List) ListAt(i int) *List {
	sub, _ := l.Index(i).(*List)
	return sub
}

// ItemsOf returns the elements that are items.
func (l *List) ItemsOf() []*Item {
	out := make([]*Item, 0, len(l.items))
	for _, v := range l.items {
		if it, ok := v.(*Item); ok {
			out = append(out, it)
		}
	}
	return out
}

func (l *List) index(i int) (int, bool) {
	if i < 0 {
		i += len(l.items)
	}
	return i, i >= 0 && i < len(l.items)
}

func (l *List) coerceElem(v any) (any, error) {
	if l.cls.ItemScalar != 0 {
		cv, err := Coerce(l.cls.ItemScalar, v)
		if err != nil {
			return nil, &ListItemTypeError{Class: l.cls.Name, Want: l.cls.ItemScalar.String(), Value: v, Err: err}
		}
		return cv, nil
	}
	ic := l.cls.ItemCls()
	if ic == nil {
		return nil, &ListItemTypeError{Class: l.cls.Name, Want: l.cls.ItemClass, Value: v}
	}
	m, err := ic.Construct(v)
	if err != nil {
		return nil, &ListItemTypeError{Class: l.cls.Name, Want: ic.Name, Value: v, Err: err}
	}
	return m, nil
}

// Append coerces v to the element type and adds it.
func (l *List) Append(v any) error {
	e, err := l.coerceElem(v)
	if err != nil {
		return err
	}
	l.items = append(l.items, e)
	return nil
}

// Contains reports whether an element equal to v is present. Values that
// cannot be coerced to the element type are never present.
func (l *List) Contains(v any) bool {
	return l.find(v) >= 0
}

func (l *List) find(v any) int {
	e, err := l.coerceElem(v)
	if err != nil {
		return -1
	}
	for i, have := range l.items {
		if valuesEqual(have, e) {
			return i
		}
	}
	return -1
}

// Remove deletes the first element equal to v.
func (l *List) Remove(v any) error {
	i := l.find(v)
	if i < 0 {
		return fmt.Errorf("%w: %s does not contain %v", ErrModel, l.cls.Name, v)
	}
	l.items = slices.Delete(l.items, i, i+1)
	return nil
}

// Pop removes and returns the element at i. Negative values count from the
// end, so Pop(-1) removes the last element.
func (l *List) Pop(i int) (any, error) {
	idx, ok := l.index(i)
	if !ok {
		return nil, fmt.Errorf("%w: %s index %d out of range", ErrModel, l.cls.Name, i)
	}
	v := l.items[idx]
	l.items = slices.Delete(l.items, idx, idx+1)
	return v, nil
}

// Reverse reverses the elements in place.
func (l *List) Reverse() { slices.Reverse(l.items) }

func (l *List) others(other any) ([]any, error) {
	switch o := other.(type) {
	case nil:
		return nil, nil
	case *List:
		if o.cls.ItemClass != l.cls.ItemClass || o.cls.ItemScalar != l.cls.ItemScalar {
			return nil, &ListTypeError{Class: l.cls.Name, Other: other}
		}
		return o.items, nil
	case Model:
		return nil, &ListTypeError{Class: l.cls.Name, Other: other}
	}
	s, ok := toSlice(other)
	if !ok {
		return nil, &ListTypeError{Class: l.cls.Name, Other: other}
	}
	return s, nil
}

// Add returns a new list holding the elements of l followed by other, which
// may be a list with the same element type, a slice, or nil.
func (l *List) Add(other any) (*List, error) {
	more, err := l.others(other)
	if err != nil {
		return nil, err
	}
	out := l.Copy().(*List)
	for _, v := range more {
		if err := out.Append(v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Extend appends the elements of other in place. other follows the rules of
// Add.
func (l *List) Extend(other any) error {
	more, err := l.others(other)
	if err != nil {
		return err
	}
	coerced := make([]any, 0, len(more))
	for _, v := range more {
		e, err := l.coerceElem(v)
		if err != nil {
			return err
		}
		coerced = append(coerced, e)
	}
	l.items = append(l.items, coerced...)
	return nil
}

// Equal compares elements in order. other may be a list or a slice of values
// coercible to the element type.
func (l *List) Equal(other any) bool {
	var items []any
	switch o := other.(type) {
	case *List:
		if l == o {
			return true
		}
		items = o.items
	case Model, nil:
		return false
	default:
		s, ok := toSlice(other)
		if !ok {
			return false
		}
		items = s
	}
	if len(items) != len(l.items) {
		return false
	}
	for i, v := range items {
		if _, isModel := v.(Model); !isModel {
			e, err := l.coerceElem(v)
			if err != nil {
				return false
			}
			v = e
		}
		if !valuesEqual(l.items[i], v) {
			return false
		}
	}
	return true
}

// Copy returns a new list sharing the elements.
func (l *List) Copy() Model {
	c := &List{items: slices.Clone(l.items)}
	c.copyFrom(&l.fields, false)
	return c
}

// DeepCopy returns a new list with every element duplicated.
func (l *List) DeepCopy() Model {
	c := &List{items: make([]any, len(l.items))}
	c.copyFrom(&l.fields, true)
	for i, v := range l.items {
		if m, ok := v.(Model); ok {
			v = m.DeepCopy()
		}
		c.items[i] = v
	}
	return c
}

// String shows the set list attributes and the element count.
func (l *List) String() string {
	attrs := formatAttrs(&l.fields, l.names(), false)
	if attrs != "" {
		attrs += ", "
	}
	return fmt.Sprintf("%s(%swith %d %s objects)", l.cls.Name, attrs, len(l.items), l.cls.ItemTypeName())
}

// GoString shows every list attribute and every element.
func (l *List) GoString() string {
	elems := make([]string, len(l.items))
	for i, v := range l.items {
		elems[i] = formatValue(v, true)
	}
	parts := []string{l.cls.ItemAttr + "=[" + strings.Join(elems, ", ") + "]"}
	if attrs := formatAttrs(&l.fields, l.allNames(), true); attrs != "" {
		parts = append(parts, attrs)
	}
	return fmt.Sprintf("%s(%s)", l.cls.Name, strings.Join(parts, ", "))
}
