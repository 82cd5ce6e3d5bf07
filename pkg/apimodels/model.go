package apimodels

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Model is implemented by *Item and *List.
type Model interface {
	Class() *Class
	Get(name string) any
	Set(name string, v any) error
	Len() int
	APIAttrs() []string
	Warnings() []*AttrUndefinedWarning
	Equal(other any) bool
	Serialize(opts SerializeOptions) any
	MarshalJSON() ([]byte, error)
	Copy() Model
	DeepCopy() Model
	String() string
	GoString() string

	serialize(opts SerializeOptions) any
}

// Construct builds an instance of c from v.
//
// Items accept a map of attributes, an existing item of the same class, or a
// scalar when the class declares a ScalarAttr. Lists accept a slice of
// elements, a map of attributes (the item attribute holding the elements), or
// a single element, which covers wire formats that drop the wrapping array
// for one-element lists.
func (c *Class) Construct(v any) (Model, error) {
	if c.Kind == KindList {
		return c.constructList(v)
	}
	return c.constructItem(v)
}

func (c *Class) constructItem(v any) (*Item, error) {
	switch t := v.(type) {
	case nil:
		return c.NewItem(nil)
	case *Item:
		if t.cls.Name == c.Name {
			return t, nil
		}
		return nil, fmt.Errorf("%w: %s can not hold a %s", ErrModel, c.Name, t.cls.Name)
	case *List:
		return nil, fmt.Errorf("%w: %s can not hold a %s", ErrModel, c.Name, t.cls.Name)
	case map[string]any:
		return c.NewItem(t)
	}

	if m, ok := toStringMap(v); ok {
		return c.NewItem(m)
	}
	if c.ScalarAttr != "" && !isComplex(v) {
		return c.NewItem(map[string]any{c.ScalarAttr: v})
	}
	return nil, fmt.Errorf("%w: unable to build %s from %T", ErrModel, c.Name, v)
}

func (c *Class) constructList(v any) (*List, error) {
	switch t := v.(type) {
	case nil:
		return c.NewList(nil, nil)
	case *List:
		if t.cls.Name == c.Name {
			return t, nil
		}
		return nil, fmt.Errorf("%w: %s can not hold a %s", ErrModel, c.Name, t.cls.Name)
	case []any:
		return c.NewList(t, nil)
	case *Item:
		return c.NewList([]any{t}, nil)
	}

	if m, ok := toStringMap(v); ok {
		if c.isListAttrMap(m) {
			return c.NewList(nil, m)
		}
		return c.NewList([]any{m}, nil)
	}
	if s, ok := toSlice(v); ok {
		return c.NewList(s, nil)
	}
	return c.NewList([]any{v}, nil)
}

// isListAttrMap reports whether m addresses the list itself rather than
// being a lone element.
func (c *Class) isListAttrMap(m map[string]any) bool {
	if len(m) == 0 {
		return true
	}
	for key := range m {
		if key == c.ItemAttr {
			return true
		}
		if _, ok := c.Attr(key); ok {
			return true
		}
	}
	return false
}

func toStringMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func toSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func formatValue(v any, full bool) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(t)
	case Model:
		if full {
			return t.GoString()
		}
		return t.String()
	}
	return fmt.Sprint(v)
}

func formatAttrs(f *fields, names []string, full bool) string {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+formatValue(f.get(name), full))
	}
	return strings.Join(parts, ", ")
}
