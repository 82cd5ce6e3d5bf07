package apimodels

import (
	"bytes"
	"slices"

	"github.com/goccy/go-json"
)

// SerializeOptions controls Serialize. The zero value wraps items in their
// API name and list elements in their item attribute.
type SerializeOptions struct {
	// OnlyAttrs limits output to these attributes, at every level.
	OnlyAttrs []string

	// ExcludeAttrs drops these attributes, at every level.
	ExcludeAttrs []string

	// Empty includes unset declared attributes as nil.
	Empty bool

	// NoWrapName leaves out the outer {api_name: ...} wrapper.
	NoWrapName bool

	// NoWrapItemAttr renders list elements as a bare slice instead of
	// {item_attr: [...]}.
	NoWrapItemAttr bool

	// ListAttrs includes the list's own attributes next to its elements.
	ListAttrs bool
}

func (o SerializeOptions) keep(name string) bool {
	if len(o.OnlyAttrs) > 0 && !slices.Contains(o.OnlyAttrs, name) {
		return false
	}
	return !slices.Contains(o.ExcludeAttrs, name)
}

// orderedMap is a JSON object that keeps insertion order.
type orderedMap struct {
	keys []string
	vals map[string]any
}

func newOrderedMap() *orderedMap {
	return &orderedMap{vals: make(map[string]any)}
}

func (m *orderedMap) set(key string, v any) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

func (m *orderedMap) merge(o *orderedMap) {
	for _, k := range o.keys {
		m.set(k, o.vals[k])
	}
}

func (m *orderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// plain converts an ordered tree into maps and slices.
func plain(v any) any {
	switch t := v.(type) {
	case *orderedMap:
		out := make(map[string]any, len(t.keys))
		for _, k := range t.keys {
			out[k] = plain(t.vals[k])
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	}
	return v
}

func (f *fields) serializeAttrs(opts SerializeOptions) *orderedMap {
	out := newOrderedMap()
	names := f.names()
	if opts.Empty {
		names = f.allNames()
	}
	child := opts
	child.NoWrapName = true
	for _, name := range names {
		if !opts.keep(name) {
			continue
		}
		switch v := f.values[name].(type) {
		case Model:
			out.set(name, v.serialize(child))
		default:
			out.set(name, v)
		}
	}
	return out
}

// Serialize renders the item as maps and slices keyed by wire names.
func (i *Item) Serialize(opts SerializeOptions) any {
	return plain(i.serialize(opts))
}

func (i *Item) serialize(opts SerializeOptions) any {
	body := i.serializeAttrs(opts)
	if opts.NoWrapName {
		return body
	}
	out := newOrderedMap()
	out.set(i.cls.APIName, body)
	return out
}

// MarshalJSON renders Serialize output with keys in declaration order.
func (i *Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.serialize(SerializeOptions{}))
}

// Serialize renders the list as maps and slices keyed by wire names.
func (l *List) Serialize(opts SerializeOptions) any {
	return plain(l.serialize(opts))
}

func (l *List) serialize(opts SerializeOptions) any {
	child := opts
	child.NoWrapName = true
	elems := make([]any, len(l.items))
	for i, v := range l.items {
		if m, ok := v.(Model); ok {
			elems[i] = m.serialize(child)
		} else {
			elems[i] = v
		}
	}

	attrs := newOrderedMap()
	if opts.ListAttrs {
		attrs = l.serializeAttrs(opts)
	}

	var body any = elems
	if !opts.NoWrapItemAttr {
		wrapped := newOrderedMap()
		wrapped.set(l.cls.ItemAttr, elems)
		body = wrapped
	}

	if !opts.NoWrapName {
		attrs.set(l.cls.APIName, body)
		return attrs
	}
	if len(attrs.keys) == 0 {
		return body
	}
	if m, ok := body.(*orderedMap); ok {
		attrs.merge(m)
		return attrs
	}
	attrs.set(l.cls.ItemAttr, elems)
	return attrs
}

// MarshalJSON renders Serialize output with keys in declaration order.
func (l *List) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.serialize(SerializeOptions{}))
}
