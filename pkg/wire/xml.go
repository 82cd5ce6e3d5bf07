package wire

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// TextKey holds an element's text when the element also has attributes or
// children.
const TextKey = "text"

// DecodeOptions control DecodeXML.
type DecodeOptions struct {
	// TryInt converts element and attribute text that parses as a base 10
	// integer into an int64.
	TryInt bool
}

type frame struct {
	name string
	item map[string]any
	data strings.Builder
}

// DecodeXML turns an XML document into nested maps. Attributes become keys
// with no prefix, text goes under TextKey, repeated children become []any,
// and elements with no content become nil. Namespace prefixes are kept as
// part of the key, e.g. "soap:Envelope".
func DecodeXML(text string, opts DecodeOptions) (map[string]any, error) {
	dec := xml.NewDecoder(strings.NewReader(text))

	var (
		stack []*frame
		root  map[string]any
	)
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil {
				return nil, fmt.Errorf("junk after document element <%s>", qname(t.Name))
			}
			f := &frame{name: qname(t.Name)}
			for _, a := range t.Attr {
				if f.item == nil {
					f.item = make(map[string]any)
				}
				f.item[qname(a.Name)] = opts.value(a.Value)
			}
			stack = append(stack, f)

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].data.Write(t)
			} else if len(bytes.TrimSpace(t)) > 0 {
				return nil, errors.New("text outside of document element")
			}

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected end element </%s>", qname(t.Name))
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if f.name != qname(t.Name) {
				return nil, fmt.Errorf("element <%s> closed by </%s>", f.name, qname(t.Name))
			}

			v := f.value(opts)
			if len(stack) == 0 {
				root = map[string]any{f.name: v}
				continue
			}
			parent := stack[len(stack)-1]
			if parent.item == nil {
				parent.item = make(map[string]any)
			}
			push(parent.item, f.name, v)
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("unclosed element <%s>", stack[len(stack)-1].name)
	}
	if root == nil {
		return nil, errors.New("no document element")
	}
	return root, nil
}

func (f *frame) value(opts DecodeOptions) any {
	data := strings.TrimSpace(f.data.String())
	if f.item == nil {
		if data == "" {
			return nil
		}
		return opts.value(data)
	}
	if data != "" {
		push(f.item, TextKey, opts.value(data))
	}
	return f.item
}

func (o DecodeOptions) value(s string) any {
	if o.TryInt {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	}
	return s
}

func push(m map[string]any, key string, v any) {
	prev, ok := m[key]
	if !ok {
		m[key] = v
		return
	}
	if list, isList := prev.([]any); isList {
		m[key] = append(list, v)
		return
	}
	m[key] = []any{prev, v}
}

func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// EncodeOptions control EncodeXML.
type EncodeOptions struct {
	// FullDocument prepends the XML declaration.
	FullDocument bool

	// Pretty indents nested elements with tabs.
	Pretty bool
}

// EncodeXML is the reverse of DecodeXML for request bodies. Keys starting
// with "@" become attributes and "#text" becomes character data. Slices
// repeat their tag and nil values become empty elements. Keys are written in
// sorted order. The tree must have exactly one root key.
func EncodeXML(tree map[string]any, opts EncodeOptions) (string, error) {
	if len(tree) != 1 {
		return "", fmt.Errorf("document must have exactly one root, got %d", len(tree))
	}
	var b strings.Builder
	if opts.FullDocument {
		b.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
		b.WriteString("\n")
	}
	for name, v := range tree {
		if err := encodeElement(&b, name, v, 0, opts.Pretty); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func encodeElement(b *strings.Builder, name string, v any, depth int, pretty bool) error {
	if list, ok := v.([]any); ok {
		for _, e := range list {
			if err := encodeElement(b, name, e, depth, pretty); err != nil {
				return err
			}
		}
		return nil
	}
	if strs, ok := v.([]string); ok {
		for _, e := range strs {
			if err := encodeElement(b, name, e, depth, pretty); err != nil {
				return err
			}
		}
		return nil
	}

	indent := func(d int) {
		if pretty {
			b.WriteString(strings.Repeat("\t", d))
		}
	}
	newline := func() {
		if pretty {
			b.WriteString("\n")
		}
	}

	indent(depth)
	b.WriteString("<" + name)

	m, isMap := v.(map[string]any)
	if !isMap {
		b.WriteString(">")
		if err := escape(b, v); err != nil {
			return fmt.Errorf("element <%s>: %w", name, err)
		}
		b.WriteString("</" + name + ">")
		newline()
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var children []string
	for _, k := range keys {
		if !strings.HasPrefix(k, "@") {
			if k != "#text" {
				children = append(children, k)
			}
			continue
		}
		b.WriteString(" " + k[1:] + `="`)
		if err := escape(b, m[k]); err != nil {
			return fmt.Errorf("attribute %s of <%s>: %w", k[1:], name, err)
		}
		b.WriteString(`"`)
	}
	b.WriteString(">")

	if text, ok := m["#text"]; ok {
		if err := escape(b, text); err != nil {
			return fmt.Errorf("element <%s>: %w", name, err)
		}
	}
	if len(children) > 0 {
		newline()
		for _, k := range children {
			if err := encodeElement(b, k, m[k], depth+1, pretty); err != nil {
				return err
			}
		}
		indent(depth)
	}
	b.WriteString("</" + name + ">")
	newline()
	return nil
}

func escape(b *strings.Builder, v any) error {
	var s string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s = t
	case bool:
		s = strconv.FormatBool(t)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		s = fmt.Sprint(t)
	case float32:
		s = strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		s = t.String()
	default:
		return fmt.Errorf("can not encode %T as text", v)
	}
	return xml.EscapeText(b, []byte(s))
}
