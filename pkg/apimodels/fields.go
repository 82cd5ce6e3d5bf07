package apimodels

import (
	"reflect"
	"sort"
)

// fields is the attribute store shared by items and lists.
type fields struct {
	cls      *Class
	values   map[string]any
	extra    []string
	inferred map[string]ScalarType
	warnings []*AttrUndefinedWarning
}

func newFields(cls *Class) fields {
	return fields{cls: cls, values: make(map[string]any)}
}

func (f *fields) get(name string) any {
	name = f.cls.Resolve(name)
	if v, ok := f.values[name]; ok {
		return v
	}
	if v, ok := f.cls.Constants[name]; ok {
		return v
	}
	return nil
}

func (f *fields) attr(name string) (Attr, bool) {
	if a, ok := f.cls.Attr(name); ok {
		return a, true
	}
	if t, ok := f.inferred[name]; ok {
		return Attr{Name: name, Scalar: t}, true
	}
	return Attr{}, false
}

func (f *fields) set(name string, v any) error {
	name = f.cls.Resolve(name)
	if v == nil || isNilPointer(v) {
		f.remove(name)
		return nil
	}

	a, ok := f.attr(name)
	if !ok {
		t, ok := InferType(v)
		if !ok {
			return &AttrUndefinedError{Class: f.cls.Name, Attr: name, Value: v}
		}
		f.warn(name, t)
		a = Attr{Name: name, Scalar: t}
	}

	if a.Simple() {
		cv, err := Coerce(a.Scalar, v)
		if err != nil {
			return &AttrTypeError{Class: f.cls.Name, Attr: name, Value: v, Want: a.Scalar.String(), Err: err}
		}
		f.store(name, cv)
		return nil
	}

	sub, ok := f.cls.schema.Class(a.Class)
	if !ok {
		return &AttrTypeError{Class: f.cls.Name, Attr: name, Value: v, Want: a.Class}
	}
	m, err := sub.Construct(v)
	if err != nil {
		return &AttrTypeError{Class: f.cls.Name, Attr: name, Value: v, Want: a.Class, Err: err}
	}
	f.store(name, m)
	return nil
}

func (f *fields) warn(name string, t ScalarType) {
	if f.inferred == nil {
		f.inferred = make(map[string]ScalarType)
	}
	f.inferred[name] = t
	w := &AttrUndefinedWarning{Class: f.cls.Name, Attr: name, Inferred: t}
	f.warnings = append(f.warnings, w)
	f.cls.logger().Warn("attribute is not defined, inferred type",
		"class", f.cls.Name,
		"attr", name,
		"type", t.String(),
	)
}

func (f *fields) store(name string, v any) {
	if _, ok := f.values[name]; !ok {
		if _, declared := f.cls.Attr(name); !declared {
			f.extra = append(f.extra, name)
		}
	}
	f.values[name] = v
}

func (f *fields) remove(name string) {
	if _, ok := f.values[name]; !ok {
		return
	}
	delete(f.values, name)
	for i, n := range f.extra {
		if n == name {
			f.extra = append(f.extra[:i], f.extra[i+1:]...)
			break
		}
	}
}

// names returns set attribute names: declared order, then undeclared ones in
// assignment order.
func (f *fields) names() []string {
	return append(f.declaredNames(), f.extra...)
}

// declaredNames returns the set attributes the class declares.
func (f *fields) declaredNames() []string {
	out := make([]string, 0, len(f.values))
	for _, a := range f.cls.Attrs {
		if _, ok := f.values[a.Name]; ok {
			out = append(out, a.Name)
		}
	}
	return out
}

// allNames returns every declared name plus the set undeclared ones.
func (f *fields) allNames() []string {
	return append(f.cls.AttrNames(), f.extra...)
}

// setMap assigns every key of attrs: declared attributes in declaration
// order first, then the rest sorted by name.
func (f *fields) setMap(attrs map[string]any, skip string) error {
	done := make(map[string]bool, len(attrs))
	for _, a := range f.cls.Attrs {
		for key, v := range attrs {
			if key == skip || done[key] || f.cls.Resolve(key) != a.Name {
				continue
			}
			done[key] = true
			if err := f.set(key, v); err != nil {
				return err
			}
		}
	}

	rest := make([]string, 0, len(attrs))
	for key := range attrs {
		if key != skip && !done[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		if err := f.set(key, attrs[key]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fields) copyFrom(src *fields, deep bool) {
	f.cls = src.cls
	f.values = make(map[string]any, len(src.values))
	for k, v := range src.values {
		if m, ok := v.(Model); ok && deep {
			v = m.DeepCopy()
		}
		f.values[k] = v
	}
	f.extra = append([]string(nil), src.extra...)
	if src.inferred != nil {
		f.inferred = make(map[string]ScalarType, len(src.inferred))
		for k, v := range src.inferred {
			f.inferred[k] = v
		}
	}
	f.warnings = append([]*AttrUndefinedWarning(nil), src.warnings...)
}

func (f *fields) equal(o *fields) bool {
	if len(f.values) != len(o.values) {
		return false
	}
	for k, v := range f.values {
		ov, ok := o.values[k]
		if !ok || !valuesEqual(v, ov) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	if m, ok := a.(Model); ok {
		return m.Equal(b)
	}
	if _, ok := b.(Model); ok {
		return false
	}
	return normalize(a) == normalize(b)
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
