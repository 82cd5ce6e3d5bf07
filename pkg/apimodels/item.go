package apimodels

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Item is an instance of an item class.
type Item struct {
	fields
}

// NewItem builds an item of class c from attrs. Keys may be attribute names
// or aliases; values are coerced as by Set.
func (c *Class) NewItem(attrs map[string]any) (*Item, error) {
	if c.Kind != KindItem {
		return nil, fmt.Errorf("%w: %s is not an item class", ErrModel, c.Name)
	}
	it := &Item{fields: newFields(c)}
	if err := it.setMap(attrs, ""); err != nil {
		return nil, err
	}
	return it, nil
}

// MustNewItem is like NewItem but panics on error.
func (c *Class) MustNewItem(attrs map[string]any) *Item {
	it, err := c.NewItem(attrs)
	if err != nil {
		panic(err)
	}
	return it
}

// Class returns the class of the item.
func (i *Item) Class() *Class { return i.cls }

// Get returns the value of an attribute, or nil when unset.
func (i *Item) Get(name string) any { return i.get(name) }

// Set assigns an attribute, coercing v to the declared type. A nil v unsets
// the attribute.
func (i *Item) Set(name string, v any) error { return i.set(name, v) }

// Int returns an int attribute.
func (i *Item) Int(name string) (int64, bool) {
	v, ok := i.get(name).(int64)
	return v, ok
}

// Float returns a float attribute.
func (i *Item) Float(name string) (float64, bool) {
	v, ok := i.get(name).(float64)
	return v, ok
}

// Str returns a string attribute.
func (i *Item) Str(name string) (string, bool) {
	v, ok := i.get(name).(string)
	return v, ok
}

// Item returns a nested item attribute.
func (i *Item) Item(name string) *Item {
	v, _ := i.get(name).(*Item)
	return v
}

// List returns a nested list attribute.
func (i *Item) List(name string) *List {
	v, _ := i.get(name).(*List)
	return v
}

// Len returns the number of set attributes.
func (i *Item) Len() int { return len(i.values) }

// APIAttrs returns the names of the set declared attributes. Undeclared
// attributes are still serialized but never listed here.
func (i *Item) APIAttrs() []string { return i.declaredNames() }

// Warnings returns the undefined attribute warnings raised on this instance.
func (i *Item) Warnings() []*AttrUndefinedWarning { return i.warnings }

// Equal reports whether other is an item of the same class with equal
// attributes.
func (i *Item) Equal(other any) bool {
	o, ok := other.(*Item)
	if !ok {
		if m, isMap := toStringMap(other); isMap && other != nil {
			built, err := i.cls.NewItem(m)
			if err != nil {
				return false
			}
			o = built
		} else {
			return false
		}
	}
	if i == o {
		return true
	}
	return o.cls.Name == i.cls.Name && i.equal(&o.fields)
}

// Copy returns a shallow copy; nested models are shared.
func (i *Item) Copy() Model {
	c := &Item{}
	c.copyFrom(&i.fields, false)
	return c
}

// DeepCopy returns a copy with nested models duplicated.
func (i *Item) DeepCopy() Model {
	c := &Item{}
	c.copyFrom(&i.fields, true)
	return c
}

// Decode copies the item's attributes into out, which is typically a pointer
// to a struct with `api` tags.
func (i *Item) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "api",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("%w: %s", ErrModel, err)
	}
	src := i.Serialize(SerializeOptions{NoWrapName: true, NoWrapItemAttr: true})
	if err := dec.Decode(src); err != nil {
		return fmt.Errorf("%w: decoding %s: %s", ErrModel, i.cls.Name, err)
	}
	return nil
}

// String shows the display attributes.
func (i *Item) String() string {
	return fmt.Sprintf("%s(%s)", i.cls.Name, formatAttrs(&i.fields, i.cls.StrAttrs, false))
}

// GoString shows every attribute.
func (i *Item) GoString() string {
	return fmt.Sprintf("%s(%s)", i.cls.Name, formatAttrs(&i.fields, i.allNames(), true))
}
