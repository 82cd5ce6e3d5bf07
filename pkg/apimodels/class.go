package apimodels

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// ScalarType is the declared type of a simple attribute.
type ScalarType int

const (
	TypeString ScalarType = iota + 1
	TypeInt
	TypeFloat
)

func (t ScalarType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	default:
		return fmt.Sprintf("ScalarType(%d)", int(t))
	}
}

// Kind separates item classes from list classes.
type Kind int

const (
	KindItem Kind = iota
	KindList
)

func (k Kind) String() string {
	if k == KindList {
		return "list"
	}
	return "item"
}

// Attr declares one attribute of a class. Exactly one of Scalar or Class is
// set: Scalar for simple attributes, Class (a class name in the same Schema)
// for complex ones.
type Attr struct {
	Name   string
	Scalar ScalarType
	Class  string
}

// Simple reports whether the attribute holds a scalar.
func (a Attr) Simple() bool { return a.Class == "" }

// Class describes an API object type: its wire name, its attributes in
// declaration order and, for lists, what the list holds.
type Class struct {
	Name    string
	APIName string
	Kind    Kind

	// Attrs are kept in declaration order; serialization follows it.
	Attrs []Attr

	// Constants are fixed values returned by Get when the attribute is unset.
	Constants map[string]any

	// StrAttrs are the attributes shown by String.
	StrAttrs []string

	// Aliases map a friendly name onto a declared attribute name.
	Aliases map[string]string

	// ListClass is the name of the list class holding this item class.
	ListClass string

	// ItemAttr is the key the elements of a list live under on the wire.
	ItemAttr string

	// ItemClass names the element class of a list of items. ItemScalar is
	// set instead for lists of scalars.
	ItemClass  string
	ItemScalar ScalarType

	// ScalarAttr lets an item be constructed from a bare scalar, which is
	// stored under this attribute.
	ScalarAttr string

	schema *Schema
}

// Attr looks up a declared attribute, resolving aliases.
func (c *Class) Attr(name string) (Attr, bool) {
	name = c.Resolve(name)
	for _, a := range c.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

// Resolve maps an alias to its attribute name. Unknown names are returned
// unchanged.
func (c *Class) Resolve(name string) string {
	if real, ok := c.Aliases[name]; ok {
		return real
	}
	return name
}

// SetAttr adds a declared attribute, replacing one with the same name.
func (c *Class) SetAttr(a Attr) {
	for i := range c.Attrs {
		if c.Attrs[i].Name == a.Name {
			c.Attrs[i] = a
			return
		}
	}
	c.Attrs = append(c.Attrs, a)
}

// AttrNames returns the declared attribute names in order.
func (c *Class) AttrNames() []string {
	names := make([]string, len(c.Attrs))
	for i, a := range c.Attrs {
		names[i] = a.Name
	}
	return names
}

// Schema returns the schema the class belongs to.
func (c *Class) Schema() *Schema { return c.schema }

// ItemCls returns the element class of a list of items.
func (c *Class) ItemCls() *Class {
	if c.ItemClass == "" || c.schema == nil {
		return nil
	}
	cls, _ := c.schema.Class(c.ItemClass)
	return cls
}

// ListCls returns the list class holding this item class.
func (c *Class) ListCls() *Class {
	if c.ListClass == "" || c.schema == nil {
		return nil
	}
	cls, _ := c.schema.Class(c.ListClass)
	return cls
}

// ItemTypeName names what a list holds, for messages.
func (c *Class) ItemTypeName() string {
	if c.ItemScalar != 0 {
		return c.ItemScalar.String()
	}
	return c.ItemClass
}

func (c *Class) logger() hclog.Logger {
	if c.schema == nil {
		return hclog.NewNullLogger()
	}
	return c.schema.Logger()
}

// Schema is a set of classes that refer to each other by name.
type Schema struct {
	mu      sync.RWMutex
	log     hclog.Logger
	classes map[string]*Class
	order   []string
}

// NewSchema returns an empty schema. A nil logger discards output.
func NewSchema(log hclog.Logger) *Schema {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Schema{
		log:     log,
		classes: make(map[string]*Class),
	}
}

// Logger returns the schema logger.
func (s *Schema) Logger() hclog.Logger { return s.log }

// Add registers c, replacing any class with the same name.
func (s *Schema) Add(c *Class) *Class {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.schema = s
	if _, ok := s.classes[c.Name]; !ok {
		s.order = append(s.order, c.Name)
	}
	s.classes[c.Name] = c
	return c
}

// Class returns the class with the given name.
func (s *Schema) Class(name string) (*Class, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.classes[name]
	return c, ok
}

// MustClass is like Class but panics when name is not registered.
func (s *Schema) MustClass(name string) *Class {
	c, ok := s.Class(name)
	if !ok {
		panic(fmt.Sprintf("apimodels: class %q is not registered", name))
	}
	return c
}

// Classes returns every class in registration order.
func (s *Schema) Classes() []*Class {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Class, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.classes[name])
	}
	return out
}

// Names returns the sorted class names.
func (s *Schema) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.classes))
	for name := range s.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every class reference resolves.
func (s *Schema) Validate() error {
	for _, c := range s.Classes() {
		for _, a := range c.Attrs {
			if a.Class == "" && a.Scalar == 0 {
				return fmt.Errorf("%w: %s.%s has no type", ErrModel, c.Name, a.Name)
			}
			if a.Class != "" {
				if _, ok := s.Class(a.Class); !ok {
					return fmt.Errorf("%w: %s.%s refers to unknown class %q",
						ErrModel, c.Name, a.Name, a.Class)
				}
			}
		}
		if c.Kind == KindList {
			if c.ItemAttr == "" {
				return fmt.Errorf("%w: list %s has no item attribute", ErrModel, c.Name)
			}
			if c.ItemScalar == 0 && c.ItemCls() == nil {
				return fmt.Errorf("%w: list %s refers to unknown item class %q",
					ErrModel, c.Name, c.ItemClass)
			}
		}
		if c.ListClass != "" && c.ListCls() == nil {
			return fmt.Errorf("%w: %s refers to unknown list class %q",
				ErrModel, c.Name, c.ListClass)
		}
	}
	return nil
}
