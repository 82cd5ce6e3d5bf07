package apiobjects

import (
	"github.com/hashicorp-forge/tansdk/pkg/apimodels"
	"github.com/hashicorp/go-hclog"
	"github.com/iancoleman/strcase"
)

// def describes an item class and, unless noList is set, the list class that
// holds it. Class names are derived from the API name.
type def struct {
	apiName string

	// name overrides the derived item class name.
	name string

	attrs      []apimodels.Attr
	str        []string
	aliases    map[string]string
	constants  map[string]any
	scalarAttr string

	noList      bool
	listAPIName string
	listName    string
	itemAttr    string
	listAttrs   []apimodels.Attr
}

// listDef describes a list class with no item class of its own: scalar
// lists and lists of lists.
type listDef struct {
	name       string
	apiName    string
	itemAttr   string
	itemClass  string
	itemScalar apimodels.ScalarType
	attrs      []apimodels.Attr
}

func intAttr(names ...string) []apimodels.Attr {
	return scalars(apimodels.TypeInt, names)
}

func strAttr(names ...string) []apimodels.Attr {
	return scalars(apimodels.TypeString, names)
}

func scalars(t apimodels.ScalarType, names []string) []apimodels.Attr {
	out := make([]apimodels.Attr, len(names))
	for i, n := range names {
		out[i] = apimodels.Attr{Name: n, Scalar: t}
	}
	return out
}

func cls(name, class string) apimodels.Attr {
	return apimodels.Attr{Name: name, Class: class}
}

func attrs(groups ...[]apimodels.Attr) []apimodels.Attr {
	var out []apimodels.Attr
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func one(a apimodels.Attr) []apimodels.Attr { return []apimodels.Attr{a} }

// ClassName derives the Go-facing class name for an API name, e.g.
// "content_set_role" becomes "ContentSetRole".
func ClassName(apiName string) string {
	return strcase.ToCamel(apiName)
}

func (d def) itemName() string {
	if d.name != "" {
		return d.name
	}
	return ClassName(d.apiName)
}

func (d def) listClassName() string {
	if d.listName != "" {
		return d.listName
	}
	return d.itemName() + "List"
}

func buildSchema(log hclog.Logger, defs []def, lists []listDef) *apimodels.Schema {
	s := apimodels.NewSchema(log)
	for _, d := range defs {
		item := &apimodels.Class{
			Name:       d.itemName(),
			APIName:    d.apiName,
			Kind:       apimodels.KindItem,
			Attrs:      append([]apimodels.Attr(nil), d.attrs...),
			StrAttrs:   d.str,
			Aliases:    d.aliases,
			Constants:  d.constants,
			ScalarAttr: d.scalarAttr,
		}
		if !d.noList {
			item.ListClass = d.listClassName()
			itemAttr := d.itemAttr
			if itemAttr == "" {
				itemAttr = d.apiName
			}
			listAPIName := d.listAPIName
			if listAPIName == "" {
				listAPIName = d.apiName + "s"
			}
			s.Add(&apimodels.Class{
				Name:      d.listClassName(),
				APIName:   listAPIName,
				Kind:      apimodels.KindList,
				Attrs:     append([]apimodels.Attr(nil), d.listAttrs...),
				ItemAttr:  itemAttr,
				ItemClass: item.Name,
			})
		}
		s.Add(item)
	}
	for _, l := range lists {
		s.Add(&apimodels.Class{
			Name:       l.name,
			APIName:    l.apiName,
			Kind:       apimodels.KindList,
			Attrs:      append([]apimodels.Attr(nil), l.attrs...),
			ItemAttr:   l.itemAttr,
			ItemClass:  l.itemClass,
			ItemScalar: l.itemScalar,
		})
	}
	return s
}
