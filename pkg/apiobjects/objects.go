package apiobjects

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/araddon/dateparse"
	"github.com/hashicorp-forge/tansdk/pkg/apimodels"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// Objects is the class table of one module. Each Objects owns its classes, so
// edits to one instance never show up in another.
type Objects struct {
	module *Module
	schema *apimodels.Schema
	log    hclog.Logger

	mu    sync.Mutex
	names *nameMaps
}

type nameMaps struct {
	item, list, all          map[string]*apimodels.Class
	itemErr, listErr, allErr error
}

// Option configures New.
type Option func(*Objects)

// WithLogger sets the logger passed to the schema. Warnings about undeclared
// attributes are written to it.
func WithLogger(log hclog.Logger) Option {
	return func(o *Objects) {
		if log != nil {
			o.log = log
		}
	}
}

// New builds the class table for m.
func New(m *Module, opts ...Option) *Objects {
	o := &Objects{
		module: m,
		log:    hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.log = o.log.Named("apiobjects").With("module", m.String())
	o.schema = m.Schema(o.log)
	return o
}

func (o *Objects) String() string {
	return fmt.Sprintf("Objects(type=%s, version=%s, classes=%d)",
		o.module.Type, o.module.Version, len(o.schema.Classes()))
}

// Module returns the source module.
func (o *Objects) Module() *Module { return o.module }

// Schema returns the class table.
func (o *Objects) Schema() *apimodels.Schema { return o.schema }

// Logger returns the logger classes report through.
func (o *Objects) Logger() hclog.Logger { return o.log }

// ModuleType returns the dialect, "soap" or "rest".
func (o *Objects) ModuleType() string { return o.module.Type }

// ModuleVersion returns the module version string.
func (o *Objects) ModuleVersion() string { return o.module.Version }

// ModuleVersionParts returns the module version split into components.
func (o *Objects) ModuleVersionParts() VersionParts { return o.module.Parts() }

// ModuleDTFormat parses a platform timestamp. The module layout is tried
// first, with and without a trailing "Z", then a lenient parse.
func (o *Objects) ModuleDTFormat(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	layout := o.module.DateFormat
	if t, err := time.Parse(layout, text); err == nil {
		return t, nil
	}
	if t, err := time.Parse(layout, strings.TrimSuffix(text, "Z")); err == nil {
		return t, nil
	}
	t, err := dateparse.ParseIn(text, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unable to parse %q as %s: %s", ErrModule, text, layout, err)
	}
	return t, nil
}

// Class returns a class by its Go-facing name, such as "User" or "UserList".
func (o *Objects) Class(name string) (*apimodels.Class, bool) {
	return o.schema.Class(name)
}

// MustClass is like Class but panics when name is unknown.
func (o *Objects) MustClass(name string) *apimodels.Class {
	return o.schema.MustClass(name)
}

// ClsAll returns every class.
func (o *Objects) ClsAll() []*apimodels.Class { return o.schema.Classes() }

// ClsItem returns the item classes.
func (o *Objects) ClsItem() []*apimodels.Class { return o.byKind(apimodels.KindItem) }

// ClsList returns the list classes.
func (o *Objects) ClsList() []*apimodels.Class { return o.byKind(apimodels.KindList) }

func (o *Objects) byKind(k apimodels.Kind) []*apimodels.Class {
	var out []*apimodels.Class
	for _, c := range o.schema.Classes() {
		if c.Kind == k {
			out = append(out, c)
		}
	}
	return out
}

func (o *Objects) nameMaps() *nameMaps {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.names == nil {
		o.names = &nameMaps{}
		o.names.item, o.names.itemErr = o.buildNameMap(o.ClsItem())
		o.names.list, o.names.listErr = o.buildNameMap(o.ClsList())
		o.names.all, o.names.allErr = o.buildNameMap(o.ClsAll())
	}
	return o.names
}

func (o *Objects) buildNameMap(classes []*apimodels.Class) (map[string]*apimodels.Class, error) {
	var result error
	out := make(map[string]*apimodels.Class, len(classes))
	for _, c := range classes {
		if prev, ok := out[c.APIName]; ok {
			result = multierror.Append(result, fmt.Errorf(
				"API name %q is used by both %s and %s", c.APIName, prev.Name, c.Name))
			continue
		}
		out[c.APIName] = c
	}
	if result != nil {
		return nil, fmt.Errorf("%w: duplicate API names in module %s: %s", ErrModule, o.module, result)
	}
	return out, nil
}

// ClsNameMapItem maps API names to item classes.
func (o *Objects) ClsNameMapItem() (map[string]*apimodels.Class, error) {
	n := o.nameMaps()
	return n.item, n.itemErr
}

// ClsNameMapList maps API names to list classes.
func (o *Objects) ClsNameMapList() (map[string]*apimodels.Class, error) {
	n := o.nameMaps()
	return n.list, n.listErr
}

// ClsNameMapAll maps API names to every class.
func (o *Objects) ClsNameMapAll() (map[string]*apimodels.Class, error) {
	n := o.nameMaps()
	return n.all, n.allErr
}

// ClsItemByName returns the item class with the given API name.
func (o *Objects) ClsItemByName(name string) (*apimodels.Class, error) {
	return o.lookup(name, o.ClsNameMapItem)
}

// ClsListByName returns the list class with the given API name.
func (o *Objects) ClsListByName(name string) (*apimodels.Class, error) {
	return o.lookup(name, o.ClsNameMapList)
}

// ClsByName returns the class of either kind with the given API name.
func (o *Objects) ClsByName(name string) (*apimodels.Class, error) {
	return o.lookup(name, o.ClsNameMapAll)
}

func (o *Objects) lookup(name string, maps func() (map[string]*apimodels.Class, error)) (*apimodels.Class, error) {
	m, err := maps()
	if err != nil {
		return nil, err
	}
	if c, ok := m[name]; ok {
		return c, nil
	}
	valid := make([]string, 0, len(m))
	for k := range m {
		valid = append(valid, k)
	}
	sort.Strings(valid)
	return nil, &UnknownAPINameError{Name: name, Valid: valid, Module: o.module.String()}
}
