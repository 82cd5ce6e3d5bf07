package classes

import (
	"flag"
	"fmt"
	"sort"

	"github.com/hashicorp-forge/tansdk/internal/cmd/base"
	"github.com/hashicorp-forge/tansdk/pkg/apimodels"
	"github.com/hashicorp-forge/tansdk/pkg/apiobjects"
)

type Command struct {
	*base.Command

	flagType string
	flagKind string
	flagName string
}

type attrInfo struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Class bool   `json:"class,omitempty" yaml:"class,omitempty"`
}

type classInfo struct {
	Name      string            `json:"name" yaml:"name"`
	APIName   string            `json:"api_name" yaml:"api_name"`
	Kind      string            `json:"kind" yaml:"kind"`
	ItemAttr  string            `json:"item_attr,omitempty" yaml:"item_attr,omitempty"`
	ItemType  string            `json:"item_type,omitempty" yaml:"item_type,omitempty"`
	ListClass string            `json:"list_class,omitempty" yaml:"list_class,omitempty"`
	Attrs     []attrInfo        `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Aliases   map[string]string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

func (c *Command) Synopsis() string {
	return "List the classes of a schema module"
}

func (c *Command) Help() string {
	return `Usage: tanctl classes [options]

  List the classes of the schema module selected by the config, or show one
  class by API name.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("classes", flag.ContinueOnError))
	c.ConfigFlag(f)

	f.StringVar(
		&c.flagType, "type", "",
		"API type (soap or rest). Overrides the config.",
	)
	f.StringVar(
		&c.flagKind, "kind", "",
		"Only list classes of this kind (item or list).",
	)
	f.StringVar(
		&c.flagName, "name", "",
		"Show the class with this API name, including its attributes.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading config: %v", err))
		return 1
	}

	q := cfg.Query()
	if c.flagType != "" {
		q.Type = c.flagType
	}
	objs, err := apiobjects.Load(q, apiobjects.WithLogger(c.Log))
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading schema: %v", err))
		return 1
	}

	if c.flagName != "" {
		cls, err := objs.ClsByName(c.flagName)
		if err != nil {
			c.UI.Error(err.Error())
			return 1
		}
		if err := c.Render(describe(cls, true), cfg.Output); err != nil {
			c.UI.Error(err.Error())
			return 1
		}
		return 0
	}

	var classes []*apimodels.Class
	switch c.flagKind {
	case "":
		classes = objs.ClsAll()
	case "item":
		classes = objs.ClsItem()
	case "list":
		classes = objs.ClsList()
	default:
		c.UI.Error(fmt.Sprintf("invalid kind %q, must be item or list", c.flagKind))
		return 1
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })

	out := make([]classInfo, 0, len(classes))
	for _, cls := range classes {
		out = append(out, describe(cls, false))
	}

	c.Log.Debug("listed classes", "module", objs.String(), "count", len(out))
	if err := c.Render(out, cfg.Output); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

func describe(cls *apimodels.Class, withAttrs bool) classInfo {
	info := classInfo{
		Name:      cls.Name,
		APIName:   cls.APIName,
		Kind:      cls.Kind.String(),
		ListClass: cls.ListClass,
	}
	if cls.Kind == apimodels.KindList {
		info.ItemAttr = cls.ItemAttr
		info.ItemType = cls.ItemTypeName()
	}
	if !withAttrs {
		return info
	}
	for _, a := range cls.Attrs {
		ai := attrInfo{Name: a.Name}
		if a.Simple() {
			ai.Type = a.Scalar.String()
		} else {
			ai.Type, ai.Class = a.Class, true
		}
		info.Attrs = append(info.Attrs, ai)
	}
	info.Aliases = cls.Aliases
	return info
}
