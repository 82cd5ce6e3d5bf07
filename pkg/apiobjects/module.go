package apiobjects

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp-forge/tansdk/pkg/apimodels"
	"github.com/hashicorp-forge/tansdk/pkg/versions"
	"github.com/hashicorp/go-hclog"
)

const (
	TypeSOAP = "soap"
	TypeREST = "rest"

	// DefaultType is used when a query names no dialect.
	DefaultType = TypeSOAP

	// DateFormat is the timestamp layout used by the platform.
	DateFormat = "2006-01-02T15:04:05"
)

// Module is one schema version of one dialect.
type Module struct {
	Type       string
	Version    string
	DateFormat string

	build func(hclog.Logger) *apimodels.Schema
}

func (m *Module) String() string {
	return m.Type + " " + m.Version
}

// Schema builds a fresh class table for the module.
func (m *Module) Schema(log hclog.Logger) *apimodels.Schema {
	return m.build(log)
}

// VersionParts is a module version split into its numeric components.
type VersionParts struct {
	String   string `json:"string" yaml:"string"`
	Major    int    `json:"major" yaml:"major"`
	Minor    int    `json:"minor" yaml:"minor"`
	Revision int    `json:"revision" yaml:"revision"`
	Build    int    `json:"build" yaml:"build"`
}

// Parts splits the module version.
func (m *Module) Parts() VersionParts {
	p := VersionParts{String: m.Version}
	fields := []*int{&p.Major, &p.Minor, &p.Revision, &p.Build}
	for i, s := range strings.Split(m.Version, ".") {
		if i >= len(fields) {
			break
		}
		*fields[i], _ = strconv.Atoi(s)
	}
	return p
}

var modules = []*Module{
	{Type: TypeSOAP, Version: "7.3.314.3409", DateFormat: DateFormat, build: buildSoap},
	{Type: TypeREST, Version: "7.3.314.3409", DateFormat: DateFormat, build: buildRest},
}

// Types returns the known dialects, sorted.
func Types() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range modules {
		if !seen[m.Type] {
			seen[m.Type] = true
			out = append(out, m.Type)
		}
	}
	sort.Strings(out)
	return out
}

// GetVersions returns the modules of a dialect sorted by ascending version.
// An empty apiType means DefaultType.
func GetVersions(apiType string) ([]*Module, error) {
	if apiType == "" {
		apiType = DefaultType
	}
	var out []*Module
	for _, m := range modules {
		if m.Type == apiType {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no modules of type %q, valid types: %s",
			ErrNoVersionFound, apiType, strings.Join(Types(), ", "))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return versions.Compare(out[i].Version, out[j].Version, versions.ShrinkNone) < 0
	})
	return out, nil
}

// Query selects a module. Empty bounds are ignored.
type Query struct {
	Type string
	VMin string
	VMax string
	VEq  string
}

func (q Query) requirement() versions.Requirement {
	return versions.Requirement{Min: q.VMin, Max: q.VMax, Eq: q.VEq}
}

// FindVersion returns the highest module version satisfying every bound in q.
func FindVersion(q Query) (*Module, error) {
	all, err := GetVersions(q.Type)
	if err != nil {
		return nil, err
	}
	req := q.requirement()
	for i := len(all) - 1; i >= 0; i-- {
		if versions.Check(all[i].Version, req, versions.ShrinkToOther) {
			return all[i], nil
		}
	}
	var have []string
	for _, m := range all {
		have = append(have, m.Version)
	}
	return nil, fmt.Errorf("%w: no %s module matches %s, available: %s",
		ErrNoVersionFound, all[0].Type, req, strings.Join(have, ", "))
}

// Load finds a module and builds an Objects for it. An unknown dialect is an
// ErrModule.
func Load(q Query, opts ...Option) (*Objects, error) {
	if q.Type != "" && !knownType(q.Type) {
		return nil, fmt.Errorf("%w: unknown api type %q, valid types: %s",
			ErrModule, q.Type, strings.Join(Types(), ", "))
	}
	m, err := FindVersion(q)
	if err != nil {
		return nil, err
	}
	return New(m, opts...), nil
}

func knownType(t string) bool {
	for _, m := range modules {
		if m.Type == t {
			return true
		}
	}
	return false
}
