package wire

import (
	"errors"
	"fmt"

	"github.com/hashicorp-forge/tansdk/pkg/apimodels"
)

// ErrNoTarget is returned by MagicEndpoint when a target is required but the
// model has neither an id nor a name.
var ErrNoTarget = errors.New("no target for endpoint")

// BuildEndpoint joins a REST route and an optional target.
func BuildEndpoint(route, target string) string {
	if target == "" {
		return route
	}
	return route + "/" + target
}

// MagicEndpoint builds the REST endpoint for m. Items use the route of their
// list class. With autoTarget and no explicit target, the id is used, or
// "by-name/<name>" when only the name is set.
func MagicEndpoint(m apimodels.Model, target string, autoTarget, needsTarget bool) (string, error) {
	cls := m.Class()
	route := cls.APIName
	if cls.Kind == apimodels.KindItem {
		lc := cls.ListCls()
		if lc == nil {
			return "", fmt.Errorf("%s has no list class to take a route from", cls.Name)
		}
		route = lc.APIName
	}

	if autoTarget && target == "" {
		if id := m.Get("id"); id != nil {
			target = fmt.Sprint(id)
		} else if name := m.Get("name"); name != nil {
			target = fmt.Sprintf("by-name/%v", name)
		}
	}
	if needsTarget && target == "" {
		return "", fmt.Errorf("%w: a target is required for %s and neither 'id' nor 'name' is set",
			ErrNoTarget, m)
	}
	return BuildEndpoint(route, target), nil
}
