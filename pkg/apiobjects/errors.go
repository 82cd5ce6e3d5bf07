package apiobjects

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrModule is matched by every error returned from this package.
	ErrModule = errors.New("api objects module error")

	// ErrNoVersionFound is returned when no module satisfies a query.
	ErrNoVersionFound = fmt.Errorf("%w: no version found", ErrModule)
)

// UnknownAPINameError is returned when no class carries the requested API
// name.
type UnknownAPINameError struct {
	Name   string
	Valid  []string
	Module string
}

func (e *UnknownAPINameError) Error() string {
	lines := []string{
		"API names of all API objects:\n  - " + strings.Join(e.Valid, "\n  - "),
		"API module: " + e.Module,
		fmt.Sprintf("Unable to find a matching API class for API name %q", e.Name),
	}
	return strings.Join(lines, "\n")
}

func (e *UnknownAPINameError) Is(target error) bool { return target == ErrModule }
