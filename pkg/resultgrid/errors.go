package resultgrid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGrid is matched by every error returned from this package.
var ErrGrid = errors.New("result grid error")

// UnknownNameError is returned when a column name does not exist in a data
// set.
type UnknownNameError struct {
	Name  string
	Valid []string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("column name %q not found, valid column names: %s",
		e.Name, strings.Join(e.Valid, ", "))
}

func (e *UnknownNameError) Is(target error) bool { return target == ErrGrid }

// IndexError is returned when a position is outside a column or row.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for %d columns", e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool { return target == ErrGrid }
