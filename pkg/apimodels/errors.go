package apimodels

import (
	"errors"
	"fmt"
)

// ErrModel is matched by every error returned from this package.
var ErrModel = errors.New("api model error")

// AttrTypeError is returned when a value cannot be coerced to the declared
// type of an attribute.
type AttrTypeError struct {
	Class string
	Attr  string
	Value any
	Want  string
	Err   error
}

func (e *AttrTypeError) Error() string {
	msg := fmt.Sprintf("%s.%s: unable to use %T value %#v as %s",
		e.Class, e.Attr, e.Value, e.Value, e.Want)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AttrTypeError) Is(target error) bool { return target == ErrModel }

func (e *AttrTypeError) Unwrap() error { return e.Err }

// AttrUndefinedError is returned when a complex value is assigned to an
// attribute the class does not declare.
type AttrUndefinedError struct {
	Class string
	Attr  string
	Value any
}

func (e *AttrUndefinedError) Error() string {
	return fmt.Sprintf("%s.%s: attribute is not defined and %T values can not be inferred",
		e.Class, e.Attr, e.Value)
}

func (e *AttrUndefinedError) Is(target error) bool { return target == ErrModel }

// AttrUndefinedWarning records that a scalar was assigned to an undeclared
// attribute and a type was inferred for it. It is never returned from Set; it
// is logged and kept on the instance, see Item.Warnings.
type AttrUndefinedWarning struct {
	Class    string
	Attr     string
	Inferred ScalarType
}

func (e *AttrUndefinedWarning) Error() string {
	return fmt.Sprintf("%s.%s: attribute is not defined, inferred type %s",
		e.Class, e.Attr, e.Inferred)
}

func (e *AttrUndefinedWarning) Is(target error) bool { return target == ErrModel }

// ListTypeError is returned when a list is combined with something that is not
// a list of the same item class.
type ListTypeError struct {
	Class string
	Other any
}

func (e *ListTypeError) Error() string {
	return fmt.Sprintf("%s: unable to combine with %T, must be a %s, a slice or nil",
		e.Class, e.Other, e.Class)
}

func (e *ListTypeError) Is(target error) bool { return target == ErrModel }

// ListItemTypeError is returned when an element cannot be coerced to the
// item type of a list.
type ListItemTypeError struct {
	Class string
	Want  string
	Value any
	Err   error
}

func (e *ListItemTypeError) Error() string {
	msg := fmt.Sprintf("%s: unable to use %T value %#v as %s",
		e.Class, e.Value, e.Value, e.Want)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ListItemTypeError) Is(target error) bool { return target == ErrModel }

func (e *ListItemTypeError) Unwrap() error { return e.Err }

// GetSingleItemError is returned when a single-item lookup matches zero or
// more than one item.
type GetSingleItemError struct {
	Class string
	Match Match
	Found int
}

func (e *GetSingleItemError) Error() string {
	kind := "value"
	if e.Match.Regex {
		kind = "regex"
	}
	return fmt.Sprintf("%s: found %d items with attribute %q matching %s %#v, expected exactly 1",
		e.Class, e.Found, e.Match.attr(), kind, e.Match.Value)
}

func (e *GetSingleItemError) Is(target error) bool { return target == ErrModel }
