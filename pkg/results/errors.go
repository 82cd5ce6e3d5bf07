package results

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrModule is matched by every error returned from this package.
	ErrModule = errors.New("results module error")

	// ErrResponse is matched by every error classified from a response.
	ErrResponse = fmt.Errorf("%w: response error", ErrModule)

	// ErrObjectExists means the platform refused to create a duplicate.
	ErrObjectExists = fmt.Errorf("%w: object already exists", ErrResponse)

	// ErrObjectNotFound means the requested object does not exist.
	ErrObjectNotFound = fmt.Errorf("%w: object not found", ErrResponse)

	// ErrWrongRequestType is returned when the data accessor is used for an
	// object request or the other way around.
	ErrWrongRequestType = fmt.Errorf("%w: wrong request type", ErrModule)
)

// TrimLimit bounds bodies embedded in error messages.
const TrimLimit = 10000

// TrimText cuts text to limit characters and notes that it did. The cut
// never splits a multi-byte rune.
func TrimText(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	n, end := 0, 0
	for end < len(text) && n < limit {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
		n++
	}
	if end == len(text) {
		return text
	}
	return text[:end] + fmt.Sprintf("\n... trimmed over %d characters", limit)
}

// ResponseError is a failed exchange. Kind is ErrResponse, ErrObjectExists
// or ErrObjectNotFound.
type ResponseError struct {
	Kind           error
	Result         string
	RequestObjects any
	ResponseBody   string
	Msg            string
}

func (e *ResponseError) Error() string {
	return strings.Join([]string{
		e.Kind.Error(),
		"-- From: " + e.Result,
		fmt.Sprintf("-- Request objects:\n%v", e.RequestObjects),
		"-- Response body: " + e.ResponseBody,
		"-- Error: " + e.Msg,
	}, "\n")
}

func (e *ResponseError) Is(target error) bool { return errors.Is(e.Kind, target) }

// TextDeserializeError is returned when a body can not be parsed.
type TextDeserializeError struct {
	Result string
	Src    string
	Text   string
	Err    error
}

func (e *TextDeserializeError) Error() string {
	return strings.Join([]string{
		"-- From: " + e.Result,
		e.Src + " text:",
		TrimText(e.Text, TrimLimit),
		fmt.Sprintf("-- Unable to deserialize %s text, error:", e.Src),
		e.Err.Error(),
	}, "\n")
}

func (e *TextDeserializeError) Is(target error) bool { return target == ErrModule }

func (e *TextDeserializeError) Unwrap() error { return e.Err }

// WrongRequestTypeError is returned by DataAPI for object routes and by
// ObjectAPI for data routes.
type WrongRequestTypeError struct {
	Result string
	Msg    string
}

func (e *WrongRequestTypeError) Error() string {
	return fmt.Sprintf("-- From: %s\n-- Error: %s", e.Result, e.Msg)
}

func (e *WrongRequestTypeError) Is(target error) bool {
	return target == ErrWrongRequestType || target == ErrModule
}

// DictionaryPathError is returned when a documented path is missing from a
// parsed body.
type DictionaryPathError struct {
	Path string
	Src  string
	Err  error
}

func (e *DictionaryPathError) Error() string {
	return fmt.Sprintf("Unable to find path '%s' in %s:\n%s", e.Path, e.Src, e.Err)
}

func (e *DictionaryPathError) Is(target error) bool { return target == ErrModule }

func (e *DictionaryPathError) Unwrap() error { return e.Err }
