// Package results turns one HTTP exchange with the platform into typed API
// objects. A Result classifies the response as a failure or not, finds the
// payload in the body and builds it with the class table of an
// apiobjects.Objects.
//
// Parsing is lazy and memoized: each body is parsed at most once per Result.
package results

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp-forge/tansdk/pkg/apimodels"
	"github.com/hashicorp-forge/tansdk/pkg/apiobjects"
	"github.com/hashicorp-forge/tansdk/pkg/wire"
	"github.com/hashicorp/go-hclog"
)

// Response is a completed exchange as handed over by the transport.
type Response struct {
	URL          string
	Method       string
	StatusCode   int
	RequestBody  string
	ResponseBody string
}

// Result is a deserialized exchange.
type Result interface {
	ID() string
	Objects() *apiobjects.Objects
	URL() string
	Method() string
	StatusCode() int
	RequestBodyStr() string
	ResponseBodyStr() string

	// ErrorCheck classifies the response and returns a *ResponseError for
	// failures.
	ErrorCheck() error

	// ErrorText is the error message carried by the response body.
	ErrorText() string

	// IsData reports whether the request was for result data rather than
	// objects.
	IsData() (bool, error)

	// Value runs ErrorCheck and then DataAPI or ObjectAPI, whichever fits
	// the request.
	Value() (apimodels.Model, error)

	// Raw is like Value but returns the payload before it is typed.
	Raw() (any, error)

	DataAPI() (apimodels.Model, error)
	ObjectAPI() (apimodels.Model, error)
	DataObj() (any, error)
	ObjectObj() (any, error)
	RequestBodyObj() (any, error)
	ResponseBodyObj() (any, error)
	RequestObjectObj() (any, error)

	// ObjToAPI builds obj into the class with API name apiName.
	ObjToAPI(apiName string, obj any, src string) (apimodels.Model, error)

	String() string
}

// Option configures a Result.
type Option func(*common)

// WithLogger sets the logger. Results log parse timings at debug level.
func WithLogger(log hclog.Logger) Option {
	return func(c *common) {
		if log != nil {
			c.log = log
		}
	}
}

// FromResponse builds the Result type that matches the dialect of objs.
func FromResponse(objs *apiobjects.Objects, resp Response, opts ...Option) (Result, error) {
	switch objs.ModuleType() {
	case apiobjects.TypeSOAP:
		return NewSoap(objs, resp, opts...), nil
	case apiobjects.TypeREST:
		return NewRest(objs, resp, opts...), nil
	default:
		return nil, fmt.Errorf("%w: no result type for api type %q", ErrModule, objs.ModuleType())
	}
}

// lazy memoizes one parse.
type lazy[T any] struct {
	once sync.Once
	v    T
	err  error
}

func (l *lazy[T]) get(fn func() (T, error)) (T, error) {
	l.once.Do(func() { l.v, l.err = fn() })
	return l.v, l.err
}

type common struct {
	id   string
	objs *apiobjects.Objects
	resp Response
	log  hclog.Logger
}

func newCommon(kind string, objs *apiobjects.Objects, resp Response, opts []Option) common {
	c := common{
		id:   uuid.NewString(),
		objs: objs,
		resp: resp,
		log:  hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	c.log = c.log.Named(kind).With(
		"result_id", c.id,
		"method", resp.Method,
		"url", resp.URL,
	)
	return c
}

func (c *common) ID() string                   { return c.id }
func (c *common) Objects() *apiobjects.Objects { return c.objs }
func (c *common) URL() string                  { return c.resp.URL }
func (c *common) Method() string               { return c.resp.Method }
func (c *common) StatusCode() int              { return c.resp.StatusCode }
func (c *common) RequestBodyStr() string       { return c.resp.RequestBody }
func (c *common) ResponseBodyStr() string      { return c.resp.ResponseBody }

func (c *common) describe(kind string) string {
	return fmt.Sprintf("%s(api_objects=%s, url=%q, method=%q, code=%d)",
		kind, c.objs, c.resp.URL, c.resp.Method, c.resp.StatusCode)
}

// ObjToAPI builds obj into the class with API name apiName. Slices become
// list elements and maps become attributes. ClientCount takes the bare count.
func (c *common) ObjToAPI(apiName string, obj any, src string) (apimodels.Model, error) {
	start := time.Now()
	cls, err := c.objs.ClsByName(apiName)
	if err != nil {
		return nil, err
	}

	var m apimodels.Model
	switch {
	case cls.Name == "ClientCount":
		m, err = cls.NewItem(map[string]any{"count": obj})
	case cls.Kind == apimodels.KindList:
		switch t := obj.(type) {
		case []any:
			m, err = cls.NewList(t, nil)
		case map[string]any:
			m, err = cls.NewList(nil, t)
		case nil:
			m, err = cls.NewList(nil, nil)
		default:
			err = fmt.Errorf("%w: can not build %s from %T in %s", ErrModule, cls.Name, obj, src)
		}
	default:
		switch t := obj.(type) {
		case map[string]any:
			m, err = cls.NewItem(t)
		case nil:
			m, err = cls.NewItem(nil)
		default:
			err = fmt.Errorf("%w: can not build %s from %T in %s", ErrModule, cls.Name, obj, src)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("deserializing %s: %w", src, err)
	}

	c.log.Debug("deserialized API object",
		"api_name", apiName,
		"obj_type", fmt.Sprintf("%T", obj),
		"class", cls.Name,
		"elapsed", time.Since(start),
	)
	return m, nil
}

func (c *common) lookup(obj any, path, src string) (any, error) {
	v, err := wire.Lookup(obj, path)
	if err != nil {
		return nil, &DictionaryPathError{Path: path, Src: src, Err: err}
	}
	return v, nil
}

func (c *common) logParse(src string, size int, start time.Time) {
	c.log.Debug("finished deserializing",
		"src", src,
		"bytes", size,
		"elapsed", time.Since(start),
	)
}

// errorCheck maps a status code and a body pattern to an error kind. Code 0
// matches any status.
type errorCheck struct {
	code    int
	pattern *regexp.Regexp
	kind    error
}

func check(code int, pattern string, kind error) errorCheck {
	return errorCheck{code: code, pattern: regexp.MustCompile("(?is)" + pattern), kind: kind}
}

func matchChecks(checks []errorCheck, status int, text string) error {
	for _, ch := range checks {
		if ch.code != 0 && ch.code != status {
			continue
		}
		if ch.pattern.MatchString(text) {
			return ch.kind
		}
	}
	return nil
}

// validCodes are the status codes of successful responses for both dialects.
var validCodes = []int{200}

func validCode(code int) bool {
	for _, c := range validCodes {
		if c == code {
			return true
		}
	}
	return false
}

func joinLines(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, ", ")
}

// firstEntry returns the payload element of a decoded body. Payload elements
// have one child, so the first key in sorted order is used only for bodies
// that carry extras.
func firstEntry(m map[string]any) (string, any, bool) {
	if len(m) == 0 {
		return "", nil, false
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0], m[keys[0]], true
}
