package results

import (
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp-forge/tansdk/pkg/apimodels"
	"github.com/hashicorp-forge/tansdk/pkg/apiobjects"
	"github.com/hashicorp-forge/tansdk/pkg/wire"
)

var (
	// RestDataRoutes map data routes to the API name of their payload.
	RestDataRoutes = map[string]string{
		"result_info":        "result_infos",
		"result_data":        "result_sets",
		"merged_result_data": "merged_result_set",
	}

	// RestManualObjectRoutes map object routes whose payload does not
	// follow the route name to the API name of their payload.
	RestManualObjectRoutes = map[string]string{
		"audit_logs":     "audit_logs",
		"parse_question": "parse_question_results",
	}
)

var restErrorChecks = []errorCheck{
	check(400, `400.*already.*exists`, ErrObjectExists),
	check(400, `NotUnique`, ErrObjectExists),
	check(404, `.*`, ErrObjectNotFound),
}

// Rest is a result from the REST dialect.
type Rest struct {
	common

	requestBody  lazy[any]
	responseBody lazy[any]
	urlPath      lazy[*RestURLPath]
}

var _ Result = (*Rest)(nil)

// NewRest wraps a REST exchange.
func NewRest(objs *apiobjects.Objects, resp Response, opts ...Option) *Rest {
	return &Rest{common: newCommon("rest_result", objs, resp, opts)}
}

func (r *Rest) String() string { return r.describe("Rest") }

func (r *Rest) parse(text, src string) (any, error) {
	start := time.Now()
	if text == "" {
		text = "{}"
	}
	v, err := wire.DecodeJSON(text)
	if err != nil {
		return nil, &TextDeserializeError{Result: r.String(), Src: src, Text: text, Err: err}
	}
	r.logParse(src, len(text), start)
	return v, nil
}

// URLPath parses the request URL.
func (r *Rest) URLPath() (*RestURLPath, error) {
	return r.urlPath.get(func() (*RestURLPath, error) {
		return ParseRestURLPath(r.resp.URL)
	})
}

// RequestBodyObj returns the parsed request body.
func (r *Rest) RequestBodyObj() (any, error) {
	return r.requestBody.get(func() (any, error) {
		return r.parse(r.resp.RequestBody, "REST API request body")
	})
}

// RequestObjectObj is the whole request body.
func (r *Rest) RequestObjectObj() (any, error) { return r.RequestBodyObj() }

// ResponseBodyObj returns the parsed response body.
func (r *Rest) ResponseBodyObj() (any, error) {
	return r.responseBody.get(func() (any, error) {
		return r.parse(r.resp.ResponseBody, "REST API response body")
	})
}

// ErrorText returns the joined lines of the "text" key of the response, or
// the whole body when there is none.
func (r *Rest) ErrorText() string {
	body, err := r.ResponseBodyObj()
	if err != nil {
		return TrimText(r.resp.ResponseBody, TrimLimit)
	}
	if m, ok := body.(map[string]any); ok {
		if text, ok := m["text"].(string); ok {
			return joinLines(text)
		}
	}
	return fmt.Sprint(body)
}

func (r *Rest) fail(kind error, msg string) *ResponseError {
	objs, _ := r.RequestObjectObj()
	return &ResponseError{
		Kind:           kind,
		Result:         r.String(),
		RequestObjects: objs,
		ResponseBody:   TrimText(strings.TrimSpace(r.resp.ResponseBody), TrimLimit),
		Msg:            msg,
	}
}

// ErrorCheck matches the raw response body against the error patterns and
// requires a valid status code.
func (r *Rest) ErrorCheck() error {
	if kind := matchChecks(restErrorChecks, r.resp.StatusCode, r.resp.ResponseBody); kind != nil {
		return r.fail(kind, r.ErrorText())
	}
	if !validCode(r.resp.StatusCode) {
		return r.fail(ErrResponse, fmt.Sprintf("Response status code %d is not one of %v, error text:\n%s",
			r.resp.StatusCode, validCodes, r.ErrorText()))
	}
	return nil
}

// IsData reports whether the URL route is a data route.
func (r *Rest) IsData() (bool, error) {
	p, err := r.URLPath()
	if err != nil {
		return false, err
	}
	_, ok := RestDataRoutes[p.Route]
	return ok, nil
}

func (r *Rest) payload() (any, error) {
	body, err := r.ResponseBodyObj()
	if err != nil {
		return nil, err
	}
	v, err := r.lookup(body, "data", "'data' key from REST API deserialized response body")
	if err != nil {
		return nil, err
	}
	if isEmpty(v) {
		return map[string]any{}, nil
	}
	return v, nil
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.String:
		return rv.Len() == 0
	}
	return false
}

// DataObj returns the "data" key of the response.
func (r *Rest) DataObj() (any, error) { return r.payload() }

// ObjectObj returns the "data" key of the response.
func (r *Rest) ObjectObj() (any, error) { return r.payload() }

// DataAPI builds the payload of a data route.
func (r *Rest) DataAPI() (apimodels.Model, error) {
	p, err := r.URLPath()
	if err != nil {
		return nil, err
	}
	override, ok := RestDataRoutes[p.Route]
	if !ok {
		return nil, &WrongRequestTypeError{
			Result: r.String(),
			Msg:    fmt.Sprintf("Route %q is not one of %s, not a data request?", p.Route, routeNames(RestDataRoutes)),
		}
	}
	cls, err := r.objs.ClsByName(override)
	if err != nil {
		return nil, err
	}
	obj, err := r.payload()
	if err != nil {
		return nil, err
	}
	return r.ObjToAPI(cls.APIName, obj, "Result object from 'data' key in REST response")
}

// ObjectAPI builds the payload of an object route. GET with a target and
// every POST, PATCH or DELETE return one item; other requests return the
// list class of the route.
func (r *Rest) ObjectAPI() (apimodels.Model, error) {
	p, err := r.URLPath()
	if err != nil {
		return nil, err
	}
	if _, ok := RestDataRoutes[p.Route]; ok {
		return nil, &WrongRequestTypeError{
			Result: r.String(),
			Msg:    fmt.Sprintf("Route %q is one of %s, not an object request?", p.Route, routeNames(RestDataRoutes)),
		}
	}

	var apiName string
	if override, ok := RestManualObjectRoutes[p.Route]; ok {
		cls, err := r.objs.ClsByName(override)
		if err != nil {
			return nil, err
		}
		apiName = cls.APIName
	} else {
		cls, err := r.objs.ClsByName(p.Route)
		if err != nil {
			return nil, err
		}
		apiName = cls.APIName
		single := (r.resp.Method == "GET" && p.Target != "") ||
			r.resp.Method == "POST" || r.resp.Method == "PATCH" || r.resp.Method == "DELETE"
		if single {
			ic := cls.ItemCls()
			if ic == nil {
				return nil, fmt.Errorf("%w: route %q maps to %s, which has no item class", ErrModule, p.Route, cls.Name)
			}
			apiName = ic.APIName
		}
	}

	obj, err := r.payload()
	if err != nil {
		return nil, err
	}
	return r.ObjToAPI(apiName, obj, fmt.Sprintf("Result object from 'data' key in REST route %s", p.Route))
}

// Value checks for errors and builds the payload.
func (r *Rest) Value() (apimodels.Model, error) {
	if err := r.ErrorCheck(); err != nil {
		return nil, err
	}
	isData, err := r.IsData()
	if err != nil {
		return nil, err
	}
	if isData {
		return r.DataAPI()
	}
	return r.ObjectAPI()
}

// Raw checks for errors and returns the untyped payload.
func (r *Rest) Raw() (any, error) {
	if err := r.ErrorCheck(); err != nil {
		return nil, err
	}
	return r.payload()
}

func routeNames(routes map[string]string) string {
	names := make([]string, 0, len(routes))
	for k := range routes {
		names = append(names, k)
	}
	sort.Strings(names)
	return "[" + strings.Join(names, ", ") + "]"
}

// RestURLPath is a REST URL split into its API parts:
// /api/v<version>/<route>[/<id>|/by-name/<name>][/<leftover>...].
type RestURLPath struct {
	Original      string
	URL           string
	Version       int
	Route         string
	Target        string
	ByName        bool
	LeftoverParts []string
}

// ParseRestURLPath splits a REST URL. The URL is percent decoded first.
func ParseRestURLPath(rawURL string) (*RestURLPath, error) {
	p := &RestURLPath{Original: rawURL, URL: rawURL}
	if unquoted, err := url.PathUnescape(rawURL); err == nil {
		p.URL = unquoted
	}

	fail := func(reason string) error {
		return fmt.Errorf("%w: failed to parse REST URL path as %q from url %q, error: %s",
			ErrModule, "/api/v2/route", p.URL, reason)
	}

	u, err := url.Parse(p.URL)
	if err != nil {
		return nil, fail(err.Error())
	}
	parts := strings.Split(strings.TrimLeft(u.Path, "/"), "/")
	if len(parts) < 3 {
		return nil, fail("not enough path parts")
	}
	p.Version, err = strconv.Atoi(strings.TrimLeft(parts[1], "v"))
	if err != nil {
		return nil, fail(err.Error())
	}
	p.Route = parts[2]
	parts = parts[3:]

	p.ByName = slices.Contains(parts, "by-name")
	for i, part := range parts {
		if part == "by-name" {
			if i+1 >= len(parts) {
				return nil, fail("by-name has no name")
			}
			p.Target = parts[i+1]
			parts = append(parts[:i:i], parts[i+2:]...)
			break
		}
		if isDigits(part) {
			p.Target = part
			parts = append(parts[:i:i], parts[i+1:]...)
			break
		}
	}
	p.LeftoverParts = parts
	return p, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (p *RestURLPath) String() string {
	return fmt.Sprintf("RestURLPath(version=%d, route=%q, target=%q, by-name=%t, leftover_parts=%q)",
		p.Version, p.Route, p.Target, p.ByName, p.LeftoverParts)
}
