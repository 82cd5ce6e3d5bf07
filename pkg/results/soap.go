package results

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp-forge/tansdk/pkg/apimodels"
	"github.com/hashicorp-forge/tansdk/pkg/apiobjects"
	"github.com/hashicorp-forge/tansdk/pkg/wire"
)

// SoapDataRoutes are the commands that return result data.
var SoapDataRoutes = []string{"GetResultInfo", "GetResultData", "GetMergedResultData"}

// soapErrorChecks run against the command element of the response, which
// is where the platform reports failures.
var soapErrorChecks = []errorCheck{
	check(200, `400.*already.*exists`, ErrObjectExists),
	check(200, `NotUnique`, ErrObjectExists),
	check(200, `400.*not.*found`, ErrObjectNotFound),
	check(200, `404.*not.*found`, ErrObjectNotFound),
}

// Soap is a result from the SOAP dialect.
type Soap struct {
	common

	requestBody  lazy[map[string]any]
	responseBody lazy[map[string]any]
	data         lazy[map[string]any]
}

var _ Result = (*Soap)(nil)

// NewSoap wraps a SOAP exchange.
func NewSoap(objs *apiobjects.Objects, resp Response, opts ...Option) *Soap {
	return &Soap{common: newCommon("soap_result", objs, resp, opts)}
}

func (s *Soap) String() string { return s.describe("Soap") }

func (s *Soap) parse(text, src string, tryInt bool) (map[string]any, error) {
	start := time.Now()
	if text == "" {
		return map[string]any{}, nil
	}
	tree, err := wire.DecodeXML(text, wire.DecodeOptions{TryInt: tryInt})
	if err != nil {
		return nil, &TextDeserializeError{Result: s.String(), Src: src, Text: text, Err: err}
	}
	s.logParse(src, len(text), start)
	return tree, nil
}

// RequestBodyObj returns the parsed request envelope.
func (s *Soap) RequestBodyObj() (any, error) { return s.requestTree() }

func (s *Soap) requestTree() (map[string]any, error) {
	return s.requestBody.get(func() (map[string]any, error) {
		return s.parse(s.resp.RequestBody, "SOAP API request body", true)
	})
}

// ResponseBodyObj returns the parsed response envelope.
func (s *Soap) ResponseBodyObj() (any, error) { return s.responseTree() }

func (s *Soap) responseTree() (map[string]any, error) {
	return s.responseBody.get(func() (map[string]any, error) {
		return s.parse(s.resp.ResponseBody, "SOAP API response body", true)
	})
}

// RequestObjectObj returns the object_list element of the request.
func (s *Soap) RequestObjectObj() (any, error) {
	tree, err := s.requestTree()
	if err != nil {
		return nil, err
	}
	return s.lookup(tree, wire.SoapRequestObjectsPath, "SOAP API deserialized request body")
}

// CommandRequest returns the command sent.
func (s *Soap) CommandRequest() (string, error) {
	tree, err := s.requestTree()
	if err != nil {
		return "", err
	}
	v, err := s.lookup(tree, wire.SoapRequestCommandPath, "SOAP API deserialized request body")
	if err != nil {
		return "", err
	}
	return textOf(v), nil
}

// CommandResponse returns the command echoed back. Failures replace it with
// the error text.
func (s *Soap) CommandResponse() (string, error) {
	tree, err := s.responseTree()
	if err != nil {
		return "", err
	}
	v, err := s.lookup(tree, wire.SoapResponseCommandPath, "SOAP API deserialized response body")
	if err != nil {
		return "", err
	}
	return textOf(v), nil
}

func textOf(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// ErrorText joins the non-empty lines of the response command.
func (s *Soap) ErrorText() string {
	cmd, err := s.CommandResponse()
	if err != nil {
		return TrimText(s.resp.ResponseBody, TrimLimit)
	}
	return joinLines(cmd)
}

func (s *Soap) fail(kind error, msg string) *ResponseError {
	objs, _ := s.RequestObjectObj()
	return &ResponseError{
		Kind:           kind,
		Result:         s.String(),
		RequestObjects: objs,
		ResponseBody:   TrimText(strings.TrimSpace(s.resp.ResponseBody), TrimLimit),
		Msg:            msg,
	}
}

// ErrorCheck matches the response command against the error patterns,
// requires it to echo the request command and requires a valid status code.
func (s *Soap) ErrorCheck() error {
	resp, err := s.CommandResponse()
	if err != nil {
		return err
	}
	if kind := matchChecks(soapErrorChecks, s.resp.StatusCode, resp); kind != nil {
		return s.fail(kind, s.ErrorText())
	}

	req, err := s.CommandRequest()
	if err != nil {
		return err
	}
	if req != resp {
		return s.fail(ErrResponse, fmt.Sprintf("Request %q does not match response:\n%s", req, s.ErrorText()))
	}

	if !validCode(s.resp.StatusCode) {
		return s.fail(ErrResponse, fmt.Sprintf("Response status code %d is not one of %v, error text:\n%s",
			s.resp.StatusCode, validCodes, s.ErrorText()))
	}
	return nil
}

// IsData reports whether the request command is a data route.
func (s *Soap) IsData() (bool, error) {
	cmd, err := s.CommandRequest()
	if err != nil {
		return false, err
	}
	return slices.Contains(SoapDataRoutes, cmd), nil
}

// DataObj parses the ResultXML element of the response.
func (s *Soap) DataObj() (any, error) { return s.dataTree() }

func (s *Soap) dataTree() (map[string]any, error) {
	return s.data.get(func() (map[string]any, error) {
		tree, err := s.responseTree()
		if err != nil {
			return nil, err
		}
		v, err := s.lookup(tree, wire.SoapResultXMLPath, "SOAP API deserialized response body")
		if err != nil {
			return nil, err
		}
		text, _ := v.(string)
		return s.parse(text, "'ResultXML' element from SOAP API deserialized response body", false)
	})
}

// ObjectObj returns the result_object element of the response.
func (s *Soap) ObjectObj() (any, error) { return s.objectTree() }

func (s *Soap) objectTree() (map[string]any, error) {
	tree, err := s.responseTree()
	if err != nil {
		return nil, err
	}
	v, err := s.lookup(tree, wire.SoapResultObjectPath, "'result_object' element from SOAP API deserialized response body")
	if err != nil {
		return nil, err
	}
	m, _ := v.(map[string]any)
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// DataAPI builds the ResultXML payload. The root element names the class.
func (s *Soap) DataAPI() (apimodels.Model, error) {
	isData, err := s.IsData()
	if err != nil {
		return nil, err
	}
	if !isData {
		cmd, _ := s.CommandRequest()
		return nil, &WrongRequestTypeError{
			Result: s.String(),
			Msg:    fmt.Sprintf("Route %q is not one of %q, not a data request?", cmd, SoapDataRoutes),
		}
	}
	tree, err := s.dataTree()
	if err != nil {
		return nil, err
	}
	const src = "Result data from 'ResultXML' element in SOAP response"
	name, obj, ok := firstEntry(tree)
	if !ok {
		return nil, &DictionaryPathError{Path: "ResultXML/*", Src: src, Err: fmt.Errorf("no elements found")}
	}
	return s.ObjToAPI(name, obj, src)
}

// ObjectAPI builds the result_object payload. Its child element names the
// class.
func (s *Soap) ObjectAPI() (apimodels.Model, error) {
	isData, err := s.IsData()
	if err != nil {
		return nil, err
	}
	if isData {
		cmd, _ := s.CommandRequest()
		return nil, &WrongRequestTypeError{
			Result: s.String(),
			Msg:    fmt.Sprintf("Route %q is one of %q, not an object request?", cmd, SoapDataRoutes),
		}
	}
	tree, err := s.objectTree()
	if err != nil {
		return nil, err
	}
	const src = "Result object from 'result_object' element in SOAP response"
	name, obj, ok := firstEntry(tree)
	if !ok {
		return nil, &DictionaryPathError{Path: wire.SoapResultObjectPath + "/*", Src: src, Err: fmt.Errorf("no elements found")}
	}
	return s.ObjToAPI(name, obj, src)
}

// Value checks for errors and builds the payload.
func (s *Soap) Value() (apimodels.Model, error) {
	if err := s.ErrorCheck(); err != nil {
		return nil, err
	}
	isData, err := s.IsData()
	if err != nil {
		return nil, err
	}
	if isData {
		return s.DataAPI()
	}
	return s.ObjectAPI()
}

// Raw checks for errors and returns the untyped payload.
func (s *Soap) Raw() (any, error) {
	if err := s.ErrorCheck(); err != nil {
		return nil, err
	}
	isData, err := s.IsData()
	if err != nil {
		return nil, err
	}
	if isData {
		return s.DataObj()
	}
	return s.ObjectObj()
}
