// Package transport performs exchanges with the platform and hands them to
// the results package. It sends one request per call; retries, TLS trust
// and session lifecycle belong to the caller.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/tansdk/pkg/apimodels"
	"github.com/hashicorp-forge/tansdk/pkg/apiobjects"
	"github.com/hashicorp-forge/tansdk/pkg/results"
	"github.com/hashicorp-forge/tansdk/pkg/wire"
)

// SessionHeader carries the session token.
const SessionHeader = "session"

// SoapPath is the endpoint of the SOAP dialect.
const SoapPath = "/soap"

// ErrTransport is matched by every error returned from this package.
var ErrTransport = errors.New("transport error")

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client sends requests for one schema module.
type Client struct {
	config *Config
	client Doer
	objs   *apiobjects.Objects
	log    hclog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(log hclog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithDoer replaces the HTTP client built from the config.
func WithDoer(d Doer) Option {
	return func(c *Client) { c.client = d }
}

// New validates a copy of cfg and creates a Client. Results are built
// against objs.
func New(cfg *Config, objs *apiobjects.Objects, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is required", ErrTransport)
	}
	if objs == nil {
		return nil, fmt.Errorf("%w: api objects are required", ErrTransport)
	}
	copied := *cfg
	cfg = &copied
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid config: %w", ErrTransport, err)
	}

	c := &Client{
		config: cfg,
		objs:   objs,
		log:    hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = cfg.NewHTTPClient()
	}
	c.log = c.log.Named("transport").With("api_type", objs.ModuleType())
	return c, nil
}

// Objects returns the schema module results are built against.
func (c *Client) Objects() *apiobjects.Objects { return c.objs }

// Do sends one request and returns the completed exchange. Any status code is
// a completed exchange; classifying it is left to the results package.
func (c *Client) Do(ctx context.Context, method, path string, params url.Values, body, contentType string) (results.Response, error) {
	endpoint := c.buildURL(path, params)

	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return results.Response{}, fmt.Errorf("%w: failed to create request: %w", ErrTransport, err)
	}
	if c.config.Session != "" {
		req.Header.Set(SessionHeader, c.config.Session)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return results.Response{}, fmt.Errorf("%w: %s %s failed: %w", ErrTransport, method, endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return results.Response{}, fmt.Errorf("%w: failed to read response: %w", ErrTransport, err)
	}

	c.log.Debug("request complete",
		"method", method,
		"url", endpoint,
		"status", resp.StatusCode,
		"bytes", len(respBody),
		"elapsed", time.Since(start),
	)

	finalURL := endpoint
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	return results.Response{
		URL:          finalURL,
		Method:       method,
		StatusCode:   resp.StatusCode,
		RequestBody:  body,
		ResponseBody: string(respBody),
	}, nil
}

// Soap posts command with objectList to the SOAP endpoint.
func (c *Client) Soap(ctx context.Context, command string, objectList any, options map[string]any) (results.Result, error) {
	text, err := wire.EncodeXML(
		wire.SoapEnvelope(command, objectList, options),
		wire.EncodeOptions{FullDocument: true, Pretty: true},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding %s request: %w", ErrTransport, command, err)
	}
	resp, err := c.Do(ctx, http.MethodPost, SoapPath, nil, text, "text/xml; charset=utf-8")
	if err != nil {
		return nil, err
	}
	return results.FromResponse(c.objs, resp, results.WithLogger(c.log))
}

// SoapObject sends an API object with command. The object is serialized
// with its API name as the wrapping element.
func (c *Client) SoapObject(ctx context.Context, command string, obj apimodels.Model, options map[string]any) (results.Result, error) {
	return c.Soap(ctx, command, obj.Serialize(apimodels.SerializeOptions{}), options)
}

// Rest sends a request to endpoint under /api/v<RestVersion>/. A non-nil
// body is encoded as JSON.
func (c *Client) Rest(ctx context.Context, method, endpoint string, params url.Values, body any) (results.Result, error) {
	var text, contentType string
	if body != nil {
		var err error
		if text, err = wire.EncodeJSON(body, 0); err != nil {
			return nil, fmt.Errorf("%w: encoding %s body: %w", ErrTransport, endpoint, err)
		}
		contentType = "application/json"
	}
	path := fmt.Sprintf("/api/v%d/%s", c.config.RestVersion, strings.TrimLeft(endpoint, "/"))
	resp, err := c.Do(ctx, method, path, params, text, contentType)
	if err != nil {
		return nil, err
	}
	return results.FromResponse(c.objs, resp, results.WithLogger(c.log))
}

// RestObject sends obj to the endpoint derived from it. See
// wire.MagicEndpoint for target rules. POST addresses the collection; other
// methods take the target from the object when none is given. The body
// leaves out the attributes the platform assigns or matches on: id for POST,
// name and id for everything else.
func (c *Client) RestObject(ctx context.Context, method string, obj apimodels.Model, target string, needsTarget bool) (results.Result, error) {
	endpoint, err := wire.MagicEndpoint(obj, target, method != http.MethodPost, needsTarget)
	if err != nil {
		return nil, err
	}
	var body any
	if method != http.MethodGet && method != http.MethodDelete {
		body = obj.Serialize(RestBodyOptions(method))
	}
	return c.Rest(ctx, method, endpoint, nil, body)
}

// RestBodyOptions returns the serialize options for a REST request body.
func RestBodyOptions(method string) apimodels.SerializeOptions {
	exclude := []string{"name", "id"}
	if method == http.MethodPost {
		exclude = []string{"id"}
	}
	return apimodels.SerializeOptions{
		NoWrapName:     true,
		NoWrapItemAttr: true,
		ExcludeAttrs:   exclude,
	}
}

func (c *Client) buildURL(path string, params url.Values) string {
	endpoint := strings.TrimRight(c.config.URL, "/") + "/" + strings.TrimLeft(path, "/")
	if len(params) == 0 {
		return endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return endpoint
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
