package transport

import (
	"fmt"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Config contains configuration for a platform connection.
//
// Example configuration (HCL):
//
//	server {
//	  url     = "https://tanium.example.com"
//	  session = env("TANIUM_SESSION")
//	  timeout = "30s"
//	}
type Config struct {
	// URL is the base URL of the platform.
	URL string `hcl:"url" json:"url" yaml:"url"`

	// Session is the session token sent with every request.
	Session string `hcl:"session,optional" json:"-" yaml:"-"`

	// RestVersion is the REST API version used for endpoints.
	// Default: 2
	RestVersion int `hcl:"rest_version,optional" json:"rest_version,omitempty" yaml:"rest_version,omitempty"`

	// Timeout bounds each request, as a Go duration string.
	// Default: 30s
	Timeout string `hcl:"timeout,optional" json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// DefaultConfig returns a Config with defaults applied and no URL.
func DefaultConfig() *Config {
	return &Config{
		RestVersion: 2,
		Timeout:     "30s",
	}
}

func (c *Config) setDefaults() {
	d := DefaultConfig()
	if c.RestVersion == 0 {
		c.RestVersion = d.RestVersion
	}
	if c.Timeout == "" {
		c.Timeout = d.Timeout
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URL, validation.Required, is.URL),
		validation.Field(&c.RestVersion, validation.Min(1)),
		validation.Field(&c.Timeout, validation.By(func(v any) error {
			s, _ := v.(string)
			if s == "" {
				return nil
			}
			d, err := time.ParseDuration(s)
			if err != nil {
				return fmt.Errorf("must be a duration: %w", err)
			}
			if d <= 0 {
				return fmt.Errorf("must be positive")
			}
			return nil
		})),
	)
}

// TimeoutDuration returns the parsed timeout.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// NewHTTPClient creates an HTTP client for this configuration.
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &http.Client{
		Timeout:   c.TimeoutDuration(),
		Transport: transport,
	}
}
