package call

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp-forge/tansdk/internal/cmd/base"
	"github.com/hashicorp-forge/tansdk/pkg/apimodels"
	"github.com/hashicorp-forge/tansdk/pkg/apiobjects"
	"github.com/hashicorp-forge/tansdk/pkg/results"
	"github.com/hashicorp-forge/tansdk/pkg/transport"
	"github.com/hashicorp-forge/tansdk/pkg/wire"
)

const (
	exitError    = 1
	exitResponse = 2
)

type Command struct {
	*base.Command

	flagType     string
	flagMethod   string
	flagEndpoint string
	flagQuery    string
	flagCommand  string
	flagBody     string
	flagRaw      bool
}

func (c *Command) Synopsis() string {
	return "Send one request to the platform and decode the result"
}

func (c *Command) Help() string {
	return `Usage: tanctl call [options]

  Send a single request to the server named in the config's server block
  and print the decoded result.

  REST requests need -endpoint, relative to /api/v<rest_version>/.
  SOAP requests need -command; -body then holds the object list as JSON.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("call", flag.ContinueOnError))
	c.ConfigFlag(f)

	f.StringVar(
		&c.flagType, "type", "",
		"API type (soap or rest). Overrides the config.",
	)
	f.StringVar(
		&c.flagMethod, "method", http.MethodGet,
		"REST request method.",
	)
	f.StringVar(
		&c.flagEndpoint, "endpoint", "",
		"REST endpoint, for example users/1.",
	)
	f.StringVar(
		&c.flagQuery, "query", "",
		"REST query string, for example \"limit=10&offset=0\".",
	)
	f.StringVar(
		&c.flagCommand, "command", "",
		"SOAP command, for example GetObject.",
	)
	f.StringVar(
		&c.flagBody, "body", "",
		"File holding a JSON request body.",
	)
	f.BoolVar(
		&c.flagRaw, "raw", false,
		"Print the payload as parsed, before it is typed.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return exitError
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading config: %v", err))
		return exitError
	}
	if cfg.Server == nil {
		c.UI.Error("config has no server block")
		return exitError
	}

	q := cfg.Query()
	if c.flagType != "" {
		q.Type = c.flagType
	}
	objs, err := apiobjects.Load(q, apiobjects.WithLogger(c.Log))
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading schema: %v", err))
		return exitError
	}

	client, err := transport.New(cfg.Server, objs, transport.WithLogger(c.Log))
	if err != nil {
		c.UI.Error(err.Error())
		return exitError
	}

	res, err := c.send(client)
	if err != nil {
		c.UI.Error(err.Error())
		return exitError
	}

	var out any
	if c.flagRaw {
		out, err = res.Raw()
	} else {
		var v apimodels.Model
		if v, err = res.Value(); err == nil {
			out = v.Serialize(apimodels.SerializeOptions{
				Empty:        cfg.Output.Empty,
				ExcludeAttrs: cfg.Output.Exclude,
			})
		}
	}
	if err != nil {
		c.UI.Error(err.Error())
		if errors.Is(err, results.ErrResponse) {
			return exitResponse
		}
		return exitError
	}

	if err := c.Render(out, cfg.Output); err != nil {
		c.UI.Error(err.Error())
		return exitError
	}
	return 0
}

func (c *Command) send(client *transport.Client) (results.Result, error) {
	ctx, cancel := base.SignalContext()
	defer cancel()

	var body any
	if c.flagBody != "" {
		text, err := c.ReadFile(c.flagBody)
		if err != nil {
			return nil, err
		}
		if body, err = wire.DecodeJSON(text); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", c.flagBody, err)
		}
	}

	switch client.Objects().ModuleType() {
	case apiobjects.TypeSOAP:
		if c.flagCommand == "" {
			return nil, fmt.Errorf("command flag is required for soap")
		}
		return client.Soap(ctx, c.flagCommand, body, nil)

	default:
		if c.flagEndpoint == "" {
			return nil, fmt.Errorf("endpoint flag is required for rest")
		}
		params, err := url.ParseQuery(c.flagQuery)
		if err != nil {
			return nil, fmt.Errorf("error parsing query: %w", err)
		}
		return client.Rest(ctx, strings.ToUpper(c.flagMethod), c.flagEndpoint, params, body)
	}
}
