package decode

import (
	"errors"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/tansdk/internal/cmd/base"
	"github.com/hashicorp-forge/tansdk/internal/config"
	"github.com/hashicorp-forge/tansdk/pkg/apimodels"
	"github.com/hashicorp-forge/tansdk/pkg/apiobjects"
	"github.com/hashicorp-forge/tansdk/pkg/resultgrid"
	"github.com/hashicorp-forge/tansdk/pkg/results"
)

// Exit codes.
const (
	exitError    = 1
	exitResponse = 2
)

type Command struct {
	*base.Command

	flagType     string
	flagURL      string
	flagMethod   string
	flagStatus   int
	flagRequest  string
	flagResponse string
	flagRaw      bool
	flagGrid     bool
}

func (c *Command) Synopsis() string {
	return "Decode a captured API exchange into typed objects"
}

func (c *Command) Help() string {
	return `Usage: tanctl decode -response=<file> [options]

  Decode a captured request and response body with the schema module
  selected by the config. Failed exchanges exit with status 2 and print
  the classified error.

  Result data can be flattened into rows with -grid.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("decode", flag.ContinueOnError))
	c.ConfigFlag(f)

	f.StringVar(
		&c.flagType, "type", "",
		"API type (soap or rest). Overrides the config.",
	)
	f.StringVar(
		&c.flagURL, "url", "",
		"(Required for rest) Request URL. Routes REST payloads to their class.",
	)
	f.StringVar(
		&c.flagMethod, "method", "",
		"Request method. Defaults to POST for soap and GET for rest.",
	)
	f.IntVar(
		&c.flagStatus, "status", 200,
		"Response status code.",
	)
	f.StringVar(
		&c.flagRequest, "request", "",
		"(Required for soap) File holding the request body.",
	)
	f.StringVar(
		&c.flagResponse, "response", "",
		"(Required) File holding the response body.",
	)
	f.BoolVar(
		&c.flagRaw, "raw", false,
		"Print the payload as parsed, before it is typed.",
	)
	f.BoolVar(
		&c.flagGrid, "grid", false,
		"Flatten result sets into rows keyed by column name.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return exitError
	}

	if c.flagResponse == "" {
		c.UI.Error("response flag is required")
		return exitError
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading config: %v", err))
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

	resp, err := c.response(objs.ModuleType())
	if err != nil {
		c.UI.Error(err.Error())
		return exitError
	}

	res, err := results.FromResponse(objs, resp, results.WithLogger(c.Log))
	if err != nil {
		c.UI.Error(err.Error())
		return exitError
	}
	c.Log.Debug("decoding", "result", res.String(), "result_id", res.ID())

	var out any
	if c.flagRaw {
		out, err = res.Raw()
	} else {
		out, err = c.value(res, cfg)
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

func (c *Command) response(apiType string) (results.Response, error) {
	resp := results.Response{
		URL:        c.flagURL,
		Method:     c.flagMethod,
		StatusCode: c.flagStatus,
	}

	switch apiType {
	case apiobjects.TypeSOAP:
		if c.flagRequest == "" {
			return resp, fmt.Errorf("request flag is required for soap")
		}
		if resp.Method == "" {
			resp.Method = "POST"
		}
	case apiobjects.TypeREST:
		if resp.URL == "" {
			return resp, fmt.Errorf("url flag is required for rest")
		}
		if resp.Method == "" {
			resp.Method = "GET"
		}
	}

	var err error
	if resp.RequestBody, err = c.ReadFile(c.flagRequest); err != nil {
		return resp, err
	}
	if resp.ResponseBody, err = c.ReadFile(c.flagResponse); err != nil {
		return resp, err
	}
	return resp, nil
}

func (c *Command) value(res results.Result, cfg *config.Config) (any, error) {
	v, err := res.Value()
	if err != nil {
		return nil, err
	}
	if c.flagGrid {
		return grid(v, cfg.Grid)
	}
	return v.Serialize(apimodels.SerializeOptions{
		Empty:        cfg.Output.Empty,
		ExcludeAttrs: cfg.Output.Exclude,
	}), nil
}

type gridOut struct {
	ID      int64            `json:"id" yaml:"id"`
	Columns []string         `json:"columns" yaml:"columns"`
	Rows    []map[string]any `json:"rows" yaml:"rows"`
}

// grid flattens a result set, or a list of them, into rows.
func grid(v apimodels.Model, g *config.Grid) ([]gridOut, error) {
	var sets []*resultgrid.DataSet
	switch t := v.(type) {
	case *apimodels.List:
		if t.Class().ItemClass != "ResultSet" {
			return nil, fmt.Errorf("%s does not hold result sets", t.Class().Name)
		}
		ds, err := resultgrid.DataSetsFromList(t)
		if err != nil {
			return nil, err
		}
		sets = ds
	case *apimodels.Item:
		if name := t.Class().Name; name != "ResultSet" && name != "MergedResultSet" {
			return nil, fmt.Errorf("%s is not a result set", name)
		}
		ds, err := resultgrid.NewDataSet(t)
		if err != nil {
			return nil, err
		}
		sets = []*resultgrid.DataSet{ds}
	}

	opts := resultgrid.ValueOptions{
		Meta:   g.Meta,
		Hashes: g.Hashes,
		Join:   g.Join,
		Joiner: g.Joiner,
	}
	out := make([]gridOut, 0, len(sets))
	for _, ds := range sets {
		o := gridOut{ID: ds.ID(), Columns: ds.Columns().Names(), Rows: []map[string]any{}}
		for _, row := range ds.Rows() {
			o.Rows = append(o.Rows, row.GetValues(opts))
		}
		out = append(out, o)
	}
	return out, nil
}
