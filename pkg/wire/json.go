package wire

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
)

// DecodeJSON decodes a JSON document. Numbers become int64 when integral and
// float64 otherwise.
func DecodeJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return normalizeNumbers(v), nil
}

func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
	case []any:
		for i, e := range t {
			t[i] = normalizeNumbers(e)
		}
	}
	return v
}

// EncodeJSON encodes v, indented by indent spaces when indent > 0.
func EncodeJSON(v any, indent int) (string, error) {
	var (
		out []byte
		err error
	)
	if indent > 0 {
		out, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(out), nil
}
