package openapi

import (
	"encoding/json"
	"io"
	"maps"

	"github.com/danielgtaylor/huma/v2"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
)

// DocsPath serves the interactive API reference.
const DocsPath = "/api-docs"

// NewConfig returns the huma configuration shared by the server and handler tests.
//
// Wildcard and unsupported Accept values fall back to JSON rather than 406,
// which RFC 9110 section 12.4.1 permits. The schema link transformer is not
// installed: response bodies carry exactly their documented fields, without a
// "$schema" member, and JSON bodies are written without a trailing newline.
func NewConfig(title, version string) huma.Config {
	cfg := huma.DefaultConfig(title, version)
	cfg.DocsPath = DocsPath
	cfg.CreateHooks = nil
	// DefaultConfig hands out the shared huma.DefaultFormats map.
	cfg.Formats = maps.Clone(cfg.Formats)
	cfg.Formats["application/json"] = JSONFormat
	cfg.Formats["json"] = JSONFormat
	cfg.OpenAPI.OnAddOperation = append(cfg.OpenAPI.OnAddOperation, AddCBORContent)
	return cfg
}

// JSONFormat encodes with json.Marshal, so bodies carry no trailing newline.
var JSONFormat = huma.Format{
	Marshal: func(w io.Writer, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	},
	Unmarshal: json.Unmarshal,
}

// AddCBORContent documents application/cbor alongside application/json for
// every request and response body of op.
func AddCBORContent(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}
