package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wordgrain/wgtools/schema"
	"github.com/wordgrain/wgtools/wordgrain"
)

type describeSchemaInput struct {
	Definition string `json:"definition,omitempty" jsonschema:"Only describe this definition (Meta, Grain, Context or Collocation; case-insensitive)"`
}

type describeSchemaOutput struct {
	SchemaID    string              `json:"schema_id"`
	Version     string              `json:"version"`
	Definitions []schema.Definition `json:"definitions"`
}

func handleDescribeSchema(_ context.Context, _ *mcp.CallToolRequest, input describeSchemaInput) (*mcp.CallToolResult, describeSchemaOutput, error) {
	s, err := wordgrain.Schema()
	if err != nil {
		return errResult(err), describeSchemaOutput{}, nil
	}

	defs := schema.Describe(s)
	if input.Definition != "" {
		var names []string
		var selected []schema.Definition
		for _, d := range defs {
			names = append(names, d.Name)
			if strings.EqualFold(d.Name, input.Definition) {
				selected = append(selected, d)
			}
		}
		if len(selected) == 0 {
			return errResult(fmt.Errorf("unknown definition %q; valid values: %s", input.Definition, strings.Join(names, ", "))),
				describeSchemaOutput{}, nil
		}
		defs = selected
	}

	return nil, describeSchemaOutput{
		SchemaID:    s.ID,
		Version:     wordgrain.SchemaVersion,
		Definitions: defs,
	}, nil
}
