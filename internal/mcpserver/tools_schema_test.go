package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordgrain/wgtools/wordgrain"
)

func TestDescribeSchemaTool_All(t *testing.T) {
	res, output, err := handleDescribeSchema(context.Background(), &mcp.CallToolRequest{}, describeSchemaInput{})
	require.NoError(t, err)
	require.Nil(t, res)

	assert.Equal(t, wordgrain.SchemaID, output.SchemaID)
	assert.Equal(t, wordgrain.SchemaVersion, output.Version)
	names := make([]string, 0, len(output.Definitions))
	for _, d := range output.Definitions {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Meta", "Grain", "Context", "Collocation"}, names)
}

func TestDescribeSchemaTool_SingleDefinition(t *testing.T) {
	_, output, err := handleDescribeSchema(context.Background(), &mcp.CallToolRequest{},
		describeSchemaInput{Definition: "grain"})
	require.NoError(t, err)
	require.Len(t, output.Definitions, 1)

	grain := output.Definitions[0]
	assert.Equal(t, "Grain", grain.Name)
	require.NotEmpty(t, grain.Rows)
	assert.Equal(t, "word", grain.Rows[0].Name)
	assert.True(t, grain.Rows[0].Required)
}

func TestDescribeSchemaTool_UnknownDefinition(t *testing.T) {
	res, _, err := handleDescribeSchema(context.Background(), &mcp.CallToolRequest{},
		describeSchemaInput{Definition: "Lyric"})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(*mcp.TextContent).Text, "valid values: Meta, Grain, Context, Collocation")
}
