package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wordgrain/wgtools/wordgrain"
)

type statsInput struct {
	Document documentInput  `json:"document"          jsonschema:"The WordGrain document to summarize"`
	Compare  *documentInput `json:"compare,omitempty" jsonschema:"A second document; when set, the words both documents share are listed"`
	Limit    int            `json:"limit,omitempty"   jsonschema:"Maximum number of common words to return (default 100)"`
}

type statsOutput struct {
	Artist      string                 `json:"artist"`
	Stats       wordgrain.Stats        `json:"stats"`
	Compare     *wordgrain.Stats       `json:"compare,omitempty"`
	CommonCount int                    `json:"common_count,omitempty"`
	CommonWords []wordgrain.CommonWord `json:"common_words,omitempty"`
}

func handleStats(_ context.Context, _ *mcp.CallToolRequest, input statsInput) (*mcp.CallToolResult, statsOutput, error) {
	doc, err := loadValidGrains("document", input.Document)
	if err != nil {
		return errResult(err), statsOutput{}, nil
	}

	output := statsOutput{
		Artist: doc.Meta.Artist,
		Stats:  wordgrain.ComputeStats(doc),
	}

	if input.Compare != nil {
		other, err := loadValidGrains("compare", *input.Compare)
		if err != nil {
			return errResult(err), statsOutput{}, nil
		}
		s := wordgrain.ComputeStats(other)
		output.Compare = &s
		common := wordgrain.CommonWords(doc, other)
		output.CommonCount = len(common)
		output.CommonWords = paginate(common, 0, input.Limit)
	}

	return nil, output, nil
}

func loadValidGrains(role string, d documentInput) (*wordgrain.Document, error) {
	pr, err := loadValidDocument(role, d)
	if err != nil {
		return nil, err
	}
	doc, err := wordgrain.Decode(pr.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", role, err)
	}
	return doc, nil
}
