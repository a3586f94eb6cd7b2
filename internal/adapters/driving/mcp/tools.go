package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// maxResults caps how many hits the search tool returns per call.
const maxResults = 5

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query string"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Filename string  `json:"filename"`
	Title    string  `json:"title,omitempty"`
	Content  string  `json:"content"`
	Score    float64 `json:"score"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Perform a text-based search on the documentation index. Returns a list of up to 5 search results.",
	}, s.handleSearch)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.ports.Search.TextSearch(ctx, input.Query, maxResults)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			Filename: results[i].Chunk.Filename,
			Title:    results[i].Chunk.Title,
			Content:  results[i].Chunk.Text(),
			Score:    results[i].Score,
		}
	}

	return nil, output, nil
}
