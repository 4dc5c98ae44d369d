package mcp_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teampulse/teampulse/core"
	"github.com/teampulse/teampulse/internal/contract"
	mcp_internal "github.com/teampulse/teampulse/internal/mcp"
	"github.com/teampulse/teampulse/schema"
)

func testServerConfig() *contract.Config {
	return &contract.Config{
		RepoPath:   ".",
		MaxCommits: contract.DefaultMaxCommits,
		Analyzer:   schema.DefaultAnalyzerConfig(),
	}
}

func TestMCPServerRegistersTools(t *testing.T) {
	baseCfg := testServerConfig()
	s := mcp_internal.NewMCPServer(baseCfg, core.NewEngineFromConfig(baseCfg))

	for _, name := range []string{"get_team_report", "get_temporal_insights", "get_quality_insights"} {
		assert.NotNil(t, s.GetTool(name), "Tool %s should exist", name)
	}
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := testServerConfig()
	s := mcp_internal.NewMCPServer(baseCfg, core.NewEngineFromConfig(baseCfg))

	ctx := context.Background()

	t.Run("get_team_report unparseable start", func(t *testing.T) {
		tool := s.GetTool("get_team_report")
		require.NotNil(t, tool, "Tool get_team_report should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_team_report",
				Arguments: map[string]any{
					"start": "not-a-date",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "analysis failed")
	})

	t.Run("get_temporal_insights inverted window", func(t *testing.T) {
		tool := s.GetTool("get_temporal_insights")
		require.NotNil(t, tool, "Tool get_temporal_insights should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_temporal_insights",
				Arguments: map[string]any{
					"start": "2026-03-01T00:00:00Z",
					"end":   "2026-01-01T00:00:00Z", // Before start
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "analysis failed")
	})

	t.Run("get_quality_insights unparseable end", func(t *testing.T) {
		tool := s.GetTool("get_quality_insights")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_quality_insights",
				Arguments: map[string]any{
					"end": "eventually", // Invalid
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "analysis failed")
	})
}
