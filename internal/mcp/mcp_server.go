// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/teampulse/teampulse/core"
	"github.com/teampulse/teampulse/internal/contract"
)

// NewMCPServer initializes and configures the TeamPulse MCP server without
// starting it. This is exposed for unit testing. The engine is shared across
// tool calls so repeated questions about the same window hit the result cache.
func NewMCPServer(baseCfg *contract.Config, engine *core.Engine) *server.MCPServer {
	s := server.NewMCPServer(
		"TeamPulse Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		engine:  engine,
	}

	// --- 1. Tool: get_team_report ---
	s.AddTool(mcp.NewTool("get_team_report",
		mcp.WithDescription("Analyze git history for a full team report: velocity, collaboration and quality signals."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the configured repository).")),
		mcp.WithString("start", mcp.Description("Window start: ISO8601, 'N [units] ago' or a shorthand like '90d'.")),
		mcp.WithString("end", mcp.Description("Window end: ISO8601 or relative. Defaults to now.")),
	), h.handleGetTeamReport)

	// --- 2. Tool: get_temporal_insights ---
	s.AddTool(mcp.NewTool("get_temporal_insights",
		mcp.WithDescription("Analyze commit timing: velocity trend, activity heatmap, peak periods and bus factor."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithString("start", mcp.Description("Window start: ISO8601 or relative.")),
		mcp.WithString("end", mcp.Description("Window end: ISO8601 or relative.")),
	), h.handleGetTemporalInsights)

	// --- 3. Tool: get_quality_insights ---
	s.AddTool(mcp.NewTool("get_quality_insights",
		mcp.WithDescription("Analyze code quality risk: churn, complexity trend, large changes, hotspots and health score."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithString("start", mcp.Description("Window start: ISO8601 or relative.")),
		mcp.WithString("end", mcp.Description("Window end: ISO8601 or relative.")),
	), h.handleGetQualityInsights)

	return s
}

// StartMCPServer starts the TeamPulse MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg, core.NewEngineFromConfig(baseCfg))
	return server.ServeStdio(s)
}
