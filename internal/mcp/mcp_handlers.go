package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teampulse/teampulse/core"
	"github.com/teampulse/teampulse/internal/contract"
	"github.com/teampulse/teampulse/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	engine  *core.Engine
}

// configFromRequest clones the base config and applies per-request overrides.
func (h *toolHandler) configFromRequest(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	start := request.GetString("start", "")
	end := request.GetString("end", "")
	if start != "" || end != "" {
		if err := contract.RevalidateWindow(cfg, start, end); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (h *toolHandler) analyze(ctx context.Context, request mcp.CallToolRequest) (*schema.AnalyticsResult, error) {
	cfg, err := h.configFromRequest(request)
	if err != nil {
		return nil, err
	}
	_, result, err := core.CollectAndAnalyze(ctx, cfg, h.engine)
	return result, err
}

func (h *toolHandler) handleGetTeamReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.analyze(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTemporalInsights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.analyze(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if result.Temporal.Status == schema.SectionFailed {
		return mcp.NewToolResultError(fmt.Sprintf("temporal section failed: %s", result.Temporal.Error)), nil
	}
	jsonData, _ := json.MarshalIndent(result.Temporal, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetQualityInsights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.analyze(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if result.Quality.Status == schema.SectionFailed {
		return mcp.NewToolResultError(fmt.Sprintf("quality section failed: %s", result.Quality.Error)), nil
	}
	jsonData, _ := json.MarshalIndent(result.Quality, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
