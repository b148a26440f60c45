package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/githours/core"
	"github.com/huangsam/githours/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.GitClient
}

func (h *toolHandler) handleEstimateHours(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	threshold := request.GetFloat("session_threshold_minutes", cfg.SessionThreshold.Minutes())
	addition := request.GetFloat("first_commit_addition_minutes", cfg.FirstCommitAddition.Minutes())
	if err := contract.RevalidateEstimator(cfg, threshold, addition); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid estimator parameters: %v", err)), nil
	}

	if l := request.GetInt("limit", 0); l < 0 || l > contract.MaxResultLimit {
		return mcp.NewToolResultError(fmt.Sprintf("invalid limit: %d (must be between 0 and %d)", l, contract.MaxResultLimit)), nil
	} else if l > 0 {
		cfg.Limit = l
	}

	if p := request.GetString("repo_path", ""); p != "" {
		if err := contract.RevalidateRepoPath(ctx, cfg, h.client, p); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid repository: %v", err)), nil
		}
	}

	report, _, err := core.GetEstimateResults(core.WithSuppressHeader(ctx), cfg, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("estimation failed: %v", err)), nil
	}
	if !request.GetBool("include_authors", true) {
		report.Authors = nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
