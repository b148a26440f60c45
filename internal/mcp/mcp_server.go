// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/githours/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the githours MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.GitClient) *server.MCPServer {
	s := server.NewMCPServer(
		"githours Estimation Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
	}

	s.AddTool(mcp.NewTool("estimate_hours",
		mcp.WithDescription("Estimate hours worked per author from the commit history of every local branch."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the server's repository if not specified).")),
		mcp.WithNumber("session_threshold_minutes", mcp.Description("Largest gap between commits, in minutes, that still counts as one session. Defaults to 120.")),
		mcp.WithNumber("first_commit_addition_minutes", mcp.Description("Minutes credited for the work before the first commit of a session. Defaults to 120.")),
		mcp.WithBoolean("include_authors", mcp.Description("Include the per-author breakdown, not just the total. Defaults to true.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of authors returned (0 to 1000, 0 returns all).")),
	), h.handleEstimateHours)

	return s
}

// StartMCPServer starts the githours MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.GitClient) error {
	s := NewMCPServer(baseCfg, client)
	return server.ServeStdio(s)
}
