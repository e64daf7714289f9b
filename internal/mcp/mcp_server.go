// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func roleNames() []string {
	names := make([]string, len(schema.AllRoles))
	for i, r := range schema.AllRoles {
		names[i] = string(r)
	}
	return names
}

// NewMCPServer initializes and configures the Matchgrade MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager, src contract.DocumentSource, pub contract.MatchPublisher) *server.MCPServer {
	s := server.NewMCPServer(
		"Matchgrade Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		src:     src,
		pub:     pub,
	}

	s.AddTool(mcp.NewTool("grade_report",
		mcp.WithDescription("Extract and grade one match report (PDF, HTML or text). Returns the full match payload."),
		mcp.WithString("path", mcp.Description("Path to the report, named '<Home> - <Away> <h>-<a>.<ext>'."), mcp.Required()),
		mcp.WithBoolean("persist", mcp.Description("Record the grade in the match store and publish it. Defaults to false.")),
	), h.handleGradeReport)

	s.AddTool(mcp.NewTool("get_best_performers",
		mcp.WithDescription("Grade one match report and return only the best performer of each side."),
		mcp.WithString("path", mcp.Description("Path to the report."), mcp.Required()),
	), h.handleGetBestPerformers)

	s.AddTool(mcp.NewTool("list_grading_rules",
		mcp.WithDescription("List the grading rules in effect, including configured weight overrides."),
		mcp.WithString("role", mcp.Description("Only list rules for this role."), mcp.Enum(roleNames()...)),
	), h.handleListGradingRules)

	return s
}

// StartMCPServer starts the Matchgrade MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager, src contract.DocumentSource, pub contract.MatchPublisher) error {
	s := NewMCPServer(baseCfg, mgr, src, pub)
	return server.ServeStdio(s)
}
