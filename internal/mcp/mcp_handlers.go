package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/matchgrade/core"
	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
	src     contract.DocumentSource
	pub     contract.MatchPublisher
}

// gradeOne grades a single report. Without persist nothing is stored or published.
func (h *toolHandler) gradeOne(ctx context.Context, path string, persist bool) (*schema.MatchPayload, error) {
	cfg := h.baseCfg.Clone()
	cfg.DryRun = !persist
	cfg.Workers = 1

	results, err := core.GradeReports(ctx, cfg, h.mgr, h.src, h.pub, []string{path})
	if err != nil {
		return nil, err
	}
	if results[0].Err != nil {
		return nil, results[0].Err
	}
	return results[0].Payload, nil
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleGradeReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}
	payload, err := h.gradeOne(ctx, path, request.GetBool("persist", false))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("grading failed: %v", err)), nil
	}
	return jsonResult(payload), nil
}

func (h *toolHandler) handleGetBestPerformers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}
	payload, err := h.gradeOne(ctx, path, false)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("grading failed: %v", err)), nil
	}
	return jsonResult(struct {
		MatchID        string                `json:"matchId"`
		HomeTeam       string                `json:"homeTeam"`
		AwayTeam       string                `json:"awayTeam"`
		Score          string                `json:"score"`
		BestPerformers schema.BestPerformers `json:"bestPerformers"`
	}{payload.MatchID, payload.HomeTeam, payload.AwayTeam, payload.Score, payload.BestPerformers}), nil
}

func (h *toolHandler) handleListGradingRules(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type listing struct {
		Rules         map[schema.Role][]schema.MetricRule `json:"rules,omitempty"`
		KeeperWeights map[schema.MetricKey]float64        `json:"keeperWeights,omitempty"`
	}

	role := schema.Role(request.GetString("role", ""))
	if role != "" {
		if _, ok := schema.ValidRoles[role]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown role %q", role)), nil
		}
	}

	out := listing{}
	if role == "" || role == schema.RoleGoalkeeper {
		out.KeeperWeights = core.ActiveKeeperWeights(h.baseCfg)
	}
	rules := core.ActiveRules(h.baseCfg)
	if role == "" {
		out.Rules = rules
	} else if rs, ok := rules[role]; ok {
		out.Rules = map[schema.Role][]schema.MetricRule{role: rs}
	}
	return jsonResult(out), nil
}
