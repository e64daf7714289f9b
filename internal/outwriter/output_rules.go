package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
	"github.com/olekukonko/tablewriter"
)

// RuleRow is one benchmark in the rules listing.
type RuleRow struct {
	Role     schema.Role      `json:"role"`
	Metric   schema.MetricKey `json:"metric"`
	Weight   float64          `json:"weight"`
	Target   [4]float64       `json:"target"`
	Inverted bool             `json:"inverted,omitempty"`
	Gate     schema.StatKey   `json:"gate,omitempty"`
}

// RulesRenderModel holds the active rules in display order.
type RulesRenderModel struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Rules       []RuleRow `json:"rules"`
}

// buildRulesRenderModel flattens outfield rules and the keeper blend into rows,
// ordered by role and then by weight.
func buildRulesRenderModel(rules map[schema.Role][]schema.MetricRule, keeperWeights map[schema.MetricKey]float64) *RulesRenderModel {
	var rows []RuleRow
	for _, role := range schema.AllRoles {
		if role == schema.RoleGoalkeeper {
			keys := make([]schema.MetricKey, 0, len(keeperWeights))
			for k := range keeperWeights {
				keys = append(keys, k)
			}
			slices.SortFunc(keys, func(a, b schema.MetricKey) int {
				if keeperWeights[a] != keeperWeights[b] {
					if keeperWeights[a] > keeperWeights[b] {
						return -1
					}
					return 1
				}
				return strings.Compare(string(a), string(b))
			})
			for _, k := range keys {
				rows = append(rows, RuleRow{Role: role, Metric: k, Weight: keeperWeights[k]})
			}
			continue
		}
		for _, r := range rules[role] {
			rows = append(rows, RuleRow{
				Role:     role,
				Metric:   r.Key,
				Weight:   r.Weight,
				Target:   r.Target,
				Inverted: r.Inverted,
				Gate:     r.Gate,
			})
		}
	}
	return &RulesRenderModel{
		Title:       "Matchgrade Grading Rules",
		Description: "Outfield grade = weighted mean of curve scores (0-100) minus card penalties; goalkeeper grade = weighted blend mapped to 1-10",
		Rules:       rows,
	}
}

// WriteRuleDefinitions displays the active grading rules per role.
func WriteRuleDefinitions(rules map[schema.Role][]schema.MetricRule, keeperWeights map[schema.MetricKey]float64, cfg *contract.Config) error {
	model := buildRulesRenderModel(rules, keeperWeights)
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRulesCSV(w, model)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRulesText(w, model)
		}, "Wrote text")
	}
}

func formatTarget(r RuleRow) string {
	if r.Role == schema.RoleGoalkeeper {
		return "blend"
	}
	parts := make([]string, len(r.Target))
	for i, v := range r.Target {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, " / ")
}

func writeRulesText(w io.Writer, model *RulesRenderModel) error {
	if _, err := fmt.Fprintf(w, "📋 %s\n%s\n\n", model.Title, model.Description); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Role", "Metric", "Weight", "Target", "Inverted", "Gate"})
	var data [][]string
	for _, r := range model.Rules {
		inverted := ""
		if r.Inverted {
			inverted = "yes"
		}
		data = append(data, []string{
			string(r.Role),
			string(r.Metric),
			fmt.Sprintf("%.2f", r.Weight),
			formatTarget(r),
			inverted,
			string(r.Gate),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeRulesCSV(w io.Writer, model *RulesRenderModel) error {
	header := []string{"role", "metric", "weight", "target", "inverted", "gate"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range model.Rules {
			rec := []string{
				string(r.Role),
				string(r.Metric),
				strconv.FormatFloat(r.Weight, 'f', -1, 64),
				formatTarget(r),
				strconv.FormatBool(r.Inverted),
				string(r.Gate),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
