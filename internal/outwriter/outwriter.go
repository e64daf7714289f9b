// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteMatches prints graded match results using the configured output format.
func (ow *OutWriter) WriteMatches(results []schema.ImportResult, cfg *contract.Config, duration time.Duration) error {
	return WriteMatchResults(results, cfg, duration)
}

// WriteRules prints the active grading rules using the configured output format.
func (ow *OutWriter) WriteRules(rules map[schema.Role][]schema.MetricRule, keeperWeights map[schema.MetricKey]float64, cfg *contract.Config) error {
	return WriteRuleDefinitions(rules, keeperWeights, cfg)
}

// Fixed column budgets used to size the player name column.
const (
	baseColumnsWidth    = 60 // Side + # + Role + Min + Grade + Label + Delta with borders
	detailColumnsWidth  = 30 // Impact + Positions + Confidence
	explainColumnsWidth = 35 // Breakdown explanation
	tablePaddingWidth   = 15
	minNameWidth        = 12
	maxNameWidth        = 40
)

// GetMaxTableNameWidth calculates the maximum width for player names in table output
// based on terminal width and table configuration.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	used := baseColumnsWidth + tablePaddingWidth
	if cfg.Detail {
		used += detailColumnsWidth
	}
	if cfg.Explain {
		used += explainColumnsWidth
	}

	available := termWidth - used
	return max(minNameWidth, min(available, maxNameWidth))
}
