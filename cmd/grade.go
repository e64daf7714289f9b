package cmd

import (
	"github.com/huangsam/matchgrade/core"
	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/spf13/cobra"
)

// runGrading wires the source and publisher for grade and recompute.
func runGrading(exec func(pub contract.MatchPublisher) error) error {
	pub, err := newPublisher()
	if err != nil {
		return err
	}
	if pub != nil {
		defer func() { _ = pub.Close() }()
	}
	return exec(pub)
}

// gradeCmd grades one or more match reports.
var gradeCmd = &cobra.Command{
	Use:   "grade <files...>",
	Short: "Extract and grade match reports",
	Long: `Extract lineups and stats from match reports and grade every player.

Reports are PDF, HTML or plain text files named '<Home> - <Away> <h>-<a>.<ext>'.
Names are resolved against the roster store (see 'matchgrade roster load')
or the file given with --roster-file.

Each report is recorded as an import run in the store unless --dry-run is set.
With --publish-redis-url, graded matches are also added to a Redis stream.

Examples:
  # Grade a single report
  matchgrade grade "Home FC - Away FC 2-1.pdf"

  # Grade a folder with contributor breakdowns
  matchgrade grade reports/*.pdf --explain --detail

  # Grade without touching the store
  matchgrade grade report.html --dry-run --roster-file roster.yaml

  # Export player grades for analysis
  matchgrade grade reports/*.pdf --output parquet --output-file grades.parquet`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, _ []string) error {
		return runGrading(func(pub contract.MatchPublisher) error {
			return core.ExecuteGrade(rootCtx, cfg, storeManager, newDocumentSource(), pub)
		})
	},
}

// recomputeCmd re-grades every stored report.
var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Re-grade every previously imported report",
	Long: `Re-grade every report recorded in the store against the current roster,
aliases and weights. Each report gets a new import run.

Use this after:
- Loading a corrected roster
- Adding player or team aliases
- Changing grading weights

Examples:
  matchgrade recompute
  matchgrade recompute --output json --output-file regraded.json`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runGrading(func(pub contract.MatchPublisher) error {
			return core.ExecuteRecompute(rootCtx, cfg, storeManager, newDocumentSource(), pub)
		})
	},
}

// rulesCmd prints the grading rules in effect.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the grading rules in effect",
	Long: `Print every graded metric per role with its weight, benchmark curve and gate,
plus the goalkeeper blend weights. Overrides from the config file are applied.

Examples:
  matchgrade rules
  matchgrade rules --output csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteRules(rootCtx, cfg)
	},
}
