package cmd

import (
	"fmt"

	"github.com/huangsam/matchgrade/core"
	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/internal/iocache"
	"github.com/spf13/cobra"
)

// rosterCmd focused on roster management.
var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage the canonical team and player roster",
	Long: `Manage the roster used to resolve names found in match reports.

Subcommands:
  load   - Insert or replace teams and players from a file
  status - Show roster store statistics`,
}

// rosterLoadCmd loads a roster file into the store.
var rosterLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load teams and players from a YAML, JSON or TOML file",
	Long: `Insert or replace teams and players by their external IDs.

The file lists teams (team_id, name, slug) and players (player_id, team_id,
name, abbr_name, number). Every player must reference a listed team.

Examples:
  matchgrade roster load roster.yaml`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := core.ExecuteRosterLoad(rootCtx, args[0], storeManager)
		if err != nil {
			return err
		}
		cmd.Printf("Loaded %d teams and %d players.\n", len(snapshot.Teams), len(snapshot.Players))
		return nil
	},
}

// rosterStatusCmd shows roster status.
var rosterStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display roster store statistics",
	Args:    cobra.NoArgs,
	PreRunE: storeSetup,
	Run: func(cmd *cobra.Command, _ []string) {
		store := storeManager.GetRosterStore()
		if store == nil {
			contract.LogFatal("Failed to get roster status", fmt.Errorf("roster store is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get roster status", err)
		}
		iocache.PrintRosterStatus(cmd.OutOrStdout(), status)
	},
}

// baselineCmd focused on season baselines.
var baselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Manage season-average grades used for deltas",
}

// baselineLoadCmd loads baselines into the store.
var baselineLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load player baselines from a YAML, JSON or TOML file",
	Long: `Insert or replace season-average overall10 grades by player ID.

The file holds a 'baselines' list of {playerID, overall10} entries with
grades between 1 and 10.

Examples:
  matchgrade baseline load baselines.yaml`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := core.ExecuteBaselineLoad(rootCtx, args[0], storeManager)
		if err != nil {
			return err
		}
		cmd.Printf("Loaded %d baselines.\n", n)
		return nil
	},
}
