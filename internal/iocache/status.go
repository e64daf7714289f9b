package iocache

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
)

// PrintRosterStatus prints roster store status information.
func PrintRosterStatus(w io.Writer, status schema.RosterStatus) {
	_, _ = fmt.Fprintf(w, "Roster Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Teams: %d\n", status.TotalTeams)
	_, _ = fmt.Fprintf(w, "Players: %d\n", status.TotalPlayers)
	_, _ = fmt.Fprintf(w, "Baselines: %d\n", status.Baselines)
}

// PrintMatchSinkStatus prints match sink status information.
func PrintMatchSinkStatus(w io.Writer, status schema.MatchSinkStatus) {
	_, _ = fmt.Fprintf(w, "Match Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Imports: %d\n", status.TotalImports)
	if status.TotalImports > 0 {
		_, _ = fmt.Fprintf(w, "Last Import ID: %d\n", status.LastImportID)
		_, _ = fmt.Fprintf(w, "Last Import: %s\n", status.LastImportTime.Format(contract.DateTimeFormat))
		_, _ = fmt.Fprintf(w, "Oldest Import: %s\n", status.OldestImport.Format(contract.DateTimeFormat))
		_, _ = fmt.Fprintf(w, "Total Player Grades: %d\n", status.TotalPlayers)
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	for _, table := range slices.Sorted(maps.Keys(status.TableSizes)) {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
