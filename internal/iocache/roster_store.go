package iocache

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
)

// RosterStoreImpl stores teams, players and season baselines.
type RosterStoreImpl struct {
	*sqlBase
}

var (
	_ contract.RosterStore   = &RosterStoreImpl{} // Compile-time check
	_ contract.BaselineStore = &RosterStoreImpl{} // Compile-time check
)

// LoadRoster returns every team and player. IDs follow load order.
func (rs *RosterStoreImpl) LoadRoster(ctx context.Context) (schema.RosterSnapshot, error) {
	var snap schema.RosterSnapshot
	if rs.disabled() {
		return snap, nil
	}

	rows, err := rs.db.QueryContext(ctx, fmt.Sprintf("SELECT team_id, name, slug FROM %s ORDER BY team_id", rs.q(teamsTable)))
	if err != nil {
		return snap, fmt.Errorf("failed to query teams: %w", err)
	}
	for rows.Next() {
		t := schema.RosterTeam{ID: int64(len(snap.Teams) + 1)}
		if err := rows.Scan(&t.TeamID, &t.Name, &t.Slug); err != nil {
			_ = rows.Close()
			return snap, fmt.Errorf("failed to scan team: %w", err)
		}
		snap.Teams = append(snap.Teams, t)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("error iterating teams: %w", err)
	}

	rows, err = rs.db.QueryContext(ctx, fmt.Sprintf("SELECT player_id, team_id, name, abbr_name, number FROM %s ORDER BY team_id, number, player_id", rs.q(playersTable)))
	if err != nil {
		return snap, fmt.Errorf("failed to query players: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		p := schema.RosterPlayer{ID: int64(len(snap.Players) + 1)}
		if err := rows.Scan(&p.PlayerID, &p.TeamID, &p.Name, &p.AbbrName, &p.Number); err != nil {
			return snap, fmt.Errorf("failed to scan player: %w", err)
		}
		snap.Players = append(snap.Players, p)
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("error iterating players: %w", err)
	}
	return snap, nil
}

// UpsertRoster inserts or replaces teams and players by their external IDs
// in one transaction.
func (rs *RosterStoreImpl) UpsertRoster(ctx context.Context, snapshot schema.RosterSnapshot) error {
	if rs.disabled() {
		return nil
	}
	for _, t := range snapshot.Teams {
		if t.TeamID == "" {
			return fmt.Errorf("team %q has no team_id", t.Name)
		}
	}
	for _, p := range snapshot.Players {
		if p.PlayerID == "" || p.TeamID == "" {
			return fmt.Errorf("player %q needs both player_id and team_id", p.Name)
		}
	}

	tx, err := rs.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin roster transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	teamQuery := upsertQuery(teamsTable, rs.backend, []string{"team_id", "name", "slug"}, []string{"team_id"})
	for _, t := range snapshot.Teams {
		if _, err := tx.ExecContext(ctx, teamQuery, t.TeamID, t.Name, t.Slug); err != nil {
			return fmt.Errorf("failed to upsert team %s: %w", t.TeamID, err)
		}
	}
	playerQuery := upsertQuery(playersTable, rs.backend, []string{"player_id", "team_id", "name", "abbr_name", "number"}, []string{"player_id"})
	for _, p := range snapshot.Players {
		if _, err := tx.ExecContext(ctx, playerQuery, p.PlayerID, p.TeamID, p.Name, p.AbbrName, p.Number); err != nil {
			return fmt.Errorf("failed to upsert player %s: %w", p.PlayerID, err)
		}
	}
	return tx.Commit()
}

// GetBaselines returns overall10 baselines for the given player IDs.
func (rs *RosterStoreImpl) GetBaselines(ctx context.Context, playerIDs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(playerIDs))
	if rs.disabled() || len(playerIDs) == 0 {
		return out, nil
	}

	marks := strings.TrimSuffix(strings.Repeat("?, ", len(playerIDs)), ", ")
	query := rebind(fmt.Sprintf("SELECT player_id, overall10 FROM %s WHERE player_id IN (%s)", rs.q(baselinesTable), marks), rs.backend)
	args := make([]any, len(playerIDs))
	for i, id := range playerIDs {
		args[i] = id
	}

	rows, err := rs.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query baselines: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var id string
		var v float64
		if err := rows.Scan(&id, &v); err != nil {
			return nil, fmt.Errorf("failed to scan baseline: %w", err)
		}
		out[id] = v
	}
	return out, rows.Err()
}

// UpsertBaselines inserts or replaces baselines by player ID.
func (rs *RosterStoreImpl) UpsertBaselines(ctx context.Context, baselines map[string]float64) error {
	if rs.disabled() || len(baselines) == 0 {
		return nil
	}
	tx, err := rs.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin baseline transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := upsertQuery(baselinesTable, rs.backend, []string{"player_id", "overall10"}, []string{"player_id"})
	for id, v := range baselines {
		if _, err := tx.ExecContext(ctx, query, id, v); err != nil {
			return fmt.Errorf("failed to upsert baseline %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// GetStatus returns status information about the roster store.
func (rs *RosterStoreImpl) GetStatus() (schema.RosterStatus, error) {
	status := schema.RosterStatus{Connected: !rs.disabled()}
	if rs.sqlBase != nil {
		status.Backend = string(rs.backend)
	}
	if rs.disabled() {
		return status, nil
	}
	counts := []struct {
		table string
		dst   *int
	}{
		{teamsTable, &status.TotalTeams},
		{playersTable, &status.TotalPlayers},
		{baselinesTable, &status.Baselines},
	}
	for _, c := range counts {
		n, err := countRows(rs.db, c.table, rs.backend)
		if err != nil {
			return status, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
		*c.dst = int(n)
	}
	return status, nil
}
