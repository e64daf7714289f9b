package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
)

// readDataFile decodes a YAML, JSON or TOML file into out.
func readDataFile(path string, out any) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("unable to decode %s: %w", path, err)
	}
	return nil
}

// LoadRosterFile reads a roster snapshot with top-level teams and players lists.
func LoadRosterFile(path string) (schema.RosterSnapshot, error) {
	var snap schema.RosterSnapshot
	if err := readDataFile(path, &snap); err != nil {
		return schema.RosterSnapshot{}, err
	}
	if len(snap.Teams) == 0 {
		return schema.RosterSnapshot{}, fmt.Errorf("roster file %s has no teams", path)
	}
	teams := make(map[string]bool, len(snap.Teams))
	for i, t := range snap.Teams {
		if t.TeamID == "" || t.Name == "" {
			return schema.RosterSnapshot{}, fmt.Errorf("team %d needs teamID and name", i+1)
		}
		teams[t.TeamID] = true
	}
	for i, p := range snap.Players {
		if p.PlayerID == "" || p.Name == "" {
			return schema.RosterSnapshot{}, fmt.Errorf("player %d needs playerID and name", i+1)
		}
		if !teams[p.TeamID] {
			return schema.RosterSnapshot{}, fmt.Errorf("player %s references unknown team %q", p.PlayerID, p.TeamID)
		}
	}
	return snap, nil
}

// BaselineEntry is one row of a baseline file.
type BaselineEntry struct {
	PlayerID  string  `mapstructure:"playerID"`
	Overall10 float64 `mapstructure:"overall10"`
}

// LoadBaselineFile reads a baselines list of player IDs and season-average grades.
// Entries are a list rather than a map so player IDs keep their case.
func LoadBaselineFile(path string) (map[string]float64, error) {
	var file struct {
		Baselines []BaselineEntry `mapstructure:"baselines"`
	}
	if err := readDataFile(path, &file); err != nil {
		return nil, err
	}
	if len(file.Baselines) == 0 {
		return nil, fmt.Errorf("baseline file %s has no baselines", path)
	}
	out := make(map[string]float64, len(file.Baselines))
	for i, b := range file.Baselines {
		if b.PlayerID == "" {
			return nil, fmt.Errorf("baseline %d needs playerID", i+1)
		}
		if b.Overall10 < 1 || b.Overall10 > 10 {
			return nil, fmt.Errorf("baseline for %s must be within [1, 10], got %.2f", b.PlayerID, b.Overall10)
		}
		out[b.PlayerID] = b.Overall10
	}
	return out, nil
}

// loadRoster prefers an explicit roster file over the roster store.
func loadRoster(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.RosterSnapshot, error) {
	if cfg.RosterFile != "" {
		return LoadRosterFile(cfg.RosterFile)
	}
	store := mgr.GetRosterStore()
	if store == nil {
		return schema.RosterSnapshot{}, errors.New("roster store is not initialized")
	}
	snap, err := store.LoadRoster(ctx)
	if err != nil {
		return schema.RosterSnapshot{}, fmt.Errorf("failed to load roster: %w", err)
	}
	if len(snap.Teams) == 0 {
		return schema.RosterSnapshot{}, errors.New("roster is empty; run 'matchgrade roster load' or pass --roster-file")
	}
	return snap, nil
}

// loadBaselines fetches baselines for every rostered player. A missing store
// means no deltas, not a failure.
func loadBaselines(ctx context.Context, mgr contract.StoreManager, roster schema.RosterSnapshot) map[string]float64 {
	store := mgr.GetBaselineStore()
	if store == nil || len(roster.Players) == 0 {
		return nil
	}
	ids := make([]string, len(roster.Players))
	for i, p := range roster.Players {
		ids[i] = p.PlayerID
	}
	baselines, err := store.GetBaselines(ctx, ids)
	if err != nil {
		contract.LogWarn("Failed to load baselines, deltas will be empty", err)
		return nil
	}
	return baselines
}

// ExecuteRosterLoad upserts the roster file into the roster store.
func ExecuteRosterLoad(ctx context.Context, path string, mgr contract.StoreManager) (schema.RosterSnapshot, error) {
	snap, err := LoadRosterFile(path)
	if err != nil {
		return schema.RosterSnapshot{}, err
	}
	store := mgr.GetRosterStore()
	if store == nil {
		return schema.RosterSnapshot{}, errors.New("roster store is not initialized")
	}
	if err := store.UpsertRoster(ctx, snap); err != nil {
		return schema.RosterSnapshot{}, fmt.Errorf("failed to store roster: %w", err)
	}
	return snap, nil
}

// ExecuteBaselineLoad upserts the baseline file into the baseline store.
func ExecuteBaselineLoad(ctx context.Context, path string, mgr contract.StoreManager) (int, error) {
	baselines, err := LoadBaselineFile(path)
	if err != nil {
		return 0, err
	}
	store := mgr.GetBaselineStore()
	if store == nil {
		return 0, errors.New("baseline store is not initialized")
	}
	if err := store.UpsertBaselines(ctx, baselines); err != nil {
		return 0, fmt.Errorf("failed to store baselines: %w", err)
	}
	return len(baselines), nil
}
