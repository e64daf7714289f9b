package core

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/huangsam/matchgrade/core/algo"
	"github.com/huangsam/matchgrade/core/extract"
	"github.com/huangsam/matchgrade/core/identity"
	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
)

// ProcessOptions carries the tunables of one import.
type ProcessOptions struct {
	Aliases            schema.AliasConfig
	Weights            map[schema.Role]map[schema.MetricKey]float64
	KeeperWeights      map[schema.MetricKey]float64
	Lineup             extract.LineupOptions
	MinMinutesOutfield int
	MinMinutesKeeper   int
	BestMinMinutes     int
}

// DefaultProcessOptions returns the stock thresholds with no overrides.
func DefaultProcessOptions() ProcessOptions {
	return ProcessOptions{
		Lineup:             extract.DefaultLineupOptions(),
		MinMinutesOutfield: contract.DefaultMinMinutesOutfield,
		MinMinutesKeeper:   contract.DefaultMinMinutesKeeper,
		BestMinMinutes:     contract.DefaultBestMinMinutes,
	}
}

// OptionsFromConfig maps the validated config onto ProcessOptions.
func OptionsFromConfig(cfg *contract.Config) ProcessOptions {
	opts := DefaultProcessOptions()
	opts.Aliases = cfg.Aliases
	opts.Weights = cfg.CustomWeights
	opts.KeeperWeights = cfg.KeeperWeights
	opts.Lineup.ShortHintMax = cfg.ShortHintThreshold
	opts.MinMinutesOutfield = cfg.MinMinutesOutfield
	opts.MinMinutesKeeper = cfg.MinMinutesKeeper
	opts.BestMinMinutes = cfg.BestMinMinutes
	return opts
}

// isKeeper reports whether a lineup entry was ever listed in goal.
func isKeeper(e schema.LineupEntry, positions map[string][]string) bool {
	if e.Position == schema.PositionGK {
		return true
	}
	for _, tok := range positions[extract.PlayerKey(e.Name, e.Number)] {
		if tok == schema.PositionGK {
			return true
		}
	}
	return false
}

// keeperCandidates splits the lineup into listed keepers and everyone.
func keeperCandidates(lineup []schema.LineupEntry, positions map[string][]string) (keepers, everyone []extract.KeeperCandidate) {
	for _, e := range lineup {
		c := extract.KeeperCandidate{Key: extract.PlayerKey(e.Name, e.Number), Name: e.Name}
		everyone = append(everyone, c)
		if isKeeper(e, positions) {
			keepers = append(keepers, c)
		}
	}
	return keepers, everyone
}

// ProcessMatch turns one report into a graded match payload. Only a malformed
// filename or an unknown team fails the import; everything else degrades.
func ProcessMatch(ctx context.Context, doc schema.Document, roster schema.RosterSnapshot, baselines map[string]float64, opts ProcessOptions) (*schema.MatchPayload, error) {
	log := LoggerFrom(ctx).With(slog.String("file", doc.Filename))

	info, err := extract.ParseFilename(doc.Filename)
	if err != nil {
		return nil, err
	}
	text := extract.Normalize(doc.Text)

	resolver := identity.NewResolver(roster, opts.Aliases)
	home, away, err := resolver.ResolveTeams(info.HomeTeam, info.AwayTeam)
	if err != nil {
		return nil, fmt.Errorf("resolve teams: %w", err)
	}

	lineup := extract.ExtractLineup(text, opts.Lineup)
	minutes, matchLength := extract.ResolveMinutes(text, lineup)
	positions := extract.ExtractPositions(text, lineup)
	fieldStats := extract.ExtractFieldStats(text, extract.BuildNameIndex(lineup, minutes))
	keepers, everyone := keeperCandidates(lineup, positions)
	keeperStats := extract.ExtractKeeperStats(text, keepers, everyone)
	log.Debug("extracted report",
		slog.Int("lineup", len(lineup)),
		slog.Int("matchLength", matchLength),
		slog.Int("fieldRows", len(fieldStats)),
		slog.Int("keeperBlocks", len(keeperStats)))

	known := make(map[string]bool, len(lineup))
	for _, e := range lineup {
		known[extract.PlayerKey(e.Name, e.Number)] = true
	}
	for key := range fieldStats {
		if !known[key] {
			log.Warn("stat row without lineup entry", slog.String("row", key))
		}
	}

	players := make([]schema.PlayerRecord, 0, len(lineup))
	seen := make(map[string]bool, len(lineup))
	for i, e := range lineup {
		key := extract.PlayerKey(e.Name, e.Number)
		_, hasKeeperBlock := keeperStats[key]
		rec := NewPlayerRecordBuilder(&opts, e).
			ResolveIdentity(resolver, home, away).
			ApplyMinutes(minutes).
			ApplyPositions(positions).
			ApplyStats(fieldStats, keeperStats).
			DetectRole(hasKeeperBlock).
			CalculateDerivedMetrics().
			CalculateGrade(baselines).
			CalculateImpact().
			Build()
		if rec.Unresolved {
			log.Info("player not on roster", slog.String("name", e.Name), slog.Int("number", e.Number))
		}
		if k := rec.Key(i); !seen[k] {
			seen[k] = true
			players = append(players, rec)
		}
	}

	date := extract.ExtractDate(text)
	return &schema.MatchPayload{
		MatchID:        extract.MatchID(date, home.TeamID, away.TeamID),
		Date:           date,
		Round:          extract.ExtractRound(text),
		HomeTeam:       home.Name,
		AwayTeam:       away.Name,
		HomeTeamID:     home.TeamID,
		AwayTeamID:     away.TeamID,
		Score:          info.Score,
		HomeGoals:      info.HomeGoals,
		AwayGoals:      info.AwayGoals,
		TeamStats:      extract.ExtractTeamStats(text),
		Players:        players,
		BestPerformers: algo.SelectBest(players, opts.BestMinMinutes),
	}, nil
}

// batchHooks run around every document of a batch. Before may attach values
// to the document's context.
type batchHooks struct {
	before func(ctx context.Context, path string) context.Context
	after  func(ctx context.Context, res schema.ImportResult)
}

// ProcessBatch extracts and processes every path with at most workers in
// flight. Per-file failures land in the result instead of stopping the batch.
// Results keep the order of paths.
func ProcessBatch(ctx context.Context, src contract.DocumentSource, paths []string, roster schema.RosterSnapshot, baselines map[string]float64, opts ProcessOptions, workers int) []schema.ImportResult {
	return processBatch(ctx, src, paths, roster, baselines, opts, workers, nil)
}

func processBatch(ctx context.Context, src contract.DocumentSource, paths []string, roster schema.RosterSnapshot, baselines map[string]float64, opts ProcessOptions, workers int, hooks *batchHooks) []schema.ImportResult {
	results := make([]schema.ImportResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, path := range paths {
		g.Go(func() error {
			docCtx := gctx
			if hooks != nil && hooks.before != nil {
				docCtx = hooks.before(docCtx, path)
			}
			results[i] = processOne(docCtx, src, path, roster, baselines, opts)
			if hooks != nil && hooks.after != nil {
				hooks.after(docCtx, results[i])
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func processOne(ctx context.Context, src contract.DocumentSource, path string, roster schema.RosterSnapshot, baselines map[string]float64, opts ProcessOptions) schema.ImportResult {
	res := schema.ImportResult{SourcePath: path}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	doc, err := src.Extract(ctx, path)
	if err != nil {
		res.Err = fmt.Errorf("extract %s: %w", path, err)
		return res
	}
	res.Payload, res.Err = ProcessMatch(ctx, doc, roster, baselines, opts)
	return res
}
