// Package core has core logic for extraction, grading and import orchestration.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/matchgrade/core/algo"
	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/internal/outwriter"
	"github.com/huangsam/matchgrade/schema"
)

// ErrNoReports is returned when there is nothing to grade.
var ErrNoReports = errors.New("no reports to grade")

// ErrAllFailed is returned when every report in a run failed to import.
var ErrAllFailed = errors.New("every report failed to import")

// GradeReports grades paths against the current roster and baselines. With a
// sink or publisher, every report is tracked as an import run and announced.
func GradeReports(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.DocumentSource, pub contract.MatchPublisher, paths []string) ([]schema.ImportResult, error) {
	if len(paths) == 0 {
		return nil, ErrNoReports
	}
	roster, err := loadRoster(ctx, cfg, mgr)
	if err != nil {
		return nil, err
	}
	baselines := loadBaselines(ctx, mgr, roster)
	opts := OptionsFromConfig(cfg)

	var hooks *batchHooks
	if !cfg.DryRun {
		tracker := &importTracker{sink: mgr.GetMatchSink(), publisher: pub, params: importParams(cfg)}
		if tracker.sink != nil || tracker.publisher != nil {
			hooks = tracker.hooks()
		}
	}
	return processBatch(ctx, src, paths, roster, baselines, opts, cfg.Workers, hooks), nil
}

// summarize turns a batch outcome into the command error.
func summarize(results []schema.ImportResult) error {
	for _, r := range results {
		if r.Err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %w", ErrAllFailed, results[0].Err)
}

// ExecuteGrade grades the reports named in cfg.Files and prints the results.
func ExecuteGrade(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.DocumentSource, pub contract.MatchPublisher) error {
	start := time.Now()
	results, err := GradeReports(ctx, cfg, mgr, src, pub, cfg.Files)
	if err != nil {
		return err
	}
	if err := outwriter.NewOutWriter().WriteMatches(results, cfg, time.Since(start)); err != nil {
		return err
	}
	return summarize(results)
}

// ExecuteRecompute re-grades every stored source report against the current
// roster, aliases and weights. Each report gets a fresh import run.
func ExecuteRecompute(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.DocumentSource, pub contract.MatchPublisher) error {
	start := time.Now()
	sink := mgr.GetMatchSink()
	if sink == nil {
		return errors.New("match store is not initialized")
	}
	paths, err := sink.GetSourcePaths(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stored reports: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w: the match store has no imports", ErrNoReports)
	}
	results, err := GradeReports(ctx, cfg, mgr, src, pub, paths)
	if err != nil {
		return err
	}
	if err := outwriter.NewOutWriter().WriteMatches(results, cfg, time.Since(start)); err != nil {
		return err
	}
	return summarize(results)
}

// ActiveRules returns every outfield rule list with the configured overrides applied.
func ActiveRules(cfg *contract.Config) map[schema.Role][]schema.MetricRule {
	out := make(map[schema.Role][]schema.MetricRule, len(schema.AllRoles))
	for _, role := range schema.AllRoles {
		if rules := algo.RulesFor(role, cfg.CustomWeights); len(rules) > 0 {
			out[role] = rules
		}
	}
	return out
}

// ActiveKeeperWeights returns the configured keeper blend, or the defaults.
func ActiveKeeperWeights(cfg *contract.Config) map[schema.MetricKey]float64 {
	if len(cfg.KeeperWeights) > 0 {
		return cfg.KeeperWeights
	}
	return schema.GetDefaultKeeperWeights()
}

// ExecuteRules prints the grading rules in effect.
func ExecuteRules(_ context.Context, cfg *contract.Config) error {
	return outwriter.NewOutWriter().WriteRules(ActiveRules(cfg), ActiveKeeperWeights(cfg), cfg)
}
