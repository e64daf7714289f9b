package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
)

// importTracker records every document as its own import run and announces
// successful grades. Tracking failures are logged and never fail the import.
type importTracker struct {
	sink      contract.MatchSink
	publisher contract.MatchPublisher
	params    map[string]any
}

// importParams captures the config that influenced a grade.
func importParams(cfg *contract.Config) map[string]any {
	return map[string]any{
		"workers":              cfg.Workers,
		"min_minutes_outfield": cfg.MinMinutesOutfield,
		"min_minutes_keeper":   cfg.MinMinutesKeeper,
		"best_min_minutes":     cfg.BestMinMinutes,
		"short_hint_threshold": cfg.ShortHintThreshold,
		"custom_weights":       len(cfg.CustomWeights) > 0,
		"roster_file":          cfg.RosterFile,
	}
}

func (t *importTracker) hooks() *batchHooks {
	return &batchHooks{before: t.begin, after: t.finish}
}

// begin opens an import run and attaches its ID to the document context.
func (t *importTracker) begin(ctx context.Context, path string) context.Context {
	if t.sink == nil {
		return ctx
	}
	id, err := t.sink.BeginImport(ctx, path, time.Now(), t.params)
	if err != nil {
		contract.LogWarn("Import tracking initialization failed", err)
		return ctx
	}
	if id > 0 {
		ctx = withImportID(ctx, id)
	}
	return ctx
}

// finish stores and publishes the result, then closes the import run.
func (t *importTracker) finish(ctx context.Context, res schema.ImportResult) {
	log := LoggerFrom(ctx).With(slog.String("file", res.SourcePath))
	if res.Err != nil {
		log.Warn("import failed", slog.Any("error", res.Err))
	}

	if id, ok := getImportID(ctx); ok {
		if res.Err == nil {
			if err := t.sink.RecordMatch(ctx, id, res.Payload); err != nil {
				contract.LogWarn("Failed to record match", err)
			}
		}
		if err := t.sink.EndImport(ctx, id, time.Now()); err != nil {
			contract.LogWarn("Failed to finalize import tracking", err)
		}
		log.Debug("import recorded", slog.Int64("import_id", id))
	}

	if t.publisher != nil && res.Err == nil {
		if err := t.publisher.PublishMatch(ctx, res.Payload); err != nil {
			contract.LogWarn("Failed to publish match", err)
		}
	}
}
