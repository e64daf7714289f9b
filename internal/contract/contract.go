// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/matchgrade/schema"
)

// DocumentSource turns a report file into plain text.
// This allows the import pipeline to be tested without real PDF or HTML files.
type DocumentSource interface {
	// Extract reads the document at path and returns its text with the base filename.
	Extract(ctx context.Context, path string) (schema.Document, error)
}

// StoreManager defines the interface for managing persistence stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetRosterStore() RosterStore
	GetBaselineStore() BaselineStore
	GetMatchSink() MatchSink
	GetDocumentCache() DocumentCache
}

// RosterStore holds canonical player and team identities.
type RosterStore interface {
	// LoadRoster returns every known team and player.
	LoadRoster(ctx context.Context) (schema.RosterSnapshot, error)

	// UpsertRoster inserts or replaces teams and players by their external IDs.
	UpsertRoster(ctx context.Context, snapshot schema.RosterSnapshot) error

	// GetStatus returns status information about the roster store
	GetStatus() (schema.RosterStatus, error)

	// Close closes the underlying connection
	Close() error
}

// BaselineStore holds season-average grades used to compute deltas.
type BaselineStore interface {
	// GetBaselines returns overall10 baselines for the given player IDs. Missing players are absent.
	GetBaselines(ctx context.Context, playerIDs []string) (map[string]float64, error)

	// UpsertBaselines inserts or replaces baselines by player ID.
	UpsertBaselines(ctx context.Context, baselines map[string]float64) error
}

// MatchSink persists graded matches and tracks import runs.
type MatchSink interface {
	// BeginImport creates a new import run and returns its unique ID
	BeginImport(ctx context.Context, sourcePath string, startTime time.Time, configParams map[string]any) (int64, error)

	// RecordMatch stores the payload under an import run
	RecordMatch(ctx context.Context, importID int64, payload *schema.MatchPayload) error

	// EndImport updates the import run with completion data
	EndImport(ctx context.Context, importID int64, endTime time.Time) error

	// GetSourcePaths returns the distinct source paths of all recorded imports
	GetSourcePaths(ctx context.Context) ([]string, error)

	// GetAllImports returns every import run, oldest first
	GetAllImports() ([]schema.ImportRunRecord, error)

	// GetAllPlayerGrades returns every stored player grade
	GetAllPlayerGrades() ([]schema.PlayerGradeRecord, error)

	// GetStatus returns status information about the match sink
	GetStatus() (schema.MatchSinkStatus, error)

	// Close closes the underlying connection
	Close() error
}

// DocumentCache stores extracted document text keyed by content hash.
type DocumentCache interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	Close() error
}

// MatchPublisher announces graded matches to downstream consumers.
type MatchPublisher interface {
	PublishMatch(ctx context.Context, payload *schema.MatchPayload) error
	Close() error
}
