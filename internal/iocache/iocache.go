// Package iocache persists rosters, baselines, graded matches and extracted
// document text across sqlite, mysql and postgresql backends.
package iocache

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
)

// sqlBase is the connection shared by every store of one manager.
type sqlBase struct {
	db        *sql.DB
	backend   schema.DatabaseBackend
	closeOnce sync.Once
	closeErr  error
}

// newSQLBase opens the database and migrates it. NoneBackend yields a base
// without a connection, which makes every store a no-op.
func newSQLBase(backend schema.DatabaseBackend, connStr string) (*sqlBase, error) {
	if backend == schema.NoneBackend {
		return &sqlBase{backend: backend}, nil
	}
	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare %s store: %w", backend, err)
	}
	return &sqlBase{db: db, backend: backend}, nil
}

// disabled reports whether the store has no connection.
func (b *sqlBase) disabled() bool {
	return b == nil || b.db == nil
}

// q quotes a table name for the backend.
func (b *sqlBase) q(table string) string {
	return quoteTableName(table, b.backend)
}

// Close closes the shared connection once.
func (b *sqlBase) Close() error {
	if b.disabled() {
		return nil
	}
	b.closeOnce.Do(func() { b.closeErr = b.db.Close() })
	return b.closeErr
}

// StoreManagerImpl hands out the stores backed by one database.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	base         *sqlBase
	roster       *RosterStoreImpl
	sink         *MatchSinkImpl
	docs         *DocumentCacheImpl
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// NewStoreManager opens a backend and wires every store to it.
func NewStoreManager(backend schema.DatabaseBackend, connStr string) (*StoreManagerImpl, error) {
	base, err := newSQLBase(backend, connStr)
	if err != nil {
		return nil, err
	}
	return &StoreManagerImpl{
		base:   base,
		roster: &RosterStoreImpl{base},
		sink:   &MatchSinkImpl{base},
		docs:   &DocumentCacheImpl{base},
	}, nil
}

// GetRosterStore returns the roster store.
func (mgr *StoreManagerImpl) GetRosterStore() contract.RosterStore {
	mgr.RLock()
	defer mgr.RUnlock()
	if mgr.roster == nil {
		return nil
	}
	return mgr.roster
}

// GetBaselineStore returns the baseline store.
func (mgr *StoreManagerImpl) GetBaselineStore() contract.BaselineStore {
	mgr.RLock()
	defer mgr.RUnlock()
	if mgr.roster == nil {
		return nil
	}
	return mgr.roster
}

// GetMatchSink returns the match sink.
func (mgr *StoreManagerImpl) GetMatchSink() contract.MatchSink {
	mgr.RLock()
	defer mgr.RUnlock()
	if mgr.sink == nil {
		return nil
	}
	return mgr.sink
}

// GetDocumentCache returns the document text cache.
func (mgr *StoreManagerImpl) GetDocumentCache() contract.DocumentCache {
	mgr.RLock()
	defer mgr.RUnlock()
	if mgr.docs == nil {
		return nil
	}
	return mgr.docs
}

// Close closes the shared connection.
func (mgr *StoreManagerImpl) Close() error {
	mgr.Lock()
	defer mgr.Unlock()
	return mgr.base.Close()
}
