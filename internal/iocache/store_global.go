package iocache

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/matchgrade/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManagerImpl{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global store manager.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	var initErr error
	initOnce.Do(func() {
		mgr, err := NewStoreManager(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize store: %w", err)
			return
		}
		Manager.Lock()
		defer Manager.Unlock()
		Manager.base = mgr.base
		Manager.roster = mgr.roster
		Manager.sink = mgr.sink
		Manager.docs = mgr.docs
	})
	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		_ = Manager.Close()
	})
}

// ClearStore removes all stored data for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops every matchgrade table.
// For NoneBackend, it does nothing.
func ClearStore(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		db, err := openDB(backend, connStr)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		for _, table := range allTables {
			if err := dropTable(db, table, backend); err != nil {
				return err
			}
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend for clearing: %s", backend)
	}
}

// dropTable drops the table if it exists.
func dropTable(db *sql.DB, table string, backend schema.DatabaseBackend) error {
	if err := validateTableName(table); err != nil {
		return err
	}
	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(table, backend))
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", table, err)
	}
	return nil
}
