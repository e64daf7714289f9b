package iocache

import (
	"database/sql"
	"fmt"

	"github.com/huangsam/matchgrade/internal/contract"
)

// DocumentCacheImpl keeps extracted report text keyed by content hash so
// re-imports skip PDF and HTML parsing.
type DocumentCacheImpl struct {
	*sqlBase
}

var _ contract.DocumentCache = &DocumentCacheImpl{} // Compile-time check

// Get retrieves a value by key. A miss returns sql.ErrNoRows.
func (dc *DocumentCacheImpl) Get(key string) ([]byte, int, int64, error) {
	if dc.disabled() {
		return nil, 0, 0, sql.ErrNoRows
	}
	var value []byte
	var version int
	var ts int64
	query := rebind(fmt.Sprintf(`SELECT cache_value, cache_version, cache_timestamp FROM %s WHERE cache_key = ?`, dc.q(documentCacheTable)), dc.backend)
	if err := dc.db.QueryRow(query, key).Scan(&value, &version, &ts); err != nil {
		return nil, 0, 0, err
	}
	return value, version, ts, nil
}

// Set inserts or replaces a key/value pair.
func (dc *DocumentCacheImpl) Set(key string, value []byte, version int, timestamp int64) error {
	if dc.disabled() {
		return nil
	}
	query := upsertQuery(documentCacheTable, dc.backend,
		[]string{"cache_key", "cache_value", "cache_version", "cache_timestamp"}, []string{"cache_key"})
	_, err := dc.db.Exec(query, key, value, version, timestamp)
	return err
}
