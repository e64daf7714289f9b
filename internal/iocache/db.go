package iocache

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
)

// Table names of the matchgrade store.
const (
	teamsTable         = "matchgrade_teams"
	playersTable       = "matchgrade_players"
	baselinesTable     = "matchgrade_baselines"
	importsTable       = "matchgrade_imports"
	playerGradesTable  = "matchgrade_player_grades"
	documentCacheTable = "matchgrade_document_cache"
	migrationsTable    = "schema_migrations"
)

// allTables lists every table in drop order.
var allTables = []string{
	documentCacheTable, playerGradesTable, importsTable,
	baselinesTable, playersTable, teamsTable, migrationsTable,
}

var tableNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validateTableName validates that the table name is a safe SQL identifier.
func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !tableNameRe.MatchString(name) {
		return fmt.Errorf("invalid table name: %s (must match pattern %s)", name, tableNameRe)
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	if backend == schema.MySQLBackend {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

// driverName maps a backend to its database/sql driver.
func driverName(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "mysql"
	case schema.PostgreSQLBackend:
		return "pgx"
	default:
		return "sqlite"
	}
}

// mysqlDSN turns on the DSN options the store relies on: native time scanning
// and multi-statement migration files.
func mysqlDSN(connStr string) (string, error) {
	cfg, err := mysql.ParseDSN(connStr)
	if err != nil {
		return "", fmt.Errorf("invalid MySQL DSN: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
	}
	cfg.ParseTime = true
	cfg.MultiStatements = true
	return cfg.FormatDSN(), nil
}

// openDB opens and pings the database for a backend.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	dsn := connStr
	switch backend {
	case schema.SQLiteBackend:
		if dsn == "" {
			dsn = contract.GetDBFilePath()
		}
	case schema.MySQLBackend:
		var err error
		if dsn, err = mysqlDSN(connStr); err != nil {
			return nil, err
		}
	case schema.PostgreSQLBackend:
	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	db, err := sql.Open(driverName(backend), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// A single connection avoids "database is locked" and keeps ":memory:" databases shared.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}
	return db, nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func rebind(query string, backend schema.DatabaseBackend) string {
	if backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// upsertQuery builds an insert-or-replace statement keyed on keyCols.
func upsertQuery(table string, backend schema.DatabaseBackend, cols, keyCols []string) string {
	quoted := quoteTableName(table, backend)
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoted, strings.Join(cols, ", "), marks)

	isKey := make(map[string]bool, len(keyCols))
	for _, k := range keyCols {
		isKey[k] = true
	}
	var sets []string
	switch backend {
	case schema.MySQLBackend:
		for _, c := range cols {
			if !isKey[c] {
				sets = append(sets, fmt.Sprintf("%s = new.%s", c, c))
			}
		}
		return insert + " AS new ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
	case schema.PostgreSQLBackend:
		for _, c := range cols {
			if !isKey[c] {
				sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
			}
		}
		return rebind(insert, backend) + fmt.Sprintf(" ON CONFLICT (%s) DO UPDATE SET %s", strings.Join(keyCols, ", "), strings.Join(sets, ", "))
	default: // SQLite
		return strings.Replace(insert, "INSERT INTO", "INSERT OR REPLACE INTO", 1)
	}
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	if backend == schema.SQLiteBackend {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return t
}

// parseTime reads a time column. SQLite stores RFC 3339 text, the others
// scan into time.Time natively.
func parseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return time.Parse(time.RFC3339Nano, t)
	case []byte:
		return time.Parse(time.RFC3339Nano, string(t))
	default:
		return time.Time{}, fmt.Errorf("unexpected time value %T", v)
	}
}

// parseNullTime is parseTime for nullable columns.
func parseNullTime(v any) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	t, err := parseTime(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// countRows returns the number of rows in a table.
func countRows(db *sql.DB, table string, backend schema.DatabaseBackend) (int64, error) {
	var n int64
	err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, backend))).Scan(&n)
	return n, err
}
