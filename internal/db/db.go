// Package db opens the folio database and holds small helpers shared by the
// packages that query it.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	_ "github.com/lib/pq"  // Postgres driver
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "folio"
	dbFileName = "folio.db"
)

// Dialect identifies the SQL flavour of a connection.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// DB is a database handle that knows its dialect.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects to driver ("sqlite" or "postgres"). An empty sqlite DSN uses
// the default file under the XDG data directory.
func Open(driver, dsn string) (*DB, error) {
	switch Dialect(strings.ToLower(driver)) {
	case Postgres:
		return OpenPostgres(dsn)
	case SQLite, "":
		return OpenSQLite(dsn)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

// OpenSQLite opens a SQLite database file, creating its directory.
// ":memory:" is accepted for tests.
func OpenSQLite(path string) (*DB, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// each connection would get its own empty database
		conn.SetMaxOpenConns(1)
	}
	return &DB{DB: conn, Dialect: SQLite}, nil
}

// OpenPostgres opens a Postgres database and checks the connection.
func OpenPostgres(dsn string) (*DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return &DB{DB: conn, Dialect: Postgres}, nil
}

// DefaultPath returns the SQLite file under the XDG data directory.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Rebind rewrites ? placeholders for the connection's dialect.
func (d *DB) Rebind(query string) string {
	return Rebind(d.Dialect, query)
}

// Rebind rewrites ? placeholders to $1, $2, ... for Postgres. Queries must not
// contain literal question marks.
func Rebind(d Dialect, query string) string {
	if d != Postgres || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// BoolToInt stores booleans as integers, which both dialects accept.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
