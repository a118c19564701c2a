package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	_ "github.com/jackc/pgx/v5/stdlib"                   // "pgx" database/sql driver
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go "sqlite" driver
)

const (
	defaultMaxOpenConnections = 8
	defaultMaxIdleConnections = 2
	defaultMaxConnLifetime    = time.Hour
	defaultMaxConnIdleTime    = 5 * time.Minute
)

// Store owns the database handle and the SQL dialect used to build queries.
type Store struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
	// likeOp is the case-insensitive LIKE operator of the dialect.
	likeOp string
}

// Open connects to the database. driver is "postgres" (lib/pq), "pgx" or "sqlite".
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	if driver == "sqlite" && !strings.Contains(dsn, "foreign_keys") {
		dsn = withQueryParam(dsn, "_pragma=foreign_keys(1)")
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if driver == "sqlite" {
		// One writer at a time avoids SQLITE_BUSY under concurrent requests.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(defaultMaxOpenConnections)
		db.SetMaxIdleConns(defaultMaxIdleConnections)
		db.SetConnMaxLifetime(defaultMaxConnLifetime)
		db.SetConnMaxIdleTime(defaultMaxConnIdleTime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return NewStore(db), nil
}

// NewStore wraps an open handle. The query dialect follows db.DriverName().
func NewStore(db *sqlx.DB) *Store {
	name := dialectFor(db.DriverName())
	likeOp := "ILIKE"
	if name == "sqlite3" {
		// SQLite's LIKE already ignores ASCII case.
		likeOp = "LIKE"
	}
	return &Store{db: db, dialect: goqu.Dialect(name), likeOp: likeOp}
}

func dialectFor(driverName string) string {
	if driverName == "sqlite" || driverName == "sqlite3" {
		return "sqlite3"
	}
	return "postgres"
}

func withQueryParam(dsn, param string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + param
	}
	return dsn + "?" + param
}

// DB exposes the underlying handle.
func (s *Store) DB() *sqlx.DB { return s.db }

// Close closes the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
