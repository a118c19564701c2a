package sqlstore

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsTable = "schema_migrations"

// Migrate applies embedded SQL migrations in filename order. Each file runs in its own
// transaction and is recorded in schema_migrations so reruns skip it.
func (s *Store) Migrate(ctx context.Context) error {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	if _, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	name TEXT PRIMARY KEY,
	applied_at TIMESTAMP NOT NULL
)`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	for _, name := range names {
		if err := s.applyMigration(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) applyMigration(ctx context.Context, name string) error {
	return s.WithinTx(ctx, func(ctx context.Context) error {
		q := s.ext(ctx)

		countSQL, args, err := s.dialect.From(migrationsTable).Prepared(true).
			Select(goqu.COUNT("*")).
			Where(goqu.Ex{"name": name}).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build migration check: %w", err)
		}
		var applied int
		if err := sqlx.GetContext(ctx, q, &applied, countSQL, args...); err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if applied > 0 {
			return nil
		}

		raw, err := migrationFiles.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		stmt := strings.TrimSpace(string(raw))
		if stmt == "" {
			return nil
		}
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec migration %s: %w", name, err)
		}

		insertSQL, args, err := s.dialect.Insert(migrationsTable).Prepared(true).
			Cols("name", "applied_at").
			Vals(goqu.Vals{name, time.Now().UTC()}).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build migration record: %w", err)
		}
		if _, err := q.ExecContext(ctx, insertSQL, args...); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		return nil
	})
}
