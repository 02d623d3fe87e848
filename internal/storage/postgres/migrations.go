package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

// Migrations are embedded so the binary can set up a fresh database
// regardless of the working directory.
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// runMigrations applies every migration in file name order. All statements
// are idempotent, so running them on every start is safe.
func (s *PostgresStore) runMigrations(ctx context.Context) error {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		sqlBytes, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := s.pool.Exec(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
	}
	return nil
}
