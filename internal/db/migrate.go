package db

import (
	"context"
	"embed"
	"path"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// migrationFiles returns the embedded migration file names in apply order.
func migrationFiles() ([]string, error) {
	entries, err := migrations.ReadDir(migrationsDir)
	if err != nil {
		return nil, errors.Wrap(err, "read migrations")
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func migrationVersion(filename string) string {
	return strings.SplitN(filename, "_", 2)[0]
}

// Migrate applies every pending migration, each in its own transaction.
// A nil logger runs silently. It returns the number of migrations applied.
func (db *DB) Migrate(ctx context.Context, logger *zap.SugaredLogger) (int, error) {
	files, err := migrationFiles()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, filename := range files {
		version := migrationVersion(filename)

		done, err := db.migrationApplied(ctx, version)
		if err != nil {
			return applied, err
		}
		if done {
			if logger != nil {
				logger.Debugw("Skipping migration (already applied)",
					"migration", filename,
					"version", version,
				)
			}
			continue
		}

		sqlBytes, err := migrations.ReadFile(path.Join(migrationsDir, filename))
		if err != nil {
			return applied, errors.Wrapf(err, "read %s", filename)
		}

		if logger != nil {
			logger.Infow("Applying migration",
				"migration", filename,
				"version", version,
			)
		}

		if err := pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(sqlBytes)); err != nil {
				return errors.Wrapf(err, "execute %s", filename)
			}
			// 000 creates schema_migrations, then records itself
			if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
				return errors.Wrapf(err, "record %s", filename)
			}
			return nil
		}); err != nil {
			return applied, err
		}
		applied++
	}

	if logger != nil {
		logger.Infow("Migrations complete",
			"total_migrations", len(files),
			"applied", applied,
		)
	}
	return applied, nil
}

func (db *DB) migrationApplied(ctx context.Context, version string) (bool, error) {
	var tableExists bool
	err := db.pool.QueryRow(ctx, `SELECT to_regclass('schema_migrations') IS NOT NULL`).Scan(&tableExists)
	if err != nil {
		return false, errors.Wrap(err, "check schema_migrations")
	}
	if !tableExists {
		if version != "000" {
			return false, errors.Newf("schema_migrations table missing, but migration is not 000: %s", version)
		}
		return false, nil
	}

	var exists bool
	err = db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
	).Scan(&exists)
	if err != nil {
		return false, errors.Wrapf(err, "check migration %s", version)
	}
	return exists, nil
}
