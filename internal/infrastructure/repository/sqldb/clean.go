package sqldb

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/fedenh3/proyecto-cava/internal/platform/querybuilder"
)

// cleanTables lists the reloadable tables in foreign-key-safe delete
// order. Users and the alias table are configuration, not sheet data,
// and survive a reload.
var cleanTables = []string{
	"stats",
	"partidos",
	"jugadores",
	"posiciones",
	"tecnicos",
	"arbitros",
	"rivales",
	"torneos",
}

// Cleaner exposes Clean as the wipe dependency of the ingest run.
type Cleaner struct {
	db *DB
}

func NewCleaner(db *DB) *Cleaner {
	return &Cleaner{db: db}
}

func (c *Cleaner) Clean(ctx context.Context) error {
	return Clean(ctx, c.db)
}

// Clean removes every ingested row and resets id generation, so a
// reload assigns the same ids for the same sheet. The whole sweep runs
// in one transaction.
func Clean(ctx context.Context, db *DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clean tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range cleanTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clean table %s: %w", table, err)
		}
	}

	switch db.Dialect {
	case qb.SQLite:
		// sqlite_sequence only exists once an AUTOINCREMENT table has
		// been written to, hence the tolerant single statement.
		query, args, err := sqlx.In("DELETE FROM sqlite_sequence WHERE name IN (?)", cleanTables)
		if err != nil {
			return fmt.Errorf("bind sequence reset query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("reset sqlite sequences: %w", err)
		}
	case qb.Postgres:
		for _, table := range cleanTables {
			if table == "stats" {
				// stats has a composite key and no serial column
				continue
			}
			stmt := fmt.Sprintf("ALTER SEQUENCE %s_id_seq RESTART WITH 1", table)
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("reset sequence for %s: %w", table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clean tx: %w", err)
	}
	return nil
}
