package sqldb

import (
	"context"
	"fmt"

	"github.com/fedenh3/proyecto-cava/internal/domain/opponent"
	qb "github.com/fedenh3/proyecto-cava/internal/platform/querybuilder"
)

type OpponentRepository struct {
	db *DB
}

func NewOpponentRepository(db *DB) *OpponentRepository {
	return &OpponentRepository{db: db}
}

func (r *OpponentRepository) FindByName(ctx context.Context, name string) (opponent.Opponent, bool, error) {
	query, args, err := qb.Select("*").Dialect(r.db.Dialect).From("rivales").
		Where(qb.Eq("nombre", name)).
		ToSQL()
	if err != nil {
		return opponent.Opponent{}, false, fmt.Errorf("build find rival query: %w", err)
	}

	var row rivalTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return opponent.Opponent{}, false, nil
		}
		return opponent.Opponent{}, false, fmt.Errorf("find rival %s: %w", name, err)
	}

	return opponent.Opponent{ID: row.ID, Name: row.Nombre}, true, nil
}

func (r *OpponentRepository) Insert(ctx context.Context, o opponent.Opponent) (int64, error) {
	query, args, err := qb.InsertInto("rivales").Dialect(r.db.Dialect).
		Columns("nombre").
		Values(o.Name).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert rival query: %w", err)
	}

	id, err := insertID(ctx, r.db, r.db.Dialect, query, args)
	if err != nil {
		return 0, fmt.Errorf("insert rival %s: %w", o.Name, err)
	}
	return id, nil
}

func (r *OpponentRepository) List(ctx context.Context) ([]opponent.Opponent, error) {
	query, args, err := qb.Select("*").Dialect(r.db.Dialect).From("rivales").
		OrderBy("nombre").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rivales query: %w", err)
	}

	var rows []rivalTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rivales: %w", err)
	}

	out := make([]opponent.Opponent, 0, len(rows))
	for _, row := range rows {
		out = append(out, opponent.Opponent{ID: row.ID, Name: row.Nombre})
	}
	return out, nil
}

func (r *OpponentRepository) ListAliases(ctx context.Context) ([]opponent.Alias, error) {
	query, args, err := qb.Select("*").Dialect(r.db.Dialect).From("rivales_alias").
		OrderBy("alias").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rival aliases query: %w", err)
	}

	var rows []rivalAliasTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rival aliases: %w", err)
	}

	out := make([]opponent.Alias, 0, len(rows))
	for _, row := range rows {
		out = append(out, opponent.Alias{From: row.Alias, To: row.Canonico})
	}
	return out, nil
}

func (r *OpponentRepository) SeedAliases(ctx context.Context, aliases []opponent.Alias) error {
	for _, a := range aliases {
		query, args, err := qb.InsertInto("rivales_alias").Dialect(r.db.Dialect).
			Columns("alias", "nombre_canonico").
			Values(a.From, a.To).
			OrIgnore().
			ToSQL()
		if err != nil {
			return fmt.Errorf("build seed alias query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed rival alias %s: %w", a.From, err)
		}
	}
	return nil
}
