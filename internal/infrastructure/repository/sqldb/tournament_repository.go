package sqldb

import (
	"context"
	"fmt"

	"github.com/fedenh3/proyecto-cava/internal/domain/tournament"
	qb "github.com/fedenh3/proyecto-cava/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *DB
}

func NewTournamentRepository(db *DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) FindByNameAndSeason(ctx context.Context, name, season string) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select("*").Dialect(r.db.Dialect).From("torneos").
		Where(
			qb.Eq("nombre", name),
			qb.Eq("temporada", season),
		).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build find torneo query: %w", err)
	}

	var row torneoTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("find torneo %s/%s: %w", name, season, err)
	}

	return tournament.Tournament{ID: row.ID, Name: row.Nombre, Season: row.Temporada}, true, nil
}

func (r *TournamentRepository) Insert(ctx context.Context, t tournament.Tournament) (int64, error) {
	query, args, err := qb.InsertInto("torneos").Dialect(r.db.Dialect).
		Columns("nombre", "temporada").
		Values(t.Name, t.Season).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert torneo query: %w", err)
	}

	id, err := insertID(ctx, r.db, r.db.Dialect, query, args)
	if err != nil {
		return 0, fmt.Errorf("insert torneo %s/%s: %w", t.Name, t.Season, err)
	}
	return id, nil
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Tournament, error) {
	query, args, err := qb.Select("*").Dialect(r.db.Dialect).From("torneos").
		OrderBy("temporada", "nombre").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list torneos query: %w", err)
	}

	var rows []torneoTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list torneos: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, tournament.Tournament{ID: row.ID, Name: row.Nombre, Season: row.Temporada})
	}
	return out, nil
}
