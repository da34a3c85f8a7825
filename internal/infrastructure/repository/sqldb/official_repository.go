package sqldb

import (
	"context"
	"fmt"

	"github.com/fedenh3/proyecto-cava/internal/domain/official"
	qb "github.com/fedenh3/proyecto-cava/internal/platform/querybuilder"
)

// OfficialRepository serves both referees and coaches; the two tables
// share a shape and only the name differs by kind.
type OfficialRepository struct {
	db *DB
}

func NewOfficialRepository(db *DB) *OfficialRepository {
	return &OfficialRepository{db: db}
}

func tableForKind(kind official.Kind) (string, error) {
	switch kind {
	case official.KindReferee:
		return "arbitros", nil
	case official.KindCoach:
		return "tecnicos", nil
	default:
		return "", fmt.Errorf("unknown official kind: %s", kind)
	}
}

func (r *OfficialRepository) FindByName(ctx context.Context, kind official.Kind, name string) (official.Official, bool, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return official.Official{}, false, err
	}

	query, args, err := qb.Select("*").Dialect(r.db.Dialect).From(table).
		Where(qb.Eq("nombre", name)).
		ToSQL()
	if err != nil {
		return official.Official{}, false, fmt.Errorf("build find %s query: %w", table, err)
	}

	var row oficialTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return official.Official{}, false, nil
		}
		return official.Official{}, false, fmt.Errorf("find %s %s: %w", kind, name, err)
	}

	return official.Official{ID: row.ID, Kind: kind, Name: row.Nombre}, true, nil
}

func (r *OfficialRepository) List(ctx context.Context, kind official.Kind) ([]official.Official, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return nil, err
	}

	query, args, err := qb.Select("*").Dialect(r.db.Dialect).From(table).
		OrderBy("nombre").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list %s query: %w", table, err)
	}

	var rows []oficialTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}

	out := make([]official.Official, 0, len(rows))
	for _, row := range rows {
		out = append(out, official.Official{ID: row.ID, Kind: kind, Name: row.Nombre})
	}
	return out, nil
}

func (r *OfficialRepository) Insert(ctx context.Context, o official.Official) (int64, error) {
	table, err := tableForKind(o.Kind)
	if err != nil {
		return 0, err
	}

	query, args, err := qb.InsertInto(table).Dialect(r.db.Dialect).
		Columns("nombre").
		Values(o.Name).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert %s query: %w", table, err)
	}

	id, err := insertID(ctx, r.db, r.db.Dialect, query, args)
	if err != nil {
		return 0, fmt.Errorf("insert %s %s: %w", o.Kind, o.Name, err)
	}
	return id, nil
}
