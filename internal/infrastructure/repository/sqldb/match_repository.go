package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fedenh3/proyecto-cava/internal/domain/match"
	qb "github.com/fedenh3/proyecto-cava/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *DB
}

func NewMatchRepository(db *DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func matchFromRow(row partidoTableModel) match.Match {
	return match.Match{
		ID:           row.ID,
		Date:         nullStringValue(row.Fecha),
		TournamentID: row.TorneoID,
		OpponentID:   row.RivalID,
		RefereeID:    int64PtrValue(row.ArbitroID),
		CoachID:      int64PtrValue(row.TecnicoID),
		Condition:    match.Condition(row.Condicion),
		GoalsFor:     intPtrValue(row.GolesFavor),
		GoalsAgainst: intPtrValue(row.GolesContra),
		ScorerNotes:  nullStringValue(row.Goleadores),
		RedCardNotes: nullStringValue(row.Expulsados),
		PenaltyNotes: nullStringValue(row.Penales),
	}
}

func (r *MatchRepository) Insert(ctx context.Context, m match.Match) (int64, error) {
	query, args, err := qb.InsertInto("partidos").Dialect(r.db.Dialect).
		Columns(
			"fecha", "id_torneo", "id_rival", "id_arbitro", "id_tecnico",
			"condicion", "goles_favor", "goles_contra",
			"goleadores", "expulsados", "penales",
		).
		Values(
			nullString(m.Date), m.TournamentID, m.OpponentID,
			nullInt64Ptr(m.RefereeID), nullInt64Ptr(m.CoachID),
			string(m.Condition), nullIntPtr(m.GoalsFor), nullIntPtr(m.GoalsAgainst),
			nullString(m.ScorerNotes), nullString(m.RedCardNotes), nullString(m.PenaltyNotes),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert partido query: %w", err)
	}

	id, err := insertID(ctx, r.db, r.db.Dialect, query, args)
	if err != nil {
		return 0, fmt.Errorf("insert partido vs rival %d: %w", m.OpponentID, err)
	}
	return id, nil
}

func (r *MatchRepository) Get(ctx context.Context, id int64) (match.Match, error) {
	query, args, err := qb.Select("*").Dialect(r.db.Dialect).From("partidos").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build get partido query: %w", err)
	}

	var row partidoTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return match.Match{}, fmt.Errorf("get partido %d: %w", id, err)
	}
	return matchFromRow(row), nil
}

func (r *MatchRepository) List(ctx context.Context, f match.Filter) ([]match.Match, error) {
	query := `
SELECT p.* FROM partidos p
JOIN torneos t ON t.id = p.id_torneo
WHERE 1 = 1`
	var args []any
	if f.TournamentID > 0 {
		query += " AND p.id_torneo = ?"
		args = append(args, f.TournamentID)
	}
	if f.Season != "" {
		query += " AND t.temporada = ?"
		args = append(args, f.Season)
	}
	if f.OpponentID > 0 {
		query += " AND p.id_rival = ?"
		args = append(args, f.OpponentID)
	}
	if f.CoachID > 0 {
		query += " AND p.id_tecnico = ?"
		args = append(args, f.CoachID)
	}
	query += " ORDER BY p.fecha, p.id"

	var rows []partidoTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list partidos: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) ListCandidatesByOpponents(ctx context.Context, opponentIDs []int64) ([]match.Candidate, error) {
	if len(opponentIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
SELECT p.id, p.fecha, p.id_torneo, p.id_rival, p.goles_favor, p.goles_contra,
       r.nombre AS rival_nombre, t.temporada
FROM partidos p
JOIN rivales r ON r.id = p.id_rival
JOIN torneos t ON t.id = p.id_torneo
WHERE p.id_rival IN (?)
ORDER BY p.id`, opponentIDs)
	if err != nil {
		return nil, fmt.Errorf("bind candidate partidos query: %w", err)
	}

	type candidateRow struct {
		ID          int64          `db:"id"`
		Fecha       sql.NullString `db:"fecha"`
		TorneoID    int64          `db:"id_torneo"`
		RivalID     int64          `db:"id_rival"`
		GolesFavor  sql.NullInt64  `db:"goles_favor"`
		GolesContra sql.NullInt64  `db:"goles_contra"`
		RivalNombre string         `db:"rival_nombre"`
		Temporada   string         `db:"temporada"`
	}

	var rows []candidateRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list candidate partidos: %w", err)
	}

	out := make([]match.Candidate, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Candidate{
			Match: match.Match{
				ID:           row.ID,
				Date:         nullStringValue(row.Fecha),
				TournamentID: row.TorneoID,
				OpponentID:   row.RivalID,
				GoalsFor:     intPtrValue(row.GolesFavor),
				GoalsAgainst: intPtrValue(row.GolesContra),
			},
			OpponentName: row.RivalNombre,
			Season:       row.Temporada,
		})
	}
	return out, nil
}

func (r *MatchRepository) UpdateNotes(ctx context.Context, id int64, scorer, redCard, penalty string) error {
	query, args, err := qb.Update("partidos").Dialect(r.db.Dialect).
		Set("goleadores", nullString(scorer)).
		Set("expulsados", nullString(redCard)).
		Set("penales", nullString(penalty)).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update partido notes query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update partido %d notes: %w", id, err)
	}
	return nil
}
