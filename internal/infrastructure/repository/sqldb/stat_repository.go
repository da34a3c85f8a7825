package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fedenh3/proyecto-cava/internal/domain/stat"
	qb "github.com/fedenh3/proyecto-cava/internal/platform/querybuilder"
)

type StatRepository struct {
	db *DB
}

func NewStatRepository(db *DB) *StatRepository {
	return &StatRepository{db: db}
}

func statFromRow(row statTableModel) stat.Stat {
	return stat.Stat{
		MatchID:  row.PartidoID,
		PlayerID: row.JugadorID,
		Minutes:  row.Minutos,
		Starter:  row.Titular,
		Goals:    row.Goles,
		Conceded: row.GolesRecibidos,
		Yellows:  row.Amarillas,
		Reds:     row.Rojas,
	}
}

func (r *StatRepository) insertOne(ctx context.Context, tx *sql.Tx, s stat.Stat) error {
	query, args, err := qb.InsertInto("stats").Dialect(r.db.Dialect).
		Columns(
			"id_partido", "id_jugador", "minutos_jugados", "es_titular",
			"goles_marcados", "goles_recibidos", "amarillas", "rojas",
		).
		Values(
			s.MatchID, s.PlayerID, s.Minutes, r.db.Dialect.BoolValue(s.Starter),
			s.Goals, s.Conceded, s.Yellows, s.Reds,
		).
		OrIgnore().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert stat query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert stat match=%d player=%d: %w", s.MatchID, s.PlayerID, err)
	}
	return nil
}

func (r *StatRepository) InsertBatch(ctx context.Context, stats []stat.Stat) error {
	if len(stats) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin stats tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, s := range stats {
		if err := r.insertOne(ctx, tx, s); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit stats tx: %w", err)
	}
	return nil
}

func (r *StatRepository) Get(ctx context.Context, matchID, playerID int64) (stat.Stat, bool, error) {
	query, args, err := qb.Select("*").Dialect(r.db.Dialect).From("stats").
		Where(
			qb.Eq("id_partido", matchID),
			qb.Eq("id_jugador", playerID),
		).
		ToSQL()
	if err != nil {
		return stat.Stat{}, false, fmt.Errorf("build get stat query: %w", err)
	}

	var row statTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return stat.Stat{}, false, nil
		}
		return stat.Stat{}, false, fmt.Errorf("get stat match=%d player=%d: %w", matchID, playerID, err)
	}
	return statFromRow(row), true, nil
}

func (r *StatRepository) AddGoals(ctx context.Context, matchID, playerID int64, goals int) error {
	query, args, err := qb.Update("stats").Dialect(r.db.Dialect).
		SetExpr("goles_marcados", "goles_marcados + ?", goals).
		Where(
			qb.Eq("id_partido", matchID),
			qb.Eq("id_jugador", playerID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build add goals query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("add %d goals match=%d player=%d: %w", goals, matchID, playerID, err)
	}
	return nil
}

func (r *StatRepository) Upsert(ctx context.Context, s stat.Stat) error {
	_, found, err := r.Get(ctx, s.MatchID, s.PlayerID)
	if err != nil {
		return err
	}

	if !found {
		query, args, err := qb.InsertInto("stats").Dialect(r.db.Dialect).
			Columns(
				"id_partido", "id_jugador", "minutos_jugados", "es_titular",
				"goles_marcados", "goles_recibidos", "amarillas", "rojas",
			).
			Values(
				s.MatchID, s.PlayerID, s.Minutes, r.db.Dialect.BoolValue(s.Starter),
				s.Goals, s.Conceded, s.Yellows, s.Reds,
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert stat insert query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert stat match=%d player=%d: %w", s.MatchID, s.PlayerID, err)
		}
		return nil
	}

	query, args, err := qb.Update("stats").Dialect(r.db.Dialect).
		Set("minutos_jugados", s.Minutes).
		Set("es_titular", r.db.Dialect.BoolValue(s.Starter)).
		Set("goles_marcados", s.Goals).
		Set("goles_recibidos", s.Conceded).
		Set("amarillas", s.Yellows).
		Set("rojas", s.Reds).
		Where(
			qb.Eq("id_partido", s.MatchID),
			qb.Eq("id_jugador", s.PlayerID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert stat update query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert stat match=%d player=%d: %w", s.MatchID, s.PlayerID, err)
	}
	return nil
}

func (r *StatRepository) ListByPlayer(ctx context.Context, playerID int64) ([]stat.MatchLine, error) {
	query := r.db.Rebind(`
SELECT s.id_partido, s.id_jugador, s.minutos_jugados, s.es_titular,
       s.goles_marcados, s.goles_recibidos, s.amarillas, s.rojas,
       p.fecha, r.nombre AS rival_nombre, t.nombre AS torneo_nombre
FROM stats s
JOIN partidos p ON p.id = s.id_partido
JOIN rivales r ON r.id = p.id_rival
JOIN torneos t ON t.id = p.id_torneo
WHERE s.id_jugador = ?
ORDER BY p.fecha, p.id`)

	type lineRow struct {
		statTableModel
		Fecha        sql.NullString `db:"fecha"`
		RivalNombre  string         `db:"rival_nombre"`
		TorneoNombre string         `db:"torneo_nombre"`
	}

	var rows []lineRow
	if err := r.db.SelectContext(ctx, &rows, query, playerID); err != nil {
		return nil, fmt.Errorf("list stats for jugador %d: %w", playerID, err)
	}

	out := make([]stat.MatchLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, stat.MatchLine{
			Stat:       statFromRow(row.statTableModel),
			Date:       nullStringValue(row.Fecha),
			Opponent:   row.RivalNombre,
			Tournament: row.TorneoNombre,
		})
	}
	return out, nil
}

func (r *StatRepository) ListByMatch(ctx context.Context, matchID int64) ([]stat.Stat, error) {
	query, args, err := qb.Select("*").Dialect(r.db.Dialect).From("stats").
		Where(qb.Eq("id_partido", matchID)).
		OrderBy("id_jugador").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list stats query: %w", err)
	}

	var rows []statTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list stats for partido %d: %w", matchID, err)
	}

	out := make([]stat.Stat, 0, len(rows))
	for _, row := range rows {
		out = append(out, statFromRow(row))
	}
	return out, nil
}
