package sqldb

import (
	"context"
	"fmt"

	"github.com/fedenh3/proyecto-cava/internal/domain/player"
	qb "github.com/fedenh3/proyecto-cava/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *DB
}

func NewPlayerRepository(db *DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func playerFromRow(row jugadorTableModel) player.Player {
	return player.Player{
		ID:          row.ID,
		Name:        nullStringValue(row.Nombre),
		Surname:     row.Apellido,
		PositionID:  row.PosicionID,
		SheetRowRef: nullStringValue(row.RefFila),
		Initial: player.InitialCounters{
			Games:    row.PJIniciales,
			Goals:    row.GolesIniciales,
			Conceded: row.RecibidosIniciales,
			Assists:  row.AsistenciasIniciales,
			Yellows:  row.AmarillasIniciales,
			Reds:     row.RojasIniciales,
			Starts:   row.TitularIniciales,
			SubApps:  row.SuplenteIniciales,
		},
	}
}

func (r *PlayerRepository) FindByFullName(ctx context.Context, name, surname string) (player.Player, bool, error) {
	conditions := []qb.Condition{qb.Eq("apellido", surname)}
	if name == "" {
		conditions = append(conditions, qb.Expr("(nombre IS NULL OR nombre = '')"))
	} else {
		conditions = append(conditions, qb.Eq("nombre", name))
	}

	query, args, err := qb.Select("*").Dialect(r.db.Dialect).From("jugadores").
		Where(conditions...).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build find jugador query: %w", err)
	}

	var row jugadorTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("find jugador %s %s: %w", surname, name, err)
	}

	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Insert(ctx context.Context, p player.Player) (int64, error) {
	query, args, err := qb.InsertInto("jugadores").Dialect(r.db.Dialect).
		Columns(
			"nombre", "apellido", "id_posicion", "ref_fila",
			"pj_iniciales", "goles_iniciales", "goles_recibidos_iniciales",
			"asistencias_iniciales", "amarillas_iniciales", "rojas_iniciales",
			"titular_iniciales", "suplente_iniciales",
		).
		Values(
			nullString(p.Name), p.Surname, p.PositionID, nullString(p.SheetRowRef),
			p.Initial.Games, p.Initial.Goals, p.Initial.Conceded,
			p.Initial.Assists, p.Initial.Yellows, p.Initial.Reds,
			p.Initial.Starts, p.Initial.SubApps,
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert jugador query: %w", err)
	}

	id, err := insertID(ctx, r.db, r.db.Dialect, query, args)
	if err != nil {
		return 0, fmt.Errorf("insert jugador %s %s: %w", p.Surname, p.Name, err)
	}
	return id, nil
}

func (r *PlayerRepository) BumpInitial(ctx context.Context, id int64, delta player.InitialCounters) error {
	query, args, err := qb.Update("jugadores").Dialect(r.db.Dialect).
		SetExpr("pj_iniciales", "pj_iniciales + ?", delta.Games).
		SetExpr("goles_iniciales", "goles_iniciales + ?", delta.Goals).
		SetExpr("goles_recibidos_iniciales", "goles_recibidos_iniciales + ?", delta.Conceded).
		SetExpr("asistencias_iniciales", "asistencias_iniciales + ?", delta.Assists).
		SetExpr("amarillas_iniciales", "amarillas_iniciales + ?", delta.Yellows).
		SetExpr("rojas_iniciales", "rojas_iniciales + ?", delta.Reds).
		SetExpr("titular_iniciales", "titular_iniciales + ?", delta.Starts).
		SetExpr("suplente_iniciales", "suplente_iniciales + ?", delta.SubApps).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build bump jugador counters query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("bump jugador %d counters: %w", id, err)
	}
	return nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("*").Dialect(r.db.Dialect).From("jugadores").
		OrderBy("apellido", "nombre").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list jugadores query: %w", err)
	}

	var rows []jugadorTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list jugadores: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) Get(ctx context.Context, id int64) (player.Player, error) {
	query, args, err := qb.Select("*").Dialect(r.db.Dialect).From("jugadores").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return player.Player{}, fmt.Errorf("build get jugador query: %w", err)
	}

	var row jugadorTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return player.Player{}, fmt.Errorf("get jugador %d: %w", id, err)
	}
	return playerFromRow(row), nil
}

func (r *PlayerRepository) FindPositionByName(ctx context.Context, name string) (player.Position, bool, error) {
	query, args, err := qb.Select("*").Dialect(r.db.Dialect).From("posiciones").
		Where(qb.Eq("nombre", name)).
		ToSQL()
	if err != nil {
		return player.Position{}, false, fmt.Errorf("build find posicion query: %w", err)
	}

	var row posicionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Position{}, false, nil
		}
		return player.Position{}, false, fmt.Errorf("find posicion %s: %w", name, err)
	}

	return player.Position{ID: row.ID, Name: row.Nombre}, true, nil
}

func (r *PlayerRepository) InsertPosition(ctx context.Context, p player.Position) (int64, error) {
	query, args, err := qb.InsertInto("posiciones").Dialect(r.db.Dialect).
		Columns("nombre").
		Values(p.Name).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert posicion query: %w", err)
	}

	id, err := insertID(ctx, r.db, r.db.Dialect, query, args)
	if err != nil {
		return 0, fmt.Errorf("insert posicion %s: %w", p.Name, err)
	}
	return id, nil
}
