package sqldb

import (
	"context"
	"fmt"

	"github.com/fedenh3/proyecto-cava/internal/domain/match"
	"github.com/fedenh3/proyecto-cava/internal/domain/stat"
	qb "github.com/fedenh3/proyecto-cava/internal/platform/querybuilder"
)

// EntryStore writes a manually entered match and its stat rows in one
// transaction: either everything for the match commits or nothing
// does.
type EntryStore struct {
	db *DB
}

func NewEntryStore(db *DB) *EntryStore {
	return &EntryStore{db: db}
}

func (s *EntryStore) CreateMatchWithStats(ctx context.Context, m match.Match, stats []stat.Stat) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin match entry tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertInto("partidos").Dialect(s.db.Dialect).
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

	matchID, err := insertID(ctx, tx, s.db.Dialect, query, args)
	if err != nil {
		return 0, fmt.Errorf("insert partido: %w", err)
	}

	for _, st := range stats {
		st.MatchID = matchID
		query, args, err := qb.InsertInto("stats").Dialect(s.db.Dialect).
			Columns(
				"id_partido", "id_jugador", "minutos_jugados", "es_titular",
				"goles_marcados", "goles_recibidos", "amarillas", "rojas",
			).
			Values(
				st.MatchID, st.PlayerID, st.Minutes, s.db.Dialect.BoolValue(st.Starter),
				st.Goals, st.Conceded, st.Yellows, st.Reds,
			).
			ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build insert stat query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("insert stat for jugador %d: %w", st.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit match entry tx: %w", err)
	}
	return matchID, nil
}
