package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/fedenh3/proyecto-cava/internal/domain/match"
	"github.com/fedenh3/proyecto-cava/internal/domain/player"
	"github.com/fedenh3/proyecto-cava/internal/domain/stat"
	"github.com/fedenh3/proyecto-cava/internal/usecase"
)

type totalsDTO struct {
	Games    int `json:"games"`
	Starts   int `json:"starts"`
	Minutes  int `json:"minutes"`
	Goals    int `json:"goals"`
	Conceded int `json:"conceded"`
	Assists  int `json:"assists"`
	Yellows  int `json:"yellows"`
	Reds     int `json:"reds"`
}

type playerTotalsDTO struct {
	PlayerID int64     `json:"player_id"`
	Name     string    `json:"name"`
	Surname  string    `json:"surname"`
	FullName string    `json:"full_name"`
	Totals   totalsDTO `json:"totals"`
}

type matchDTO struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	TournamentID int64  `json:"tournament_id"`
	OpponentID   int64  `json:"opponent_id"`
	RefereeID    *int64 `json:"referee_id,omitempty"`
	CoachID      *int64 `json:"coach_id,omitempty"`
	Condition    string `json:"condition"`
	GoalsFor     *int   `json:"goals_for,omitempty"`
	GoalsAgainst *int   `json:"goals_against,omitempty"`
	ScorerNotes  string `json:"scorer_notes,omitempty"`
	RedCardNotes string `json:"red_card_notes,omitempty"`
	PenaltyNotes string `json:"penalty_notes,omitempty"`
}

type statDTO struct {
	MatchID  int64 `json:"match_id"`
	PlayerID int64 `json:"player_id"`
	Minutes  int   `json:"minutes"`
	Starter  bool  `json:"starter"`
	Goals    int   `json:"goals"`
	Conceded int   `json:"conceded"`
	Yellows  int   `json:"yellows"`
	Reds     int   `json:"reds"`
}

type matchLogLineDTO struct {
	Date       string  `json:"date"`
	Opponent   string  `json:"opponent"`
	Tournament string  `json:"tournament"`
	Stat       statDTO `json:"stat"`
}

type tournamentDTO struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Season string `json:"season"`
}

type opponentRecordDTO struct {
	OpponentID int64          `json:"opponent_id"`
	Opponent   string         `json:"opponent"`
	Record     usecase.Record `json:"record"`
}

type coachRecordDTO struct {
	CoachID       int64          `json:"coach_id"`
	Coach         string         `json:"coach"`
	Record        usecase.Record `json:"record"`
	Points        int            `json:"points"`
	Effectiveness float64        `json:"effectiveness"`
}

func totalsToDTO(t player.Totals) totalsDTO {
	return totalsDTO{
		Games:    t.Games,
		Starts:   t.Starts,
		Minutes:  t.Minutes,
		Goals:    t.Goals,
		Conceded: t.Conceded,
		Assists:  t.Assists,
		Yellows:  t.Yellows,
		Reds:     t.Reds,
	}
}

func playerTotalsToDTO(row usecase.PlayerTotalsRow) playerTotalsDTO {
	return playerTotalsDTO{
		PlayerID: row.Player.ID,
		Name:     row.Player.Name,
		Surname:  row.Player.Surname,
		FullName: row.Player.FullName(),
		Totals:   totalsToDTO(row.Totals),
	}
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:           m.ID,
		Date:         m.Date,
		TournamentID: m.TournamentID,
		OpponentID:   m.OpponentID,
		RefereeID:    m.RefereeID,
		CoachID:      m.CoachID,
		Condition:    string(m.Condition),
		GoalsFor:     m.GoalsFor,
		GoalsAgainst: m.GoalsAgainst,
		ScorerNotes:  m.ScorerNotes,
		RedCardNotes: m.RedCardNotes,
		PenaltyNotes: m.PenaltyNotes,
	}
}

func statToDTO(s stat.Stat) statDTO {
	return statDTO{
		MatchID:  s.MatchID,
		PlayerID: s.PlayerID,
		Minutes:  s.Minutes,
		Starter:  s.Starter,
		Goals:    s.Goals,
		Conceded: s.Conceded,
		Yellows:  s.Yellows,
		Reds:     s.Reds,
	}
}

// matchFilterFromQuery reads the optional narrowing parameters shared
// by the global-record and match-listing endpoints.
func matchFilterFromQuery(r *http.Request) (match.Filter, error) {
	var f match.Filter

	var err error
	if f.TournamentID, err = queryInt64(r, "tournament_id"); err != nil {
		return match.Filter{}, err
	}
	if f.OpponentID, err = queryInt64(r, "opponent_id"); err != nil {
		return match.Filter{}, err
	}
	if f.CoachID, err = queryInt64(r, "coach_id"); err != nil {
		return match.Filter{}, err
	}
	f.Season = strings.TrimSpace(r.URL.Query().Get("season"))
	return f, nil
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func pathInt64(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func (h *Handler) GetGlobalRecord(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGlobalRecord")
	defer span.End()

	filter, err := matchFilterFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	record, err := h.statsService.TeamRecord(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "global record failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, record)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	rows, err := h.statsService.SquadTable(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "squad table failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerTotalsDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, playerTotalsToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayerTotals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerTotals")
	defer span.End()

	playerID, err := pathInt64(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	row, err := h.statsService.PlayerTotals(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "player totals failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerTotalsToDTO(row))
}

func (h *Handler) ListPlayerMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerMatches")
	defer span.End()

	playerID, err := pathInt64(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	lines, err := h.statsService.PlayerMatchLog(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "player match log failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchLogLineDTO, 0, len(lines))
	for _, line := range lines {
		items = append(items, matchLogLineDTO{
			Date:       line.Date,
			Opponent:   line.Opponent,
			Tournament: line.Tournament,
			Stat:       statToDTO(line.Stat),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	filter, err := matchFilterFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.statsService.Matches(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMatchStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchStats")
	defer span.End()

	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.statsService.MatchStats(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "match stats failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]statDTO, 0, len(stats))
	for _, s := range stats {
		items = append(items, statToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

const defaultTopScorerLimit = 10

func (h *Handler) ListTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTopScorers")
	defer span.End()

	limit, err := queryInt64(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if limit == 0 {
		limit = defaultTopScorerLimit
	}

	rows, err := h.statsService.SquadTable(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "top scorers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	// SquadTable already orders by goals; keep only players who
	// actually scored.
	items := make([]playerTotalsDTO, 0, limit)
	for _, row := range rows {
		if row.Totals.Goals == 0 || int64(len(items)) >= limit {
			break
		}
		items = append(items, playerTotalsToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListOpponentRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOpponentRecords")
	defer span.End()

	records, err := h.statsService.OpponentRecords(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "opponent records failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]opponentRecordDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, opponentRecordDTO{
			OpponentID: rec.Opponent.ID,
			Opponent:   rec.Opponent.Name,
			Record:     rec.Record,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListCoachEffectiveness(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCoachEffectiveness")
	defer span.End()

	records, err := h.statsService.CoachRecords(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "coach records failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]coachRecordDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, coachRecordDTO{
			CoachID:       rec.Coach.ID,
			Coach:         rec.Coach.Name,
			Record:        rec.Record,
			Points:        rec.Points,
			Effectiveness: rec.Effectiveness,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	tournaments, err := h.statsService.Tournaments(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list tournaments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]tournamentDTO, 0, len(tournaments))
	for _, t := range tournaments {
		items = append(items, tournamentDTO{ID: t.ID, Name: t.Name, Season: t.Season})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
