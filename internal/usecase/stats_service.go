package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/fedenh3/proyecto-cava/internal/domain/match"
	"github.com/fedenh3/proyecto-cava/internal/domain/official"
	"github.com/fedenh3/proyecto-cava/internal/domain/opponent"
	"github.com/fedenh3/proyecto-cava/internal/domain/player"
	"github.com/fedenh3/proyecto-cava/internal/domain/stat"
	"github.com/fedenh3/proyecto-cava/internal/domain/tournament"
)

// StatsService answers the read-side questions: player totals and
// match logs, team records per tournament or season, head-to-head
// records per opponent and coach effectiveness.
type StatsService struct {
	tournamentRepo tournament.Repository
	opponentRepo   opponent.Repository
	officialRepo   official.Repository
	playerRepo     player.Repository
	matchRepo      match.Repository
	statRepo       stat.Repository
}

func NewStatsService(
	tournamentRepo tournament.Repository,
	opponentRepo opponent.Repository,
	officialRepo official.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	statRepo stat.Repository,
) *StatsService {
	return &StatsService{
		tournamentRepo: tournamentRepo,
		opponentRepo:   opponentRepo,
		officialRepo:   officialRepo,
		playerRepo:     playerRepo,
		matchRepo:      matchRepo,
		statRepo:       statRepo,
	}
}

// PlayerTotalsRow is one line of the squad table.
type PlayerTotalsRow struct {
	Player player.Player `json:"player"`
	Totals player.Totals `json:"totals"`
}

// PlayerTotals sums a player's stat rows and folds in the carried
// initial counters.
func (s *StatsService) PlayerTotals(ctx context.Context, playerID int64) (PlayerTotalsRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerTotals")
	defer span.End()

	if playerID <= 0 {
		return PlayerTotalsRow{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, err := s.playerRepo.Get(ctx, playerID)
	if err != nil {
		return PlayerTotalsRow{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}

	lines, err := s.statRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return PlayerTotalsRow{}, fmt.Errorf("list player stats: %w", err)
	}

	return PlayerTotalsRow{Player: p, Totals: totalsFromLines(lines).ApplyInitial(p.Initial)}, nil
}

func totalsFromLines(lines []stat.MatchLine) player.Totals {
	var t player.Totals
	for _, line := range lines {
		t.Games++
		if line.Stat.Starter {
			t.Starts++
		}
		t.Minutes += line.Stat.Minutes
		t.Goals += line.Stat.Goals
		t.Conceded += line.Stat.Conceded
		t.Yellows += line.Stat.Yellows
		t.Reds += line.Stat.Reds
	}
	return t
}

// SquadTable returns totals for every player, ordered by goals then
// games, the way the club reads its all-time table.
func (s *StatsService) SquadTable(ctx context.Context) ([]PlayerTotalsRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.SquadTable")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]PlayerTotalsRow, 0, len(players))
	for _, p := range players {
		lines, err := s.statRepo.ListByPlayer(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("list stats for player %d: %w", p.ID, err)
		}
		out = append(out, PlayerTotalsRow{Player: p, Totals: totalsFromLines(lines).ApplyInitial(p.Initial)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Totals.Goals != out[j].Totals.Goals {
			return out[i].Totals.Goals > out[j].Totals.Goals
		}
		return out[i].Totals.Games > out[j].Totals.Games
	})
	return out, nil
}

// PlayerMatchLog lists a player's appearances with match context.
func (s *StatsService) PlayerMatchLog(ctx context.Context, playerID int64) ([]stat.MatchLine, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerMatchLog")
	defer span.End()

	if playerID <= 0 {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if _, err := s.playerRepo.Get(ctx, playerID); err != nil {
		return nil, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}

	lines, err := s.statRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list player match log: %w", err)
	}
	return lines, nil
}

// Record is a win/draw/loss summary over a set of matches. Matches
// without a recorded score count toward Played but not toward any of
// the three outcomes.
type Record struct {
	Played       int     `json:"played"`
	Scored       int     `json:"scored"`
	Wins         int     `json:"wins"`
	Draws        int     `json:"draws"`
	Losses       int     `json:"losses"`
	GoalsFor     int     `json:"goals_for"`
	GoalsAgainst int     `json:"goals_against"`
	WinPct       float64 `json:"win_pct"`
}

func recordFromMatches(matches []match.Match) Record {
	var r Record
	for _, m := range matches {
		r.Played++
		outcome, ok := m.Outcome()
		if !ok {
			continue
		}
		r.Scored++
		r.GoalsFor += *m.GoalsFor
		r.GoalsAgainst += *m.GoalsAgainst
		switch outcome {
		case match.OutcomeWin:
			r.Wins++
		case match.OutcomeDraw:
			r.Draws++
		case match.OutcomeLoss:
			r.Losses++
		}
	}
	if r.Scored > 0 {
		r.WinPct = round1(float64(r.Wins) / float64(r.Scored) * 100)
	}
	return r
}

// TeamRecord summarizes the club's matches under the given filter.
func (s *StatsService) TeamRecord(ctx context.Context, f match.Filter) (Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.TeamRecord")
	defer span.End()

	matches, err := s.matchRepo.List(ctx, f)
	if err != nil {
		return Record{}, fmt.Errorf("list matches: %w", err)
	}
	return recordFromMatches(matches), nil
}

// OpponentRecord is the head-to-head line against one club.
type OpponentRecord struct {
	Opponent opponent.Opponent `json:"opponent"`
	Record   Record            `json:"record"`
}

// OpponentRecords returns the head-to-head record against every known
// opponent, ordered by matches played.
func (s *StatsService) OpponentRecords(ctx context.Context) ([]OpponentRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.OpponentRecords")
	defer span.End()

	opponents, err := s.opponentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list opponents: %w", err)
	}

	out := make([]OpponentRecord, 0, len(opponents))
	for _, o := range opponents {
		matches, err := s.matchRepo.List(ctx, match.Filter{OpponentID: o.ID})
		if err != nil {
			return nil, fmt.Errorf("list matches vs %s: %w", o.Name, err)
		}
		out = append(out, OpponentRecord{Opponent: o, Record: recordFromMatches(matches)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Record.Played > out[j].Record.Played
	})
	return out, nil
}

// CoachRecord scores a coach's tenure: effectiveness is points won
// over points available, three per win and one per draw.
type CoachRecord struct {
	Coach         official.Official `json:"coach"`
	Record        Record            `json:"record"`
	Points        int               `json:"points"`
	Effectiveness float64           `json:"effectiveness"`
}

// CoachRecords ranks every coach by effectiveness. Only matches with a
// recorded score participate in the percentage.
func (s *StatsService) CoachRecords(ctx context.Context) ([]CoachRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.CoachRecords")
	defer span.End()

	coaches, err := s.officialRepo.List(ctx, official.KindCoach)
	if err != nil {
		return nil, fmt.Errorf("list coaches: %w", err)
	}

	out := make([]CoachRecord, 0, len(coaches))
	for _, c := range coaches {
		matches, err := s.matchRepo.List(ctx, match.Filter{CoachID: c.ID})
		if err != nil {
			return nil, fmt.Errorf("list matches for coach %s: %w", c.Name, err)
		}
		out = append(out, coachRecord(c, matches))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Effectiveness > out[j].Effectiveness
	})
	return out, nil
}

func coachRecord(c official.Official, matches []match.Match) CoachRecord {
	record := recordFromMatches(matches)
	points := record.Wins*3 + record.Draws
	effectiveness := 0.0
	if record.Scored > 0 {
		effectiveness = round1(float64(points) / float64(record.Scored*3) * 100)
	}
	return CoachRecord{Coach: c, Record: record, Points: points, Effectiveness: effectiveness}
}

// Tournaments lists every known tournament for filter dropdowns.
func (s *StatsService) Tournaments(ctx context.Context) ([]tournament.Tournament, error) {
	items, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return items, nil
}

// Matches lists matches under a filter for the fixtures view.
func (s *StatsService) Matches(ctx context.Context, f match.Filter) ([]match.Match, error) {
	items, err := s.matchRepo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return items, nil
}

// MatchStats lists the stat rows of one match.
func (s *StatsService) MatchStats(ctx context.Context, matchID int64) ([]stat.Stat, error) {
	if matchID <= 0 {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if _, err := s.matchRepo.Get(ctx, matchID); err != nil {
		return nil, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}

	rows, err := s.statRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list match stats: %w", err)
	}
	return rows, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
