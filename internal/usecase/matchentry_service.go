package usecase

import (
	"context"
	"fmt"

	"github.com/fedenh3/proyecto-cava/internal/domain/match"
	"github.com/fedenh3/proyecto-cava/internal/domain/official"
	"github.com/fedenh3/proyecto-cava/internal/domain/stat"
)

// MatchEntryStore commits a match and its stat rows atomically.
type MatchEntryStore interface {
	CreateMatchWithStats(ctx context.Context, m match.Match, stats []stat.Stat) (int64, error)
}

// MatchEntryLine is one player's line on the entry form. Names go
// through the same resolver as the ETL, so a typo creates a visible
// new player instead of silently corrupting an existing one.
type MatchEntryLine struct {
	Name     string
	Surname  string
	Position string
	Minutes  int
	Starter  bool
	Goals    int
	Conceded int
	Yellows  int
	Reds     int
}

// MatchEntryInput is one manually entered match.
type MatchEntryInput struct {
	Date         string
	Tournament   string
	Season       string
	Opponent     string
	Referee      string
	Coach        string
	Condition    string
	GoalsFor     *int
	GoalsAgainst *int
	ScorerNotes  string
	RedCardNotes string
	PenaltyNotes string
	Lines        []MatchEntryLine
}

// MatchEntryResult reports what the entry created.
type MatchEntryResult struct {
	MatchID  int64 `json:"match_id"`
	StatRows int   `json:"stat_rows"`
}

// MatchEntryService handles the operator write path: one match plus
// its player lines, validated synchronously and committed in a single
// transaction.
type MatchEntryService struct {
	resolver *ResolverService
	store    MatchEntryStore
}

func NewMatchEntryService(resolver *ResolverService, store MatchEntryStore) *MatchEntryService {
	return &MatchEntryService{resolver: resolver, store: store}
}

// CreateMatch validates and commits one entered match. When a score is
// declared, the entered player goals must add up to it exactly; the
// mismatch surfaces to the operator before anything is written.
func (s *MatchEntryService) CreateMatch(ctx context.Context, input MatchEntryInput) (MatchEntryResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchEntryService.CreateMatch")
	defer span.End()

	if input.Opponent == "" {
		return MatchEntryResult{}, fmt.Errorf("%w: opponent is required", ErrInvalidInput)
	}
	if input.Season == "" {
		return MatchEntryResult{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	if input.GoalsFor != nil {
		sum := 0
		for _, line := range input.Lines {
			sum += line.Goals
		}
		if sum != *input.GoalsFor {
			return MatchEntryResult{}, fmt.Errorf("%w: entered player goals (%d) do not add up to the declared score (%d)",
				ErrInvalidInput, sum, *input.GoalsFor)
		}
	}

	if err := s.resolver.LoadAliases(ctx); err != nil {
		return MatchEntryResult{}, err
	}

	tournamentID, err := s.resolver.ResolveTournament(ctx, input.Tournament, input.Season)
	if err != nil {
		return MatchEntryResult{}, err
	}
	opponentID, _, err := s.resolver.ResolveOpponent(ctx, input.Opponent)
	if err != nil {
		return MatchEntryResult{}, err
	}
	refereeID, err := s.resolver.ResolveOfficial(ctx, official.KindReferee, input.Referee)
	if err != nil {
		return MatchEntryResult{}, err
	}
	coachID, err := s.resolver.ResolveOfficial(ctx, official.KindCoach, input.Coach)
	if err != nil {
		return MatchEntryResult{}, err
	}

	m := match.Match{
		Date:         input.Date,
		TournamentID: tournamentID,
		OpponentID:   opponentID,
		RefereeID:    refereeID,
		CoachID:      coachID,
		Condition:    match.NormalizeCondition(input.Condition),
		GoalsFor:     input.GoalsFor,
		GoalsAgainst: input.GoalsAgainst,
		ScorerNotes:  input.ScorerNotes,
		RedCardNotes: input.RedCardNotes,
		PenaltyNotes: input.PenaltyNotes,
	}
	if err := m.Validate(); err != nil {
		return MatchEntryResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	stats := make([]stat.Stat, 0, len(input.Lines))
	for _, line := range input.Lines {
		if line.Minutes < 0 || line.Goals < 0 || line.Conceded < 0 || line.Yellows < 0 || line.Reds < 0 {
			return MatchEntryResult{}, fmt.Errorf("%w: player line values cannot be negative", ErrInvalidInput)
		}

		playerID, err := s.resolver.ResolvePlayer(ctx, line.Name, line.Surname, line.Position, "")
		if err != nil {
			return MatchEntryResult{}, err
		}
		stats = append(stats, stat.Stat{
			PlayerID: playerID,
			Minutes:  line.Minutes,
			Starter:  line.Starter,
			Goals:    line.Goals,
			Conceded: line.Conceded,
			Yellows:  line.Yellows,
			Reds:     line.Reds,
		})
	}

	matchID, err := s.store.CreateMatchWithStats(ctx, m, stats)
	if err != nil {
		return MatchEntryResult{}, fmt.Errorf("commit match entry: %w", err)
	}

	return MatchEntryResult{MatchID: matchID, StatRows: len(stats)}, nil
}
