package usecase

import (
	"context"
	"testing"

	"github.com/fedenh3/proyecto-cava/internal/domain/match"
	"github.com/fedenh3/proyecto-cava/internal/domain/official"
	"github.com/fedenh3/proyecto-cava/internal/domain/player"
	"github.com/fedenh3/proyecto-cava/internal/domain/stat"
)

func scoredMatch(id, coachID int64, gf, ga int) match.Match {
	return match.Match{ID: id, TournamentID: 1, OpponentID: 1, CoachID: &coachID, GoalsFor: &gf, GoalsAgainst: &ga}
}

func TestCoachRecord_Effectiveness(t *testing.T) {
	t.Parallel()

	coach := official.Official{ID: 1, Kind: official.KindCoach, Name: "MARTINEZ"}

	// 6 wins, 2 draws, 2 losses: 20 of 30 points
	var matches []match.Match
	id := int64(1)
	for i := 0; i < 6; i++ {
		matches = append(matches, scoredMatch(id, coach.ID, 2, 0))
		id++
	}
	for i := 0; i < 2; i++ {
		matches = append(matches, scoredMatch(id, coach.ID, 1, 1))
		id++
	}
	for i := 0; i < 2; i++ {
		matches = append(matches, scoredMatch(id, coach.ID, 0, 3))
		id++
	}

	got := coachRecord(coach, matches)
	if got.Record.Wins != 6 || got.Record.Draws != 2 || got.Record.Losses != 2 {
		t.Fatalf("unexpected record: %+v", got.Record)
	}
	if got.Points != 20 {
		t.Fatalf("expected 20 points, got %d", got.Points)
	}
	if got.Effectiveness != 66.7 {
		t.Fatalf("expected 66.7%% effectiveness, got %v", got.Effectiveness)
	}
}

func TestCoachRecord_NoScoredMatches(t *testing.T) {
	t.Parallel()

	coach := official.Official{ID: 1, Kind: official.KindCoach, Name: "MARTINEZ"}
	matches := []match.Match{{ID: 1, TournamentID: 1, OpponentID: 1, CoachID: &coach.ID}}

	got := coachRecord(coach, matches)
	if got.Effectiveness != 0 || got.Points != 0 {
		t.Fatalf("pending matches must not earn points, got %+v", got)
	}
	if got.Record.Played != 1 || got.Record.Scored != 0 {
		t.Fatalf("pending matches still count as played, got %+v", got.Record)
	}
}

func TestRecordFromMatches_OutcomePartition(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		scoredMatch(1, 1, 3, 1),
		scoredMatch(2, 1, 2, 2),
		scoredMatch(3, 1, 0, 1),
		{ID: 4, TournamentID: 1, OpponentID: 1}, // no score yet
	}

	r := recordFromMatches(matches)
	if r.Played != 4 || r.Scored != 3 {
		t.Fatalf("unexpected counts: %+v", r)
	}
	if r.Wins+r.Draws+r.Losses != r.Scored {
		t.Fatalf("outcomes must partition scored matches: %+v", r)
	}
	if r.GoalsFor != 5 || r.GoalsAgainst != 4 {
		t.Fatalf("unexpected goal sums: %+v", r)
	}
}

func TestStatsService_PlayerTotalsAdditiveInvariant(t *testing.T) {
	t.Parallel()

	playerRepo := &memPlayerRepo{
		players: []player.Player{{
			ID:      1,
			Name:    "JUAN",
			Surname: "GOMEZ",
			Initial: player.InitialCounters{Games: 100, Goals: 40, Starts: 90, Yellows: 5},
		}},
	}
	statRepo := newMemStatRepo()
	for _, s := range []stat.Stat{
		{MatchID: 1, PlayerID: 1, Minutes: 90, Starter: true, Goals: 2},
		{MatchID: 2, PlayerID: 1, Minutes: 30, Goals: 1, Yellows: 1},
	} {
		if err := statRepo.Upsert(context.Background(), s); err != nil {
			t.Fatalf("Upsert error: %v", err)
		}
	}

	service := NewStatsService(&memTournamentRepo{}, &memOpponentRepo{}, &memOfficialRepo{}, playerRepo, &memMatchRepo{}, statRepo)

	got, err := service.PlayerTotals(context.Background(), 1)
	if err != nil {
		t.Fatalf("PlayerTotals error: %v", err)
	}

	if got.Totals.Games != 102 {
		t.Fatalf("expected initial games plus stat rows, got %d", got.Totals.Games)
	}
	if got.Totals.Goals != 43 {
		t.Fatalf("expected initial goals plus marked goals, got %d", got.Totals.Goals)
	}
	if got.Totals.Starts != 91 {
		t.Fatalf("expected initial starts plus one start, got %d", got.Totals.Starts)
	}
	if got.Totals.Yellows != 6 {
		t.Fatalf("expected initial cards plus one, got %d", got.Totals.Yellows)
	}
	if got.Totals.Minutes != 120 {
		t.Fatalf("minutes come from stat rows only, got %d", got.Totals.Minutes)
	}
}
