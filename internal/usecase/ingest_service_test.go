package usecase

import (
	"context"
	"testing"

	"github.com/fedenh3/proyecto-cava/internal/domain/match"
	"github.com/fedenh3/proyecto-cava/internal/domain/opponent"
	"github.com/fedenh3/proyecto-cava/internal/etl/spreadsheet"
)

func newTestIngest() (*IngestService, *memMatchRepo, *memPlayerRepo, *memStatRepo, *memOpponentRepo) {
	tournamentRepo := &memTournamentRepo{}
	opponentRepo := &memOpponentRepo{}
	officialRepo := &memOfficialRepo{}
	playerRepo := &memPlayerRepo{}
	matchRepo := &memMatchRepo{opponentNames: map[int64]string{}, seasons: map[int64]string{}}
	statRepo := newMemStatRepo()

	resolver := NewResolverService(tournamentRepo, opponentRepo, officialRepo, playerRepo)
	linker := NewLinkerService(matchRepo, opponentRepo)
	service := NewIngestService(&memCleaner{}, resolver, linker, opponentRepo, matchRepo, playerRepo, statRepo)
	return service, matchRepo, playerRepo, statRepo, opponentRepo
}

func TestIngestService_LoadResults(t *testing.T) {
	t.Parallel()

	service, matchRepo, _, _, _ := newTestIngest()
	ctx := context.Background()

	wb := &spreadsheet.Workbook{
		Results: []spreadsheet.Sheet{{
			Name: "Resultados",
			Rows: [][]string{
				{"FECHA", "TORNEO", "RIVAL", "RESULTADO", "CONDICIÓN", "GOLEADORES"},
				{"15/03/2019", "CLAUSURA 2019", "CENTRAL BALLESTER", "3-1", "L", "GOMEZ x2, PEREZ"},
				{"22/03/2019", "CLAUSURA 2019", "DEPORTIVO NORTE", "vs", "V", ""},
				{"29/03/2019", "CLAUSURA 2019", "", "1-0", "", ""},
			},
		}},
	}

	report := IngestReport{}
	notes, err := service.loadResults(ctx, wb, "2024", &report)
	if err != nil {
		t.Fatalf("loadResults error: %v", err)
	}

	if report.Matches != 2 {
		t.Fatalf("expected 2 matches, got %d", report.Matches)
	}
	if len(report.SkippedRows) != 1 {
		t.Fatalf("the opponent-less row must be skipped, got %+v", report.SkippedRows)
	}
	if len(notes) != 1 {
		t.Fatalf("expected scorer notes for one match, got %v", notes)
	}

	first, err := matchRepo.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if first.Date != "2019-03-15" || !first.HasScore() || *first.GoalsFor != 3 {
		t.Fatalf("unexpected first match: %+v", first)
	}
	if first.Condition != match.ConditionHome {
		t.Fatalf("unexpected condition: %q", first.Condition)
	}

	second, err := matchRepo.Get(ctx, 2)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if second.HasScore() {
		t.Fatalf("pending match must have no score: %+v", second)
	}
}

func TestIngestService_LoadRosterWritesStats(t *testing.T) {
	t.Parallel()

	service, matchRepo, playerRepo, statRepo, opponentRepo := newTestIngest()
	ctx := context.Background()

	opponentID, _ := opponentRepo.Insert(ctx, opponent.Opponent{Name: "CENTRAL BALLESTER"})
	matchID, _ := matchRepo.Insert(ctx, match.Match{TournamentID: 1, OpponentID: opponentID})
	matchRepo.opponentNames[matchID] = "CENTRAL BALLESTER"
	matchRepo.seasons[matchID] = "2019"

	three := 3
	roster := spreadsheet.RosterSheet{
		Name:     "PLANTEL 2019",
		Season:   "2019",
		Fixtures: []spreadsheet.FixtureColumn{fixtureCol(4, "FECHA 1: VS CENTRAL BALLESTER (L)")},
		Players: []spreadsheet.RosterRow{
			{
				Line: 3, Surname: "GOMEZ", Name: "JUAN", Position: "DELANTERO",
				SummaryGoals: &three,
				Cells:        map[int]spreadsheet.Participation{4: {Minutes: 90, Starter: true}},
			},
			{
				Line: 4, Surname: "PEREZ", Name: "LUIS",
				Cells: map[int]spreadsheet.Participation{},
			},
		},
	}

	report := IngestReport{}
	if err := service.loadRoster(ctx, roster, &report); err != nil {
		t.Fatalf("loadRoster error: %v", err)
	}

	if report.LinkedColumns != 1 || len(report.UnlinkedColumns) != 0 {
		t.Fatalf("unexpected linking report: %+v", report)
	}
	if report.StatRows != 1 {
		t.Fatalf("only the player who appeared gets a stat row, got %d", report.StatRows)
	}

	gomez, found, err := playerRepo.FindByFullName(ctx, "JUAN", "GOMEZ")
	if err != nil || !found {
		t.Fatalf("expected GOMEZ to exist: %v", err)
	}
	if gomez.Initial.Goals != 3 {
		t.Fatalf("summary goals must land on initial counters, got %d", gomez.Initial.Goals)
	}

	st, found, err := statRepo.Get(ctx, matchID, gomez.ID)
	if err != nil || !found {
		t.Fatalf("expected a stat row: %v", err)
	}
	if st.Minutes != 90 || !st.Starter {
		t.Fatalf("unexpected stat row: %+v", st)
	}
}

func TestParseScorerNote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		surname string
		goals   int
	}{
		{raw: "GOMEZ x2", surname: "GOMEZ", goals: 2},
		{raw: " Pérez ", surname: "PEREZ", goals: 1},
		{raw: "LOPEZ X3", surname: "LOPEZ", goals: 3},
		{raw: "GOMEZ", surname: "GOMEZ", goals: 1},
	}
	for _, tc := range tests {
		surname, goals := parseScorerNote(tc.raw)
		if surname != tc.surname || goals != tc.goals {
			t.Fatalf("parseScorerNote(%q) = %q/%d, want %q/%d", tc.raw, surname, goals, tc.surname, tc.goals)
		}
	}
}

func TestIngestService_ApplyScorerNotes(t *testing.T) {
	t.Parallel()

	service, _, playerRepo, statRepo, _ := newTestIngest()
	ctx := context.Background()

	gomezID, _ := playerRepo.Insert(ctx, playerStub("GOMEZ", "JUAN"))
	perezID, _ := playerRepo.Insert(ctx, playerStub("PEREZ", "LUIS"))

	// GOMEZ already has an appearance row; PEREZ scored off the bench
	// with no recorded minutes.
	if err := statRepo.Upsert(ctx, statStub(1, gomezID, 90)); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	report := IngestReport{}
	notes := map[int64]string{1: "GOMEZ x2, PEREZ, DESCONOCIDO"}
	if err := service.applyScorerNotes(ctx, notes, &report); err != nil {
		t.Fatalf("applyScorerNotes error: %v", err)
	}

	if report.GoalNotesApplied != 2 {
		t.Fatalf("expected 2 applied notes, got %d", report.GoalNotesApplied)
	}
	if len(report.GoalNotesUnmatched) != 1 {
		t.Fatalf("the unknown surname must be reported, got %v", report.GoalNotesUnmatched)
	}

	gomez, _, _ := statRepo.Get(ctx, 1, gomezID)
	if gomez.Goals != 2 || gomez.Minutes != 90 {
		t.Fatalf("existing row must accumulate goals, got %+v", gomez)
	}

	perez, found, _ := statRepo.Get(ctx, 1, perezID)
	if !found || perez.Goals != 1 || perez.Minutes != 0 {
		t.Fatalf("scorer without appearance gets a goals-only row, got %+v", perez)
	}
}

func TestIngestService_ApplyScorerNotesAbbreviatedSurname(t *testing.T) {
	t.Parallel()

	service, _, playerRepo, statRepo, _ := newTestIngest()
	ctx := context.Background()

	gomezID, _ := playerRepo.Insert(ctx, playerStub("GOMEZ", "JUAN"))
	if _, err := playerRepo.Insert(ctx, playerStub("PEREZ", "LUIS")); err != nil {
		t.Fatalf("Insert error: %v", err)
	}

	report := IngestReport{}
	notes := map[int64]string{1: "GOMEZ J."}
	if err := service.applyScorerNotes(ctx, notes, &report); err != nil {
		t.Fatalf("applyScorerNotes error: %v", err)
	}

	if report.GoalNotesApplied != 1 || len(report.GoalNotesUnmatched) != 0 {
		t.Fatalf("abbreviated note must still attribute, got %+v", report)
	}
	st, found, _ := statRepo.Get(ctx, 1, gomezID)
	if !found || st.Goals != 1 {
		t.Fatalf("expected a goal for GOMEZ, got %+v", st)
	}
}

func TestIngestService_ApplyScorerNotesAmbiguousContainment(t *testing.T) {
	t.Parallel()

	service, _, playerRepo, _, _ := newTestIngest()
	ctx := context.Background()

	if _, err := playerRepo.Insert(ctx, playerStub("GOMEZ LOPEZ", "JUAN")); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if _, err := playerRepo.Insert(ctx, playerStub("GOMEZ GARCIA", "PEDRO")); err != nil {
		t.Fatalf("Insert error: %v", err)
	}

	report := IngestReport{}
	if err := service.applyScorerNotes(ctx, map[int64]string{1: "GOMEZ"}, &report); err != nil {
		t.Fatalf("applyScorerNotes error: %v", err)
	}

	if report.GoalNotesApplied != 0 || len(report.GoalNotesUnmatched) != 1 {
		t.Fatalf("a surname fitting two players goes to review, got %+v", report)
	}
}
