package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/fedenh3/proyecto-cava/internal/domain/match"
	"github.com/fedenh3/proyecto-cava/internal/domain/player"
	"github.com/fedenh3/proyecto-cava/internal/domain/stat"
)

// joinedMatchRepo fills the candidate context on insert the way the
// SQL candidate query does with its dimension joins.
type joinedMatchRepo struct {
	memMatchRepo
	tournaments *memTournamentRepo
	opponents   *memOpponentRepo
}

func (r *joinedMatchRepo) Insert(ctx context.Context, m match.Match) (int64, error) {
	id, err := r.memMatchRepo.Insert(ctx, m)
	if err != nil {
		return 0, err
	}
	for _, o := range r.opponents.rows {
		if o.ID == m.OpponentID {
			r.opponentNames[id] = o.Name
		}
	}
	for _, t := range r.tournaments.rows {
		if t.ID == m.TournamentID {
			r.seasons[id] = t.Season
		}
	}
	return id, nil
}

// wipeCleaner empties every repository, mirroring what the SQL cleaner
// does with DELETE statements.
type wipeCleaner struct {
	tournaments *memTournamentRepo
	opponents   *memOpponentRepo
	officials   *memOfficialRepo
	players     *memPlayerRepo
	matches     *joinedMatchRepo
	stats       *memStatRepo
}

func (c *wipeCleaner) Clean(context.Context) error {
	c.tournaments.rows = nil
	c.opponents.rows = nil
	c.opponents.aliases = nil
	c.officials.rows = nil
	c.players.players = nil
	c.players.positions = nil
	c.matches.rows = nil
	c.matches.opponentNames = make(map[int64]string)
	c.matches.seasons = make(map[int64]string)
	c.stats.rows = make(map[statKey]stat.Stat)
	return nil
}

func writeClubWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Resultados"); err != nil {
		t.Fatalf("SetSheetName error: %v", err)
	}
	results := [][]interface{}{
		{"FECHA", "TORNEO", "RIVAL", "RESULTADO", "CONDICIÓN", "GOLEADORES"},
		{"15/03/2019", "CLAUSURA 2019", "CENTRAL BALLESTER", "3-1", "L", "GOMEZ x2, PEREZ"},
		{"22/03/2019", "CLAUSURA 2019", "DEPORTIVO NORTE", "0-0", "V", ""},
	}
	for i, row := range results {
		if err := f.SetSheetRow("Resultados", fmt.Sprintf("A%d", i+1), &row); err != nil {
			t.Fatalf("SetSheetRow error: %v", err)
		}
	}

	if _, err := f.NewSheet("PLANTEL 2019"); err != nil {
		t.Fatalf("NewSheet error: %v", err)
	}
	roster := [][]interface{}{
		{"", "", "", "", "FECHA 1: VS CENTRAL BALLESTER (3-1) (L)"},
		{"ID", "APELLIDO", "NOMBRE", "POSICIÓN", ""},
		{"7", "GOMEZ", "JUAN", "DELANTERO", "X"},
		{"8", "PEREZ", "LUIS", "DEFENSOR", "30"},
	}
	for i, row := range roster {
		if err := f.SetSheetRow("PLANTEL 2019", fmt.Sprintf("A%d", i+1), &row); err != nil {
			t.Fatalf("SetSheetRow error: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "club.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs error: %v", err)
	}
	return path
}

// Running the same workbook twice must leave the database in the same
// state: the clean pass wipes everything and the load is deterministic.
func TestIngestService_RunTwiceIsIdempotent(t *testing.T) {
	t.Parallel()

	tournamentRepo := &memTournamentRepo{}
	opponentRepo := &memOpponentRepo{}
	officialRepo := &memOfficialRepo{}
	playerRepo := &memPlayerRepo{}
	matchRepo := &joinedMatchRepo{
		memMatchRepo: memMatchRepo{opponentNames: map[int64]string{}, seasons: map[int64]string{}},
		tournaments:  tournamentRepo,
		opponents:    opponentRepo,
	}
	statRepo := newMemStatRepo()
	cleaner := &wipeCleaner{
		tournaments: tournamentRepo,
		opponents:   opponentRepo,
		officials:   officialRepo,
		players:     playerRepo,
		matches:     matchRepo,
		stats:       statRepo,
	}

	// every run gets a fresh service, as the etl binary does
	newService := func() *IngestService {
		resolver := NewResolverService(tournamentRepo, opponentRepo, officialRepo, playerRepo)
		linker := NewLinkerService(matchRepo, opponentRepo)
		return NewIngestService(cleaner, resolver, linker, opponentRepo, matchRepo, playerRepo, statRepo)
	}

	ctx := context.Background()
	input := IngestInput{WorkbookPath: writeClubWorkbook(t), DefaultSeason: "2019"}

	first, err := newService().Run(ctx, input)
	if err != nil {
		t.Fatalf("first Run error: %v", err)
	}
	if first.Matches != 2 || first.Players != 2 || first.StatRows != 2 {
		t.Fatalf("unexpected first report: %+v", first)
	}
	if first.GoalNotesApplied != 2 || len(first.GoalNotesUnmatched) != 0 {
		t.Fatalf("unexpected scorer notes in first report: %+v", first)
	}

	firstStats := make(map[statKey]stat.Stat, len(statRepo.rows))
	for k, v := range statRepo.rows {
		firstStats[k] = v
	}
	firstMatches := append([]match.Match(nil), matchRepo.rows...)
	firstPlayers := append([]player.Player(nil), playerRepo.players...)

	second, err := newService().Run(ctx, input)
	if err != nil {
		t.Fatalf("second Run error: %v", err)
	}

	first.DurationMs, second.DurationMs = 0, 0
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reports diverged between runs:\nfirst  %+v\nsecond %+v", first, second)
	}
	if !reflect.DeepEqual(firstStats, statRepo.rows) {
		t.Fatalf("stat rows diverged between runs:\nfirst  %+v\nsecond %+v", firstStats, statRepo.rows)
	}
	if !reflect.DeepEqual(firstMatches, matchRepo.rows) {
		t.Fatalf("matches diverged between runs:\nfirst  %+v\nsecond %+v", firstMatches, matchRepo.rows)
	}
	if !reflect.DeepEqual(firstPlayers, playerRepo.players) {
		t.Fatalf("players diverged between runs:\nfirst  %+v\nsecond %+v", firstPlayers, playerRepo.players)
	}
}
