package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/fedenh3/proyecto-cava/internal/domain/match"
	"github.com/fedenh3/proyecto-cava/internal/domain/official"
	"github.com/fedenh3/proyecto-cava/internal/domain/opponent"
	"github.com/fedenh3/proyecto-cava/internal/domain/player"
	"github.com/fedenh3/proyecto-cava/internal/domain/stat"
	"github.com/fedenh3/proyecto-cava/internal/etl/spreadsheet"
	"github.com/fedenh3/proyecto-cava/internal/platform/normalize"
)

// StoreCleaner wipes every ingested row so a run always starts from a
// known-empty state.
type StoreCleaner interface {
	Clean(ctx context.Context) error
}

// IngestInput configures one full load of the club workbook.
type IngestInput struct {
	WorkbookPath  string
	DefaultSeason string
	MaxWorkers    int
}

// IngestReport is the run summary the etl binary prints as JSON.
type IngestReport struct {
	Matches            int                `json:"matches"`
	Players            int                `json:"players"`
	StatRows           int                `json:"stat_rows"`
	RosterSheets       int                `json:"roster_sheets"`
	LinkedColumns      int                `json:"linked_columns"`
	UnlinkedColumns    []UnlinkedColumn   `json:"unlinked_columns,omitempty"`
	SkippedSheets      []string           `json:"skipped_sheets,omitempty"`
	SkippedRows        []spreadsheet.Skip `json:"skipped_rows,omitempty"`
	GoalNotesApplied   int                `json:"goal_notes_applied"`
	GoalNotesUnmatched []string           `json:"goal_notes_unmatched,omitempty"`
	WorkerCount        int                `json:"worker_count"`
	DurationMs         int64              `json:"duration_ms"`
}

// IngestService drives the whole load: clean, seed aliases, parse the
// workbook, create dimensions and matches, link roster columns and
// write stat rows, then distribute scorer notes.
type IngestService struct {
	cleaner      StoreCleaner
	resolver     *ResolverService
	linker       *LinkerService
	opponentRepo opponent.Repository
	matchRepo    match.Repository
	playerRepo   player.Repository
	statRepo     stat.Repository
}

func NewIngestService(
	cleaner StoreCleaner,
	resolver *ResolverService,
	linker *LinkerService,
	opponentRepo opponent.Repository,
	matchRepo match.Repository,
	playerRepo player.Repository,
	statRepo stat.Repository,
) *IngestService {
	return &IngestService{
		cleaner:      cleaner,
		resolver:     resolver,
		linker:       linker,
		opponentRepo: opponentRepo,
		matchRepo:    matchRepo,
		playerRepo:   playerRepo,
		statRepo:     statRepo,
	}
}

const defaultIngestWorkers = 4

// Run executes one full ingest. Row-level problems are reported and
// skipped; only structural failures (unreadable workbook, storage
// errors) abort the run.
func (s *IngestService) Run(ctx context.Context, input IngestInput) (IngestReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestService.Run")
	defer span.End()

	start := time.Now()
	report := IngestReport{}

	if strings.TrimSpace(input.WorkbookPath) == "" {
		return report, fmt.Errorf("%w: workbook path is required", ErrInvalidInput)
	}
	if input.DefaultSeason == "" {
		return report, fmt.Errorf("%w: default season is required", ErrInvalidInput)
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = defaultIngestWorkers
	}
	report.WorkerCount = workerCount

	if err := s.cleaner.Clean(ctx); err != nil {
		return report, fmt.Errorf("clean store: %w", err)
	}

	if err := s.opponentRepo.SeedAliases(ctx, opponent.DefaultAliases()); err != nil {
		return report, fmt.Errorf("seed aliases: %w", err)
	}
	if err := s.resolver.LoadAliases(ctx); err != nil {
		return report, err
	}

	wb, err := spreadsheet.Load(input.WorkbookPath)
	if err != nil {
		return report, fmt.Errorf("load workbook: %w", err)
	}
	report.SkippedSheets = wb.Skipped

	matchNotes, err := s.loadResults(ctx, wb, input.DefaultSeason, &report)
	if err != nil {
		return report, err
	}

	rosters, err := s.parseRosters(wb, input.DefaultSeason, workerCount, &report)
	if err != nil {
		return report, err
	}

	for _, roster := range rosters {
		if err := s.loadRoster(ctx, roster, &report); err != nil {
			return report, err
		}
	}

	if err := s.applyScorerNotes(ctx, matchNotes, &report); err != nil {
		return report, err
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return report, fmt.Errorf("count players: %w", err)
	}
	report.Players = len(players)
	report.DurationMs = time.Since(start).Milliseconds()
	return report, nil
}

// loadResults creates dimensions and match rows from every results
// sheet, returning scorer notes keyed by match id for the later pass.
func (s *IngestService) loadResults(ctx context.Context, wb *spreadsheet.Workbook, defaultSeason string, report *IngestReport) (map[int64]string, error) {
	notes := make(map[int64]string)

	for _, sheet := range wb.Results {
		rows, skips, err := spreadsheet.ParseResults(sheet, defaultSeason)
		if err != nil {
			return nil, fmt.Errorf("parse results sheet: %w", err)
		}
		report.SkippedRows = append(report.SkippedRows, skips...)

		for _, row := range rows {
			id, err := s.insertMatch(ctx, row)
			if err != nil {
				report.SkippedRows = append(report.SkippedRows, spreadsheet.Skip{
					Sheet:  sheet.Name,
					Line:   row.Line,
					Reason: err.Error(),
				})
				continue
			}
			report.Matches++
			if row.ScorerNotes != "" {
				notes[id] = row.ScorerNotes
			}
		}
	}

	return notes, nil
}

func (s *IngestService) insertMatch(ctx context.Context, row spreadsheet.ResultRow) (int64, error) {
	tournamentID, err := s.resolver.ResolveTournament(ctx, row.Tournament, row.Season)
	if err != nil {
		return 0, err
	}
	opponentID, _, err := s.resolver.ResolveOpponent(ctx, row.Opponent)
	if err != nil {
		return 0, err
	}
	refereeID, err := s.resolver.ResolveOfficial(ctx, official.KindReferee, row.Referee)
	if err != nil {
		return 0, err
	}
	coachID, err := s.resolver.ResolveOfficial(ctx, official.KindCoach, row.Coach)
	if err != nil {
		return 0, err
	}

	m := match.Match{
		Date:         row.Date,
		TournamentID: tournamentID,
		OpponentID:   opponentID,
		RefereeID:    refereeID,
		CoachID:      coachID,
		Condition:    match.NormalizeCondition(row.Condition),
		GoalsFor:     row.GoalsFor,
		GoalsAgainst: row.GoalsAgainst,
		ScorerNotes:  row.ScorerNotes,
		RedCardNotes: row.RedCardNotes,
		PenaltyNotes: row.PenaltyNotes,
	}
	if err := m.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.matchRepo.Insert(ctx, m)
}

// parseRosters runs the pure sheet parsing on a worker pool; the
// database work stays sequential.
func (s *IngestService) parseRosters(wb *spreadsheet.Workbook, defaultSeason string, workerCount int, report *IngestReport) ([]spreadsheet.RosterSheet, error) {
	if len(wb.Rosters) == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create parse pool: %w", err)
	}
	defer pool.Release()

	type parsed struct {
		order  int
		roster spreadsheet.RosterSheet
		skips  []spreadsheet.Skip
		err    error
		sheet  string
	}

	results := make([]parsed, len(wb.Rosters))
	var workers sync.WaitGroup

	for i, sheet := range wb.Rosters {
		i, sheet := i, sheet
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			roster, skips, err := spreadsheet.ParseRoster(sheet, defaultSeason)
			results[i] = parsed{order: i, roster: roster, skips: skips, err: err, sheet: sheet.Name}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit roster parse: %w", err)
		}
	}
	workers.Wait()

	out := make([]spreadsheet.RosterSheet, 0, len(results))
	for _, p := range results {
		if p.err != nil {
			// a malformed roster sheet skips whole, not the run
			report.SkippedSheets = append(report.SkippedSheets, p.sheet)
			continue
		}
		report.SkippedRows = append(report.SkippedRows, p.skips...)
		out = append(out, p.roster)
	}
	report.RosterSheets = len(out)
	return out, nil
}

// loadRoster resolves the sheet's players, links its fixture columns
// to matches and writes one stat batch for the sheet.
func (s *IngestService) loadRoster(ctx context.Context, roster spreadsheet.RosterSheet, report *IngestReport) error {
	linked, unlinked, err := s.linker.LinkRoster(ctx, roster, s.resolver.Aliases())
	if err != nil {
		return err
	}
	report.LinkedColumns += len(linked)
	report.UnlinkedColumns = append(report.UnlinkedColumns, unlinked...)

	var batch []stat.Stat
	for _, row := range roster.Players {
		playerID, err := s.resolver.ResolvePlayer(ctx, row.Name, row.Surname, row.Position, row.RowRef)
		if err != nil {
			report.SkippedRows = append(report.SkippedRows, spreadsheet.Skip{
				Sheet:  roster.Name,
				Line:   row.Line,
				Reason: err.Error(),
			})
			continue
		}

		if row.SummaryGoals != nil && *row.SummaryGoals > 0 {
			delta := player.InitialCounters{Goals: *row.SummaryGoals}
			if err := s.playerRepo.BumpInitial(ctx, playerID, delta); err != nil {
				return fmt.Errorf("carry summary goals: %w", err)
			}
		}

		seen := make(map[int64]bool)
		for _, fc := range roster.Fixtures {
			matchID, ok := linked[fc.Index]
			if !ok {
				continue
			}
			p, played := row.Cells[fc.Index]
			if !played || seen[matchID] {
				// merged headers expose several columns per match;
				// the first parseable cell wins
				continue
			}
			seen[matchID] = true
			batch = append(batch, stat.Stat{
				MatchID:  matchID,
				PlayerID: playerID,
				Minutes:  p.Minutes,
				Starter:  p.Starter,
			})
		}
	}

	if err := s.statRepo.InsertBatch(ctx, batch); err != nil {
		return fmt.Errorf("insert stat batch for %s: %w", roster.Name, err)
	}
	report.StatRows += len(batch)
	return nil
}

var scorerNoteRe = regexp.MustCompile(`^(.*?)(?:\s*[xX]\s*(\d+))?$`)

// parseScorerNote splits "GOMEZ x2" into a surname and a goal count,
// defaulting to one goal.
func parseScorerNote(token string) (string, int) {
	m := scorerNoteRe.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return normalize.Name(token), 1
	}
	goals := 1
	if m[2] != "" {
		goals, _ = strconv.Atoi(m[2])
	}
	return normalize.Name(m[1]), goals
}

// applyScorerNotes distributes the free-text scorer column onto stat
// rows. A scorer with no appearance row gets a goals-only row; names
// that match no player are reported.
func (s *IngestService) applyScorerNotes(ctx context.Context, notes map[int64]string, report *IngestReport) error {
	if len(notes) == 0 {
		return nil
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list players for scorer notes: %w", err)
	}
	keys := make([]string, len(players))
	for i, p := range players {
		keys[i] = normalize.CompactKey(p.Surname)
	}

	for matchID, note := range notes {
		for _, token := range strings.Split(note, ",") {
			surname, goals := parseScorerNote(token)
			if surname == "" || goals <= 0 {
				continue
			}

			// Notes abbreviate freely ("GOMEZ J.", "DI MARIA" vs
			// "DIMARIA"), so surnames match by containment on the
			// compacted key, same as opponent linking.
			noteKey := normalize.CompactKey(surname)
			var matches []player.Player
			for i, p := range players {
				if skeletonsOverlap(noteKey, keys[i]) {
					matches = append(matches, p)
				}
			}
			if len(matches) != 1 {
				// zero hits or an ambiguous surname both go to review
				report.GoalNotesUnmatched = append(report.GoalNotesUnmatched, strings.TrimSpace(token))
				continue
			}
			playerID := matches[0].ID

			_, found, err := s.statRepo.Get(ctx, matchID, playerID)
			if err != nil {
				return err
			}
			if found {
				if err := s.statRepo.AddGoals(ctx, matchID, playerID, goals); err != nil {
					return err
				}
			} else if err := s.statRepo.Upsert(ctx, stat.Stat{MatchID: matchID, PlayerID: playerID, Goals: goals}); err != nil {
				return err
			}
			report.GoalNotesApplied++
		}
	}

	return nil
}
