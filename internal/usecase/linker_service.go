package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fedenh3/proyecto-cava/internal/domain/match"
	"github.com/fedenh3/proyecto-cava/internal/domain/opponent"
	"github.com/fedenh3/proyecto-cava/internal/etl/spreadsheet"
	"github.com/fedenh3/proyecto-cava/internal/platform/normalize"
)

// LinkerService connects roster sheet columns to match rows. A roster
// column header only names the opponent (plus, in newer sheets, the
// score and condition), so linking goes through the alias table, name
// skeleton containment, score comparison and season filtering, in that
// order.
type LinkerService struct {
	matchRepo    match.Repository
	opponentRepo opponent.Repository
}

func NewLinkerService(matchRepo match.Repository, opponentRepo opponent.Repository) *LinkerService {
	return &LinkerService{matchRepo: matchRepo, opponentRepo: opponentRepo}
}

// UnlinkedColumn reports a roster column no match could be found for.
type UnlinkedColumn struct {
	Index  int    `json:"index"`
	Header string `json:"header"`
	Reason string `json:"reason"`
}

// LinkRoster maps every fixture column of the roster to a match id.
// Columns that cannot be linked are reported, not fatal: their stat
// cells are dropped with a diagnostic.
func (s *LinkerService) LinkRoster(ctx context.Context, roster spreadsheet.RosterSheet, aliases opponent.AliasSet) (map[int]int64, []UnlinkedColumn, error) {
	if len(roster.Fixtures) == 0 {
		return map[int]int64{}, nil, nil
	}

	opponents, err := s.opponentRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list opponents for linking: %w", err)
	}

	ids := make([]int64, 0, len(opponents))
	for _, o := range opponents {
		ids = append(ids, o.ID)
	}

	candidates, err := s.matchRepo.ListCandidatesByOpponents(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("list candidate matches: %w", err)
	}

	linked, unlinked := linkFixtures(roster.Fixtures, candidates, aliases, roster.Season)
	return linked, unlinked, nil
}

// linkFixtures is the pure matching core. Candidates must arrive
// ordered by match id: when several matches fit a header equally well
// the earliest row wins, which keeps reruns deterministic. Each match
// is consumed by at most one header, so a season with two games
// against the same club links both columns.
func linkFixtures(fixtures []spreadsheet.FixtureColumn, candidates []match.Candidate, aliases opponent.AliasSet, season string) (map[int]int64, []UnlinkedColumn) {
	linked := make(map[int]int64, len(fixtures))
	var unlinked []UnlinkedColumn

	byHeader := make(map[string]int64)
	consumed := make(map[int64]bool)

	for _, fc := range fixtures {
		if id, ok := byHeader[fc.Header.Raw]; ok {
			// merged header continuation
			linked[fc.Index] = id
			continue
		}

		id, reason := pickCandidate(fc.Header, candidates, aliases, season, consumed)
		if reason != "" {
			unlinked = append(unlinked, UnlinkedColumn{Index: fc.Index, Header: fc.Header.Raw, Reason: reason})
			continue
		}

		byHeader[fc.Header.Raw] = id
		consumed[id] = true
		linked[fc.Index] = id
	}

	return linked, unlinked
}

func pickCandidate(h spreadsheet.FixtureHeader, candidates []match.Candidate, aliases opponent.AliasSet, season string, consumed map[int64]bool) (int64, string) {
	wanted := normalize.CompactKey(aliases.Resolve(h.Opponent))
	if wanted == "" {
		return 0, "header has no opponent"
	}

	var nameMatch *match.Candidate
	for i := range candidates {
		c := &candidates[i]
		if consumed[c.Match.ID] {
			continue
		}
		if !skeletonsOverlap(wanted, normalize.CompactKey(c.OpponentName)) {
			continue
		}
		// An exact score hit identifies one concrete game even when
		// the sheet's season label disagrees with the match record, so
		// it is checked before the season filter.
		if h.GoalsFor != nil && scoreEquals(h, c.Match) {
			return c.Match.ID, ""
		}
		// Season labels compare by the same two-way containment, so a
		// sheet labeled "2019" reaches a "2018/2019" tournament and
		// the other way around.
		if season != "" && !skeletonsOverlap(c.Season, season) {
			continue
		}
		if nameMatch == nil {
			nameMatch = c
		}
	}

	if nameMatch != nil {
		return nameMatch.Match.ID, ""
	}
	return 0, "no match found for opponent"
}

// skeletonsOverlap compares compacted names by containment in either
// direction, so "CENTRAL BALLESTER" meets "CLUB CENTRAL BALLESTER".
// Abbreviations that share no substring go through the alias table
// instead.
func skeletonsOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func scoreEquals(h spreadsheet.FixtureHeader, m match.Match) bool {
	if h.GoalsFor == nil || h.GoalsAgainst == nil || !m.HasScore() {
		return false
	}
	return *h.GoalsFor == *m.GoalsFor && *h.GoalsAgainst == *m.GoalsAgainst
}
