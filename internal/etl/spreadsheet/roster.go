package spreadsheet

import (
	"regexp"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/fedenh3/proyecto-cava/internal/platform/normalize"
)

// FixtureHeader is the parsed form of one per-match roster column
// header, e.g. "FECHA 3: VS CENTRAL BALLESTER (2-1) (L)". Older
// generations omit the score or the condition.
type FixtureHeader struct {
	Raw          string
	Number       int
	Opponent     string
	GoalsFor     *int
	GoalsAgainst *int
	Condition    string
}

// FixtureColumn ties a parsed header to its sheet column index. Merged
// headers produce one FixtureColumn per underlying column, all sharing
// the same header.
type FixtureColumn struct {
	Index  int
	Header FixtureHeader
}

// Participation is one player's appearance in one fixture column.
type Participation struct {
	Minutes int
	Starter bool
}

// RosterRow is one player row of a roster sheet. Cells maps fixture
// column index to participation; SummaryGoals carries the sheet's
// aggregate goals column when present.
type RosterRow struct {
	Line         int
	Name         string
	Surname      string
	Position     string
	RowRef       string
	SummaryGoals *int
	Cells        map[int]Participation
}

// RosterSheet is a fully parsed "PLANTEL" sheet.
type RosterSheet struct {
	Name     string
	Season   string
	Fixtures []FixtureColumn
	Players  []RosterRow
}

// Both name columns must sit on the same row before it counts as the
// roster header.
var rosterMarkers = []string{"APELLIDO", "NOMBRE"}

var (
	fixtureNumberRe = regexp.MustCompile(`FECHA\s*(\d+)`)
	conditionRe     = regexp.MustCompile(`\(\s*([LVN])\s*\)`)
	parenScoreRe    = regexp.MustCompile(`\(\s*\d+\s*-\s*\d+[^)]*\)`)
)

// ParseFixtureHeader extracts match number, opponent, score and
// condition from a roster column header. ok is false when the text
// carries no fixture marker at all.
func ParseFixtureHeader(raw string) (FixtureHeader, bool) {
	upper := normalize.StripDiacritics(normalize.TrimUpper(raw))
	if !strings.Contains(upper, "VS") && !strings.Contains(upper, "FECHA") {
		return FixtureHeader{}, false
	}

	h := FixtureHeader{Raw: strings.TrimSpace(raw)}

	if m := fixtureNumberRe.FindStringSubmatch(upper); m != nil {
		h.Number, _ = strconv.Atoi(m[1])
	}
	if m := conditionRe.FindStringSubmatch(upper); m != nil {
		h.Condition = m[1]
	}
	if gf, ga, ok := ParseScore(upper); ok {
		h.GoalsFor, h.GoalsAgainst = &gf, &ga
	}

	// Whatever survives after stripping the structured pieces is the
	// opponent name.
	rest := upper
	rest = parenScoreRe.ReplaceAllString(rest, " ")
	rest = conditionRe.ReplaceAllString(rest, " ")
	rest = fixtureNumberRe.ReplaceAllString(rest, " ")
	if i := strings.Index(rest, "VS"); i >= 0 {
		rest = rest[i+len("VS"):]
	}
	rest = strings.Trim(rest, " :.()-")
	h.Opponent = normalize.Name(rest)

	if h.Opponent == "" && h.Number == 0 {
		return FixtureHeader{}, false
	}
	return h, true
}

// ParseRoster turns a "PLANTEL" sheet into players and fixture
// columns. The fixture headers sit on the row above the column header
// row; merged cells leave blanks that inherit the last seen header.
func ParseRoster(sheet Sheet, defaultSeason string) (RosterSheet, []Skip, error) {
	out := RosterSheet{Name: sheet.Name, Season: sheetSeason(sheet.Name, defaultSeason)}

	headerRow, ok := findHeaderRowAll(sheet.Rows, rosterMarkers)
	if !ok {
		return out, nil, crerr.Newf("sheet %q: no roster header within the first %d rows", sheet.Name, headerScanDepth)
	}

	cols := indexResultColumns(sheet.Rows[headerRow])
	surnameIdx, hasSurname := cols.byName["APELLIDO"]
	if !hasSurname {
		return out, nil, crerr.Newf("sheet %q: roster header has no surname column", sheet.Name)
	}

	out.Fixtures = scanFixtureColumns(sheet.Rows, headerRow)

	var skips []Skip
	for r := headerRow + 1; r < len(sheet.Rows); r++ {
		line := r + 1
		if rowIsBlank(sheet.Rows[r]) {
			continue
		}

		surname := normalize.Name(cell(sheet.Rows, r, surnameIdx))
		if surname == "" {
			skips = append(skips, Skip{Sheet: sheet.Name, Line: line, Reason: "missing surname"})
			continue
		}

		row := RosterRow{
			Line:     line,
			Surname:  surname,
			Name:     normalize.Name(cols.get(sheet.Rows, r, "NOMBRE")),
			Position: normalize.Name(cols.get(sheet.Rows, r, "POSICION")),
			RowRef:   strings.TrimSpace(cols.get(sheet.Rows, r, "ID")),
			Cells:    make(map[int]Participation),
		}
		if raw := cols.get(sheet.Rows, r, "GOLES"); raw != "" {
			if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
				row.SummaryGoals = &n
			}
		}

		for _, fc := range out.Fixtures {
			if p, ok := parseParticipationCell(cell(sheet.Rows, r, fc.Index)); ok {
				row.Cells[fc.Index] = p
			}
		}

		out.Players = append(out.Players, row)
	}

	return out, skips, nil
}

func parseParticipationCell(raw string) (Participation, bool) {
	minutes, starter, ok := ParseMinutes(raw)
	if !ok {
		return Participation{}, false
	}
	return Participation{Minutes: minutes, Starter: starter}, true
}

// scanFixtureColumns reads the row above the roster header, forward
// filling merged header cells so every underlying column keeps its
// fixture.
func scanFixtureColumns(rows [][]string, headerRow int) []FixtureColumn {
	fixtureRow := headerRow - 1
	if fixtureRow < 0 {
		// Single-row layout: fixture headers share the roster header
		// row in the oldest sheets.
		fixtureRow = headerRow
	}

	width := 0
	for r := fixtureRow; r <= headerRow && r < len(rows); r++ {
		if len(rows[r]) > width {
			width = len(rows[r])
		}
	}

	var (
		out  []FixtureColumn
		last FixtureHeader
		have bool
	)
	for c := 0; c < width; c++ {
		raw := cell(rows, fixtureRow, c)
		if raw == "" {
			under := ""
			if fixtureRow != headerRow {
				under = cell(rows, headerRow, c)
			}
			// A merged fixture header is blank in both rows past its
			// first column; a labeled column below ends the merge.
			if have && under == "" {
				out = append(out, FixtureColumn{Index: c, Header: last})
				continue
			}
			have = false
			if under == "" {
				continue
			}
			raw = under
		}
		h, ok := ParseFixtureHeader(raw)
		if !ok {
			have = false
			continue
		}
		last, have = h, true
		out = append(out, FixtureColumn{Index: c, Header: h})
	}
	return out
}

// sheetSeason pulls a year token out of the sheet name ("PLANTEL
// 2019") when present.
func sheetSeason(name, fallback string) string {
	if y := fourDigitYearRe.FindString(name); y != "" {
		return y
	}
	return fallback
}
