package spreadsheet

import (
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/fedenh3/proyecto-cava/internal/platform/normalize"
)

// ResultRow is one match as read from the results sheet, before any
// entity resolution. Date is ISO when parseable, raw text otherwise,
// empty when the cell was a placeholder.
type ResultRow struct {
	Line         int
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
}

// Skip records a row or sheet the parser could not use, for the run
// report.
type Skip struct {
	Sheet  string
	Line   int
	Reason string
}

// headerScanDepth bounds how far down a sheet the parser looks for a
// header row before giving up on the sheet.
const headerScanDepth = 10

var resultMarkers = []string{"RIVAL", "RESULTADO", "FECHA"}

// headerSynonyms folds the older sheet generations' column names onto
// the current ones.
var headerSynonyms = map[string]string{
	"EQUIPO":    "RIVAL",
	"CONTRARIO": "RIVAL",
	"MARCADOR":  "RESULTADO",
	"DIA":       "FECHA",
	"TECNICO":   "DT",
	"LOCALIA":   "CONDICION",
	"GOLEADOR":  "GOLEADORES",
	"EXPULSADO": "EXPULSADOS",
	"PENAL":     "PENALES",
	"PUESTO":    "POSICION",
	"NRO":       "ID",
}

func canonicalHeader(raw string) string {
	key := normalize.StripDiacritics(normalize.TrimUpper(raw))
	if canon, ok := headerSynonyms[key]; ok {
		return canon
	}
	return key
}

// findHeaderRow scans the first headerScanDepth rows for one carrying
// any of the marker tokens.
func findHeaderRow(rows [][]string, markers []string) (int, bool) {
	depth := headerScanDepth
	if len(rows) < depth {
		depth = len(rows)
	}
	for r := 0; r < depth; r++ {
		for _, cellVal := range rows[r] {
			canon := canonicalHeader(cellVal)
			for _, marker := range markers {
				if strings.Contains(canon, marker) {
					return r, true
				}
			}
		}
	}
	return 0, false
}

// findHeaderRowAll scans the first headerScanDepth rows for one
// carrying every marker token. Roster sheets anchor on it so a stray
// cell mentioning a single marker upstream cannot claim the header.
func findHeaderRowAll(rows [][]string, markers []string) (int, bool) {
	depth := headerScanDepth
	if len(rows) < depth {
		depth = len(rows)
	}
	for r := 0; r < depth; r++ {
		missing := len(markers)
		for _, marker := range markers {
			for _, cellVal := range rows[r] {
				if strings.Contains(canonicalHeader(cellVal), marker) {
					missing--
					break
				}
			}
		}
		if missing == 0 {
			return r, true
		}
	}
	return 0, false
}

// resultColumns maps canonical header names to column indexes for one
// results sheet.
type resultColumns struct {
	byName map[string]int
}

func (c resultColumns) get(rows [][]string, r int, name string) string {
	idx, ok := c.byName[name]
	if !ok {
		return ""
	}
	return cell(rows, r, idx)
}

func (c resultColumns) has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

func indexResultColumns(header []string) resultColumns {
	cols := resultColumns{byName: make(map[string]int, len(header))}
	for i, raw := range header {
		canon := canonicalHeader(raw)
		if canon == "" {
			continue
		}
		if _, taken := cols.byName[canon]; !taken {
			cols.byName[canon] = i
		}
	}
	return cols
}

// ParseResults turns a results sheet into ResultRows. Rows with no
// opponent are skipped and reported, never fatal: one bad row must not
// abort the load.
func ParseResults(sheet Sheet, defaultSeason string) ([]ResultRow, []Skip, error) {
	headerRow, ok := findHeaderRow(sheet.Rows, resultMarkers)
	if !ok {
		return nil, nil, crerr.Newf("sheet %q: no header row within the first %d rows", sheet.Name, headerScanDepth)
	}

	cols := indexResultColumns(sheet.Rows[headerRow])
	if !cols.has("RIVAL") {
		return nil, nil, crerr.Newf("sheet %q: header row has no opponent column", sheet.Name)
	}

	var (
		out   []ResultRow
		skips []Skip
	)
	for r := headerRow + 1; r < len(sheet.Rows); r++ {
		line := r + 1

		opponent := normalize.Name(cols.get(sheet.Rows, r, "RIVAL"))
		if opponent == "" {
			if rowIsBlank(sheet.Rows[r]) {
				continue
			}
			skips = append(skips, Skip{Sheet: sheet.Name, Line: line, Reason: "missing opponent"})
			continue
		}

		row := ResultRow{
			Line:         line,
			Opponent:     opponent,
			Tournament:   normalize.Name(cols.get(sheet.Rows, r, "TORNEO")),
			Referee:      normalize.Name(cols.get(sheet.Rows, r, "ARBITRO")),
			Coach:        normalize.Name(cols.get(sheet.Rows, r, "DT")),
			ScorerNotes:  strings.TrimSpace(cols.get(sheet.Rows, r, "GOLEADORES")),
			RedCardNotes: strings.TrimSpace(cols.get(sheet.Rows, r, "EXPULSADOS")),
			PenaltyNotes: strings.TrimSpace(cols.get(sheet.Rows, r, "PENALES")),
		}

		if iso, ok := ParseDate(cols.get(sheet.Rows, r, "FECHA")); ok {
			row.Date = iso
		}
		if gf, ga, ok := ParseScore(cols.get(sheet.Rows, r, "RESULTADO")); ok {
			row.GoalsFor, row.GoalsAgainst = &gf, &ga
		}
		row.Condition = normalize.TrimUpper(cols.get(sheet.Rows, r, "CONDICION"))
		row.Season = InferSeason(cols.get(sheet.Rows, r, "TEMPORADA"), row.Tournament, row.Date, defaultSeason)

		out = append(out, row)
	}

	return out, skips, nil
}

func rowIsBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
