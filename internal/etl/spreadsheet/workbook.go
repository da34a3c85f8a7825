// Package spreadsheet extracts match and roster data from the club's
// loosely structured workbook. Sheets come in three historical layout
// generations; every generation is reduced to the same intermediate
// rows (ResultRow, RosterSheet) before the resolver and linker see
// them.
package spreadsheet

import (
	"io"
	"os"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet flattened to trimmed string cells.
type Sheet struct {
	Name string
	Rows [][]string
}

// Workbook is the classified source file: exactly one results sheet is
// expected, plus any number of roster ("PLANTEL") sheets. Sheets that
// fit neither category are listed in Skipped for diagnostics.
type Workbook struct {
	Results []Sheet
	Rosters []Sheet
	Skipped []string
}

// Load opens the workbook at path and classifies its sheets.
func Load(path string) (*Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "open workbook %s", path)
	}
	defer f.Close()

	return Read(f)
}

// Read parses workbook data from r and classifies its sheets.
func Read(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, crerr.Wrap(err, "open workbook")
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, crerr.New("workbook has no sheets")
	}

	wb := &Workbook{}
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, crerr.Wrapf(err, "read sheet %q", name)
		}

		sheet := Sheet{Name: name, Rows: trimRows(rows)}
		switch classifySheet(name) {
		case sheetKindResults:
			wb.Results = append(wb.Results, sheet)
		case sheetKindRoster:
			wb.Rosters = append(wb.Rosters, sheet)
		default:
			wb.Skipped = append(wb.Skipped, name)
		}
	}

	if len(wb.Results) == 0 {
		return nil, crerr.New("workbook has no results sheet")
	}

	return wb, nil
}

type sheetKind int

const (
	sheetKindOther sheetKind = iota
	sheetKindResults
	sheetKindRoster
)

func classifySheet(name string) sheetKind {
	upper := strings.ToUpper(strings.TrimSpace(name))
	switch {
	case strings.Contains(upper, "PLANTEL"):
		return sheetKindRoster
	case strings.Contains(upper, "RESULTADO"):
		return sheetKindResults
	default:
		return sheetKindOther
	}
}

func trimRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		out[i] = cells
	}
	return out
}

// cell safely reads rows[r][c], returning "" past either bound.
// excelize trims trailing empty cells, so ragged rows are routine.
func cell(rows [][]string, r, c int) string {
	if r < 0 || r >= len(rows) {
		return ""
	}
	row := rows[r]
	if c < 0 || c >= len(row) {
		return ""
	}
	return row[c]
}
