package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResults(t *testing.T) {
	sheet := Sheet{
		Name: "Resultados",
		Rows: [][]string{
			{"HISTORIAL DEL CLUB"},
			{},
			{"FECHA", "TORNEO", "RIVAL", "RESULTADO", "CONDICIÓN", "ÁRBITRO", "DT", "GOLEADORES"},
			{"15/03/2019", "CLAUSURA 2019", "central ballester", "3-1", "L", "LOPEZ", "MARTINEZ", "GOMEZ x2, PEREZ"},
			{"--------", "Torneo Regular", "Deportivo Norte", "vs", "", "", "", ""},
			{"2019-04-02", "CLAUSURA 2019", "", "0-0", "V", "", "", ""},
			{},
		},
	}

	rows, skips, err := ParseResults(sheet, "2024")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, 4, first.Line)
	assert.Equal(t, "2019-03-15", first.Date)
	assert.Equal(t, "CLAUSURA 2019", first.Tournament)
	assert.Equal(t, "2019", first.Season)
	assert.Equal(t, "CENTRAL BALLESTER", first.Opponent)
	assert.Equal(t, "L", first.Condition)
	assert.Equal(t, "LOPEZ", first.Referee)
	assert.Equal(t, "MARTINEZ", first.Coach)
	assert.Equal(t, "GOMEZ x2, PEREZ", first.ScorerNotes)
	require.NotNil(t, first.GoalsFor)
	assert.Equal(t, 3, *first.GoalsFor)
	assert.Equal(t, 1, *first.GoalsAgainst)

	// pending match: placeholder date, no score, condition defaulted later
	second := rows[1]
	assert.Equal(t, "", second.Date)
	assert.Nil(t, second.GoalsFor)
	assert.Equal(t, "DEPORTIVO NORTE", second.Opponent)
	assert.Equal(t, "TORNEO REGULAR", second.Tournament)
	assert.Equal(t, "2024", second.Season)

	require.Len(t, skips, 1)
	assert.Equal(t, 6, skips[0].Line)
	assert.Equal(t, "missing opponent", skips[0].Reason)
}

func TestParseResultsOldGeneration(t *testing.T) {
	// the first schema generation used EQUIPO and had no staff columns
	sheet := Sheet{
		Name: "RESULTADOS",
		Rows: [][]string{
			{"FECHA", "EQUIPO", "RESULTADO"},
			{"01/05/2015", "JUVENTUD UNIDA", "2-2"},
		},
	}

	rows, skips, err := ParseResults(sheet, "2024")
	require.NoError(t, err)
	require.Empty(t, skips)
	require.Len(t, rows, 1)

	assert.Equal(t, "JUVENTUD UNIDA", rows[0].Opponent)
	assert.Equal(t, "2015", rows[0].Season)
	assert.Equal(t, "", rows[0].Coach)
}

func TestParseResultsNoHeader(t *testing.T) {
	sheet := Sheet{Name: "Resultados", Rows: [][]string{{"x"}, {"y"}}}
	_, _, err := ParseResults(sheet, "2024")
	require.Error(t, err)
}
