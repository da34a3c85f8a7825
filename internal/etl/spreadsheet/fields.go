package spreadsheet

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
}

var placeholderRe = regexp.MustCompile(`^-{3,}$`)

// ParseDate normalizes a match-date cell to ISO yyyy-mm-dd. Dash
// placeholders ("--------") mean the date is unknown and yield
// ok=false. Cells that match none of the known layouts are passed
// through verbatim so the raw text is still stored and visible.
func ParseDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || placeholderRe.MatchString(s) {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return s, true
}

var scoreRe = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)

// ParseScore extracts the first "a-b" pair from a result cell.
// Surrounding text ("3-1 (gano en penales)") is tolerated.
func ParseScore(raw string) (goalsFor, goalsAgainst int, ok bool) {
	m := scoreRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, 0, false
	}
	goalsFor, _ = strconv.Atoi(m[1])
	goalsAgainst, _ = strconv.Atoi(m[2])
	return goalsFor, goalsAgainst, true
}

var (
	splitSeasonRe   = regexp.MustCompile(`\b((?:19|20)\d{2})\s*[/-]\s*((?:19|20)?\d{2})\b`)
	fourDigitYearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	twoDigitYearRe  = regexp.MustCompile(`(?:^|[^0-9])'?(\d{2})(?:[^0-9]|$)`)
)

// InferSeason picks the season label for a match, in priority order:
// an explicit season cell, a year token inside the tournament name, the
// year of the parsed ISO date, and finally the fallback. Split seasons
// ("2018/2019", "2018/19") keep their full label so a roster sheet from
// either calendar year still reaches the tournament's matches.
func InferSeason(explicit, tournament, isoDate, fallback string) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return s
	}
	if m := splitSeasonRe.FindStringSubmatch(tournament); m != nil {
		first, second := m[1], m[2]
		if len(second) == 2 {
			second = first[:2] + second
		}
		return first + "/" + second
	}
	if y := fourDigitYearRe.FindString(tournament); y != "" {
		return y
	}
	if m := twoDigitYearRe.FindStringSubmatch(tournament); m != nil {
		return "20" + m[1]
	}
	if len(isoDate) >= 4 {
		if _, err := strconv.Atoi(isoDate[:4]); err == nil {
			return isoDate[:4]
		}
	}
	return fallback
}

// ParseMinutes interprets a participation cell. "X" marks a full
// 90-minute start; a bare integer is minutes played. Anything else
// (blank, annotations, stray text) means the player did not appear.
func ParseMinutes(raw string) (minutes int, starter bool, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false, false
	}
	if strings.EqualFold(s, "X") {
		return 90, true, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false, false
	}
	return n, StarterFromMinutes(n), true
}

// StarterFromMinutes is the roster heuristic for sheets that record
// minutes without a lineup column: more than half the match means the
// player started.
func StarterFromMinutes(minutes int) bool {
	return minutes > 45
}
