package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/fedenh3/proyecto-cava/internal/domain/match"
	"github.com/fedenh3/proyecto-cava/internal/domain/official"
	"github.com/fedenh3/proyecto-cava/internal/domain/opponent"
	"github.com/fedenh3/proyecto-cava/internal/domain/player"
	"github.com/fedenh3/proyecto-cava/internal/domain/stat"
	"github.com/fedenh3/proyecto-cava/internal/domain/tournament"
	"github.com/fedenh3/proyecto-cava/internal/domain/user"
)

// In-memory repositories shared by the service tests.

type memTournamentRepo struct {
	rows    []tournament.Tournament
	inserts int
}

func (r *memTournamentRepo) FindByNameAndSeason(_ context.Context, name, season string) (tournament.Tournament, bool, error) {
	for _, t := range r.rows {
		if t.Name == name && t.Season == season {
			return t, true, nil
		}
	}
	return tournament.Tournament{}, false, nil
}

func (r *memTournamentRepo) Insert(_ context.Context, t tournament.Tournament) (int64, error) {
	r.inserts++
	t.ID = int64(len(r.rows) + 1)
	r.rows = append(r.rows, t)
	return t.ID, nil
}

func (r *memTournamentRepo) List(_ context.Context) ([]tournament.Tournament, error) {
	return append([]tournament.Tournament(nil), r.rows...), nil
}

type memOpponentRepo struct {
	rows    []opponent.Opponent
	aliases []opponent.Alias
	inserts int
}

func (r *memOpponentRepo) FindByName(_ context.Context, name string) (opponent.Opponent, bool, error) {
	for _, o := range r.rows {
		if o.Name == name {
			return o, true, nil
		}
	}
	return opponent.Opponent{}, false, nil
}

func (r *memOpponentRepo) Insert(_ context.Context, o opponent.Opponent) (int64, error) {
	r.inserts++
	o.ID = int64(len(r.rows) + 1)
	r.rows = append(r.rows, o)
	return o.ID, nil
}

func (r *memOpponentRepo) List(_ context.Context) ([]opponent.Opponent, error) {
	return append([]opponent.Opponent(nil), r.rows...), nil
}

func (r *memOpponentRepo) ListAliases(_ context.Context) ([]opponent.Alias, error) {
	return append([]opponent.Alias(nil), r.aliases...), nil
}

func (r *memOpponentRepo) SeedAliases(_ context.Context, aliases []opponent.Alias) error {
	for _, a := range aliases {
		exists := false
		for _, have := range r.aliases {
			if have.From == a.From {
				exists = true
				break
			}
		}
		if !exists {
			r.aliases = append(r.aliases, a)
		}
	}
	return nil
}

type memOfficialRepo struct {
	rows []official.Official
}

func (r *memOfficialRepo) FindByName(_ context.Context, kind official.Kind, name string) (official.Official, bool, error) {
	for _, o := range r.rows {
		if o.Kind == kind && o.Name == name {
			return o, true, nil
		}
	}
	return official.Official{}, false, nil
}

func (r *memOfficialRepo) Insert(_ context.Context, o official.Official) (int64, error) {
	o.ID = int64(len(r.rows) + 1)
	r.rows = append(r.rows, o)
	return o.ID, nil
}

func (r *memOfficialRepo) List(_ context.Context, kind official.Kind) ([]official.Official, error) {
	var out []official.Official
	for _, o := range r.rows {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out, nil
}

type memPlayerRepo struct {
	players   []player.Player
	positions []player.Position
}

func (r *memPlayerRepo) FindByFullName(_ context.Context, name, surname string) (player.Player, bool, error) {
	for _, p := range r.players {
		if p.Name == name && p.Surname == surname {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *memPlayerRepo) Insert(_ context.Context, p player.Player) (int64, error) {
	p.ID = int64(len(r.players) + 1)
	r.players = append(r.players, p)
	return p.ID, nil
}

func (r *memPlayerRepo) BumpInitial(_ context.Context, id int64, delta player.InitialCounters) error {
	for i := range r.players {
		if r.players[i].ID == id {
			r.players[i].Initial = r.players[i].Initial.Add(delta)
			return nil
		}
	}
	return fmt.Errorf("player %d not found", id)
}

func (r *memPlayerRepo) List(_ context.Context) ([]player.Player, error) {
	return append([]player.Player(nil), r.players...), nil
}

func (r *memPlayerRepo) Get(_ context.Context, id int64) (player.Player, error) {
	for _, p := range r.players {
		if p.ID == id {
			return p, nil
		}
	}
	return player.Player{}, fmt.Errorf("player %d not found", id)
}

func (r *memPlayerRepo) FindPositionByName(_ context.Context, name string) (player.Position, bool, error) {
	for _, p := range r.positions {
		if p.Name == name {
			return p, true, nil
		}
	}
	return player.Position{}, false, nil
}

func (r *memPlayerRepo) InsertPosition(_ context.Context, p player.Position) (int64, error) {
	p.ID = int64(len(r.positions) + 1)
	r.positions = append(r.positions, p)
	return p.ID, nil
}

type memMatchRepo struct {
	rows []match.Match
	// candidate context keyed by match id
	opponentNames map[int64]string
	seasons       map[int64]string
}

func (r *memMatchRepo) Insert(_ context.Context, m match.Match) (int64, error) {
	m.ID = int64(len(r.rows) + 1)
	r.rows = append(r.rows, m)
	return m.ID, nil
}

func (r *memMatchRepo) Get(_ context.Context, id int64) (match.Match, error) {
	for _, m := range r.rows {
		if m.ID == id {
			return m, nil
		}
	}
	return match.Match{}, fmt.Errorf("match %d not found", id)
}

func (r *memMatchRepo) List(_ context.Context, f match.Filter) ([]match.Match, error) {
	var out []match.Match
	for _, m := range r.rows {
		if f.TournamentID > 0 && m.TournamentID != f.TournamentID {
			continue
		}
		if f.OpponentID > 0 && m.OpponentID != f.OpponentID {
			continue
		}
		if f.CoachID > 0 && (m.CoachID == nil || *m.CoachID != f.CoachID) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *memMatchRepo) ListCandidatesByOpponents(_ context.Context, opponentIDs []int64) ([]match.Candidate, error) {
	wanted := make(map[int64]bool, len(opponentIDs))
	for _, id := range opponentIDs {
		wanted[id] = true
	}

	var out []match.Candidate
	for _, m := range r.rows {
		if !wanted[m.OpponentID] {
			continue
		}
		out = append(out, match.Candidate{
			Match:        m,
			OpponentName: r.opponentNames[m.ID],
			Season:       r.seasons[m.ID],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Match.ID < out[j].Match.ID })
	return out, nil
}

func (r *memMatchRepo) UpdateNotes(_ context.Context, id int64, scorer, redCard, penalty string) error {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].ScorerNotes = scorer
			r.rows[i].RedCardNotes = redCard
			r.rows[i].PenaltyNotes = penalty
			return nil
		}
	}
	return fmt.Errorf("match %d not found", id)
}

type statKey struct {
	matchID  int64
	playerID int64
}

type memStatRepo struct {
	rows map[statKey]stat.Stat
}

func newMemStatRepo() *memStatRepo {
	return &memStatRepo{rows: make(map[statKey]stat.Stat)}
}

func (r *memStatRepo) InsertBatch(_ context.Context, stats []stat.Stat) error {
	for _, s := range stats {
		key := statKey{s.MatchID, s.PlayerID}
		if _, dup := r.rows[key]; dup {
			continue
		}
		r.rows[key] = s
	}
	return nil
}

func (r *memStatRepo) Get(_ context.Context, matchID, playerID int64) (stat.Stat, bool, error) {
	s, ok := r.rows[statKey{matchID, playerID}]
	return s, ok, nil
}

func (r *memStatRepo) AddGoals(_ context.Context, matchID, playerID int64, goals int) error {
	key := statKey{matchID, playerID}
	s, ok := r.rows[key]
	if !ok {
		return fmt.Errorf("stat %v not found", key)
	}
	s.Goals += goals
	r.rows[key] = s
	return nil
}

func (r *memStatRepo) Upsert(_ context.Context, s stat.Stat) error {
	r.rows[statKey{s.MatchID, s.PlayerID}] = s
	return nil
}

func (r *memStatRepo) ListByPlayer(_ context.Context, playerID int64) ([]stat.MatchLine, error) {
	var out []stat.MatchLine
	for _, s := range r.rows {
		if s.PlayerID == playerID {
			out = append(out, stat.MatchLine{Stat: s})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stat.MatchID < out[j].Stat.MatchID })
	return out, nil
}

func (r *memStatRepo) ListByMatch(_ context.Context, matchID int64) ([]stat.Stat, error) {
	var out []stat.Stat
	for _, s := range r.rows {
		if s.MatchID == matchID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

type memUserRepo struct {
	rows []user.User
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (user.User, bool, error) {
	for _, u := range r.rows {
		if u.Username == username {
			return u, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *memUserRepo) Insert(_ context.Context, u user.User) (int64, error) {
	u.ID = int64(len(r.rows) + 1)
	r.rows = append(r.rows, u)
	return u.ID, nil
}

func playerStub(surname, name string) player.Player {
	return player.Player{Surname: surname, Name: name, PositionID: 1}
}

func statStub(matchID, playerID int64, minutes int) stat.Stat {
	return stat.Stat{MatchID: matchID, PlayerID: playerID, Minutes: minutes, Starter: minutes > 45}
}

type memCleaner struct {
	calls int
}

func (c *memCleaner) Clean(context.Context) error {
	c.calls++
	return nil
}

type memMatchEntryStore struct {
	calls   int
	matches []match.Match
	stats   []stat.Stat
}

func (s *memMatchEntryStore) CreateMatchWithStats(_ context.Context, m match.Match, stats []stat.Stat) (int64, error) {
	s.calls++
	m.ID = int64(len(s.matches) + 1)
	s.matches = append(s.matches, m)
	for i := range stats {
		stats[i].MatchID = m.ID
	}
	s.stats = append(s.stats, stats...)
	return m.ID, nil
}
