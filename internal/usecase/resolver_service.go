package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/fedenh3/proyecto-cava/internal/domain/official"
	"github.com/fedenh3/proyecto-cava/internal/domain/opponent"
	"github.com/fedenh3/proyecto-cava/internal/domain/player"
	"github.com/fedenh3/proyecto-cava/internal/domain/tournament"
	"github.com/fedenh3/proyecto-cava/internal/platform/normalize"
)

// ResolverService turns raw sheet text into dimension row ids with
// get-or-create semantics. Lookups are memoized per service instance,
// so one ingest run hits the database once per distinct value. The
// memo also makes resolution safe to call from pool workers.
type ResolverService struct {
	tournamentRepo tournament.Repository
	opponentRepo   opponent.Repository
	officialRepo   official.Repository
	playerRepo     player.Repository

	mu          sync.Mutex
	aliases     opponent.AliasSet
	tournaments map[string]int64
	opponents   map[string]int64
	officials   map[string]int64
	positions   map[string]int64
	players     map[string]int64
}

func NewResolverService(
	tournamentRepo tournament.Repository,
	opponentRepo opponent.Repository,
	officialRepo official.Repository,
	playerRepo player.Repository,
) *ResolverService {
	return &ResolverService{
		tournamentRepo: tournamentRepo,
		opponentRepo:   opponentRepo,
		officialRepo:   officialRepo,
		playerRepo:     playerRepo,
		aliases:        opponent.AliasSet{},
		tournaments:    make(map[string]int64),
		opponents:      make(map[string]int64),
		officials:      make(map[string]int64),
		positions:      make(map[string]int64),
		players:        make(map[string]int64),
	}
}

// LoadAliases refreshes the opponent alias set from storage. Called
// once at the start of a run, after seeding.
func (s *ResolverService) LoadAliases(ctx context.Context) error {
	rows, err := s.opponentRepo.ListAliases(ctx)
	if err != nil {
		return fmt.Errorf("load opponent aliases: %w", err)
	}

	s.mu.Lock()
	s.aliases = opponent.NewAliasSet(rows)
	s.mu.Unlock()
	return nil
}

// Aliases returns the currently loaded alias set.
func (s *ResolverService) Aliases() opponent.AliasSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aliases
}

func (s *ResolverService) cached(memo map[string]int64, key string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := memo[key]
	return id, ok
}

func (s *ResolverService) remember(memo map[string]int64, key string, id int64) {
	s.mu.Lock()
	memo[key] = id
	s.mu.Unlock()
}

// ResolveTournament returns the id for (name, season), creating the
// row on first sight. A blank name falls back to the catch-all
// tournament.
func (s *ResolverService) ResolveTournament(ctx context.Context, name, season string) (int64, error) {
	if name == "" {
		name = tournament.DefaultName
	}
	if season == "" {
		return 0, fmt.Errorf("%w: tournament season is required", ErrInvalidInput)
	}

	key := name + "|" + season
	if id, ok := s.cached(s.tournaments, key); ok {
		return id, nil
	}

	existing, found, err := s.tournamentRepo.FindByNameAndSeason(ctx, name, season)
	if err != nil {
		return 0, fmt.Errorf("find tournament: %w", err)
	}
	if found {
		s.remember(s.tournaments, key, existing.ID)
		return existing.ID, nil
	}

	id, err := s.tournamentRepo.Insert(ctx, tournament.Tournament{Name: name, Season: season})
	if err != nil {
		return 0, fmt.Errorf("create tournament: %w", err)
	}
	s.remember(s.tournaments, key, id)
	return id, nil
}

// ResolveOpponent maps raw sheet text through the alias table to a
// canonical opponent row, creating it when new. The canonical name is
// returned alongside the id.
func (s *ResolverService) ResolveOpponent(ctx context.Context, raw string) (int64, string, error) {
	name := s.Aliases().Resolve(raw)
	if name == "" {
		return 0, "", fmt.Errorf("%w: opponent name is required", ErrInvalidInput)
	}

	if id, ok := s.cached(s.opponents, name); ok {
		return id, name, nil
	}

	existing, found, err := s.opponentRepo.FindByName(ctx, name)
	if err != nil {
		return 0, "", fmt.Errorf("find opponent: %w", err)
	}
	if found {
		s.remember(s.opponents, name, existing.ID)
		return existing.ID, name, nil
	}

	id, err := s.opponentRepo.Insert(ctx, opponent.Opponent{Name: name})
	if err != nil {
		return 0, "", fmt.Errorf("create opponent: %w", err)
	}
	s.remember(s.opponents, name, id)
	return id, name, nil
}

// ResolveOfficial returns the id for a referee or coach name, nil when
// the cell was blank: both are optional on a match.
func (s *ResolverService) ResolveOfficial(ctx context.Context, kind official.Kind, rawName string) (*int64, error) {
	name := normalize.Name(rawName)
	if name == "" {
		return nil, nil
	}

	key := string(kind) + "|" + name
	if id, ok := s.cached(s.officials, key); ok {
		return &id, nil
	}

	existing, found, err := s.officialRepo.FindByName(ctx, kind, name)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", kind, err)
	}
	if found {
		s.remember(s.officials, key, existing.ID)
		return &existing.ID, nil
	}

	id, err := s.officialRepo.Insert(ctx, official.Official{Kind: kind, Name: name})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", kind, err)
	}
	s.remember(s.officials, key, id)
	return &id, nil
}

// ResolvePosition returns the id for a position name, defaulting blank
// cells to the unknown position.
func (s *ResolverService) ResolvePosition(ctx context.Context, rawName string) (int64, error) {
	name := normalize.Name(rawName)
	if name == "" {
		name = player.DefaultPosition
	}

	if id, ok := s.cached(s.positions, name); ok {
		return id, nil
	}

	existing, found, err := s.playerRepo.FindPositionByName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("find position: %w", err)
	}
	if found {
		s.remember(s.positions, name, existing.ID)
		return existing.ID, nil
	}

	id, err := s.playerRepo.InsertPosition(ctx, player.Position{Name: name})
	if err != nil {
		return 0, fmt.Errorf("create position: %w", err)
	}
	s.remember(s.positions, name, id)
	return id, nil
}

// ResolvePlayer returns the id for (name, surname), creating the row
// with the given position and sheet reference on first sight.
func (s *ResolverService) ResolvePlayer(ctx context.Context, name, surname, position, rowRef string) (int64, error) {
	name = normalize.Name(name)
	surname = normalize.Name(surname)
	if surname == "" {
		return 0, fmt.Errorf("%w: player surname is required", ErrInvalidInput)
	}

	key := surname + "|" + name
	if id, ok := s.cached(s.players, key); ok {
		return id, nil
	}

	existing, found, err := s.playerRepo.FindByFullName(ctx, name, surname)
	if err != nil {
		return 0, fmt.Errorf("find player: %w", err)
	}
	if found {
		s.remember(s.players, key, existing.ID)
		return existing.ID, nil
	}

	positionID, err := s.ResolvePosition(ctx, position)
	if err != nil {
		return 0, err
	}

	id, err := s.playerRepo.Insert(ctx, player.Player{
		Name:        name,
		Surname:     surname,
		PositionID:  positionID,
		SheetRowRef: rowRef,
	})
	if err != nil {
		return 0, fmt.Errorf("create player: %w", err)
	}
	s.remember(s.players, key, id)
	return id, nil
}
