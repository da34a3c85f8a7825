// Package cache wraps the dimension repositories with a TTL cache.
// Tournaments, opponents and officials are tiny and nearly static
// between ETL runs, so every read endpoint would otherwise hit the
// database for the same handful of rows.
package cache

import (
	"context"

	"github.com/fedenh3/proyecto-cava/internal/domain/official"
	"github.com/fedenh3/proyecto-cava/internal/domain/opponent"
	"github.com/fedenh3/proyecto-cava/internal/domain/tournament"
	basecache "github.com/fedenh3/proyecto-cava/internal/platform/cache"
)

type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Store) *TournamentRepository {
	return &TournamentRepository{next: next, cache: cache}
}

func (r *TournamentRepository) FindByNameAndSeason(ctx context.Context, name, season string) (tournament.Tournament, bool, error) {
	return r.next.FindByNameAndSeason(ctx, name, season)
}

func (r *TournamentRepository) Insert(ctx context.Context, t tournament.Tournament) (int64, error) {
	id, err := r.next.Insert(ctx, t)
	if err == nil {
		r.cache.DeletePrefix(ctx, "tournament:")
	}
	return id, err
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Tournament, error) {
	v, err := r.cache.GetOrLoad(ctx, "tournament:list", func(ctx context.Context) (any, error) {
		return r.next.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	items, _ := v.([]tournament.Tournament)
	return items, nil
}

type OpponentRepository struct {
	next  opponent.Repository
	cache *basecache.Store
}

func NewOpponentRepository(next opponent.Repository, cache *basecache.Store) *OpponentRepository {
	return &OpponentRepository{next: next, cache: cache}
}

func (r *OpponentRepository) FindByName(ctx context.Context, name string) (opponent.Opponent, bool, error) {
	return r.next.FindByName(ctx, name)
}

func (r *OpponentRepository) Insert(ctx context.Context, o opponent.Opponent) (int64, error) {
	id, err := r.next.Insert(ctx, o)
	if err == nil {
		r.cache.DeletePrefix(ctx, "opponent:")
	}
	return id, err
}

func (r *OpponentRepository) List(ctx context.Context) ([]opponent.Opponent, error) {
	v, err := r.cache.GetOrLoad(ctx, "opponent:list", func(ctx context.Context) (any, error) {
		return r.next.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	items, _ := v.([]opponent.Opponent)
	return items, nil
}

func (r *OpponentRepository) ListAliases(ctx context.Context) ([]opponent.Alias, error) {
	v, err := r.cache.GetOrLoad(ctx, "opponent:aliases", func(ctx context.Context) (any, error) {
		return r.next.ListAliases(ctx)
	})
	if err != nil {
		return nil, err
	}
	items, _ := v.([]opponent.Alias)
	return items, nil
}

func (r *OpponentRepository) SeedAliases(ctx context.Context, aliases []opponent.Alias) error {
	if err := r.next.SeedAliases(ctx, aliases); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "opponent:")
	return nil
}

type OfficialRepository struct {
	next  official.Repository
	cache *basecache.Store
}

func NewOfficialRepository(next official.Repository, cache *basecache.Store) *OfficialRepository {
	return &OfficialRepository{next: next, cache: cache}
}

func (r *OfficialRepository) FindByName(ctx context.Context, kind official.Kind, name string) (official.Official, bool, error) {
	return r.next.FindByName(ctx, kind, name)
}

func (r *OfficialRepository) Insert(ctx context.Context, o official.Official) (int64, error) {
	id, err := r.next.Insert(ctx, o)
	if err == nil {
		r.cache.DeletePrefix(ctx, "official:")
	}
	return id, err
}

func (r *OfficialRepository) List(ctx context.Context, kind official.Kind) ([]official.Official, error) {
	v, err := r.cache.GetOrLoad(ctx, "official:list:"+string(kind), func(ctx context.Context) (any, error) {
		return r.next.List(ctx, kind)
	})
	if err != nil {
		return nil, err
	}
	items, _ := v.([]official.Official)
	return items, nil
}
