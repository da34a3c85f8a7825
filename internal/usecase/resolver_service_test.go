package usecase

import (
	"context"
	"testing"

	"github.com/fedenh3/proyecto-cava/internal/domain/official"
	"github.com/fedenh3/proyecto-cava/internal/domain/opponent"
	"github.com/fedenh3/proyecto-cava/internal/domain/player"
)

func newTestResolver() (*ResolverService, *memTournamentRepo, *memOpponentRepo, *memOfficialRepo, *memPlayerRepo) {
	tournamentRepo := &memTournamentRepo{}
	opponentRepo := &memOpponentRepo{}
	officialRepo := &memOfficialRepo{}
	playerRepo := &memPlayerRepo{}
	resolver := NewResolverService(tournamentRepo, opponentRepo, officialRepo, playerRepo)
	return resolver, tournamentRepo, opponentRepo, officialRepo, playerRepo
}

func TestResolverService_TournamentGetOrCreate(t *testing.T) {
	t.Parallel()

	resolver, repo, _, _, _ := newTestResolver()
	ctx := context.Background()

	first, err := resolver.ResolveTournament(ctx, "CLAUSURA 2019", "2019")
	if err != nil {
		t.Fatalf("ResolveTournament error: %v", err)
	}
	second, err := resolver.ResolveTournament(ctx, "CLAUSURA 2019", "2019")
	if err != nil {
		t.Fatalf("ResolveTournament error: %v", err)
	}

	if first != second {
		t.Fatalf("expected the same id on repeat, got %d and %d", first, second)
	}
	if repo.inserts != 1 {
		t.Fatalf("expected exactly one insert, got %d", repo.inserts)
	}

	other, err := resolver.ResolveTournament(ctx, "CLAUSURA 2019", "2020")
	if err != nil {
		t.Fatalf("ResolveTournament error: %v", err)
	}
	if other == first {
		t.Fatal("same name in another season must be a distinct tournament")
	}
}

func TestResolverService_TournamentDefaults(t *testing.T) {
	t.Parallel()

	resolver, repo, _, _, _ := newTestResolver()
	ctx := context.Background()

	if _, err := resolver.ResolveTournament(ctx, "", "2024"); err != nil {
		t.Fatalf("ResolveTournament error: %v", err)
	}
	if repo.rows[0].Name != "Torneo Regular" {
		t.Fatalf("expected the catch-all tournament, got %q", repo.rows[0].Name)
	}

	if _, err := resolver.ResolveTournament(ctx, "TORNEO", ""); err == nil {
		t.Fatal("expected an error for a missing season")
	}
}

func TestResolverService_OpponentAliasConvergence(t *testing.T) {
	t.Parallel()

	resolver, _, opponentRepo, _, _ := newTestResolver()
	ctx := context.Background()

	if err := opponentRepo.SeedAliases(ctx, opponent.DefaultAliases()); err != nil {
		t.Fatalf("SeedAliases error: %v", err)
	}
	if err := resolver.LoadAliases(ctx); err != nil {
		t.Fatalf("LoadAliases error: %v", err)
	}

	canonicalID, name, err := resolver.ResolveOpponent(ctx, "Central Ballester")
	if err != nil {
		t.Fatalf("ResolveOpponent error: %v", err)
	}
	if name != "CENTRAL BALLESTER" {
		t.Fatalf("expected normalized name, got %q", name)
	}

	aliasID, name, err := resolver.ResolveOpponent(ctx, "CTRAL. BALLESTER")
	if err != nil {
		t.Fatalf("ResolveOpponent error: %v", err)
	}
	if aliasID != canonicalID || name != "CENTRAL BALLESTER" {
		t.Fatalf("alias must converge on the same row, got id=%d name=%q", aliasID, name)
	}
	if opponentRepo.inserts != 1 {
		t.Fatalf("expected one opponent row, got %d inserts", opponentRepo.inserts)
	}
}

func TestResolverService_OfficialOptional(t *testing.T) {
	t.Parallel()

	resolver, _, _, officialRepo, _ := newTestResolver()
	ctx := context.Background()

	id, err := resolver.ResolveOfficial(ctx, official.KindReferee, "  ")
	if err != nil {
		t.Fatalf("ResolveOfficial error: %v", err)
	}
	if id != nil {
		t.Fatalf("blank official must resolve to nil, got %d", *id)
	}

	refID, err := resolver.ResolveOfficial(ctx, official.KindReferee, "López")
	if err != nil {
		t.Fatalf("ResolveOfficial error: %v", err)
	}
	coachID, err := resolver.ResolveOfficial(ctx, official.KindCoach, "López")
	if err != nil {
		t.Fatalf("ResolveOfficial error: %v", err)
	}
	if refID == nil || coachID == nil {
		t.Fatal("expected ids for both kinds")
	}
	if officialRepo.rows[0].Name != "LOPEZ" {
		t.Fatalf("expected diacritics stripped on store, got %q", officialRepo.rows[0].Name)
	}
	if len(officialRepo.rows) != 2 {
		t.Fatalf("same name must be distinct rows per kind, got %d rows", len(officialRepo.rows))
	}
}

func TestResolverService_PlayerDefaultsPosition(t *testing.T) {
	t.Parallel()

	resolver, _, _, _, playerRepo := newTestResolver()
	ctx := context.Background()

	id, err := resolver.ResolvePlayer(ctx, "juan", "gómez", "", "7")
	if err != nil {
		t.Fatalf("ResolvePlayer error: %v", err)
	}

	p, err := playerRepo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if p.Name != "JUAN" || p.Surname != "GOMEZ" {
		t.Fatalf("expected normalized names, got %q %q", p.Name, p.Surname)
	}
	if playerRepo.positions[0].Name != player.DefaultPosition {
		t.Fatalf("expected default position, got %q", playerRepo.positions[0].Name)
	}

	if _, err := resolver.ResolvePlayer(ctx, "juan", "  ", "", ""); err == nil {
		t.Fatal("expected an error for a missing surname")
	}
}
