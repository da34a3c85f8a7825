package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fedenh3/proyecto-cava/internal/config"
	"github.com/fedenh3/proyecto-cava/internal/domain/official"
	"github.com/fedenh3/proyecto-cava/internal/domain/opponent"
	"github.com/fedenh3/proyecto-cava/internal/domain/tournament"
	cachedrepo "github.com/fedenh3/proyecto-cava/internal/infrastructure/repository/cache"
	"github.com/fedenh3/proyecto-cava/internal/infrastructure/repository/sqldb"
	"github.com/fedenh3/proyecto-cava/internal/interfaces/httpapi"
	"github.com/fedenh3/proyecto-cava/internal/platform/cache"
	"github.com/fedenh3/proyecto-cava/internal/usecase"
)

// Services bundles everything both binaries wire: the shared database
// handle, the ETL entry point and the query/auth services.
type Services struct {
	DB         *sqldb.DB
	Ingest     *usecase.IngestService
	Stats      *usecase.StatsService
	MatchEntry *usecase.MatchEntryService
	Auth       *usecase.AuthService
}

// Build opens the database named by DATABASE_URL and constructs the
// full service graph on top of it.
func Build(ctx context.Context, cfg config.Config) (*Services, error) {
	db, err := sqldb.Open(ctx, cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	var tournamentRepo tournament.Repository = sqldb.NewTournamentRepository(db)
	var opponentRepo opponent.Repository = sqldb.NewOpponentRepository(db)
	var officialRepo official.Repository = sqldb.NewOfficialRepository(db)
	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		tournamentRepo = cachedrepo.NewTournamentRepository(tournamentRepo, store)
		opponentRepo = cachedrepo.NewOpponentRepository(opponentRepo, store)
		officialRepo = cachedrepo.NewOfficialRepository(officialRepo, store)
	}
	playerRepo := sqldb.NewPlayerRepository(db)
	matchRepo := sqldb.NewMatchRepository(db)
	statRepo := sqldb.NewStatRepository(db)
	userRepo := sqldb.NewUserRepository(db)

	resolver := usecase.NewResolverService(tournamentRepo, opponentRepo, officialRepo, playerRepo)
	linker := usecase.NewLinkerService(matchRepo, opponentRepo)

	return &Services{
		DB: db,
		Ingest: usecase.NewIngestService(
			sqldb.NewCleaner(db),
			resolver,
			linker,
			opponentRepo,
			matchRepo,
			playerRepo,
			statRepo,
		),
		Stats:      usecase.NewStatsService(tournamentRepo, opponentRepo, officialRepo, playerRepo, matchRepo, statRepo),
		MatchEntry: usecase.NewMatchEntryService(resolver, sqldb.NewEntryStore(db)),
		Auth:       usecase.NewAuthService(userRepo),
	}, nil
}

// Close releases the database handle.
func (s *Services) Close() error {
	return s.DB.Close()
}

// NewHTTPServer builds the API server over an already built service
// graph.
func NewHTTPServer(cfg config.Config, services *Services, logger *slog.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(services.Stats, services.MatchEntry, services.Auth, logger)
	router := httpapi.NewRouter(handler, services.Auth, logger, cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
