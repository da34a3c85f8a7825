package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/fedenh3/proyecto-cava/internal/usecase"
)

type Handler struct {
	statsService      *usecase.StatsService
	matchEntryService *usecase.MatchEntryService
	authService       *usecase.AuthService
	logger            *slog.Logger
	validator         *validator.Validate
}

func NewHandler(
	statsService *usecase.StatsService,
	matchEntryService *usecase.MatchEntryService,
	authService *usecase.AuthService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		statsService:      statsService,
		matchEntryService: matchEntryService,
		authService:       authService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
