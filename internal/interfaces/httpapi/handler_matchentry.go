package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/fedenh3/proyecto-cava/internal/usecase"
)

type matchEntryLineRequest struct {
	Name     string `json:"name" validate:"omitempty,max=60"`
	Surname  string `json:"surname" validate:"required,max=60"`
	Position string `json:"position" validate:"omitempty,max=40"`
	Minutes  int    `json:"minutes" validate:"gte=0,lte=150"`
	Starter  bool   `json:"starter"`
	Goals    int    `json:"goals" validate:"gte=0"`
	Conceded int    `json:"conceded" validate:"gte=0"`
	Yellows  int    `json:"yellows" validate:"gte=0,lte=2"`
	Reds     int    `json:"reds" validate:"gte=0,lte=1"`
}

type createMatchRequest struct {
	Date         string                  `json:"date" validate:"omitempty,max=20"`
	Tournament   string                  `json:"tournament" validate:"omitempty,max=120"`
	Season       string                  `json:"season" validate:"required,max=20"`
	Opponent     string                  `json:"opponent" validate:"required,max=120"`
	Referee      string                  `json:"referee" validate:"omitempty,max=120"`
	Coach        string                  `json:"coach" validate:"omitempty,max=120"`
	Condition    string                  `json:"condition" validate:"omitempty,oneof=L V N"`
	GoalsFor     *int                    `json:"goals_for" validate:"omitempty,gte=0"`
	GoalsAgainst *int                    `json:"goals_against" validate:"omitempty,gte=0"`
	ScorerNotes  string                  `json:"scorer_notes" validate:"omitempty,max=500"`
	RedCardNotes string                  `json:"red_card_notes" validate:"omitempty,max=500"`
	PenaltyNotes string                  `json:"penalty_notes" validate:"omitempty,max=500"`
	Lines        []matchEntryLineRequest `json:"lines" validate:"dive"`
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	session, ok := sessionFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: session is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createMatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.MatchEntryInput{
		Date:         req.Date,
		Tournament:   req.Tournament,
		Season:       req.Season,
		Opponent:     req.Opponent,
		Referee:      req.Referee,
		Coach:        req.Coach,
		Condition:    req.Condition,
		GoalsFor:     req.GoalsFor,
		GoalsAgainst: req.GoalsAgainst,
		ScorerNotes:  req.ScorerNotes,
		RedCardNotes: req.RedCardNotes,
		PenaltyNotes: req.PenaltyNotes,
		Lines:        make([]usecase.MatchEntryLine, 0, len(req.Lines)),
	}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, usecase.MatchEntryLine{
			Name:     line.Name,
			Surname:  line.Surname,
			Position: line.Position,
			Minutes:  line.Minutes,
			Starter:  line.Starter,
			Goals:    line.Goals,
			Conceded: line.Conceded,
			Yellows:  line.Yellows,
			Reds:     line.Reds,
		})
	}

	result, err := h.matchEntryService.CreateMatch(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "actor", session.Username, "opponent", req.Opponent, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, result)
}
