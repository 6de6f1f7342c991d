package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/r-campos/wildbrowl/models"
	"github.com/r-campos/wildbrowl/services"
)

var errInvalidTournamentID = errors.New("invalid tournament_id query parameter")

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bs services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bs}
}

// Generate godoc
// @Summary Generate a bracket for a category
// @Tags brackets
// @Description Seeds the paid, active participants of the category and creates the first round of matches.
// @Accept json
// @Produce json
// @Param body body object true "category and optional tournament_name"
// @Success 201 {object} services.BracketGenerationResult
// @Failure 400 {object} map[string]string "Invalid category or fewer than 2 eligible participants"
// @Security BearerAuth
// @Router /brackets/generate [post]
func (h *BracketHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Category       models.Category `json:"category"`
		TournamentName string          `json:"tournament_name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.bracketService.Generate(r.Context(), input.Category, input.TournamentName)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBracket godoc
// @Summary Read the bracket
// @Tags brackets
// @Description Matches grouped by category, bracket side and round, plus the champion-of-champions match when present.
// @Produce json
// @Param tournament_id query int false "Tournament ID"
// @Success 200 {object} services.BracketView
// @Router /brackets [get]
func (h *BracketHandler) GetBracket(w http.ResponseWriter, r *http.Request) {
	var tournamentID *int
	if raw := r.URL.Query().Get("tournament_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			badRequestResponse(w, r, errInvalidTournamentID)
			return
		}
		tournamentID = &id
	}

	view, err := h.bracketService.GetBracketView(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
