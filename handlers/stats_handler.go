package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/r-campos/wildbrowl/models"
	"github.com/r-campos/wildbrowl/services"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(ss services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: ss}
}

// Get godoc
// @Summary Read rankings
// @Tags stats
// @Description Flat ranked list when a category is given; per-category partition plus a tournament summary otherwise.
// @Produce json
// @Param category query string false "Category filter"
// @Param tournament_id query int false "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Router /stats [get]
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	var tournamentID *int
	if raw := r.URL.Query().Get("tournament_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			badRequestResponse(w, r, errInvalidTournamentID)
			return
		}
		tournamentID = &id
	}

	if raw := r.URL.Query().Get("category"); raw != "" {
		rankings, err := h.statsService.GetCategoryRankings(r.Context(), models.Category(raw), tournamentID)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, jsonResponse{"rankings": rankings}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	overview, err := h.statsService.GetOverview(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, overview, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Write godoc
// @Summary Mutate the stats cache
// @Tags stats
// @Description action=update upserts a stat row, action=reset recomputes a category from the ledger, action=delete removes a cached row.
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /stats [post]
func (h *StatsHandler) Write(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Action        string              `json:"action"`
		ParticipantID *int                `json:"participant_id,omitempty"`
		TournamentID  *int                `json:"tournament_id,omitempty"`
		Category      *models.Category    `json:"category,omitempty"`
		Stats         *models.BracketStat `json:"stats,omitempty"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	switch input.Action {
	case "update":
		if input.ParticipantID == nil {
			badRequestResponse(w, r, fmt.Errorf("participant_id is required for action %q", input.Action))
			return
		}
		stat, err := h.statsService.UpdateStat(r.Context(), *input.ParticipantID, input.TournamentID, input.Stats)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, jsonResponse{"stat": stat}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}

	case "reset":
		if input.Category == nil {
			badRequestResponse(w, r, fmt.Errorf("category is required for action %q", input.Action))
			return
		}
		if err := h.statsService.Reset(r.Context(), *input.Category); err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "stats reset"}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}

	case "delete":
		if input.ParticipantID == nil {
			badRequestResponse(w, r, fmt.Errorf("participant_id is required for action %q", input.Action))
			return
		}
		if err := h.statsService.DeleteStat(r.Context(), *input.ParticipantID, input.TournamentID); err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		mapServiceErrorToHTTP(w, r, services.ErrInvalidStatsAction)
	}
}
