package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-campos/wildbrowl/models"
	"github.com/r-campos/wildbrowl/services"
)

func matchRouter(svc services.MatchService) http.Handler {
	h := NewMatchHandler(svc)
	r := chi.NewRouter()
	r.Get("/matches", h.List)
	r.Get("/matches/{id}", h.Get)
	r.Put("/matches/{id}/result", h.UpdateResult)
	return r
}

func TestMatchUpdateResultHandler(t *testing.T) {
	svc := &fakeMatchService{
		match: &models.Match{ID: 5, Status: models.MatchStatusCompleted},
	}
	router := matchRouter(svc)

	body := strings.NewReader(`{"score1": 21, "score2": 18, "winner_id": 10}`)
	req := httptest.NewRequest(http.MethodPut, "/matches/5/result", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, svc.gotID)
	assert.Equal(t, 21, svc.gotInput.Score1)
	require.NotNil(t, svc.gotInput.WinnerID)
	assert.Equal(t, 10, *svc.gotInput.WinnerID)
}

func TestMatchUpdateResultInvalid(t *testing.T) {
	svc := &fakeMatchService{err: services.ErrInvalidMatchResult}
	router := matchRouter(svc)

	body := strings.NewReader(`{"score1": -1, "score2": 0}`)
	req := httptest.NewRequest(http.MethodPut, "/matches/5/result", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchListFilters(t *testing.T) {
	svc := &fakeMatchService{matches: []*models.Match{}}
	router := matchRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/matches?tournament_id=2&category=mixto&status=completed", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotFilter.TournamentID)
	assert.Equal(t, 2, *svc.gotFilter.TournamentID)
	require.NotNil(t, svc.gotFilter.Category)
	assert.Equal(t, models.CategoryMixto, *svc.gotFilter.Category)
	require.NotNil(t, svc.gotFilter.Status)
	assert.Equal(t, models.MatchStatusCompleted, *svc.gotFilter.Status)
}

func TestMatchGetNotFound(t *testing.T) {
	svc := &fakeMatchService{err: services.ErrMatchNotFound}
	router := matchRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/matches/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
