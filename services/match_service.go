package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/r-campos/wildbrowl/brackets"
	"github.com/r-campos/wildbrowl/models"
	"github.com/r-campos/wildbrowl/repositories"
)

type MatchResultInput struct {
	Score1   int                `json:"score1"`
	Score2   int                `json:"score2"`
	WinnerID *int               `json:"winner_id,omitempty"`
	Status   models.MatchStatus `json:"status,omitempty"`
}

type MatchService interface {
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter repositories.MatchFilter) ([]*models.Match, error)
	UpdateResult(ctx context.Context, id int, input MatchResultInput) (*models.Match, error)
}

type matchService struct {
	matchRepo repositories.MatchRepository
	hub       *brackets.Hub
}

func NewMatchService(matchRepo repositories.MatchRepository, hub *brackets.Hub) MatchService {
	return &matchService{matchRepo: matchRepo, hub: hub}
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	m, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *matchService) List(ctx context.Context, filter repositories.MatchFilter) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// UpdateResult records scores, winner and status on a match. The
// winner, when given, must occupy one of the match's slots; it is not
// checked against the higher score, so forfeits and manual overrides
// stay recordable. Progression and rankings are recomputed on the next
// stats read.
func (s *matchService) UpdateResult(ctx context.Context, id int, input MatchResultInput) (*models.Match, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Score1 < 0 || input.Score2 < 0 {
		return nil, fmt.Errorf("%w: scores must not be negative", ErrInvalidMatchResult)
	}
	status := input.Status
	if status == "" {
		status = models.MatchStatusCompleted
	}
	switch status {
	case models.MatchStatusScheduled, models.MatchStatusInProgress, models.MatchStatusCompleted:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidMatchResult, status)
	}
	if input.WinnerID != nil && !m.Involves(*input.WinnerID) {
		return nil, fmt.Errorf("%w: winner %d is not part of match %d", ErrInvalidMatchResult, *input.WinnerID, id)
	}

	if err := s.matchRepo.UpdateResult(ctx, id, input.Score1, input.Score2, input.WinnerID, status); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	m.Score1 = input.Score1
	m.Score2 = input.Score2
	m.WinnerID = input.WinnerID
	m.Status = status

	if s.hub != nil {
		s.hub.BroadcastEvent(string(m.Category), brackets.EventMatchUpdated, m)
	}
	return m, nil
}
