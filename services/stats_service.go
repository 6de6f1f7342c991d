package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/r-campos/wildbrowl/brackets"
	"github.com/r-campos/wildbrowl/models"
	"github.com/r-campos/wildbrowl/repositories"
)

// CategoryRankings groups ranked stats per category.
type CategoryRankings map[models.Category][]*models.BracketStat

// StatsOverview is the no-category-filter response: per-category
// rankings plus a tournament-wide summary.
type StatsOverview struct {
	Categories CategoryRankings `json:"categories"`
	Summary    brackets.Summary `json:"summary"`
}

type StatsService interface {
	GetCategoryRankings(ctx context.Context, category models.Category, tournamentID *int) ([]*models.BracketStat, error)
	GetOverview(ctx context.Context, tournamentID *int) (*StatsOverview, error)
	UpdateStat(ctx context.Context, participantID int, tournamentID *int, stat *models.BracketStat) (*models.BracketStat, error)
	Reset(ctx context.Context, category models.Category) error
	DeleteStat(ctx context.Context, participantID int, tournamentID *int) error
}

type statsService struct {
	tournamentRepo  repositories.TournamentRepository
	participantRepo repositories.ParticipantRepository
	matchRepo       repositories.MatchRepository
	statRepo        repositories.BracketStatRepository
	hub             *brackets.Hub
}

func NewStatsService(
	tournamentRepo repositories.TournamentRepository,
	participantRepo repositories.ParticipantRepository,
	matchRepo repositories.MatchRepository,
	statRepo repositories.BracketStatRepository,
	hub *brackets.Hub,
) StatsService {
	return &statsService{
		tournamentRepo:  tournamentRepo,
		participantRepo: participantRepo,
		matchRepo:       matchRepo,
		statRepo:        statRepo,
		hub:             hub,
	}
}

// computed holds one category's freshly derived state.
type computed struct {
	tournament *models.Tournament
	stats      []*models.BracketStat
	matches    []*models.Match
}

// compute derives the category's bracket stats straight from the match
// ledger. It is side-effect-free; callers decide whether to persist the
// result into the cache table.
func (s *statsService) compute(ctx context.Context, category models.Category, tournamentID *int) (*computed, error) {
	var tournament *models.Tournament
	var err error
	if tournamentID != nil {
		tournament, err = s.tournamentRepo.GetByID(ctx, *tournamentID)
	} else {
		tournament, err = s.tournamentRepo.GetLatestByCategory(ctx, category)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if category != "" && tournament.Category != category {
		return nil, fmt.Errorf("%w: tournament %d is %q, not %q", ErrValidationFailed, tournament.ID, tournament.Category, category)
	}

	var participants []*models.Participant
	var matches []*models.Match

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		paid := true
		cat := tournament.Category
		var listErr error
		participants, listErr = s.participantRepo.List(gCtx, repositories.ParticipantFilter{Category: &cat, Paid: &paid})
		return listErr
	})
	g.Go(func() error {
		var listErr error
		matches, listErr = s.matchRepo.List(gCtx, repositories.MatchFilter{TournamentID: &tournament.ID})
		return listErr
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load stats inputs for %s: %w", tournament.Category, err)
	}

	statsByID := brackets.ComputeProgression(participants, matches, brackets.InitialLives(tournament.Format))
	stats := make([]*models.BracketStat, 0, len(statsByID))
	for _, stat := range statsByID {
		stat.TournamentID = tournament.ID
		stats = append(stats, stat)
	}
	brackets.ComputeRankings(stats)

	return &computed{tournament: tournament, stats: stats, matches: matches}, nil
}

func (s *statsService) GetCategoryRankings(ctx context.Context, category models.Category, tournamentID *int) ([]*models.BracketStat, error) {
	if !category.Valid() {
		return nil, ErrCategoryInvalid
	}
	result, err := s.compute(ctx, category, tournamentID)
	if err != nil {
		return nil, err
	}
	s.cache(ctx, result.stats)
	return result.stats, nil
}

func (s *statsService) GetOverview(ctx context.Context, tournamentID *int) (*StatsOverview, error) {
	overview := &StatsOverview{Categories: make(CategoryRankings)}

	if tournamentID != nil {
		result, err := s.compute(ctx, "", tournamentID)
		if err != nil {
			return nil, err
		}
		overview.Categories[result.tournament.Category] = result.stats
		overview.Summary = brackets.Summarize(result.stats, result.matches)
		s.cache(ctx, result.stats)
		return overview, nil
	}

	allStats := make([]*models.BracketStat, 0)
	allMatches := make([]*models.Match, 0)

	for _, category := range models.AllCategories {
		result, err := s.compute(ctx, category, nil)
		if err != nil {
			if errors.Is(err, ErrTournamentNotFound) {
				continue
			}
			return nil, err
		}
		overview.Categories[category] = result.stats
		allStats = append(allStats, result.stats...)
		allMatches = append(allMatches, result.matches...)
		s.cache(ctx, result.stats)
	}

	overview.Summary = brackets.Summarize(allStats, allMatches)
	return overview, nil
}

// UpdateStat upserts a caller-supplied stat row into the cache. The
// cache never feeds the computed rankings; this exists for manual
// corrections surfaced through the admin UI.
func (s *statsService) UpdateStat(ctx context.Context, participantID int, tournamentID *int, stat *models.BracketStat) (*models.BracketStat, error) {
	if stat == nil {
		return nil, fmt.Errorf("%w: stats payload is required", ErrValidationFailed)
	}
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	if tournamentID == nil {
		tournament, err := s.tournamentRepo.GetLatestByCategory(ctx, participant.Category)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return nil, ErrTournamentNotFound
			}
			return nil, err
		}
		tournamentID = &tournament.ID
	}

	stat.TournamentID = *tournamentID
	stat.ParticipantID = participantID
	if err := s.statRepo.Upsert(ctx, nil, stat); err != nil {
		return nil, err
	}
	return stat, nil
}

// Reset recomputes the category's stats from the ledger and rewrites
// the cache with the result.
func (s *statsService) Reset(ctx context.Context, category models.Category) error {
	if !category.Valid() {
		return ErrCategoryInvalid
	}
	result, err := s.compute(ctx, category, nil)
	if err != nil {
		return err
	}
	if err := s.statRepo.DeleteByTournament(ctx, nil, result.tournament.ID); err != nil {
		return err
	}
	if err := s.statRepo.BatchUpsert(ctx, nil, result.stats); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.BroadcastEvent(string(category), brackets.EventStatsReset, result.stats)
	}
	return nil
}

func (s *statsService) DeleteStat(ctx context.Context, participantID int, tournamentID *int) error {
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return err
	}
	if tournamentID == nil {
		tournament, err := s.tournamentRepo.GetLatestByCategory(ctx, participant.Category)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return err
		}
		tournamentID = &tournament.ID
	}
	if err := s.statRepo.DeleteByParticipant(ctx, *tournamentID, participantID); err != nil {
		if errors.Is(err, repositories.ErrBracketStatNotFound) {
			return ErrParticipantNotFound
		}
		return err
	}
	return nil
}

// cache persists the freshly computed stats; failures are logged and
// swallowed because the cache is an optimization, never a dependency.
func (s *statsService) cache(ctx context.Context, stats []*models.BracketStat) {
	if err := s.statRepo.BatchUpsert(ctx, nil, stats); err != nil {
		slog.Warn("failed to cache bracket stats", slog.Any("error", err))
	}
}
