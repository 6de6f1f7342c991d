package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/r-campos/wildbrowl/brackets"
	"github.com/r-campos/wildbrowl/models"
	"github.com/r-campos/wildbrowl/repositories"
)

// BracketGenerationResult is the payload returned after a generation
// pass: the tournament it created, the format decision and the
// first-round matches.
type BracketGenerationResult struct {
	TournamentID      int                     `json:"tournament_id"`
	TournamentName    string                  `json:"tournament_name"`
	TournamentFormat  models.TournamentFormat `json:"tournament_format"`
	InitialRound      models.Round            `json:"initial_round"`
	HasSecondChance   bool                    `json:"has_second_chance"`
	ParticipantsCount int                     `json:"participants_count"`
	MatchesCount      int                     `json:"matches_count"`
	ByeParticipant    *models.Participant     `json:"bye_participant,omitempty"`
	Matches           []*models.Match         `json:"matches"`
}

// RoundGroup maps a round label to its matches in match-number order.
type RoundGroup map[models.Round][]*models.Match

type CategoryBracket struct {
	Winners RoundGroup `json:"winners"`
	Losers  RoundGroup `json:"losers"`
}

// BracketView groups the ledger by category, bracket side and round,
// with the champion-of-champions decider pulled out on its own.
type BracketView struct {
	Categories map[models.Category]*CategoryBracket `json:"categories"`
	Champion   *models.Match                        `json:"champion_of_champions,omitempty"`
}

type BracketService interface {
	Generate(ctx context.Context, category models.Category, tournamentName string) (*BracketGenerationResult, error)
	GetBracketView(ctx context.Context, tournamentID *int) (*BracketView, error)
}

// Tx is the slice of *sql.Tx the generation path needs: an executor the
// repositories accept plus the commit/rollback pair.
type Tx interface {
	repositories.SQLExecutor
	Commit() error
	Rollback() error
}

// TxBeginner opens the transaction bracket generation runs inside.
// *sql.DB satisfies it through NewSQLTxBeginner; tests substitute their
// own.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error)
}

type sqlTxBeginner struct {
	db *sql.DB
}

func NewSQLTxBeginner(db *sql.DB) TxBeginner {
	return sqlTxBeginner{db: db}
}

func (b sqlTxBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error) {
	return b.db.BeginTx(ctx, opts)
}

type bracketService struct {
	db              TxBeginner
	generator       *brackets.Generator
	hub             *brackets.Hub
	tournamentRepo  repositories.TournamentRepository
	participantRepo repositories.ParticipantRepository
	matchRepo       repositories.MatchRepository
	statRepo        repositories.BracketStatRepository
}

func NewBracketService(
	db TxBeginner,
	generator *brackets.Generator,
	hub *brackets.Hub,
	tournamentRepo repositories.TournamentRepository,
	participantRepo repositories.ParticipantRepository,
	matchRepo repositories.MatchRepository,
	statRepo repositories.BracketStatRepository,
) BracketService {
	return &bracketService{
		db:              db,
		generator:       generator,
		hub:             hub,
		tournamentRepo:  tournamentRepo,
		participantRepo: participantRepo,
		matchRepo:       matchRepo,
		statRepo:        statRepo,
	}
}

// Generate seeds the eligible roster for the category and persists the
// tournament, the seed/stat initialization and the first-round matches
// in a single transaction, so a partial failure leaves no orphaned
// state behind.
func (s *bracketService) Generate(ctx context.Context, category models.Category, tournamentName string) (result *BracketGenerationResult, err error) {
	if !category.Valid() {
		return nil, ErrCategoryInvalid
	}
	tournamentName = strings.TrimSpace(tournamentName)
	if tournamentName == "" {
		tournamentName = fmt.Sprintf("WildBrowl %s %s", category, time.Now().Format("2006-01-02"))
	}

	paid := true
	active := models.ParticipantActive
	eligible, err := s.participantRepo.List(ctx, repositories.ParticipantFilter{
		Category: &category,
		Paid:     &paid,
		Status:   &active,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible participants for %s: %w", category, err)
	}

	plan, err := s.generator.Plan(category, eligible)
	if err != nil {
		if errors.Is(err, brackets.ErrNotEnoughParticipants) {
			return nil, ErrInsufficientParticipants
		}
		return nil, fmt.Errorf("failed to plan bracket for %s: %w", category, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	tournament := &models.Tournament{
		Name:            tournamentName,
		Category:        category,
		Format:          plan.Format,
		InitialRound:    plan.InitialRound,
		HasSecondChance: plan.HasSecondChance,
		Status:          models.TournamentActive,
	}
	if err = s.tournamentRepo.Create(ctx, tx, tournament); err != nil {
		return nil, err
	}

	for _, seed := range plan.Seeds {
		if err = s.participantRepo.UpdateSeed(ctx, tx, seed.Participant.ID, seed.Seed); err != nil {
			return nil, err
		}
		position := plan.InitialRound
		if plan.Bye != nil && plan.Bye.Participant.ID == seed.Participant.ID && plan.ByeAdvancesTo != "" {
			position = plan.ByeAdvancesTo
		}
		stat := &models.BracketStat{
			TournamentID:    tournament.ID,
			ParticipantID:   seed.Participant.ID,
			Seed:            seed.Seed,
			BracketPosition: &position,
			BracketType:     models.BracketWinners,
			LivesRemaining:  plan.Lives,
		}
		if err = s.statRepo.Upsert(ctx, tx, stat); err != nil {
			return nil, err
		}
	}

	matches := make([]*models.Match, 0, len(plan.Matches))
	for _, pm := range plan.Matches {
		p1, p2 := pm.Participant1ID, pm.Participant2ID
		matches = append(matches, &models.Match{
			TournamentID:     tournament.ID,
			Category:         category,
			Participant1ID:   &p1,
			Participant2ID:   &p2,
			Round:            pm.Round,
			BracketType:      pm.BracketType,
			MatchNumber:      pm.MatchNumber,
			Status:           models.MatchStatusScheduled,
			EliminationMatch: pm.EliminationMatch,
		})
	}
	if err = s.matchRepo.CreateBatch(ctx, tx, matches); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bracket transaction: %w", err)
	}

	result = &BracketGenerationResult{
		TournamentID:      tournament.ID,
		TournamentName:    tournament.Name,
		TournamentFormat:  plan.Format,
		InitialRound:      plan.InitialRound,
		HasSecondChance:   plan.HasSecondChance,
		ParticipantsCount: len(plan.Seeds),
		MatchesCount:      len(matches),
		Matches:           matches,
	}
	if plan.Bye != nil {
		result.ByeParticipant = plan.Bye.Participant
	}

	// Only committed brackets reach live viewers.
	if s.hub != nil {
		s.hub.BroadcastEvent(string(category), brackets.EventBracketGenerated, result)
	}
	return result, nil
}

func (s *bracketService) GetBracketView(ctx context.Context, tournamentID *int) (*BracketView, error) {
	matches, err := s.matchRepo.List(ctx, repositories.MatchFilter{TournamentID: tournamentID})
	if err != nil {
		return nil, err
	}

	view := &BracketView{Categories: make(map[models.Category]*CategoryBracket)}
	for _, m := range matches {
		if m.Round == models.RoundCampeon {
			view.Champion = m
			continue
		}
		cb, ok := view.Categories[m.Category]
		if !ok {
			cb = &CategoryBracket{Winners: make(RoundGroup), Losers: make(RoundGroup)}
			view.Categories[m.Category] = cb
		}
		group := cb.Winners
		if m.BracketType == models.BracketLosers {
			group = cb.Losers
		}
		group[m.Round] = append(group[m.Round], m)
	}
	return view, nil
}
