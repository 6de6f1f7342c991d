package brackets

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/r-campos/wildbrowl/models"
)

var (
	ErrNotEnoughParticipants = errors.New("not enough participants to generate a bracket (minimum 2)")
	ErrCategoryMismatch      = errors.New("participant does not belong to the bracket category")
	ErrIneligibleParticipant = errors.New("participant is not paid and active")
)

// Shuffler returns a permutation of [0, n). Production uses a uniform
// random shuffle; tests inject a fixed permutation.
type Shuffler func(n int) []int

func RandomShuffler(n int) []int {
	return rand.Perm(n)
}

// SeedAssignment binds a participant to the seed number it drew in the
// shuffle.
type SeedAssignment struct {
	Participant *models.Participant
	Seed        int
}

// PlannedMatch is one first-round pairing before it is persisted.
type PlannedMatch struct {
	Participant1ID   int
	Participant2ID   int
	Round            models.Round
	BracketType      models.BracketType
	MatchNumber      int
	EliminationMatch bool
}

// Plan is the full outcome of one generation pass: format decision,
// seed order, first-round pairings and the bye, if the entrant count
// was odd.
type Plan struct {
	Format          models.TournamentFormat
	InitialRound    models.Round
	HasSecondChance bool
	Lives           int
	Seeds           []SeedAssignment
	Matches         []PlannedMatch
	Bye             *SeedAssignment
	ByeAdvancesTo   models.Round
}

type Generator struct {
	ladder  RoundLadder
	shuffle Shuffler
}

func NewGenerator() *Generator {
	return &Generator{ladder: DefaultLadder, shuffle: RandomShuffler}
}

// NewGeneratorWith lets callers substitute the round ladder and the
// shuffle, which tests use to get deterministic pairings.
func NewGeneratorWith(ladder RoundLadder, shuffle Shuffler) *Generator {
	return &Generator{ladder: ladder, shuffle: shuffle}
}

// Plan seeds the eligible participants and pairs the first round for
// the category. Participants must all belong to the category and be
// paid and active; the caller filters, Plan verifies.
func (g *Generator) Plan(category models.Category, participants []*models.Participant) (*Plan, error) {
	for _, p := range participants {
		if p.Category != category {
			return nil, fmt.Errorf("%w: participant %d is %q, bracket is %q", ErrCategoryMismatch, p.ID, p.Category, category)
		}
		if !p.Eligible() {
			return nil, fmt.Errorf("%w: participant %d", ErrIneligibleParticipant, p.ID)
		}
	}

	n := len(participants)
	if n < 2 {
		return nil, ErrNotEnoughParticipants
	}

	format, initialRound, hasSecondChance := SelectFormat(n)

	order := g.shuffle(n)
	shuffled := make([]*models.Participant, 0, n)
	for _, idx := range order {
		shuffled = append(shuffled, participants[idx])
	}
	// Single-elimination fields are capped; entrants past the cap are
	// cut after the shuffle so the cut is as random as the seeding.
	if len(shuffled) > MaxEntrants {
		shuffled = shuffled[:MaxEntrants]
	}
	n = len(shuffled)

	plan := &Plan{
		Format:          format,
		InitialRound:    initialRound,
		HasSecondChance: hasSecondChance,
		Lives:           InitialLives(format),
		Seeds:           make([]SeedAssignment, 0, n),
		Matches:         make([]PlannedMatch, 0, n/2),
	}

	for i, p := range shuffled {
		plan.Seeds = append(plan.Seeds, SeedAssignment{Participant: p, Seed: i + 1})
	}

	for i := 0; i+1 < n; i += 2 {
		plan.Matches = append(plan.Matches, PlannedMatch{
			Participant1ID:   shuffled[i].ID,
			Participant2ID:   shuffled[i+1].ID,
			Round:            initialRound,
			BracketType:      models.BracketWinners,
			MatchNumber:      i/2 + 1,
			EliminationMatch: !hasSecondChance,
		})
	}

	if n%2 == 1 {
		bye := plan.Seeds[n-1]
		plan.Bye = &bye
		if next, ok := g.ladder.Next(initialRound); ok {
			plan.ByeAdvancesTo = next
		}
	}

	return plan, nil
}
