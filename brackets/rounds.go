package brackets

import "github.com/r-campos/wildbrowl/models"

// RoundLadder is the ordered progression of round labels a tournament
// walks through. It is passed to the generator explicitly so different
// bracket shapes can substitute their own ladder.
type RoundLadder []models.Round

// DefaultLadder covers the full 32-entrant shape down to the
// champion-of-champions decider.
var DefaultLadder = RoundLadder{
	models.Round32avos,
	models.Round16avos,
	models.RoundOctavos,
	models.RoundCuartos,
	models.RoundSemis,
	models.RoundFinal,
	models.RoundCampeon,
}

// Next returns the round that follows r in the ladder. The second
// return is false when r is the last rung or not part of the ladder.
func (l RoundLadder) Next(r models.Round) (models.Round, bool) {
	for i, round := range l {
		if round == r && i+1 < len(l) {
			return l[i+1], true
		}
	}
	return "", false
}

func (l RoundLadder) Contains(r models.Round) bool {
	for _, round := range l {
		if round == r {
			return true
		}
	}
	return false
}

// MaxEntrants caps a single-elimination bracket; entrants beyond the
// cap are cut after the shuffle.
const MaxEntrants = 32

const (
	LivesDoubleElimination = 2
	LivesSingleElimination = 1
)

// SelectFormat decides tournament format and initial round from the
// eligible entrant count. Up to 16 entrants play double elimination
// (second chance, two lives); larger fields play single elimination
// starting at 32avos.
func SelectFormat(n int) (format models.TournamentFormat, initial models.Round, hasSecondChance bool) {
	if n > 16 {
		return models.FormatSingleElimination, models.Round32avos, false
	}
	switch {
	case n <= 4:
		initial = models.RoundSemis
	case n <= 8:
		initial = models.RoundCuartos
	default:
		initial = models.Round16avos
	}
	return models.FormatDoubleElimination, initial, true
}

// InitialLives returns how many eliminating losses a participant can
// absorb under the given format.
func InitialLives(format models.TournamentFormat) int {
	if format == models.FormatDoubleElimination {
		return LivesDoubleElimination
	}
	return LivesSingleElimination
}
