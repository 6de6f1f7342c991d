package brackets

import (
	"math"
	"sort"

	"github.com/r-campos/wildbrowl/models"
)

// ComputeRankings fills win percentage and point differential on every
// stat and orders them by (wins desc, point differential desc, win
// percentage desc). Rank numbers are consecutive; equal tuples keep
// their incoming order (stable sort), there is no further tiebreak.
func ComputeRankings(stats []*models.BracketStat) []*models.BracketStat {
	for _, s := range stats {
		s.PointDifferential = s.PointsScored - s.PointsAgainst
		if s.MatchesPlayed > 0 {
			s.WinPercentage = round2(float64(s.MatchesWon) / float64(s.MatchesPlayed) * 100)
		} else {
			s.WinPercentage = 0
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		a, b := stats[i], stats[j]
		if a.MatchesWon != b.MatchesWon {
			return a.MatchesWon > b.MatchesWon
		}
		if a.PointDifferential != b.PointDifferential {
			return a.PointDifferential > b.PointDifferential
		}
		return a.WinPercentage > b.WinPercentage
	})

	for i, s := range stats {
		s.Ranking = i + 1
	}
	return stats
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Summary is the tournament-wide roll-up returned alongside the
// per-category rankings.
type Summary struct {
	TotalParticipants      int     `json:"total_participants"`
	ActiveParticipants     int     `json:"active_participants"`
	EliminatedParticipants int     `json:"eliminated_participants"`
	WinnersBracketCount    int     `json:"winners_bracket_count"`
	LosersBracketCount     int     `json:"losers_bracket_count"`
	CompletedMatches       int     `json:"completed_matches"`
	TotalPointsScored      int     `json:"total_points_scored"`
	AveragePointsPerMatch  float64 `json:"average_points_per_match"`
}

// Summarize rolls the computed stats and the match ledger into the
// tournament summary. Average points is 0.0 when nothing completed.
func Summarize(stats []*models.BracketStat, matches []*models.Match) Summary {
	s := Summary{TotalParticipants: len(stats)}
	for _, stat := range stats {
		switch stat.BracketType {
		case models.BracketEliminated:
			s.EliminatedParticipants++
		case models.BracketLosers:
			s.ActiveParticipants++
			s.LosersBracketCount++
		default:
			s.ActiveParticipants++
			s.WinnersBracketCount++
		}
	}
	for _, m := range matches {
		if !m.Completed() {
			continue
		}
		s.CompletedMatches++
		s.TotalPointsScored += m.Score1 + m.Score2
	}
	if s.CompletedMatches > 0 {
		s.AveragePointsPerMatch = round2(float64(s.TotalPointsScored) / float64(s.CompletedMatches))
	}
	return s
}
