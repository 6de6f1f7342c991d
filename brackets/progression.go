package brackets

import "github.com/r-campos/wildbrowl/models"

// ComputeProgression folds the completed matches into per-participant
// bracket stats. It is a pure function of its inputs and is recomputed
// fresh on every read; persisted stat rows are only a cache.
//
// Per participant, over their completed matches in ledger order:
// matches played and points accumulate on every completed match, a win
// counts when the participant is the recorded winner, a loss counts
// when a winner was recorded and it was someone else, and a loss in an
// elimination match costs a life. A participant with no lives left is
// eliminated; one with a loss but lives left sits in the losers
// bracket; everyone else stays in winners.
func ComputeProgression(participants []*models.Participant, matches []*models.Match, initialLives int) map[int]*models.BracketStat {
	stats := make(map[int]*models.BracketStat, len(participants))
	for _, p := range participants {
		stat := &models.BracketStat{
			ParticipantID:   p.ID,
			ParticipantName: p.Name,
			Category:        p.Category,
			BracketType:     models.BracketWinners,
			LivesRemaining:  initialLives,
		}
		if p.Seed != nil {
			stat.Seed = *p.Seed
		}
		stats[p.ID] = stat
	}

	for _, m := range matches {
		if !m.Completed() {
			continue
		}
		applyMatch(stats, m, m.Participant1ID)
		applyMatch(stats, m, m.Participant2ID)
	}

	for _, stat := range stats {
		switch {
		case stat.LivesRemaining <= 0:
			stat.BracketType = models.BracketEliminated
		case stat.MatchesLost > 0:
			stat.BracketType = models.BracketLosers
		default:
			stat.BracketType = models.BracketWinners
		}
	}
	return stats
}

func applyMatch(stats map[int]*models.BracketStat, m *models.Match, participantID *int) {
	if participantID == nil {
		return
	}
	stat, ok := stats[*participantID]
	if !ok {
		return
	}
	own, against := m.ScoreFor(*participantID)
	stat.MatchesPlayed++
	stat.PointsScored += own
	stat.PointsAgainst += against

	if m.WinnerID == nil {
		// Completed without a recorded winner counts as played only.
		return
	}
	if *m.WinnerID == *participantID {
		stat.MatchesWon++
		return
	}
	stat.MatchesLost++
	if m.EliminationMatch {
		stat.LivesRemaining--
	}
}
