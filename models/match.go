package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "scheduled"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
)

// BracketType is a match's (or participant's) sub-tournament membership.
// Matches only ever carry winners or losers; eliminated applies to
// participants whose lives ran out.
type BracketType string

const (
	BracketWinners    BracketType = "winners"
	BracketLosers     BracketType = "losers"
	BracketEliminated BracketType = "eliminated"
)

// Round labels, ordered from the widest stage to the champion-of-champions
// decider. The ordering itself lives in brackets.RoundLadder.
type Round string

const (
	Round32avos  Round = "32avos"
	Round16avos  Round = "16avos"
	RoundOctavos Round = "octavos"
	RoundCuartos Round = "cuartos"
	RoundSemis   Round = "semifinal"
	RoundFinal   Round = "final"
	RoundCampeon Round = "campeon_de_campeones"
)

// Match is one bracket pairing. Participant slots are nullable until a
// bye or a previous round resolves them. MatchNumber is unique within
// (round, bracket type). EliminationMatch marks a match whose loss costs
// the loser a life.
type Match struct {
	ID               int         `json:"id"`
	TournamentID     int         `json:"tournament_id"`
	Category         Category    `json:"category"`
	Participant1ID   *int        `json:"participant1_id,omitempty"`
	Participant2ID   *int        `json:"participant2_id,omitempty"`
	Round            Round       `json:"round"`
	BracketType      BracketType `json:"bracket_type"`
	MatchNumber      int         `json:"match_number"`
	Score1           int         `json:"score1"`
	Score2           int         `json:"score2"`
	Status           MatchStatus `json:"status"`
	WinnerID         *int        `json:"winner_id,omitempty"`
	EliminationMatch bool        `json:"elimination_match"`
	CreatedAt        time.Time   `json:"created_at"`
}

func (m *Match) Completed() bool {
	return m.Status == MatchStatusCompleted
}

// Involves reports whether the participant occupies either slot.
func (m *Match) Involves(participantID int) bool {
	if m.Participant1ID != nil && *m.Participant1ID == participantID {
		return true
	}
	if m.Participant2ID != nil && *m.Participant2ID == participantID {
		return true
	}
	return false
}

// ScoreFor returns the participant's own score and the opponent's score.
// The participant must occupy one of the slots.
func (m *Match) ScoreFor(participantID int) (own, against int) {
	if m.Participant1ID != nil && *m.Participant1ID == participantID {
		return m.Score1, m.Score2
	}
	return m.Score2, m.Score1
}
