package models

import "time"

// BracketStat is the per-participant projection of a tournament: seed,
// bracket membership, lives and the win/loss counters the ranking is
// computed from. It is derived from the completed matches and the
// participant registry; the stored rows are only a cache, never the
// source of truth.
type BracketStat struct {
	ID                int         `json:"id,omitempty"`
	TournamentID      int         `json:"tournament_id"`
	ParticipantID     int         `json:"participant_id"`
	ParticipantName   string      `json:"participant_name,omitempty"`
	Category          Category    `json:"category,omitempty"`
	Seed              int         `json:"seed"`
	BracketPosition   *Round      `json:"bracket_position,omitempty"`
	BracketType       BracketType `json:"bracket_type"`
	LivesRemaining    int         `json:"lives_remaining"`
	MatchesPlayed     int         `json:"matches_played"`
	MatchesWon        int         `json:"matches_won"`
	MatchesLost       int         `json:"matches_lost"`
	PointsScored      int         `json:"points_scored"`
	PointsAgainst     int         `json:"points_against"`
	WinPercentage     float64     `json:"win_percentage"`
	PointDifferential int         `json:"point_differential"`
	Ranking           int         `json:"ranking"`
	UpdatedAt         time.Time   `json:"updated_at,omitempty"`
}
