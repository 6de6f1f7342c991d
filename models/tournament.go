package models

import (
	"time"

	"github.com/google/uuid"
)

type TournamentFormat string

const (
	FormatSingleElimination TournamentFormat = "single_elimination"
	FormatDoubleElimination TournamentFormat = "double_elimination"
)

type TournamentStatus string

const (
	TournamentActive    TournamentStatus = "active"
	TournamentCompleted TournamentStatus = "completed"
)

// Tournament is one bracket run for a category. PublicID is the
// externally addressable identifier; the serial ID stays internal to
// the store.
type Tournament struct {
	ID              int              `json:"id"`
	PublicID        uuid.UUID        `json:"public_id"`
	Name            string           `json:"name"`
	Category        Category         `json:"category"`
	Format          TournamentFormat `json:"format"`
	InitialRound    Round            `json:"initial_round"`
	HasSecondChance bool             `json:"has_second_chance"`
	Status          TournamentStatus `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
}
