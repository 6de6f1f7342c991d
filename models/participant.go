package models

import "time"

// Category is the fixed set of divisions a participant competes in.
type Category string

const (
	CategoryVaronil Category = "varonil"
	CategoryFemenil Category = "femenil"
	CategoryMixto   Category = "mixto"
)

var AllCategories = []Category{CategoryVaronil, CategoryFemenil, CategoryMixto}

func (c Category) Valid() bool {
	switch c {
	case CategoryVaronil, CategoryFemenil, CategoryMixto:
		return true
	}
	return false
}

type ParticipantStatus string

const (
	ParticipantActive     ParticipantStatus = "active"
	ParticipantEliminated ParticipantStatus = "eliminated"
)

// Participant is an entrant in a category. Once matches reference a
// participant the row is never physically removed; elimination only
// flips the status.
type Participant struct {
	ID        int               `json:"id"`
	Name      string            `json:"name"`
	Alias     *string           `json:"alias,omitempty"`
	Category  Category          `json:"category"`
	Paid      bool              `json:"paid"`
	Status    ParticipantStatus `json:"status"`
	Seed      *int              `json:"seed,omitempty"`
	PhotoKey  *string           `json:"-"`
	PhotoURL  *string           `json:"photo_url,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Eligible reports whether the participant can be placed in a bracket.
func (p *Participant) Eligible() bool {
	return p.Paid && p.Status == ParticipantActive
}
