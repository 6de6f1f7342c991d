package services

import "errors"

// Sentinel errors shared across services and the HTTP mapping layer.
var (
	// Not found
	ErrParticipantNotFound = errors.New("participant not found")
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrMatchNotFound       = errors.New("match not found")

	// Validation and business rules
	ErrValidationFailed         = errors.New("validation failed")
	ErrNameRequired             = errors.New("name is required")
	ErrCategoryInvalid          = errors.New("category must be one of: varonil, femenil, mixto")
	ErrInsufficientParticipants = errors.New("at least 2 paid, active participants are required to generate a bracket")
	ErrInvalidMatchResult       = errors.New("invalid match result payload")
	ErrInvalidStatsAction       = errors.New("stats action must be one of: update, reset, delete")

	// Conflicts
	ErrParticipantHasMatches = errors.New("participant has recorded matches and cannot be deleted")
	ErrParticipantNameTaken  = errors.New("participant name is already registered in this category")
)
