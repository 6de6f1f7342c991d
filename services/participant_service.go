package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/r-campos/wildbrowl/models"
	"github.com/r-campos/wildbrowl/repositories"
	"github.com/r-campos/wildbrowl/storage"
)

type RegisterParticipantInput struct {
	Name     string          `json:"name"`
	Alias    *string         `json:"alias,omitempty"`
	Category models.Category `json:"category"`
	Paid     bool            `json:"paid"`
}

type UpdateParticipantInput struct {
	Name   *string                   `json:"name,omitempty"`
	Alias  *string                   `json:"alias,omitempty"`
	Paid   *bool                     `json:"paid,omitempty"`
	Status *models.ParticipantStatus `json:"status,omitempty"`
}

type ParticipantService interface {
	Register(ctx context.Context, input RegisterParticipantInput) (*models.Participant, error)
	GetByID(ctx context.Context, id int) (*models.Participant, error)
	List(ctx context.Context, filter repositories.ParticipantFilter) ([]*models.Participant, error)
	ListEligible(ctx context.Context, category models.Category) ([]*models.Participant, error)
	Update(ctx context.Context, id int, input UpdateParticipantInput) (*models.Participant, error)
	ConfirmPayment(ctx context.Context, id int) (*models.Participant, error)
	Eliminate(ctx context.Context, id int) (*models.Participant, error)
	Delete(ctx context.Context, id int) error
	UploadPhoto(ctx context.Context, id int, contentType string, photo io.Reader) (*models.Participant, error)
}

type participantService struct {
	participantRepo repositories.ParticipantRepository
	matchRepo       repositories.MatchRepository
	uploader        storage.FileUploader
}

func NewParticipantService(
	participantRepo repositories.ParticipantRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
) ParticipantService {
	return &participantService{
		participantRepo: participantRepo,
		matchRepo:       matchRepo,
		uploader:        uploader,
	}
}

func (s *participantService) Register(ctx context.Context, input RegisterParticipantInput) (*models.Participant, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: participant name", ErrNameRequired)
	}
	if !input.Category.Valid() {
		return nil, ErrCategoryInvalid
	}

	p := &models.Participant{
		Name:     input.Name,
		Alias:    input.Alias,
		Category: input.Category,
		Paid:     input.Paid,
		Status:   models.ParticipantActive,
	}
	if err := s.participantRepo.Create(ctx, p); err != nil {
		if errors.Is(err, repositories.ErrParticipantNameTaken) {
			return nil, ErrParticipantNameTaken
		}
		return nil, err
	}
	s.fillPhotoURL(p)
	return p, nil
}

func (s *participantService) GetByID(ctx context.Context, id int) (*models.Participant, error) {
	p, err := s.participantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	s.fillPhotoURL(p)
	return p, nil
}

func (s *participantService) List(ctx context.Context, filter repositories.ParticipantFilter) ([]*models.Participant, error) {
	if filter.Category != nil && !filter.Category.Valid() {
		return nil, ErrCategoryInvalid
	}
	participants, err := s.participantRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, p := range participants {
		s.fillPhotoURL(p)
	}
	return participants, nil
}

// ListEligible returns the paid, active entrants for a category: the
// roster the bracket generator consumes.
func (s *participantService) ListEligible(ctx context.Context, category models.Category) ([]*models.Participant, error) {
	if !category.Valid() {
		return nil, ErrCategoryInvalid
	}
	paid := true
	active := models.ParticipantActive
	return s.List(ctx, repositories.ParticipantFilter{
		Category: &category,
		Paid:     &paid,
		Status:   &active,
	})
}

func (s *participantService) Update(ctx context.Context, id int, input UpdateParticipantInput) (*models.Participant, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: participant name", ErrNameRequired)
		}
		p.Name = name
	}
	if input.Alias != nil {
		p.Alias = input.Alias
	}
	if input.Paid != nil {
		p.Paid = *input.Paid
	}
	if input.Status != nil {
		if *input.Status != models.ParticipantActive && *input.Status != models.ParticipantEliminated {
			return nil, fmt.Errorf("%w: unknown participant status %q", ErrValidationFailed, *input.Status)
		}
		p.Status = *input.Status
	}

	if err := s.participantRepo.Update(ctx, p); err != nil {
		switch {
		case errors.Is(err, repositories.ErrParticipantNotFound):
			return nil, ErrParticipantNotFound
		case errors.Is(err, repositories.ErrParticipantNameTaken):
			return nil, ErrParticipantNameTaken
		}
		return nil, err
	}
	return p, nil
}

func (s *participantService) ConfirmPayment(ctx context.Context, id int) (*models.Participant, error) {
	if err := s.participantRepo.UpdatePaid(ctx, id, true); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *participantService) Eliminate(ctx context.Context, id int) (*models.Participant, error) {
	if err := s.participantRepo.UpdateStatus(ctx, id, models.ParticipantEliminated); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete refuses to remove a participant that any stored match
// references; match history never cascades away.
func (s *participantService) Delete(ctx context.Context, id int) error {
	count, err := s.matchRepo.CountByParticipant(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrParticipantHasMatches
	}
	if err := s.participantRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrParticipantNotFound):
			return ErrParticipantNotFound
		case errors.Is(err, repositories.ErrParticipantReferenced):
			return ErrParticipantHasMatches
		}
		return err
	}
	return nil
}

func (s *participantService) UploadPhoto(ctx context.Context, id int, contentType string, photo io.Reader) (*models.Participant, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("participants/%d/photo_%d", p.ID, time.Now().UnixNano())
	result, err := s.uploader.Upload(ctx, key, contentType, photo)
	if err != nil {
		return nil, fmt.Errorf("failed to upload participant photo: %w", err)
	}

	oldKey := p.PhotoKey
	if err := s.participantRepo.UpdatePhotoKey(ctx, p.ID, &result.Key); err != nil {
		return nil, err
	}
	if oldKey != nil && *oldKey != result.Key {
		// Best effort; a stale object is not worth failing the request.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	p.PhotoKey = &result.Key
	s.fillPhotoURL(p)
	return p, nil
}

func (s *participantService) fillPhotoURL(p *models.Participant) {
	if s.uploader == nil || p.PhotoKey == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*p.PhotoKey); url != "" {
		p.PhotoURL = &url
	}
}
