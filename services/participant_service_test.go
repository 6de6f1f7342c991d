package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-campos/wildbrowl/models"
)

func activeParticipant(id int, name string, category models.Category) *models.Participant {
	return &models.Participant{
		ID:       id,
		Name:     name,
		Category: category,
		Paid:     true,
		Status:   models.ParticipantActive,
	}
}

func TestParticipantRegister(t *testing.T) {
	repo := newFakeParticipantRepo()
	svc := NewParticipantService(repo, newFakeMatchRepo(), nil)

	p, err := svc.Register(context.Background(), RegisterParticipantInput{
		Name:     "  Carla Mendoza  ",
		Category: models.CategoryFemenil,
		Paid:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Carla Mendoza", p.Name, "name must be trimmed")
	assert.Equal(t, models.ParticipantActive, p.Status)
	assert.NotZero(t, p.ID)
}

func TestParticipantRegisterValidation(t *testing.T) {
	svc := NewParticipantService(newFakeParticipantRepo(), newFakeMatchRepo(), nil)

	_, err := svc.Register(context.Background(), RegisterParticipantInput{
		Name:     "   ",
		Category: models.CategoryVaronil,
	})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Register(context.Background(), RegisterParticipantInput{
		Name:     "Pepe",
		Category: "juvenil",
	})
	assert.ErrorIs(t, err, ErrCategoryInvalid)
}

func TestParticipantRegisterDuplicateName(t *testing.T) {
	repo := newFakeParticipantRepo(activeParticipant(1, "Ana", models.CategoryFemenil))
	svc := NewParticipantService(repo, newFakeMatchRepo(), nil)

	_, err := svc.Register(context.Background(), RegisterParticipantInput{
		Name:     "Ana",
		Category: models.CategoryFemenil,
	})
	assert.ErrorIs(t, err, ErrParticipantNameTaken)
}

func TestParticipantListEligible(t *testing.T) {
	unpaid := activeParticipant(2, "Beto", models.CategoryVaronil)
	unpaid.Paid = false
	eliminated := activeParticipant(3, "Chuy", models.CategoryVaronil)
	eliminated.Status = models.ParticipantEliminated

	repo := newFakeParticipantRepo(
		activeParticipant(1, "Alan", models.CategoryVaronil),
		unpaid,
		eliminated,
		activeParticipant(4, "Dora", models.CategoryFemenil),
	)
	svc := NewParticipantService(repo, newFakeMatchRepo(), nil)

	eligible, err := svc.ListEligible(context.Background(), models.CategoryVaronil)
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, "Alan", eligible[0].Name)
}

func TestParticipantDeleteWithMatchesConflicts(t *testing.T) {
	repo := newFakeParticipantRepo(activeParticipant(1, "Alan", models.CategoryVaronil))
	matchRepo := newFakeMatchRepo(&models.Match{
		Participant1ID: intPtr(1),
		Participant2ID: intPtr(2),
		Status:         models.MatchStatusScheduled,
	})
	svc := NewParticipantService(repo, matchRepo, nil)

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrParticipantHasMatches)
	assert.Empty(t, repo.deleted, "a referenced participant must not be removed")
}

func TestParticipantDelete(t *testing.T) {
	repo := newFakeParticipantRepo(activeParticipant(1, "Alan", models.CategoryVaronil))
	svc := NewParticipantService(repo, newFakeMatchRepo(), nil)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []int{1}, repo.deleted)

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestParticipantConfirmPayment(t *testing.T) {
	p := activeParticipant(1, "Alan", models.CategoryVaronil)
	p.Paid = false
	repo := newFakeParticipantRepo(p)
	svc := NewParticipantService(repo, newFakeMatchRepo(), nil)

	updated, err := svc.ConfirmPayment(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, updated.Paid)
}

func TestParticipantEliminate(t *testing.T) {
	repo := newFakeParticipantRepo(activeParticipant(1, "Alan", models.CategoryVaronil))
	svc := NewParticipantService(repo, newFakeMatchRepo(), nil)

	eliminated, err := svc.Eliminate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.ParticipantEliminated, eliminated.Status)

	_, err = svc.Eliminate(context.Background(), 2)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestParticipantUpdateStatusValidation(t *testing.T) {
	repo := newFakeParticipantRepo(activeParticipant(1, "Alan", models.CategoryVaronil))
	svc := NewParticipantService(repo, newFakeMatchRepo(), nil)

	bogus := models.ParticipantStatus("retired")
	_, err := svc.Update(context.Background(), 1, UpdateParticipantInput{Status: &bogus})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestParticipantUploadPhoto(t *testing.T) {
	oldKey := "participants/1/photo_1"
	p := activeParticipant(1, "Alan", models.CategoryVaronil)
	p.PhotoKey = &oldKey

	repo := newFakeParticipantRepo(p)
	uploader := newFakeUploader()
	svc := NewParticipantService(repo, newFakeMatchRepo(), uploader)

	updated, err := svc.UploadPhoto(context.Background(), 1, "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	require.NotNil(t, updated.PhotoKey)
	assert.NotEqual(t, oldKey, *updated.PhotoKey)
	require.NotNil(t, updated.PhotoURL)
	assert.Equal(t, "https://cdn.test/"+*updated.PhotoKey, *updated.PhotoURL)
	assert.Equal(t, []string{oldKey}, uploader.deleted, "the previous photo object is cleaned up")
}
