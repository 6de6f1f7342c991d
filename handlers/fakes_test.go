package handlers

import (
	"context"
	"io"

	"github.com/r-campos/wildbrowl/models"
	"github.com/r-campos/wildbrowl/repositories"
	"github.com/r-campos/wildbrowl/services"
)

// Fake services recording the arguments handlers pass down and
// returning canned results.

type fakeBracketService struct {
	generateResult *services.BracketGenerationResult
	generateErr    error
	view           *services.BracketView
	viewErr        error

	gotCategory     models.Category
	gotName         string
	gotTournamentID *int
}

func (f *fakeBracketService) Generate(_ context.Context, category models.Category, name string) (*services.BracketGenerationResult, error) {
	f.gotCategory = category
	f.gotName = name
	return f.generateResult, f.generateErr
}

func (f *fakeBracketService) GetBracketView(_ context.Context, tournamentID *int) (*services.BracketView, error) {
	f.gotTournamentID = tournamentID
	return f.view, f.viewErr
}

type fakeStatsService struct {
	rankings    []*models.BracketStat
	rankingsErr error
	overview    *services.StatsOverview
	overviewErr error
	updateErr   error
	resetErr    error
	deleteErr   error

	gotCategory      models.Category
	gotParticipantID int
	resetCalled      bool
	deleteCalled     bool
}

func (f *fakeStatsService) GetCategoryRankings(_ context.Context, category models.Category, _ *int) ([]*models.BracketStat, error) {
	f.gotCategory = category
	return f.rankings, f.rankingsErr
}

func (f *fakeStatsService) GetOverview(_ context.Context, _ *int) (*services.StatsOverview, error) {
	return f.overview, f.overviewErr
}

func (f *fakeStatsService) UpdateStat(_ context.Context, participantID int, _ *int, stat *models.BracketStat) (*models.BracketStat, error) {
	f.gotParticipantID = participantID
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return stat, nil
}

func (f *fakeStatsService) Reset(_ context.Context, category models.Category) error {
	f.resetCalled = true
	f.gotCategory = category
	return f.resetErr
}

func (f *fakeStatsService) DeleteStat(_ context.Context, participantID int, _ *int) error {
	f.deleteCalled = true
	f.gotParticipantID = participantID
	return f.deleteErr
}

type fakeMatchService struct {
	match     *models.Match
	matches   []*models.Match
	err       error
	gotID     int
	gotInput  services.MatchResultInput
	gotFilter repositories.MatchFilter
}

func (f *fakeMatchService) GetByID(_ context.Context, id int) (*models.Match, error) {
	f.gotID = id
	return f.match, f.err
}

func (f *fakeMatchService) List(_ context.Context, filter repositories.MatchFilter) ([]*models.Match, error) {
	f.gotFilter = filter
	return f.matches, f.err
}

func (f *fakeMatchService) UpdateResult(_ context.Context, id int, input services.MatchResultInput) (*models.Match, error) {
	f.gotID = id
	f.gotInput = input
	return f.match, f.err
}

type fakeParticipantService struct {
	participant  *models.Participant
	participants []*models.Participant
	err          error
	deleteErr    error

	gotID        int
	deleteCalled bool
}

func (f *fakeParticipantService) Register(_ context.Context, _ services.RegisterParticipantInput) (*models.Participant, error) {
	return f.participant, f.err
}

func (f *fakeParticipantService) GetByID(_ context.Context, id int) (*models.Participant, error) {
	f.gotID = id
	return f.participant, f.err
}

func (f *fakeParticipantService) List(_ context.Context, _ repositories.ParticipantFilter) ([]*models.Participant, error) {
	return f.participants, f.err
}

func (f *fakeParticipantService) ListEligible(_ context.Context, _ models.Category) ([]*models.Participant, error) {
	return f.participants, f.err
}

func (f *fakeParticipantService) Update(_ context.Context, id int, _ services.UpdateParticipantInput) (*models.Participant, error) {
	f.gotID = id
	return f.participant, f.err
}

func (f *fakeParticipantService) ConfirmPayment(_ context.Context, id int) (*models.Participant, error) {
	f.gotID = id
	return f.participant, f.err
}

func (f *fakeParticipantService) Eliminate(_ context.Context, id int) (*models.Participant, error) {
	f.gotID = id
	return f.participant, f.err
}

func (f *fakeParticipantService) Delete(_ context.Context, id int) error {
	f.deleteCalled = true
	f.gotID = id
	return f.deleteErr
}

func (f *fakeParticipantService) UploadPhoto(_ context.Context, id int, _ string, _ io.Reader) (*models.Participant, error) {
	f.gotID = id
	return f.participant, f.err
}
