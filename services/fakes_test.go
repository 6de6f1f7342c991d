package services

import (
	"context"
	"database/sql"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/r-campos/wildbrowl/models"
	"github.com/r-campos/wildbrowl/repositories"
	"github.com/r-campos/wildbrowl/storage"
)

func intPtr(v int) *int { return &v }

// In-memory repository fakes backing the service tests.

type fakeParticipantRepo struct {
	mu           sync.Mutex
	nextID       int
	participants map[int]*models.Participant
	deleted      []int
}

func newFakeParticipantRepo(participants ...*models.Participant) *fakeParticipantRepo {
	r := &fakeParticipantRepo{participants: make(map[int]*models.Participant)}
	for _, p := range participants {
		if p.ID == 0 {
			r.nextID++
			p.ID = r.nextID
		} else if p.ID > r.nextID {
			r.nextID = p.ID
		}
		r.participants[p.ID] = p
	}
	return r
}

func (r *fakeParticipantRepo) Create(_ context.Context, p *models.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.participants {
		if existing.Name == p.Name && existing.Category == p.Category {
			return repositories.ErrParticipantNameTaken
		}
	}
	r.nextID++
	p.ID = r.nextID
	r.participants[p.ID] = p
	return nil
}

func (r *fakeParticipantRepo) GetByID(_ context.Context, id int) (*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return nil, repositories.ErrParticipantNotFound
	}
	return p, nil
}

func (r *fakeParticipantRepo) List(_ context.Context, filter repositories.ParticipantFilter) ([]*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Participant, 0, len(r.participants))
	for id := 1; id <= r.nextID; id++ {
		p, ok := r.participants[id]
		if !ok {
			continue
		}
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		if filter.Paid != nil && p.Paid != *filter.Paid {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeParticipantRepo) Update(_ context.Context, p *models.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.participants[p.ID]; !ok {
		return repositories.ErrParticipantNotFound
	}
	r.participants[p.ID] = p
	return nil
}

func (r *fakeParticipantRepo) UpdatePaid(_ context.Context, id int, paid bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return repositories.ErrParticipantNotFound
	}
	p.Paid = paid
	return nil
}

func (r *fakeParticipantRepo) UpdateStatus(_ context.Context, id int, status models.ParticipantStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return repositories.ErrParticipantNotFound
	}
	p.Status = status
	return nil
}

func (r *fakeParticipantRepo) UpdateSeed(_ context.Context, _ repositories.SQLExecutor, id int, seed int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return repositories.ErrParticipantNotFound
	}
	p.Seed = &seed
	return nil
}

func (r *fakeParticipantRepo) UpdatePhotoKey(_ context.Context, id int, photoKey *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return repositories.ErrParticipantNotFound
	}
	p.PhotoKey = photoKey
	return nil
}

func (r *fakeParticipantRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.participants[id]; !ok {
		return repositories.ErrParticipantNotFound
	}
	delete(r.participants, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	nextID  int
	matches []*models.Match
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{}
	for _, m := range matches {
		r.nextID++
		if m.ID == 0 {
			m.ID = r.nextID
		}
		r.matches = append(r.matches, m)
	}
	return r
}

func (r *fakeMatchRepo) CreateBatch(_ context.Context, _ repositories.SQLExecutor, matches []*models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range matches {
		r.nextID++
		m.ID = r.nextID
		r.matches = append(r.matches, m)
	}
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) List(_ context.Context, filter repositories.MatchFilter) ([]*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Match, 0, len(r.matches))
	for _, m := range r.matches {
		if filter.TournamentID != nil && m.TournamentID != *filter.TournamentID {
			continue
		}
		if filter.Category != nil && m.Category != *filter.Category {
			continue
		}
		if filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMatchRepo) UpdateResult(_ context.Context, id int, score1, score2 int, winnerID *int, status models.MatchStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.ID == id {
			m.Score1 = score1
			m.Score2 = score2
			m.WinnerID = winnerID
			m.Status = status
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) CountByParticipant(_ context.Context, participantID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, m := range r.matches {
		if m.Involves(participantID) {
			count++
		}
	}
	return count, nil
}

type statKey struct {
	tournamentID  int
	participantID int
}

type fakeStatRepo struct {
	mu      sync.Mutex
	stats   map[statKey]*models.BracketStat
	upserts int
}

func newFakeStatRepo() *fakeStatRepo {
	return &fakeStatRepo{stats: make(map[statKey]*models.BracketStat)}
}

func (r *fakeStatRepo) Upsert(_ context.Context, _ repositories.SQLExecutor, stat *models.BracketStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := statKey{stat.TournamentID, stat.ParticipantID}
	// Same contract as the SQL upsert: a nil position never clears a
	// recorded one.
	if existing, ok := r.stats[key]; ok && stat.BracketPosition == nil {
		stat.BracketPosition = existing.BracketPosition
	}
	r.stats[key] = stat
	r.upserts++
	return nil
}

func (r *fakeStatRepo) BatchUpsert(ctx context.Context, exec repositories.SQLExecutor, stats []*models.BracketStat) error {
	for _, stat := range stats {
		if err := r.Upsert(ctx, exec, stat); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeStatRepo) ListByTournament(_ context.Context, tournamentID int) ([]*models.BracketStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.BracketStat, 0)
	for key, stat := range r.stats {
		if key.tournamentID == tournamentID {
			out = append(out, stat)
		}
	}
	return out, nil
}

func (r *fakeStatRepo) DeleteByParticipant(_ context.Context, tournamentID, participantID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := statKey{tournamentID, participantID}
	if _, ok := r.stats[key]; !ok {
		return repositories.ErrBracketStatNotFound
	}
	delete(r.stats, key)
	return nil
}

func (r *fakeStatRepo) DeleteByTournament(_ context.Context, _ repositories.SQLExecutor, tournamentID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.stats {
		if key.tournamentID == tournamentID {
			delete(r.stats, key)
		}
	}
	return nil
}

type fakeTournamentRepo struct {
	mu          sync.Mutex
	nextID      int
	tournaments []*models.Tournament
}

func newFakeTournamentRepo(tournaments ...*models.Tournament) *fakeTournamentRepo {
	r := &fakeTournamentRepo{}
	for _, t := range tournaments {
		r.nextID++
		if t.ID == 0 {
			t.ID = r.nextID
		}
		r.tournaments = append(r.tournaments, t)
	}
	return r
}

func (r *fakeTournamentRepo) Create(_ context.Context, _ repositories.SQLExecutor, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	t.ID = r.nextID
	r.tournaments = append(r.tournaments, t)
	return nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tournaments {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, repositories.ErrTournamentNotFound
}

func (r *fakeTournamentRepo) GetByPublicID(_ context.Context, publicID uuid.UUID) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tournaments {
		if t.PublicID == publicID {
			return t, nil
		}
	}
	return nil, repositories.ErrTournamentNotFound
}

func (r *fakeTournamentRepo) GetLatestByCategory(_ context.Context, category models.Category) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.tournaments) - 1; i >= 0; i-- {
		if r.tournaments[i].Category == category {
			return r.tournaments[i], nil
		}
	}
	return nil, repositories.ErrTournamentNotFound
}

func (r *fakeTournamentRepo) List(_ context.Context) ([]*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.Tournament(nil), r.tournaments...), nil
}

func (r *fakeTournamentRepo) UpdateStatus(_ context.Context, id int, status models.TournamentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tournaments {
		if t.ID == id {
			t.Status = status
			return nil
		}
	}
	return repositories.ErrTournamentNotFound
}

// fakeTx satisfies Tx; the fake repositories never touch the executor,
// so the SQLExecutor methods are stubs.
type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = t.commitErr == nil
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeTxBeginner struct {
	tx       *fakeTx
	beginErr error
}

func newFakeTxBeginner() *fakeTxBeginner {
	return &fakeTxBeginner{tx: &fakeTx{}}
}

func (b *fakeTxBeginner) BeginTx(context.Context, *sql.TxOptions) (Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

type fakeUploader struct {
	mu       sync.Mutex
	uploaded map[string][]byte
	deleted  []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploaded: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, reader io.Reader) (*storage.UploadResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.uploaded[key] = data
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.uploaded, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}
