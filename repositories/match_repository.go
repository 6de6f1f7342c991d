package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/r-campos/wildbrowl/models"
)

var (
	ErrMatchNotFound           = errors.New("match not found")
	ErrMatchNumberConflict     = errors.New("match number already used in this round and bracket")
	ErrMatchParticipantInvalid = errors.New("match references an unknown participant")
	ErrMatchTournamentInvalid  = errors.New("match references an unknown tournament")
)

type MatchFilter struct {
	TournamentID *int
	Category     *models.Category
	Status       *models.MatchStatus
}

type MatchRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter MatchFilter) ([]*models.Match, error)
	UpdateResult(ctx context.Context, id int, score1, score2 int, winnerID *int, status models.MatchStatus) error
	CountByParticipant(ctx context.Context, participantID int) (int, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}

	query := `
		INSERT INTO matches
			(tournament_id, category, participant1_id, participant2_id, round,
			 bracket_type, match_number, score1, score2, status, winner_id, elimination_match)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`

	for _, m := range matches {
		err := executor.QueryRowContext(ctx, query,
			m.TournamentID,
			m.Category,
			m.Participant1ID,
			m.Participant2ID,
			m.Round,
			m.BracketType,
			m.MatchNumber,
			m.Score1,
			m.Score2,
			m.Status,
			m.WinnerID,
			m.EliminationMatch,
		).Scan(&m.ID, &m.CreatedAt)
		if err != nil {
			return r.mapMatchError(err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) scanMatch(rowScanner interface {
	Scan(dest ...interface{}) error
}) (*models.Match, error) {
	var m models.Match
	err := rowScanner.Scan(
		&m.ID,
		&m.TournamentID,
		&m.Category,
		&m.Participant1ID,
		&m.Participant2ID,
		&m.Round,
		&m.BracketType,
		&m.MatchNumber,
		&m.Score1,
		&m.Score2,
		&m.Status,
		&m.WinnerID,
		&m.EliminationMatch,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	return &m, nil
}

const matchColumns = `id, tournament_id, category, participant1_id, participant2_id, round,
	bracket_type, match_number, score1, score2, status, winner_id, elimination_match, created_at`

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) List(ctx context.Context, filter MatchFilter) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE 1=1`)

	args := make([]interface{}, 0, 3)
	placeholder := 1

	if filter.TournamentID != nil {
		queryBuilder.WriteString(" AND tournament_id = $")
		queryBuilder.WriteString(strconv.Itoa(placeholder))
		args = append(args, *filter.TournamentID)
		placeholder++
	}
	if filter.Category != nil {
		queryBuilder.WriteString(" AND category = $")
		queryBuilder.WriteString(strconv.Itoa(placeholder))
		args = append(args, *filter.Category)
		placeholder++
	}
	if filter.Status != nil {
		queryBuilder.WriteString(" AND status = $")
		queryBuilder.WriteString(strconv.Itoa(placeholder))
		args = append(args, *filter.Status)
	}

	// id keeps ledger order stable inside a round.
	queryBuilder.WriteString(" ORDER BY created_at ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, scanErr := r.scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, id int, score1, score2 int, winnerID *int, status models.MatchStatus) error {
	query := `
		UPDATE matches
		SET score1 = $1, score2 = $2, winner_id = $3, status = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, score1, score2, winnerID, status, id)
	if err != nil {
		return r.mapMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) CountByParticipant(ctx context.Context, participantID int) (int, error) {
	query := `SELECT COUNT(*) FROM matches WHERE participant1_id = $1 OR participant2_id = $1 OR winner_id = $1`
	var count int
	if err := r.db.QueryRowContext(ctx, query, participantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches for participant %d: %w", participantID, err)
	}
	return count, nil
}

func (r *postgresMatchRepository) mapMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "matches_round_bracket_number_key" {
				return ErrMatchNumberConflict
			}
		case "23503":
			switch pqErr.Constraint {
			case "matches_tournament_id_fkey":
				return ErrMatchTournamentInvalid
			case "matches_participant1_id_fkey", "matches_participant2_id_fkey", "matches_winner_id_fkey":
				return ErrMatchParticipantInvalid
			}
		}
	}
	return err
}
