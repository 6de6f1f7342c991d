package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/r-campos/wildbrowl/models"
)

var ErrBracketStatNotFound = errors.New("bracket stat not found")

// BracketStatRepository caches the derived per-participant projection.
// The cache is recomputable from the match ledger at any time, so every
// write here is an upsert and a full wipe is always safe.
type BracketStatRepository interface {
	Upsert(ctx context.Context, exec SQLExecutor, stat *models.BracketStat) error
	BatchUpsert(ctx context.Context, exec SQLExecutor, stats []*models.BracketStat) error
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.BracketStat, error)
	DeleteByParticipant(ctx context.Context, tournamentID, participantID int) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresBracketStatRepository struct {
	db *sql.DB
}

func NewPostgresBracketStatRepository(db *sql.DB) BracketStatRepository {
	return &postgresBracketStatRepository{db: db}
}

func (r *postgresBracketStatRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// A NULL bracket_position never clears a recorded one: the computed
// write-through carries no position, while generation records the bye
// participant's next round there.
const upsertStatQuery = `
	INSERT INTO bracket_stats
		(tournament_id, participant_id, seed, bracket_position, bracket_type, lives_remaining,
		 matches_played, matches_won, matches_lost, points_scored, points_against,
		 win_percentage, point_differential, ranking, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	ON CONFLICT (tournament_id, participant_id) DO UPDATE SET
		seed = EXCLUDED.seed,
		bracket_position = COALESCE(EXCLUDED.bracket_position, bracket_stats.bracket_position),
		bracket_type = EXCLUDED.bracket_type,
		lives_remaining = EXCLUDED.lives_remaining,
		matches_played = EXCLUDED.matches_played,
		matches_won = EXCLUDED.matches_won,
		matches_lost = EXCLUDED.matches_lost,
		points_scored = EXCLUDED.points_scored,
		points_against = EXCLUDED.points_against,
		win_percentage = EXCLUDED.win_percentage,
		point_differential = EXCLUDED.point_differential,
		ranking = EXCLUDED.ranking,
		updated_at = EXCLUDED.updated_at
	RETURNING id`

func (r *postgresBracketStatRepository) Upsert(ctx context.Context, exec SQLExecutor, stat *models.BracketStat) error {
	executor := r.getExecutor(exec)
	if stat.UpdatedAt.IsZero() {
		stat.UpdatedAt = time.Now()
	}
	err := executor.QueryRowContext(ctx, upsertStatQuery,
		stat.TournamentID, stat.ParticipantID, stat.Seed, stat.BracketPosition, stat.BracketType,
		stat.LivesRemaining, stat.MatchesPlayed, stat.MatchesWon, stat.MatchesLost,
		stat.PointsScored, stat.PointsAgainst, stat.WinPercentage, stat.PointDifferential,
		stat.Ranking, stat.UpdatedAt,
	).Scan(&stat.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert bracket stat for participant %d: %w", stat.ParticipantID, err)
	}
	return nil
}

func (r *postgresBracketStatRepository) BatchUpsert(ctx context.Context, exec SQLExecutor, stats []*models.BracketStat) error {
	for _, stat := range stats {
		if err := r.Upsert(ctx, exec, stat); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresBracketStatRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.BracketStat, error) {
	query := `
		SELECT id, tournament_id, participant_id, seed, bracket_position, bracket_type, lives_remaining,
		       matches_played, matches_won, matches_lost, points_scored, points_against,
		       win_percentage, point_differential, ranking, updated_at
		FROM bracket_stats
		WHERE tournament_id = $1
		ORDER BY ranking ASC, participant_id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bracket stats for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	stats := make([]*models.BracketStat, 0)
	for rows.Next() {
		var s models.BracketStat
		if scanErr := rows.Scan(
			&s.ID, &s.TournamentID, &s.ParticipantID, &s.Seed, &s.BracketPosition, &s.BracketType,
			&s.LivesRemaining, &s.MatchesPlayed, &s.MatchesWon, &s.MatchesLost,
			&s.PointsScored, &s.PointsAgainst, &s.WinPercentage, &s.PointDifferential,
			&s.Ranking, &s.UpdatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan bracket stat row: %w", scanErr)
		}
		stats = append(stats, &s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during bracket stat rows iteration: %w", err)
	}
	return stats, nil
}

func (r *postgresBracketStatRepository) DeleteByParticipant(ctx context.Context, tournamentID, participantID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM bracket_stats WHERE tournament_id = $1 AND participant_id = $2`,
		tournamentID, participantID)
	if err != nil {
		return fmt.Errorf("failed to delete bracket stat for participant %d: %w", participantID, err)
	}
	return checkAffectedRows(result, ErrBracketStatNotFound)
}

func (r *postgresBracketStatRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM bracket_stats WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete bracket stats for tournament %d: %w", tournamentID, err)
	}
	return nil
}
