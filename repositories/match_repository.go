package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/Dosada05/league-brackets/models"
	"github.com/google/uuid"
)

var (
	ErrMatchGenerationInvalid = errors.New("match generation conflict or invalid")
	ErrMatchDuplicateUID      = errors.New("match already exists in this generation")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	ListBySeason(ctx context.Context, seasonID string, leagueID *string) ([]*models.Match, error)
	ListByGeneration(ctx context.Context, generationID uuid.UUID) ([]*models.Match, error)
	DeleteByGeneration(ctx context.Context, exec SQLExecutor, generationID uuid.UUID) (int64, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `id, season_id, league_id, generation_id, bracket_match_uid, bracket_side, stage,
		       round, order_in_round, team1_id, team2_id, team1_source, team2_source, match_date, status, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches
			(season_id, league_id, generation_id, bracket_match_uid, bracket_side, stage,
			 round, order_in_round, team1_id, team2_id, team1_source, team2_source, match_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at`

	if match.Status == "" {
		match.Status = models.StatusScheduled
	}

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		match.SeasonID,
		match.LeagueID,
		match.GenerationID,
		match.BracketMatchUID,
		match.BracketSide,
		match.Stage,
		match.Round,
		match.OrderInRound,
		match.Team1ID,
		match.Team2ID,
		match.Team1Source,
		match.Team2Source,
		match.MatchDate,
		match.Status,
	).Scan(&match.ID, &match.CreatedAt)

	return handleMatchError(err)
}

func (r *postgresMatchRepository) ListBySeason(ctx context.Context, seasonID string, leagueID *string) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + `
		FROM matches
		WHERE season_id = $1`)

	args := []interface{}{seasonID}
	if leagueID != nil {
		queryBuilder.WriteString(" AND league_id = $")
		queryBuilder.WriteString(strconv.Itoa(len(args) + 1))
		args = append(args, *leagueID)
	} else {
		queryBuilder.WriteString(" AND league_id IS NULL")
	}
	queryBuilder.WriteString(" ORDER BY match_date ASC, id ASC")

	return r.list(ctx, queryBuilder.String(), args...)
}

func (r *postgresMatchRepository) ListByGeneration(ctx context.Context, generationID uuid.UUID) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + `
		FROM matches
		WHERE generation_id = $1
		ORDER BY id ASC`
	return r.list(ctx, query, generationID)
}

// DeleteByGeneration removes the matches of a generation that is being
// taken over by a retry.
func (r *postgresMatchRepository) DeleteByGeneration(ctx context.Context, exec SQLExecutor, generationID uuid.UUID) (int64, error) {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM matches WHERE generation_id = $1`, generationID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *postgresMatchRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var match models.Match
		if scanErr := rows.Scan(
			&match.ID,
			&match.SeasonID,
			&match.LeagueID,
			&match.GenerationID,
			&match.BracketMatchUID,
			&match.BracketSide,
			&match.Stage,
			&match.Round,
			&match.OrderInRound,
			&match.Team1ID,
			&match.Team2ID,
			&match.Team1Source,
			&match.Team2Source,
			&match.MatchDate,
			&match.Status,
			&match.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, &match)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := asPQError(err); ok {
		switch {
		case pqErr.Code == pqForeignKeyViolation && pqErr.Constraint == "matches_generation_id_fkey":
			return ErrMatchGenerationInvalid
		case pqErr.Code == pqUniqueViolation && pqErr.Constraint == "matches_generation_uid_key":
			return ErrMatchDuplicateUID
		}
	}
	return err
}
