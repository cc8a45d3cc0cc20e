package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Dosada05/league-brackets/models"
	"github.com/google/uuid"
)

var (
	ErrGenerationNotFound = errors.New("bracket generation not found")
	ErrGenerationExists   = errors.New("bracket already generated or in progress")
)

// ClaimResult is returned by a successful claim. TakenOver is set when an
// earlier partial, failed or stale run was replaced; its matches still exist
// under the same generation id.
type ClaimResult struct {
	ID        uuid.UUID
	TakenOver bool
	CreatedAt time.Time
}

type GenerationRepository interface {
	Claim(ctx context.Context, gen *models.BracketGeneration, staleBefore time.Time) (*ClaimResult, error)
	Finish(ctx context.Context, id uuid.UUID, status models.GenerationStatus, created int, archiveKey *string) error
	GetLatest(ctx context.Context, seasonID string, leagueID *string) (*models.BracketGeneration, error)
}

type postgresGenerationRepository struct {
	db *sql.DB
}

func NewPostgresGenerationRepository(db *sql.DB) GenerationRepository {
	return &postgresGenerationRepository{db: db}
}

// Claim reserves the (season, league) slot for a new generation in a single
// statement. A completed run or one still in progress since staleBefore
// leaves no row to return and yields ErrGenerationExists.
func (r *postgresGenerationRepository) Claim(ctx context.Context, gen *models.BracketGeneration, staleBefore time.Time) (*ClaimResult, error) {
	query := `
		INSERT INTO bracket_generations
			(id, season_id, league_id, league_key, bracket_type, status, expected, created, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8)
		ON CONFLICT ON CONSTRAINT bracket_generations_season_league_key DO UPDATE
		SET bracket_type = EXCLUDED.bracket_type,
		    status = EXCLUDED.status,
		    expected = EXCLUDED.expected,
		    created = 0,
		    archive_key = NULL,
		    created_by = EXCLUDED.created_by,
		    updated_at = NOW()
		WHERE bracket_generations.status IN ($9, $10)
		   OR (bracket_generations.status = $6 AND bracket_generations.updated_at < $11)
		RETURNING id, created_at`

	if gen.ID == uuid.Nil {
		gen.ID = uuid.New()
	}
	gen.Status = models.GenerationInProgress

	res := &ClaimResult{}
	err := r.db.QueryRowContext(ctx, query,
		gen.ID,
		gen.SeasonID,
		gen.LeagueID,
		leagueKey(gen.LeagueID),
		gen.BracketType,
		gen.Status,
		gen.Expected,
		gen.CreatedBy,
		models.GenerationPartial,
		models.GenerationFailed,
		staleBefore,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGenerationExists
		}
		return nil, err
	}

	res.TakenOver = res.ID != gen.ID
	gen.ID = res.ID
	gen.CreatedAt = res.CreatedAt
	return res, nil
}

func (r *postgresGenerationRepository) Finish(ctx context.Context, id uuid.UUID, status models.GenerationStatus, created int, archiveKey *string) error {
	query := `
		UPDATE bracket_generations
		SET status = $1, created = $2, archive_key = COALESCE($3, archive_key), updated_at = NOW()
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, status, created, archiveKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGenerationNotFound)
}

func (r *postgresGenerationRepository) GetLatest(ctx context.Context, seasonID string, leagueID *string) (*models.BracketGeneration, error) {
	query := `
		SELECT id, season_id, league_id, bracket_type, status, expected, created, archive_key, created_by, created_at, updated_at
		FROM bracket_generations
		WHERE season_id = $1 AND league_key = $2`

	gen := &models.BracketGeneration{}
	err := r.db.QueryRowContext(ctx, query, seasonID, leagueKey(leagueID)).Scan(
		&gen.ID,
		&gen.SeasonID,
		&gen.LeagueID,
		&gen.BracketType,
		&gen.Status,
		&gen.Expected,
		&gen.Created,
		&gen.ArchiveKey,
		&gen.CreatedBy,
		&gen.CreatedAt,
		&gen.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGenerationNotFound
		}
		return nil, err
	}
	return gen, nil
}
