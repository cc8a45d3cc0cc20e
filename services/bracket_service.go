package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Dosada05/league-brackets/brackets"
	"github.com/Dosada05/league-brackets/metrics"
	"github.com/Dosada05/league-brackets/models"
	"github.com/Dosada05/league-brackets/realtime"
	"github.com/Dosada05/league-brackets/repositories"
	"github.com/Dosada05/league-brackets/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Notifier pushes events to realtime subscribers of a season.
type Notifier interface {
	Publish(seasonID, messageType string, payload interface{})
}

type BracketGeneratedPayload struct {
	GenerationID uuid.UUID `json:"generationId"`
	SeasonID     string    `json:"seasonId"`
	LeagueID     *string   `json:"leagueId,omitempty"`
	BracketType  string    `json:"bracketType"`
	Created      int       `json:"created"`
	Expected     int       `json:"expected"`
	Success      bool      `json:"success"`
}

type BracketService interface {
	Preview(ctx context.Context, in BracketInput) (*PreviewResult, error)
	Generate(ctx context.Context, in BracketInput, actorID *int) (*GenerateResult, error)
	Stats(teamCount int, bracketType string) (brackets.BracketStats, error)
	GetBracket(ctx context.Context, seasonID string, leagueID *string) (*BracketView, error)
}

type BracketServiceConfig struct {
	// CommitTimeout bounds the inserts of one generation. Matches created
	// before it expires are kept.
	CommitTimeout time.Duration
	// StaleAfter lets a new run take over one stuck in progress for longer.
	StaleAfter time.Duration
}

type bracketService struct {
	matchRepo      repositories.MatchRepository
	generationRepo repositories.GenerationRepository
	uploader       storage.FileUploader
	notifier       Notifier
	metrics        metrics.Recorder
	logger         *slog.Logger
	cfg            BracketServiceConfig
	now            func() time.Time
}

func NewBracketService(
	matchRepo repositories.MatchRepository,
	generationRepo repositories.GenerationRepository,
	uploader storage.FileUploader,
	notifier Notifier,
	recorder metrics.Recorder,
	logger *slog.Logger,
	cfg BracketServiceConfig,
) BracketService {
	if cfg.CommitTimeout <= 0 {
		cfg.CommitTimeout = 30 * time.Second
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 10 * time.Minute
	}
	return &bracketService{
		matchRepo:      matchRepo,
		generationRepo: generationRepo,
		uploader:       uploader,
		notifier:       notifier,
		metrics:        recorder,
		logger:         logger.With(slog.String("service", "bracket")),
		cfg:            cfg,
		now:            time.Now,
	}
}

func (s *bracketService) Preview(ctx context.Context, in BracketInput) (*PreviewResult, error) {
	opts := in.Options()
	bracket, err := brackets.Generate(opts)
	s.metrics.PreviewServed(string(opts.BracketType), err == nil)
	if err != nil {
		return nil, s.generationError(opts, err)
	}

	return &PreviewResult{
		Matches:  NewMatchViews(bracket.Matches),
		Warnings: bracket.Warnings,
		Stats:    bracket.Stats,
	}, nil
}

// Generate validates the input, reserves the season/league slot and stores the
// bracket one match at a time. Supplied matches are stored verbatim instead of
// the computed ones; the expected count always comes from the bracket stats.
func (s *bracketService) Generate(ctx context.Context, in BracketInput, actorID *int) (*GenerateResult, error) {
	opts := in.Options()
	bracket, err := brackets.Generate(opts)
	if err != nil {
		return nil, s.generationError(opts, err)
	}

	matches := bracket.Matches
	expected := bracket.Stats.TotalMatches
	if len(in.Matches) > 0 {
		if len(in.Matches) > expected {
			return nil, fmt.Errorf("%w: %d matches supplied, bracket has %d", ErrInvalidMatches, len(in.Matches), expected)
		}
		if matches, err = toGeneratedMatches(in.Matches, opts); err != nil {
			return nil, err
		}
	}

	gen := &models.BracketGeneration{
		SeasonID:    opts.SeasonID,
		LeagueID:    opts.LeagueID,
		BracketType: string(opts.BracketType),
		Expected:    expected,
		CreatedBy:   actorID,
	}
	claim, err := s.generationRepo.Claim(ctx, gen, s.now().Add(-s.cfg.StaleAfter))
	if err != nil {
		if errors.Is(err, repositories.ErrGenerationExists) {
			return nil, ErrBracketAlreadyGenerated
		}
		return nil, fmt.Errorf("claim bracket generation: %w", err)
	}

	log := s.logger.With(
		slog.String("generation_id", claim.ID.String()),
		slog.String("season_id", opts.SeasonID),
		slog.String("league_id", derefString(opts.LeagueID)),
	)

	if claim.TakenOver {
		removed, err := s.matchRepo.DeleteByGeneration(ctx, nil, claim.ID)
		if err != nil {
			s.finish(ctx, log, claim.ID, models.GenerationFailed, 0, nil)
			return nil, fmt.Errorf("clear matches of previous run: %w", err)
		}
		log.Info("took over previous generation", slog.Int64("removed_matches", removed))
	}

	commitCtx, cancel := context.WithTimeout(ctx, s.cfg.CommitTimeout)
	defer cancel()

	started := s.now()
	commit := brackets.NewCommitter(&matchInserter{repo: s.matchRepo, generationID: claim.ID}).Commit(commitCtx, matches)
	s.metrics.CommitDuration(s.now().Sub(started))
	s.metrics.MatchesCommitted(commit.CreatedCount, len(commit.Errors))

	outcome := commit.Outcome(expected)
	s.metrics.GenerationFinished(string(opts.BracketType), string(outcome))

	res := &GenerateResult{
		Success:      outcome == brackets.OutcomeFull,
		Created:      commit.CreatedCount,
		Expected:     expected,
		MatchIDs:     commit.MatchIDs,
		Errors:       commit.Errors,
		Warnings:     append([]string{}, bracket.Warnings...),
		Message:      generateMessage(outcome, commit.CreatedCount, expected),
		GenerationID: claim.ID,
		Outcome:      outcome,
	}

	var archived *string
	if commit.CreatedCount > 0 {
		key, url, err := s.archive(ctx, claim.ID, opts, bracket.Stats, matches, commit, outcome)
		if err != nil {
			log.Warn("bracket archive failed", slog.Any("error", err))
			s.metrics.ArchiveFailed()
			res.Warnings = append(res.Warnings, "bracket snapshot could not be archived")
		} else if key != "" {
			archived = &key
			res.ArchiveURL = url
		}
	}

	s.finish(ctx, log, claim.ID, generationStatus(outcome), commit.CreatedCount, archived)

	if commit.CreatedCount > 0 {
		s.notifier.Publish(opts.SeasonID, realtime.MessageBracketGenerated, BracketGeneratedPayload{
			GenerationID: claim.ID,
			SeasonID:     opts.SeasonID,
			LeagueID:     opts.LeagueID,
			BracketType:  string(opts.BracketType),
			Created:      commit.CreatedCount,
			Expected:     expected,
			Success:      res.Success,
		})
	}

	log.Info("bracket generated",
		slog.String("outcome", string(outcome)),
		slog.Int("created", commit.CreatedCount),
		slog.Int("expected", expected),
		slog.Int("errors", len(commit.Errors)),
	)
	return res, nil
}

func (s *bracketService) Stats(teamCount int, bracketType string) (brackets.BracketStats, error) {
	bt, err := brackets.ParseBracketType(bracketType)
	if err != nil {
		return brackets.BracketStats{}, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if teamCount < 2 {
		return brackets.BracketStats{}, fmt.Errorf("%w: at least 2 teams are required, got %d", ErrValidationFailed, teamCount)
	}
	return brackets.CalculateStats(teamCount, bt), nil
}

func (s *bracketService) GetBracket(ctx context.Context, seasonID string, leagueID *string) (*BracketView, error) {
	leagueID = normalizeLeagueID(leagueID)
	view := &BracketView{}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		gen, err := s.generationRepo.GetLatest(gCtx, seasonID, leagueID)
		if err != nil {
			if errors.Is(err, repositories.ErrGenerationNotFound) {
				return ErrBracketNotFound
			}
			return fmt.Errorf("load bracket generation: %w", err)
		}
		view.Generation = gen
		return nil
	})

	g.Go(func() error {
		matches, err := s.matchRepo.ListBySeason(gCtx, seasonID, leagueID)
		if err != nil {
			return fmt.Errorf("load bracket matches: %w", err)
		}
		view.Matches = matches
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

// generationError passes validation failures through and marks anything else
// as a construction defect.
func (s *bracketService) generationError(opts brackets.Options, err error) error {
	var verr *brackets.ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	s.logger.Error("bracket construction failed",
		slog.String("season_id", opts.SeasonID),
		slog.String("bracket_type", string(opts.BracketType)),
		slog.Int("teams", len(opts.TeamIDs)),
		slog.Any("error", err),
	)
	return err
}

func (s *bracketService) finish(ctx context.Context, log *slog.Logger, id uuid.UUID, status models.GenerationStatus, created int, archived *string) {
	// the request may already be cancelled; the claim row must still be closed
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.generationRepo.Finish(ctx, id, status, created, archived); err != nil {
		log.Error("failed to record generation result", slog.String("status", string(status)), slog.Any("error", err))
	}
}

func (s *bracketService) archive(
	ctx context.Context,
	id uuid.UUID,
	opts brackets.Options,
	stats brackets.BracketStats,
	matches []brackets.GeneratedMatch,
	commit brackets.CommitResult,
	outcome brackets.Outcome,
) (key, url string, err error) {
	snapshot := bracketSnapshot{
		GenerationID: id,
		SeasonID:     opts.SeasonID,
		LeagueID:     opts.LeagueID,
		BracketType:  opts.BracketType,
		TeamIDs:      opts.TeamIDs,
		Stats:        stats,
		Matches:      NewMatchViews(matches),
		MatchIDs:     commit.MatchIDs,
		Outcome:      outcome,
		GeneratedAt:  s.now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(snapshot)
	if err != nil {
		return "", "", fmt.Errorf("encode snapshot: %w", err)
	}

	key = archiveKey(opts.SeasonID, opts.LeagueID, id)
	uploaded, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	// An uploader without a public location stored nothing.
	if uploaded.Location == "" {
		return "", "", nil
	}
	return key, uploaded.Location, nil
}

func generateMessage(outcome brackets.Outcome, created, expected int) string {
	switch outcome {
	case brackets.OutcomeFull:
		return fmt.Sprintf("Bracket generated: %d matches created", created)
	case brackets.OutcomePartial:
		return fmt.Sprintf("Bracket partially generated: %d of %d matches created", created, expected)
	default:
		return "Bracket generation failed: no matches were created"
	}
}

func generationStatus(outcome brackets.Outcome) models.GenerationStatus {
	switch outcome {
	case brackets.OutcomeFull:
		return models.GenerationCompleted
	case brackets.OutcomePartial:
		return models.GenerationPartial
	default:
		return models.GenerationFailed
	}
}

// matchInserter stores generated matches under one generation.
type matchInserter struct {
	repo         repositories.MatchRepository
	generationID uuid.UUID
}

func (m *matchInserter) InsertMatch(ctx context.Context, gm brackets.GeneratedMatch) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	match := toMatchModel(gm, m.generationID)
	if err := m.repo.Create(ctx, nil, match); err != nil {
		return "", err
	}
	return strconv.Itoa(match.ID), nil
}
