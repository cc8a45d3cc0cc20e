package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/league-brackets/models"
	"github.com/Dosada05/league-brackets/repositories"
	"github.com/Dosada05/league-brackets/storage"
	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type FakeMatchRepo struct {
	mu      sync.Mutex
	created []*models.Match
	nextID  int

	CreateFunc             func(ctx context.Context, call int, match *models.Match) error
	ListBySeasonFunc       func(ctx context.Context, seasonID string, leagueID *string) ([]*models.Match, error)
	DeleteByGenerationFunc func(ctx context.Context, generationID uuid.UUID) (int64, error)
}

func (f *FakeMatchRepo) Create(ctx context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := len(f.created) + 1
	f.created = append(f.created, match)
	if f.CreateFunc != nil {
		if err := f.CreateFunc(ctx, call, match); err != nil {
			return err
		}
	}
	f.nextID++
	match.ID = f.nextID
	return nil
}

func (f *FakeMatchRepo) ListBySeason(ctx context.Context, seasonID string, leagueID *string) ([]*models.Match, error) {
	if f.ListBySeasonFunc != nil {
		return f.ListBySeasonFunc(ctx, seasonID, leagueID)
	}
	return []*models.Match{}, nil
}

func (f *FakeMatchRepo) ListByGeneration(context.Context, uuid.UUID) ([]*models.Match, error) {
	return []*models.Match{}, nil
}

func (f *FakeMatchRepo) DeleteByGeneration(ctx context.Context, _ repositories.SQLExecutor, generationID uuid.UUID) (int64, error) {
	if f.DeleteByGenerationFunc != nil {
		return f.DeleteByGenerationFunc(ctx, generationID)
	}
	return 0, nil
}

// Attempts returns every match passed to Create, failed ones included.
func (f *FakeMatchRepo) Attempts() []*models.Match {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.Match(nil), f.created...)
}

type finishCall struct {
	ID         uuid.UUID
	Status     models.GenerationStatus
	Created    int
	ArchiveKey *string
}

type FakeGenerationRepo struct {
	mu       sync.Mutex
	claims   []*models.BracketGeneration
	finishes []finishCall

	ClaimFunc     func(ctx context.Context, gen *models.BracketGeneration, staleBefore time.Time) (*repositories.ClaimResult, error)
	FinishFunc    func(ctx context.Context, id uuid.UUID, status models.GenerationStatus) error
	GetLatestFunc func(ctx context.Context, seasonID string, leagueID *string) (*models.BracketGeneration, error)
}

func (f *FakeGenerationRepo) Claim(ctx context.Context, gen *models.BracketGeneration, staleBefore time.Time) (*repositories.ClaimResult, error) {
	f.mu.Lock()
	f.claims = append(f.claims, gen)
	f.mu.Unlock()
	if f.ClaimFunc != nil {
		return f.ClaimFunc(ctx, gen, staleBefore)
	}
	if gen.ID == uuid.Nil {
		gen.ID = uuid.New()
	}
	return &repositories.ClaimResult{ID: gen.ID}, nil
}

func (f *FakeGenerationRepo) Finish(ctx context.Context, id uuid.UUID, status models.GenerationStatus, created int, archiveKey *string) error {
	f.mu.Lock()
	f.finishes = append(f.finishes, finishCall{ID: id, Status: status, Created: created, ArchiveKey: archiveKey})
	f.mu.Unlock()
	if f.FinishFunc != nil {
		return f.FinishFunc(ctx, id, status)
	}
	return nil
}

func (f *FakeGenerationRepo) GetLatest(ctx context.Context, seasonID string, leagueID *string) (*models.BracketGeneration, error) {
	if f.GetLatestFunc != nil {
		return f.GetLatestFunc(ctx, seasonID, leagueID)
	}
	return nil, repositories.ErrGenerationNotFound
}

type FakeUploader struct {
	storage.NoopUploader
	Keys []string
	Err  error
}

func (f *FakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.Keys = append(f.Keys, key)
	if _, err := io.ReadAll(reader); err != nil {
		return nil, err
	}
	return &storage.UploadResult{Key: key, Location: "https://cdn.example.com/" + key}, nil
}

type published struct {
	SeasonID string
	Type     string
	Payload  interface{}
}

type FakeNotifier struct {
	mu   sync.Mutex
	Sent []published
}

func (f *FakeNotifier) Publish(seasonID, messageType string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, published{SeasonID: seasonID, Type: messageType, Payload: payload})
}

var errInsertFailed = errors.New("insert failed")
