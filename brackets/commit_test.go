package brackets

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inserterFunc func(ctx context.Context, m GeneratedMatch) (string, error)

func (f inserterFunc) InsertMatch(ctx context.Context, m GeneratedMatch) (string, error) {
	return f(ctx, m)
}

func failingOn(call int) inserterFunc {
	n := 0
	return func(_ context.Context, m GeneratedMatch) (string, error) {
		n++
		if n == call {
			return "", errors.New("connection reset")
		}
		return fmt.Sprintf("db-%d", n), nil
	}
}

func TestCommit_SeventhOfTenFails(t *testing.T) {
	b, err := Generate(validOptions(6, BracketDouble))
	require.NoError(t, err)
	require.Len(t, b.Matches, 10)

	res := NewCommitter(failingOn(7)).Commit(context.Background(), b.Matches)

	assert.Equal(t, 9, res.CreatedCount)
	assert.Equal(t, []string{"db-1", "db-2", "db-3", "db-4", "db-5", "db-6", "db-8", "db-9", "db-10"}, res.MatchIDs)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], b.Matches[6].ID)
	assert.Contains(t, res.Errors[0], "connection reset")
	assert.Equal(t, OutcomePartial, res.Outcome(b.Stats.TotalMatches))

	require.Len(t, res.Records, 10)
	assert.False(t, res.Records[6].OK())
	assert.Empty(t, res.Records[6].ID)
	assert.True(t, res.Records[7].OK())
}

func TestCommit_Outcomes(t *testing.T) {
	b, err := Generate(validOptions(4, BracketSingle))
	require.NoError(t, err)

	full := NewCommitter(failingOn(-1)).Commit(context.Background(), b.Matches)
	assert.Equal(t, OutcomeFull, full.Outcome(3))
	assert.Equal(t, 3, full.CreatedCount)
	assert.Empty(t, full.Errors)

	failed := NewCommitter(inserterFunc(func(context.Context, GeneratedMatch) (string, error) {
		return "", errors.New("db down")
	})).Commit(context.Background(), b.Matches)
	assert.Equal(t, OutcomeFailed, failed.Outcome(3))
	assert.Empty(t, failed.MatchIDs)
	assert.NotNil(t, failed.MatchIDs)
	assert.Len(t, failed.Errors, 3)

	assert.Equal(t, OutcomePartial, full.Outcome(4), "fewer created than expected")
}

func TestCommit_KeepsGenerationOrder(t *testing.T) {
	b, err := Generate(validOptions(8, BracketDouble))
	require.NoError(t, err)

	var seen []string
	NewCommitter(inserterFunc(func(_ context.Context, m GeneratedMatch) (string, error) {
		seen = append(seen, m.ID)
		return "id-" + m.ID, nil
	})).Commit(context.Background(), b.Matches)

	want := make([]string, len(b.Matches))
	for i, m := range b.Matches {
		want[i] = m.ID
	}
	assert.Equal(t, want, seen)
}
