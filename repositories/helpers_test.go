package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestLeagueKey(t *testing.T) {
	empty, league := "", "north"
	assert.Equal(t, "*", leagueKey(nil))
	assert.Equal(t, "*", leagueKey(&empty))
	assert.Equal(t, "north", leagueKey(&league))
}

func TestHandleMatchError(t *testing.T) {
	other := errors.New("boom")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"generation fk", &pq.Error{Code: pqForeignKeyViolation, Constraint: "matches_generation_id_fkey"}, ErrMatchGenerationInvalid},
		{"wrapped unique", fmt.Errorf("insert: %w", &pq.Error{Code: pqUniqueViolation, Constraint: "matches_generation_uid_key"}), ErrMatchDuplicateUID},
		{"unknown constraint", &pq.Error{Code: pqUniqueViolation, Constraint: "other"}, nil},
		{"plain error", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := handleMatchError(tt.in)
			switch {
			case tt.in == nil:
				assert.NoError(t, got)
			case tt.want == nil:
				assert.Equal(t, tt.in, got)
			default:
				assert.ErrorIs(t, got, tt.want)
			}
		})
	}
}
