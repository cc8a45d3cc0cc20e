package brackets

import (
	"context"
	"fmt"
)

// MatchInserter persists a single match and returns its stored id.
type MatchInserter interface {
	InsertMatch(ctx context.Context, match GeneratedMatch) (string, error)
}

// RecordResult is the outcome of one insert: either ID is set or Err is.
type RecordResult struct {
	MatchID string
	ID      string
	Err     error
}

func (r RecordResult) OK() bool { return r.Err == nil }

// CommitResult reports a batch insert. MatchIDs keeps generation order.
type CommitResult struct {
	CreatedCount int
	MatchIDs     []string
	Errors       []string
	Records      []RecordResult
}

// Outcome classifies a commit against the expected match count.
type Outcome string

const (
	OutcomeFull    Outcome = "full"
	OutcomePartial Outcome = "partial"
	OutcomeFailed  Outcome = "failed"
)

func (r CommitResult) Outcome(expected int) Outcome {
	switch {
	case r.CreatedCount == expected && len(r.Errors) == 0:
		return OutcomeFull
	case r.CreatedCount == 0:
		return OutcomeFailed
	default:
		return OutcomePartial
	}
}

// Committer inserts matches one by one. A failed insert is recorded and the
// batch carries on; nothing already created is rolled back.
type Committer struct {
	inserter MatchInserter
}

func NewCommitter(inserter MatchInserter) *Committer {
	return &Committer{inserter: inserter}
}

func (c *Committer) Commit(ctx context.Context, matches []GeneratedMatch) CommitResult {
	res := CommitResult{
		MatchIDs: make([]string, 0, len(matches)),
		Errors:   []string{},
		Records:  make([]RecordResult, 0, len(matches)),
	}

	for _, m := range matches {
		id, err := c.inserter.InsertMatch(ctx, m)
		rec := RecordResult{MatchID: m.ID, ID: id, Err: err}
		if err != nil {
			rec.ID = ""
			res.Errors = append(res.Errors, fmt.Sprintf("match %s (%s, round %d): %v", m.ID, m.Stage, m.Round, err))
		} else {
			res.CreatedCount++
			res.MatchIDs = append(res.MatchIDs, id)
		}
		res.Records = append(res.Records, rec)
	}
	return res
}
