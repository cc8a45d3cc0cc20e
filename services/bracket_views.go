package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/league-brackets/brackets"
	"github.com/Dosada05/league-brackets/models"
	"github.com/google/uuid"
)

// BracketInput is the request body shared by preview and generate.
type BracketInput struct {
	TeamIDs        []string    `json:"teamIds"`
	SeasonID       string      `json:"seasonId"`
	LeagueID       *string     `json:"leagueId,omitempty"`
	TournamentDays []Date      `json:"tournamentDays"`
	BracketType    string      `json:"bracketType"`
	Matches        []MatchView `json:"matches,omitempty"`
}

// Options converts the input for the bracket engine. An unknown bracket type
// is passed through so validation can report it.
func (in BracketInput) Options() brackets.Options {
	opts := brackets.Options{
		TeamIDs:        in.TeamIDs,
		SeasonID:       strings.TrimSpace(in.SeasonID),
		LeagueID:       normalizeLeagueID(in.LeagueID),
		TournamentDays: make([]time.Time, len(in.TournamentDays)),
		BracketType:    brackets.BracketType(strings.ToLower(strings.TrimSpace(in.BracketType))),
	}
	for i, d := range in.TournamentDays {
		opts.TournamentDays[i] = d.Time
	}
	return opts
}

// MatchView is the wire form of a generated match.
type MatchView struct {
	ID          string                `json:"id"`
	Team1ID     *string               `json:"team1Id"`
	Team2ID     *string               `json:"team2Id"`
	Date        Date                  `json:"date"`
	SeasonID    string                `json:"seasonId"`
	LeagueID    *string               `json:"leagueId"`
	Stage       string                `json:"stage"`
	BracketSide brackets.Side         `json:"bracketSide"`
	Round       int                   `json:"round"`
	Order       int                   `json:"order"`
	Team1Source *brackets.MatchSource `json:"team1Source,omitempty"`
	Team2Source *brackets.MatchSource `json:"team2Source,omitempty"`
}

func NewMatchView(m brackets.GeneratedMatch) MatchView {
	return MatchView{
		ID:          m.ID,
		Team1ID:     m.Team1ID,
		Team2ID:     m.Team2ID,
		Date:        Date{m.Date},
		SeasonID:    m.SeasonID,
		LeagueID:    m.LeagueID,
		Stage:       m.Stage,
		BracketSide: m.BracketSide,
		Round:       m.Round,
		Order:       m.Order,
		Team1Source: m.Team1Source,
		Team2Source: m.Team2Source,
	}
}

func NewMatchViews(matches []brackets.GeneratedMatch) []MatchView {
	views := make([]MatchView, len(matches))
	for i, m := range matches {
		views[i] = NewMatchView(m)
	}
	return views
}

// toGeneratedMatches checks supplied matches and fills season and league from
// opts where they are missing.
func toGeneratedMatches(views []MatchView, opts brackets.Options) ([]brackets.GeneratedMatch, error) {
	out := make([]brackets.GeneratedMatch, 0, len(views))
	seen := make(map[string]bool, len(views))
	tournamentDays := make(map[string]bool, len(opts.TournamentDays))
	for _, d := range opts.TournamentDays {
		tournamentDays[d.UTC().Format(brackets.DateLayout)] = true
	}
	for i, v := range views {
		id := strings.TrimSpace(v.ID)
		switch {
		case id == "":
			return nil, fmt.Errorf("%w: match %d has no id", ErrInvalidMatches, i+1)
		case seen[id]:
			return nil, fmt.Errorf("%w: duplicate match id %q", ErrInvalidMatches, id)
		case v.Date.IsZero():
			return nil, fmt.Errorf("%w: match %s has no date", ErrInvalidMatches, id)
		case !tournamentDays[v.Date.UTC().Format(brackets.DateLayout)]:
			return nil, fmt.Errorf("%w: match %s is dated %s, which is not a tournament day", ErrInvalidMatches, id, v.Date.UTC().Format(brackets.DateLayout))
		}
		seen[id] = true

		seasonID := v.SeasonID
		if seasonID == "" {
			seasonID = opts.SeasonID
		}
		if seasonID != opts.SeasonID {
			return nil, fmt.Errorf("%w: match %s belongs to season %q, not %q", ErrInvalidMatches, id, seasonID, opts.SeasonID)
		}
		leagueID := normalizeLeagueID(v.LeagueID)
		if leagueID == nil {
			leagueID = opts.LeagueID
		}

		side := v.BracketSide
		if side == "" {
			side = brackets.SideWinner
		}

		out = append(out, brackets.GeneratedMatch{
			ID:          id,
			Team1ID:     v.Team1ID,
			Team2ID:     v.Team2ID,
			Date:        v.Date.Time,
			SeasonID:    seasonID,
			LeagueID:    leagueID,
			Stage:       v.Stage,
			BracketSide: side,
			Round:       v.Round,
			Order:       v.Order,
			Team1Source: v.Team1Source,
			Team2Source: v.Team2Source,
		})
	}
	return out, nil
}

// toMatchModel maps a generated match onto its stored form.
func toMatchModel(m brackets.GeneratedMatch, generationID uuid.UUID) *models.Match {
	match := &models.Match{
		SeasonID:        m.SeasonID,
		LeagueID:        m.LeagueID,
		GenerationID:    generationID,
		BracketMatchUID: m.ID,
		BracketSide:     string(m.BracketSide),
		Stage:           m.Stage,
		Round:           m.Round,
		OrderInRound:    m.Order,
		Team1ID:         m.Team1ID,
		Team2ID:         m.Team2ID,
		MatchDate:       m.Date,
		Status:          models.StatusScheduled,
	}
	if m.Team1Source != nil {
		s := m.Team1Source.String()
		match.Team1Source = &s
	}
	if m.Team2Source != nil {
		s := m.Team2Source.String()
		match.Team2Source = &s
	}
	return match
}

// PreviewResult is a generated bracket that has not been stored.
type PreviewResult struct {
	Matches  []MatchView           `json:"matches"`
	Warnings []string              `json:"warnings"`
	Stats    brackets.BracketStats `json:"stats"`
}

// GenerateResult reports a persisted bracket. Success holds only when every
// expected match was created without errors.
type GenerateResult struct {
	Success      bool             `json:"success"`
	Created      int              `json:"created"`
	Expected     int              `json:"expected"`
	MatchIDs     []string         `json:"matchIds"`
	Errors       []string         `json:"errors"`
	Warnings     []string         `json:"warnings"`
	Message      string           `json:"message"`
	GenerationID uuid.UUID        `json:"generationId"`
	ArchiveURL   string           `json:"archiveUrl,omitempty"`
	Outcome      brackets.Outcome `json:"-"`
}

// BracketView is the stored bracket of a season and league.
type BracketView struct {
	Generation *models.BracketGeneration `json:"generation"`
	Matches    []*models.Match           `json:"matches"`
}

type bracketSnapshot struct {
	GenerationID uuid.UUID             `json:"generationId"`
	SeasonID     string                `json:"seasonId"`
	LeagueID     *string               `json:"leagueId,omitempty"`
	BracketType  brackets.BracketType  `json:"bracketType"`
	TeamIDs      []string              `json:"teamIds"`
	Stats        brackets.BracketStats `json:"stats"`
	Matches      []MatchView           `json:"matches"`
	MatchIDs     []string              `json:"matchIds"`
	Outcome      brackets.Outcome      `json:"outcome"`
	GeneratedAt  string                `json:"generatedAt"`
}
