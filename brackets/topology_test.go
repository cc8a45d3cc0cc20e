package brackets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTopology(t *testing.T, n int, bracketType BracketType) *Topology {
	t.Helper()
	top, err := BuildTopology(PairSeeds(teamIDs(n)), bracketType)
	require.NoError(t, err)
	return top
}

func matchUIDs(top *Topology) []string {
	uids := make([]string, len(top.Matches))
	for i, m := range top.Matches {
		uids[i] = m.UID
	}
	return uids
}

func TestBuildTopology_SingleFourTeams(t *testing.T) {
	top := buildTopology(t, 4, BracketSingle)

	assert.Equal(t, []string{"R1M1", "R1M2", "R2M1"}, matchUIDs(top))
	assert.Equal(t, 2, top.Layers)
	require.Len(t, top.Rounds, 2)

	final := top.Matches[2]
	assert.Equal(t, winnerOf(0), final.Slots[0])
	assert.Equal(t, winnerOf(1), final.Slots[1])
}

func TestBuildTopology_SingleByeTeamAdvancesConcretely(t *testing.T) {
	top, err := BuildTopology(PairSeeds([]string{"A", "B", "C", "D", "E"}), BracketSingle)
	require.NoError(t, err)

	require.Len(t, top.Rounds, 3)
	assert.Equal(t, 1, top.Rounds[0].MatchCount())
	assert.Equal(t, 2, top.Rounds[1].MatchCount())
	assert.Equal(t, 1, top.Rounds[2].MatchCount())

	r2 := top.Matches[1:3]
	assert.Equal(t, TeamSlot("A"), r2[0].Slots[0])
	assert.Equal(t, winnerOf(0), r2[0].Slots[1])
	assert.Equal(t, TeamSlot("B"), r2[1].Slots[0])
	assert.Equal(t, TeamSlot("C"), r2[1].Slots[1])
}

func TestBuildTopology_DoubleFourTeams(t *testing.T) {
	top := buildTopology(t, 4, BracketDouble)

	assert.Equal(t, []string{"WB-R1M1", "WB-R1M2", "WB-R2M1", "LB-R1M1", "LB-R2M1", "GF-R1M1"}, matchUIDs(top))
	assert.Equal(t, 4, top.Layers)

	lbR1 := top.Matches[3]
	assert.Equal(t, [2]Slot{loserOf(0), loserOf(1)}, lbR1.Slots)
	assert.Equal(t, 2, lbR1.Layer, "loser round 1 shares a day with winner round 2")

	lbFinal := top.Matches[4]
	assert.Equal(t, [2]Slot{winnerOf(3), loserOf(2)}, lbFinal.Slots)

	gf := top.Matches[5]
	assert.Equal(t, SideFinal, gf.Side)
	assert.Equal(t, [2]Slot{winnerOf(2), winnerOf(4)}, gf.Slots)
}

func TestBuildTopology_DoubleTwoTeams(t *testing.T) {
	top := buildTopology(t, 2, BracketDouble)

	assert.Equal(t, []string{"WB-R1M1", "GF-R1M1"}, matchUIDs(top))
	assert.Equal(t, [2]Slot{winnerOf(0), loserOf(0)}, top.Matches[1].Slots)
	assert.Equal(t, 2, top.Layers)
}

func TestBuildTopology_DoubleSixTeams(t *testing.T) {
	top := buildTopology(t, 6, BracketDouble)

	assert.Len(t, top.Matches, 10)
	assert.Equal(t, 6, top.Layers)
	assert.Equal(t, 3, top.RoundsOn(SideWinner))
	assert.Equal(t, 4, top.RoundsOn(SideLoser))
	assert.Equal(t, 1, top.RoundsOn(SideFinal))
	assert.Zero(t, top.Rounds[2].MatchCount(), "both loser round 1 pairs hold a bye")
}

func TestBuildTopology_Structure(t *testing.T) {
	for _, bt := range []BracketType{BracketSingle, BracketDouble} {
		for n := 2; n <= 40; n++ {
			t.Run(fmt.Sprintf("%s/%d", bt, n), func(t *testing.T) {
				top := buildTopology(t, n, bt)
				stats := CalculateStats(n, bt)

				assert.Len(t, top.Matches, stats.TotalMatches)
				assert.Len(t, top.Rounds, stats.TotalRounds)
				assert.Equal(t, stats.RequiredDays, top.Layers)

				winnerRefs := make([]int, len(top.Matches))
				loserRefs := make([]int, len(top.Matches))
				teamSeen := map[string]int{}

				for i, m := range top.Matches {
					require.Equal(t, i, m.Index)
					for _, s := range m.Slots {
						require.False(t, s.IsBye(), "match %s has a bye slot", m.UID)
						switch s.Kind {
						case SlotTeam:
							teamSeen[s.TeamID]++
						case SlotWinnerOf:
							winnerRefs[s.Match]++
						case SlotLoserOf:
							loserRefs[s.Match]++
						}
						if s.IsReference() {
							assert.Less(t, top.Matches[s.Match].Layer, m.Layer, "%s references a later match", m.UID)
							assert.Less(t, s.Match, i)
						}
					}
				}

				assert.Len(t, teamSeen, n, "every team enters exactly one match directly")
				for id, c := range teamSeen {
					assert.Equal(t, 1, c, "team %s", id)
				}

				last := len(top.Matches) - 1
				for i, m := range top.Matches {
					wantWinner, wantLoser := 1, 0
					if i == last {
						wantWinner = 0
					}
					if bt == BracketDouble && m.Side == SideWinner {
						wantLoser = 1
					}
					assert.Equal(t, wantWinner, winnerRefs[i], "winner refs of %s", m.UID)
					assert.Equal(t, wantLoser, loserRefs[i], "loser refs of %s", m.UID)
				}
			})
		}
	}
}

func TestBuildTopology_Errors(t *testing.T) {
	_, err := BuildTopology(nil, BracketSingle)
	assert.ErrorIs(t, err, ErrTooFewTeams)

	_, err = BuildTopology(PairSeeds(teamIDs(4)), BracketType("swiss"))
	assert.ErrorIs(t, err, ErrUnsupportedBracket)

	odd := PairSeeds(teamIDs(4))[:1]
	odd = append(odd, odd[0], odd[0])
	_, err = BuildTopology(odd, BracketSingle)
	assert.ErrorIs(t, err, ErrTopologyDefect)
}
