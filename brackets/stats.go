package brackets

// BracketStats are closed-form counts for a bracket of a given size and type.
type BracketStats struct {
	TotalMatches int `json:"totalMatches"`
	TotalRounds  int `json:"totalRounds"`
	ByeCount     int `json:"byeCount"`
	RequiredDays int `json:"requiredDays"`
}

// CalculateStats returns zero stats for fewer than two teams or an unknown type.
//
// Double elimination counts winner-bracket plus loser-bracket matches plus the
// grand final; the conditional reset game is not included.
func CalculateStats(teamCount int, bracketType BracketType) BracketStats {
	if teamCount < 2 || !bracketType.Valid() {
		return BracketStats{}
	}

	size := NextPowerOfTwo(teamCount)
	winnerRounds := log2(size)
	stats := BracketStats{ByeCount: size - teamCount}

	switch bracketType {
	case BracketSingle:
		stats.TotalMatches = teamCount - 1
		stats.TotalRounds = winnerRounds
		stats.RequiredDays = winnerRounds
	case BracketDouble:
		stats.TotalMatches = 2*teamCount - 2
		stats.TotalRounds = winnerRounds + 2*(winnerRounds-1) + 1
		stats.RequiredDays = 2 * winnerRounds
	}
	return stats
}

// RequiredDays is the number of dependency layers, one tournament day each.
func RequiredDays(teamCount int, bracketType BracketType) int {
	return CalculateStats(teamCount, bracketType).RequiredDays
}
