package brackets

// SlotKind tells which of the three slot states is populated.
type SlotKind int

const (
	SlotBye SlotKind = iota
	SlotTeam
	SlotWinnerOf
	SlotLoserOf
)

// Slot is one side of a pairing: a concrete team, a bye, or a forward
// reference to the outcome of an earlier match. Match is an index into
// Topology.Matches and is only meaningful for references.
type Slot struct {
	Kind   SlotKind
	TeamID string
	Match  int
}

func TeamSlot(teamID string) Slot { return Slot{Kind: SlotTeam, TeamID: teamID, Match: -1} }

func ByeSlot() Slot { return Slot{Kind: SlotBye, Match: -1} }

func winnerOf(match int) Slot { return Slot{Kind: SlotWinnerOf, Match: match} }

func loserOf(match int) Slot { return Slot{Kind: SlotLoserOf, Match: match} }

func (s Slot) IsBye() bool { return s.Kind == SlotBye }

func (s Slot) IsTeam() bool { return s.Kind == SlotTeam }

func (s Slot) IsReference() bool { return s.Kind == SlotWinnerOf || s.Kind == SlotLoserOf }

// Pairing is a first-round slot pair. Seeds are 1-based; a seed greater than
// the team count is a bye.
type Pairing struct {
	Top        Slot
	Bottom     Slot
	TopSeed    int
	BottomSeed int
}

// IsBye reports whether the pairing resolves without a played match.
func (p Pairing) IsBye() bool {
	return p.Top.IsBye() || p.Bottom.IsBye()
}

// NextPowerOfTwo returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

func log2(size int) int {
	k := 0
	for size > 1 {
		size >>= 1
		k++
	}
	return k
}

// SeedOrder lists 1-based seeds in bracket position order for a bracket of the
// given power-of-two size, e.g. 8 -> [1 8 4 5 2 7 3 6]. Seeds 1 and 2 land in
// opposite halves, seeds 1..4 in different quarters, and so on.
func SeedOrder(size int) []int {
	order := []int{1}
	for len(order) < size {
		mirror := len(order)*2 + 1
		next := make([]int, 0, len(order)*2)
		for _, seed := range order {
			next = append(next, seed, mirror-seed)
		}
		order = next
	}
	return order
}

// PairSeeds builds the first-round pairings for the seeded team list. Byes pad
// the field to the next power of two and always face the best seeds.
func PairSeeds(teamIDs []string) []Pairing {
	n := len(teamIDs)
	if n < 2 {
		return nil
	}
	size := NextPowerOfTwo(n)
	order := SeedOrder(size)

	seedSlot := func(seed int) Slot {
		if seed > n {
			return ByeSlot()
		}
		return TeamSlot(teamIDs[seed-1])
	}

	pairs := make([]Pairing, 0, size/2)
	for i := 0; i < size; i += 2 {
		top, bottom := order[i], order[i+1]
		pairs = append(pairs, Pairing{
			Top:        seedSlot(top),
			Bottom:     seedSlot(bottom),
			TopSeed:    top,
			BottomSeed: bottom,
		})
	}
	return pairs
}
