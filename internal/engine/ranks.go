package engine

import "fmt"

// Rank is one of the ten composition slots a shoe tracks: A, 2..9, T.
// T covers 10/J/Q/K — suits never enter the model.
type Rank int

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
)

// NumRanks is the fixed width of every counts vector.
const NumRanks = 10

// rankSymbols is the closed wire vocabulary, index-aligned with the Rank consts.
var rankSymbols = [NumRanks]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "T"}

// rankValues holds each rank's point value; Ace is 11 here and demoted to 1
// by HandTotal.Add when the running total would otherwise bust a soft hand.
var rankValues = [NumRanks]int{11, 2, 3, 4, 5, 6, 7, 8, 9, 10}

// Value returns the rank's point contribution (Ace counts as 11 until demoted).
func (r Rank) Value() int {
	return rankValues[r]
}

// String renders the wire symbol for r.
func (r Rank) String() string {
	if r < 0 || int(r) >= NumRanks {
		return "?"
	}
	return rankSymbols[r]
}

// ParseRank maps a single wire symbol to its Rank, or ErrInvalidRank if the
// symbol falls outside the closed set {A,2,3,4,5,6,7,8,9,T}.
func ParseRank(sym string) (Rank, error) {
	for i, s := range rankSymbols {
		if s == sym {
			return Rank(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRank, sym)
}

// ParseRanks maps a slice of wire symbols, failing on the first invalid one.
func ParseRanks(syms []string) ([]Rank, error) {
	ranks := make([]Rank, len(syms))
	for i, s := range syms {
		r, err := ParseRank(s)
		if err != nil {
			return nil, err
		}
		ranks[i] = r
	}
	return ranks, nil
}
