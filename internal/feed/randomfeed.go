package feed

import (
	"math/rand"

	"github.com/rawblock/blackjack-engine/internal/engine"
)

// RandomFeed draws cards using an ordinary PRNG, for simulation and
// testing where no one needs to later prove the deal matched a commitment.
type RandomFeed struct {
	rng   *rand.Rand
	shoe  engine.Shoe
	decks int
}

// NewRandomFeed builds a feed seeded from src with a fresh numDecks shoe.
func NewRandomFeed(src rand.Source, numDecks int) *RandomFeed {
	f := &RandomFeed{rng: rand.New(src)}
	f.Reset(numDecks)
	return f
}

func (f *RandomFeed) Reset(numDecks int) {
	f.decks = numDecks
	f.shoe = engine.Fresh(numDecks)
}

func (f *RandomFeed) Remaining() engine.Shoe {
	return f.shoe
}

func (f *RandomFeed) Draw() (engine.Rank, error) {
	total := f.shoe.Sum()
	if total == 0 {
		return 0, ErrShoeExhausted
	}
	pick := f.rng.Intn(total)
	for r := engine.Rank(0); r < engine.NumRanks; r++ {
		if pick < f.shoe[r] {
			next, err := f.shoe.Remove(r)
			if err != nil {
				return 0, err
			}
			f.shoe = next
			return r, nil
		}
		pick -= f.shoe[r]
	}
	return 0, ErrShoeExhausted
}
