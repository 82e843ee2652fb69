package engine

import "math/rand/v2"

// TileCounts is a snapshot of pile sizes.
type TileCounts struct {
	Undrawn   int
	Discarded int
	Drawn     int
	Enacted   int
}

// Total is the size of the tile universe the counts were taken from.
func (c TileCounts) Total() int {
	return c.Undrawn + c.Discarded + c.Drawn + c.Enacted
}

// Deck holds the three tile piles. Enacted tiles leave every pile for good;
// only their count is kept.
type Deck struct {
	rng       *rand.Rand
	undrawn   []Tile
	discarded []Tile
	drawn     []Tile
	enacted   int
}

// NewDeck creates a shuffled standard deck.
func NewDeck(rng *rand.Rand) *Deck {
	d := NewDeckFromTiles(StandardTiles(), rng)
	d.Shuffle()
	return d
}

// NewDeckFromTiles creates a deck whose undrawn pile is tiles, top first.
// The tiles are not shuffled.
func NewDeckFromTiles(tiles []Tile, rng *rand.Rand) *Deck {
	d := &Deck{rng: rng, undrawn: make([]Tile, len(tiles))}
	copy(d.undrawn, tiles)
	return d
}

// Shuffle shuffles the undrawn pile.
func (d *Deck) Shuffle() {
	shuffleTiles(d.rng, d.undrawn)
}

func shuffleTiles(rng *rand.Rand, tiles []Tile) {
	rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})
}

// Counts returns the current pile sizes.
func (d *Deck) Counts() TileCounts {
	return TileCounts{
		Undrawn:   len(d.undrawn),
		Discarded: len(d.discarded),
		Drawn:     len(d.drawn),
		Enacted:   d.enacted,
	}
}

// Drawn returns a copy of the current legislative session's tiles.
func (d *Deck) Drawn() []Tile {
	out := make([]Tile, len(d.drawn))
	copy(out, d.drawn)
	return out
}

func (d *Deck) available() int {
	return len(d.undrawn) + len(d.discarded) + len(d.drawn)
}

// reshuffleIfShort puts the shuffled discard pile under the undrawn pile
// when fewer than three tiles are left to draw. Reports whether it did.
func (d *Deck) reshuffleIfShort() bool {
	if len(d.undrawn) >= 3 {
		return false
	}
	shuffleTiles(d.rng, d.discarded)
	d.undrawn = append(d.undrawn, d.discarded...)
	d.discarded = nil
	return true
}

// DrawThree moves the top three undrawn tiles into the drawn pile. Tiles
// left over from an unfinished session are discarded first. Reports
// whether the discard pile was reshuffled into the undrawn pile.
func (d *Deck) DrawThree() (reshuffled bool, err error) {
	if n := d.available(); n < 3 {
		return false, newError(KindInsufficientTiles, n)
	}
	d.discarded = append(d.discarded, d.drawn...)
	d.drawn = nil
	reshuffled = d.reshuffleIfShort()

	d.drawn = make([]Tile, 3)
	copy(d.drawn, d.undrawn[:3])
	d.undrawn = d.undrawn[3:]
	return reshuffled, nil
}

// PeekThree returns the top three undrawn tiles without drawing them,
// reshuffling first under the same rule as DrawThree.
func (d *Deck) PeekThree() ([]Tile, error) {
	if n := len(d.undrawn) + len(d.discarded); n < 3 {
		return nil, newError(KindInsufficientTiles, n)
	}
	d.reshuffleIfShort()
	out := make([]Tile, 3)
	copy(out, d.undrawn[:3])
	return out, nil
}

// Discard moves one tile of kind t from the drawn pile to the discard pile.
// When that leaves a single drawn tile, the tile is enacted: it is removed
// from the deck for good and returned with enacted set.
func (d *Deck) Discard(t Tile) (policy Tile, enacted bool, err error) {
	i := -1
	for j, dt := range d.drawn {
		if dt == t {
			i = j
			break
		}
	}
	if i < 0 {
		return 0, false, newError(KindUnknownTile, t)
	}

	d.drawn = append(d.drawn[:i], d.drawn[i+1:]...)
	d.discarded = append(d.discarded, t)

	if len(d.drawn) != 1 {
		return 0, false, nil
	}
	policy = d.drawn[0]
	d.drawn = nil
	d.enacted++
	return policy, true, nil
}
