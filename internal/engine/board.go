package engine

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Board is the aggregate game state. All exported methods are safe for
// concurrent use; each one is a single atomic transition, and the fields it
// changes are flagged dirty under the same lock.
type Board struct {
	mu  sync.Mutex
	rng *rand.Rand

	roster       roster
	presidentIdx int

	prevPresident  *Player
	chancellor     *Player
	prevChancellor *Player
	nominee        *Player

	deck *Deck

	latestPolicy    Tile
	hasLatest       bool
	liberalProgress int
	fascistProgress int
	powers          []PresidentialPower

	started bool
	forced  Outcome

	dirty dirtySet
}

// Option configures a Board.
type Option func(*boardOptions)

type boardOptions struct {
	rng   *rand.Rand
	tiles []Tile
}

// WithRand sets the random source used for role and deck shuffles.
func WithRand(rng *rand.Rand) Option {
	return func(o *boardOptions) { o.rng = rng }
}

// WithTiles replaces the shuffled standard deck with tiles in the given
// top-first order.
func WithTiles(tiles []Tile) Option {
	return func(o *boardOptions) { o.tiles = tiles }
}

// NewSeededRand returns a PCG-backed source. A zero seed uses the clock.
func NewSeededRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewBoard creates an empty board with a freshly shuffled deck.
func NewBoard(opts ...Option) *Board {
	var o boardOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = NewSeededRand(0)
	}

	b := &Board{rng: o.rng}
	if o.tiles != nil {
		b.deck = NewDeckFromTiles(o.tiles, o.rng)
	} else {
		b.deck = NewDeck(o.rng)
	}
	return b
}

// AddPlayer seats a new player at the end of the roster.
func (b *Board) AddPlayer(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return newError(KindGameStarted, name)
	}
	if _, err := b.roster.add(name); err != nil {
		return err
	}
	b.dirty.mark(FieldPlayers, FieldPresident)
	return nil
}

// GetPlayer finds an active player by name.
func (b *Board) GetPlayer(name string) (*Player, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.roster.get(name)
}

// Players returns the active player names in seating order.
func (b *Board) Players() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return playerNames(b.roster.active)
}

// EliminatedPlayers returns the names of eliminated players.
func (b *Board) EliminatedPlayers() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return playerNames(b.roster.eliminated)
}

// BeginGame assigns secret roles and binds the power track for the
// current player count. It can run only once.
func (b *Board) BeginGame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return newError(KindGameStarted, len(b.roster.active))
	}
	n := len(b.roster.active)
	cfg, ok := ConfigFor(n)
	if !ok {
		return newError(KindInvalidPlayerCount, n)
	}

	roles := cfg.Roles()
	b.rng.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})
	for i, p := range b.roster.active {
		p.Role = roles[i]
	}
	b.powers = cfg.Powers
	b.started = true
	b.dirty.mark(FieldPlayers, FieldFascistPowers, FieldPresident)
	return nil
}

// Started reports whether BeginGame has run.
func (b *Board) Started() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.started
}

// Phase returns the lifecycle phase.
func (b *Board) Phase() GamePhase {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case b.winner() != SideNone:
		return PhaseGameOver
	case b.started:
		return PhaseInGame
	default:
		return PhaseLobby
	}
}

// DrawThree starts a legislative session with the top three tiles.
func (b *Board) DrawThree() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkNotOver(); err != nil {
		return err
	}
	before := b.deck.Counts()
	if _, err := b.deck.DrawThree(); err != nil {
		return err
	}
	b.dirty.mark(FieldDrawnTiles, FieldUndrawnTiles)
	if b.deck.Counts().Discarded != before.Discarded {
		b.dirty.mark(FieldDiscardedTiles)
	}
	return nil
}

// DiscardTile discards one drawn tile of kind t. Discarding down to a
// single tile enacts it.
func (b *Board) DiscardTile(t Tile) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkNotOver(); err != nil {
		return err
	}
	policy, enacted, err := b.deck.Discard(t)
	if err != nil {
		return err
	}
	b.dirty.mark(FieldDrawnTiles, FieldDiscardedTiles)
	if enacted {
		b.enact(policy)
	}
	return nil
}

func (b *Board) enact(t Tile) {
	b.latestPolicy = t
	b.hasLatest = true
	switch t {
	case TileLiberal:
		b.liberalProgress++
		b.dirty.mark(FieldLiberalProgress)
	case TileFascist:
		b.fascistProgress++
		b.dirty.mark(FieldFascistProgress)
	}
	b.dirty.mark(FieldLatestPolicy)
	if b.winner() != SideNone {
		b.dirty.mark(FieldWinner)
	}
}

// PeekThree shows the next three tiles without drawing them. It is only
// available while Policy Peek is the current presidential power.
func (b *Board) PeekThree() ([]Tile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkNotOver(); err != nil {
		return nil, err
	}
	if b.currentPower() != PowerPolicyPeek {
		return nil, newError(KindPowerUnavailable, PowerPolicyPeek)
	}
	before := b.deck.Counts()
	tiles, err := b.deck.PeekThree()
	if err != nil {
		return nil, err
	}
	if b.deck.Counts() != before {
		b.dirty.mark(FieldUndrawnTiles, FieldDiscardedTiles)
	}
	return tiles, nil
}

// LatestPolicy returns the most recently enacted tile, if any.
func (b *Board) LatestPolicy() (Tile, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latestPolicy, b.hasLatest
}

// Progress returns the liberal and fascist track positions.
func (b *Board) Progress() (liberal, fascist int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.liberalProgress, b.fascistProgress
}

// TileCounts returns the pile sizes of the deck.
func (b *Board) TileCounts() TileCounts {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.deck.Counts()
}

// DrawnTiles returns the tiles of the current legislative session.
func (b *Board) DrawnTiles() []Tile {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.deck.Drawn()
}

// ExtractUpdates returns the redacted values of the given fields, or of the
// fields changed since the last extraction when none are given. The
// pending set is cleared either way.
func (b *Board) ExtractUpdates(fields ...Field) Updates {
	b.mu.Lock()
	defer b.mu.Unlock()

	pending := b.dirty.drain()
	if len(fields) == 0 {
		fields = pending
	}
	return redactions.apply(b, fields)
}

// FullState returns every visible field for an initial client sync. It
// does not touch the pending set.
func (b *Board) FullState() Updates {
	b.mu.Lock()
	defer b.mu.Unlock()
	return redactions.apply(b, Fields())
}
