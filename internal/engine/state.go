package engine

import (
	"fmt"
	"sort"
)

// Field identifies one externally visible piece of board state. Secret
// roles and pile contents have no Field and so cannot be exported.
type Field int

const (
	FieldPlayers Field = iota
	FieldEliminatedPlayers
	FieldPresident
	FieldPreviousPresident
	FieldChancellor
	FieldPreviousChancellor
	FieldNominatedChancellor
	FieldUndrawnTiles
	FieldDiscardedTiles
	FieldDrawnTiles
	FieldLatestPolicy
	FieldLiberalProgress
	FieldFascistProgress
	FieldFascistPowers
	FieldWinner

	fieldCount
)

var fieldNames = [fieldCount]string{
	FieldPlayers:             "players",
	FieldEliminatedPlayers:   "eliminated_players",
	FieldPresident:           "president",
	FieldPreviousPresident:   "previous_president",
	FieldChancellor:          "chancellor",
	FieldPreviousChancellor:  "previous_chancellor",
	FieldNominatedChancellor: "nominated_chancellor",
	FieldUndrawnTiles:        "undrawn_tiles",
	FieldDiscardedTiles:      "discarded_tiles",
	FieldDrawnTiles:          "drawn_tiles",
	FieldLatestPolicy:        "latest_policy",
	FieldLiberalProgress:     "liberal_progress",
	FieldFascistProgress:     "fascist_progress",
	FieldFascistPowers:       "fascist_powers",
	FieldWinner:              "winner",
}

func (f Field) String() string {
	if f >= 0 && f < fieldCount {
		return fieldNames[f]
	}
	return "unknown"
}

// Fields returns every visible field in declaration order.
func Fields() []Field {
	out := make([]Field, fieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// ParseField maps a wire name back to a Field.
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

// Updates maps field names to redacted values: strings, string slices and
// ints only.
type Updates map[string]any

// Keys returns the field names in sorted order.
func (u Updates) Keys() []string {
	keys := make([]string, 0, len(u))
	for k := range u {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// transform projects board state into a client-safe value. Called with the
// board lock held.
type transform func(b *Board) any

// redactor is the fixed Field -> transform table.
type redactor [fieldCount]transform

// newRedactor builds the table and panics if any field lacks a transform,
// so an unredacted field can never reach a client.
func newRedactor(table map[Field]transform) redactor {
	var r redactor
	for f, fn := range table {
		if f < 0 || f >= fieldCount {
			panic(fmt.Sprintf("engine: transform registered for unknown field %d", f))
		}
		r[f] = fn
	}
	for f, fn := range r {
		if fn == nil {
			panic(fmt.Sprintf("engine: no transform registered for field %s", Field(f)))
		}
	}
	return r
}

var redactions = newRedactor(map[Field]transform{
	FieldPlayers:             func(b *Board) any { return playerNames(b.roster.active) },
	FieldEliminatedPlayers:   func(b *Board) any { return playerNames(b.roster.eliminated) },
	FieldPresident:           func(b *Board) any { return nameOf(b.president()) },
	FieldPreviousPresident:   func(b *Board) any { return nameOf(b.prevPresident) },
	FieldChancellor:          func(b *Board) any { return nameOf(b.chancellor) },
	FieldPreviousChancellor:  func(b *Board) any { return nameOf(b.prevChancellor) },
	FieldNominatedChancellor: func(b *Board) any { return nameOf(b.nominee) },
	FieldUndrawnTiles:        func(b *Board) any { return len(b.deck.undrawn) },
	FieldDiscardedTiles:      func(b *Board) any { return len(b.deck.discarded) },
	FieldDrawnTiles:          func(b *Board) any { return tileLabels(b.deck.drawn) },
	FieldLatestPolicy: func(b *Board) any {
		if !b.hasLatest {
			return ""
		}
		return b.latestPolicy.String()
	},
	FieldLiberalProgress: func(b *Board) any { return b.liberalProgress },
	FieldFascistProgress: func(b *Board) any { return b.fascistProgress },
	FieldFascistPowers: func(b *Board) any {
		s := make([]string, len(b.powers))
		for i, p := range b.powers {
			s[i] = p.String()
		}
		return s
	},
	FieldWinner: func(b *Board) any { return b.winner().String() },
})

func (r *redactor) apply(b *Board, fields []Field) Updates {
	out := make(Updates, len(fields))
	for _, f := range fields {
		if f < 0 || f >= fieldCount {
			continue
		}
		out[f.String()] = r[f](b)
	}
	return out
}

// dirtySet records fields changed since the last extraction.
type dirtySet [fieldCount]bool

func (d *dirtySet) mark(fields ...Field) {
	for _, f := range fields {
		d[f] = true
	}
}

func (d *dirtySet) drain() []Field {
	var out []Field
	for f, dirty := range d {
		if dirty {
			out = append(out, Field(f))
			d[f] = false
		}
	}
	return out
}
