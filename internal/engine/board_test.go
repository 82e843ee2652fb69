package engine_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secrethitler/internal/engine"
)

func newTestBoard(t *testing.T, n int, opts ...engine.Option) *engine.Board {
	t.Helper()
	opts = append([]engine.Option{engine.WithRand(engine.NewSeededRand(42))}, opts...)
	b := engine.NewBoard(opts...)
	for i := 0; i < n; i++ {
		require.NoError(t, b.AddPlayer(fmt.Sprintf("Player%d", i+1)))
	}
	return b
}

// tilesOf builds a 17-tile deck order: the given prefix, then the
// remaining liberal and fascist tiles.
func tilesOf(prefix ...engine.Tile) []engine.Tile {
	lib, fas := engine.LiberalTiles, engine.FascistTiles
	out := append([]engine.Tile(nil), prefix...)
	for _, t := range prefix {
		if t == engine.TileLiberal {
			lib--
		} else {
			fas--
		}
	}
	for ; lib > 0; lib-- {
		out = append(out, engine.TileLiberal)
	}
	for ; fas > 0; fas-- {
		out = append(out, engine.TileFascist)
	}
	return out
}

// fascistRun orders the deck so that discarding liberals first enacts a
// fascist policy in each of the first six sessions.
func fascistRun() []engine.Tile {
	F, L := engine.TileFascist, engine.TileLiberal
	return []engine.Tile{
		F, L, L, F, L, L, F, L, L,
		F, F, F, F, F, F,
		F, F,
	}
}

// enactFascist runs one session, keeping a fascist tile to the end.
func enactFascist(t *testing.T, b *engine.Board) {
	t.Helper()
	require.NoError(t, b.DrawThree())
	for len(b.DrawnTiles()) > 1 {
		discard := engine.TileFascist
		for _, d := range b.DrawnTiles() {
			if d == engine.TileLiberal {
				discard = engine.TileLiberal
			}
		}
		require.NoError(t, b.DiscardTile(discard))
	}
	latest, ok := b.LatestPolicy()
	require.True(t, ok)
	require.Equal(t, engine.TileFascist, latest)
}

func roleCounts(t *testing.T, b *engine.Board) map[engine.Role]int {
	t.Helper()
	counts := map[engine.Role]int{}
	for _, name := range b.Players() {
		p, err := b.GetPlayer(name)
		require.NoError(t, err)
		counts[p.Role]++
	}
	return counts
}

func findRole(t *testing.T, b *engine.Board, role engine.Role) string {
	t.Helper()
	for _, name := range b.Players() {
		p, err := b.GetPlayer(name)
		require.NoError(t, err)
		if p.Role == role {
			return name
		}
	}
	t.Fatalf("no player with role %s", role)
	return ""
}

func TestNewBoard(t *testing.T) {
	b := newTestBoard(t, 0)
	assert.Equal(t, engine.PhaseLobby, b.Phase())
	assert.Nil(t, b.President())
	assert.Equal(t, engine.SideNone, b.Winner())
	assert.Equal(t, engine.TileCounts{Undrawn: 17}, b.TileCounts())
}

func TestAddPlayer(t *testing.T) {
	b := newTestBoard(t, 3)

	p, err := b.GetPlayer("Player2")
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "Player2", p.Name)
	assert.Equal(t, engine.RoleUnassigned, p.Role)

	err = b.AddPlayer("Player2")
	require.ErrorIs(t, err, engine.ErrDuplicateName)
	var e *engine.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "Player2", e.Value)
	assert.Equal(t, []string{"Player1", "Player2", "Player3"}, b.Players())
}

func TestAddPlayerRejectsEliminatedName(t *testing.T) {
	b := newTestBoard(t, 3)
	require.NoError(t, b.EliminatePlayer("Player1"))

	require.ErrorIs(t, b.AddPlayer("Player1"), engine.ErrDuplicateName)
	assert.Equal(t, []string{"Player1"}, b.EliminatedPlayers())
}

func TestGetPlayerUnknown(t *testing.T) {
	b := newTestBoard(t, 2)

	_, err := b.GetPlayer("nobody")
	require.ErrorIs(t, err, engine.ErrUnknownPlayer)
	assert.Equal(t, engine.KindUnknownPlayer, engine.KindOf(err))

	require.NoError(t, b.EliminatePlayer("Player2"))
	_, err = b.GetPlayer("Player2")
	require.ErrorIs(t, err, engine.ErrUnknownPlayer)
}

func TestRoleDistribution(t *testing.T) {
	for n := engine.MinPlayers; n <= engine.MaxPlayers; n++ {
		t.Run(fmt.Sprintf("%d players", n), func(t *testing.T) {
			b := newTestBoard(t, n)
			require.NoError(t, b.BeginGame())

			cfg, ok := engine.ConfigFor(n)
			require.True(t, ok)
			counts := roleCounts(t, b)
			assert.Equal(t, cfg.Liberals, counts[engine.RoleLiberal])
			assert.Equal(t, cfg.Fascists, counts[engine.RoleFascist])
			assert.Equal(t, 1, counts[engine.RoleHitler])
			assert.Zero(t, counts[engine.RoleUnassigned])
			assert.Equal(t, engine.PhaseInGame, b.Phase())
		})
	}
}

func TestBeginGameInvalidPlayerCount(t *testing.T) {
	for _, n := range []int{0, 4, 11} {
		b := newTestBoard(t, n)
		err := b.BeginGame()
		require.ErrorIs(t, err, engine.ErrInvalidPlayerCount, "n=%d", n)

		var e *engine.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, n, e.Value)
		assert.False(t, b.Started())
	}
}

func TestBeginGameOnlyOnce(t *testing.T) {
	b := newTestBoard(t, 5)
	require.NoError(t, b.BeginGame())
	before := roleCounts(t, b)

	require.ErrorIs(t, b.BeginGame(), engine.ErrGameStarted)
	require.ErrorIs(t, b.AddPlayer("Late"), engine.ErrGameStarted)
	assert.Equal(t, before, roleCounts(t, b))
}

func TestSevenPlayerScenario(t *testing.T) {
	b := newTestBoard(t, 7, engine.WithTiles(tilesOf(engine.TileFascist, engine.TileLiberal, engine.TileFascist)))
	require.NoError(t, b.BeginGame())

	counts := roleCounts(t, b)
	assert.Equal(t, 4, counts[engine.RoleLiberal])
	assert.Equal(t, 2, counts[engine.RoleFascist])
	assert.Equal(t, 1, counts[engine.RoleHitler])

	require.NoError(t, b.DrawThree())
	c := b.TileCounts()
	assert.Equal(t, 3, c.Drawn)
	assert.Equal(t, 14, c.Undrawn)

	require.NoError(t, b.DiscardTile(engine.TileFascist))
	assert.Len(t, b.DrawnTiles(), 2)
	lib, fas := b.Progress()
	assert.Zero(t, lib)
	assert.Zero(t, fas)

	require.NoError(t, b.DiscardTile(engine.TileLiberal))
	assert.Empty(t, b.DrawnTiles())
	lib, fas = b.Progress()
	assert.Zero(t, lib)
	assert.Equal(t, 1, fas)
	latest, ok := b.LatestPolicy()
	require.True(t, ok)
	assert.Equal(t, engine.TileFascist, latest)

	c = b.TileCounts()
	assert.Equal(t, engine.TileCounts{Undrawn: 14, Discarded: 2, Drawn: 0, Enacted: 1}, c)
	assert.Equal(t, engine.PowerNone, b.CurrentPresidentialPower())
}

func TestDrawThreeFreshDeck(t *testing.T) {
	b := newTestBoard(t, 5)
	require.NoError(t, b.DrawThree())
	assert.Equal(t, engine.TileCounts{Undrawn: 14, Drawn: 3}, b.TileCounts())
}

func TestDrawThreeReplacesUnfinishedSession(t *testing.T) {
	b := newTestBoard(t, 5)
	require.NoError(t, b.DrawThree())
	require.NoError(t, b.DrawThree())

	c := b.TileCounts()
	assert.Equal(t, 3, c.Drawn)
	assert.Equal(t, 3, c.Discarded)
	assert.Equal(t, engine.TotalTiles, c.Total())
}

func TestDiscardUnknownTileIsAtomic(t *testing.T) {
	b := newTestBoard(t, 5, engine.WithTiles(tilesOf(engine.TileLiberal, engine.TileLiberal, engine.TileLiberal)))
	require.NoError(t, b.DrawThree())
	before := b.TileCounts()

	err := b.DiscardTile(engine.TileFascist)
	require.ErrorIs(t, err, engine.ErrUnknownTile)
	var e *engine.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, engine.TileFascist, e.Value)
	assert.Equal(t, before, b.TileCounts())
}

func TestDiscardWithoutDrawFails(t *testing.T) {
	b := newTestBoard(t, 5)
	require.ErrorIs(t, b.DiscardTile(engine.TileLiberal), engine.ErrUnknownTile)
}

func TestTileConservation(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		rng := engine.NewSeededRand(seed)
		b := engine.NewBoard(engine.WithRand(rng))
		for i := 0; i < 5; i++ {
			require.NoError(t, b.AddPlayer(fmt.Sprintf("P%d", i)))
		}
		require.NoError(t, b.BeginGame())

		check := func() {
			c := b.TileCounts()
			require.Equal(t, engine.TotalTiles, c.Total(), "seed %d", seed)
			lib, fas := b.Progress()
			require.Equal(t, lib+fas, c.Enacted, "seed %d", seed)
		}

		for b.Winner() == engine.SideNone {
			require.NoError(t, b.DrawThree())
			check()
			for len(b.DrawnTiles()) > 0 {
				drawn := b.DrawnTiles()
				require.NoError(t, b.DiscardTile(drawn[rng.IntN(len(drawn))]))
				check()
			}
		}
		require.ErrorIs(t, b.DrawThree(), engine.ErrGameOver)
	}
}

func TestEnactmentOnlyOnLastTile(t *testing.T) {
	b := newTestBoard(t, 5, engine.WithTiles(tilesOf(engine.TileLiberal, engine.TileLiberal, engine.TileFascist)))
	require.NoError(t, b.DrawThree())

	require.NoError(t, b.DiscardTile(engine.TileLiberal))
	lib, fas := b.Progress()
	assert.Equal(t, 0, lib+fas)
	_, ok := b.LatestPolicy()
	assert.False(t, ok)

	require.NoError(t, b.DiscardTile(engine.TileFascist))
	lib, fas = b.Progress()
	assert.Equal(t, 1, lib)
	assert.Zero(t, fas)
	assert.Empty(t, b.DrawnTiles())
}

func TestWinner(t *testing.T) {
	tests := []struct {
		liberal, fascist int
		want             engine.Side
	}{
		{0, 0, engine.SideNone},
		{4, 0, engine.SideNone},
		{5, 0, engine.SideLiberal},
		{6, 0, engine.SideNone},
		{0, 5, engine.SideNone},
		{0, 6, engine.SideFascist},
		{0, 7, engine.SideNone},
		{4, 5, engine.SideNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.Winner(tt.liberal, tt.fascist),
			"Winner(%d, %d)", tt.liberal, tt.fascist)
	}
}

func TestFascistPolicyWin(t *testing.T) {
	b := newTestBoard(t, 5, engine.WithTiles(fascistRun()))
	require.NoError(t, b.BeginGame())
	for i := 0; i < engine.FascistWinningProgress; i++ {
		require.Equal(t, engine.SideNone, b.Winner())
		enactFascist(t, b)
	}
	assert.Equal(t, engine.SideFascist, b.Winner())
	assert.Equal(t, engine.OutcomeFascistPolicies, b.Outcome())
	assert.Equal(t, engine.PhaseGameOver, b.Phase())

	require.ErrorIs(t, b.DrawThree(), engine.ErrGameOver)
	require.ErrorIs(t, b.AdvancePresident(), engine.ErrGameOver)
}

func TestCurrentPresidentialPower(t *testing.T) {
	b := newTestBoard(t, 5, engine.WithTiles(fascistRun()))
	require.NoError(t, b.BeginGame())
	assert.Equal(t, engine.PowerNone, b.CurrentPresidentialPower())

	want := []engine.PresidentialPower{
		engine.PowerNone,
		engine.PowerNone,
		engine.PowerPolicyPeek,
		engine.PowerExecution,
		engine.PowerExecution,
	}
	for i, p := range want {
		enactFascist(t, b)
		assert.Equal(t, p, b.CurrentPresidentialPower(), "after %d fascist policies", i+1)
	}
}

func TestPowerNoneAfterLiberalPolicy(t *testing.T) {
	tiles := tilesOf(
		engine.TileFascist, engine.TileFascist, engine.TileFascist,
		engine.TileLiberal, engine.TileLiberal, engine.TileLiberal,
	)
	b := newTestBoard(t, 9, engine.WithTiles(tiles))
	require.NoError(t, b.BeginGame())

	enactFascist(t, b)
	assert.Equal(t, engine.PowerInvestigateLoyalty, b.CurrentPresidentialPower())

	require.NoError(t, b.DrawThree())
	require.NoError(t, b.DiscardTile(engine.TileLiberal))
	require.NoError(t, b.DiscardTile(engine.TileLiberal))
	assert.Equal(t, engine.PowerNone, b.CurrentPresidentialPower())
}

func TestAdvancePresidentWraps(t *testing.T) {
	b := newTestBoard(t, 5)
	assert.Equal(t, "Player1", b.President().Name)

	for i := 2; i <= 5; i++ {
		require.NoError(t, b.AdvancePresident())
		assert.Equal(t, fmt.Sprintf("Player%d", i), b.President().Name)
	}
	require.NoError(t, b.AdvancePresident())
	assert.Equal(t, "Player1", b.President().Name)
	assert.Equal(t, "Player5", b.ExtractUpdates(engine.FieldPreviousPresident)["previous_president"])
}

func TestAdvancePresidentNoPlayers(t *testing.T) {
	b := newTestBoard(t, 0)
	require.ErrorIs(t, b.AdvancePresident(), engine.ErrNoPlayers)
}

func TestSuccessionAfterElimination(t *testing.T) {
	b := newTestBoard(t, 5)
	require.NoError(t, b.AdvancePresident())
	require.NoError(t, b.AdvancePresident())
	require.Equal(t, "Player3", b.President().Name)

	// Earlier seat leaves: the same player keeps office.
	require.NoError(t, b.EliminatePlayer("Player1"))
	assert.Equal(t, "Player3", b.President().Name)

	// The president leaves: the next seat takes over.
	require.NoError(t, b.EliminatePlayer("Player3"))
	assert.Equal(t, "Player4", b.President().Name)

	require.NoError(t, b.AdvancePresident())
	assert.Equal(t, "Player5", b.President().Name)
	require.NoError(t, b.AdvancePresident())
	assert.Equal(t, "Player2", b.President().Name)

	// Last seat president leaves: wrap to the first seat.
	require.NoError(t, b.AdvancePresident())
	require.NoError(t, b.AdvancePresident())
	require.Equal(t, "Player5", b.President().Name)
	require.NoError(t, b.EliminatePlayer("Player5"))
	assert.Equal(t, "Player2", b.President().Name)
}

func TestEliminateUnknownPlayer(t *testing.T) {
	b := newTestBoard(t, 5)
	require.ErrorIs(t, b.EliminatePlayer("ghost"), engine.ErrUnknownPlayer)
}

func TestChancellorHooks(t *testing.T) {
	b := newTestBoard(t, 5)

	require.ErrorIs(t, b.InstallChancellor(), engine.ErrNoNominee)
	require.ErrorIs(t, b.NominateChancellor("ghost"), engine.ErrUnknownPlayer)

	require.NoError(t, b.NominateChancellor("Player2"))
	require.NoError(t, b.InstallChancellor())
	require.NoError(t, b.NominateChancellor("Player3"))
	require.NoError(t, b.InstallChancellor())

	u := b.ExtractUpdates(engine.FieldChancellor, engine.FieldPreviousChancellor, engine.FieldNominatedChancellor)
	assert.Equal(t, "Player3", u["chancellor"])
	assert.Equal(t, "Player2", u["previous_chancellor"])
	assert.Equal(t, "", u["nominated_chancellor"])
}

func TestHitlerElectedEndsGame(t *testing.T) {
	b := newTestBoard(t, 7, engine.WithTiles(fascistRun()))
	require.NoError(t, b.BeginGame())
	hitler := findRole(t, b, engine.RoleHitler)

	// Below the threshold Hitler may serve.
	require.NoError(t, b.NominateChancellor(hitler))
	require.NoError(t, b.InstallChancellor())
	assert.Equal(t, engine.SideNone, b.Winner())

	for i := 0; i < engine.HitlerChancellorThreshold; i++ {
		enactFascist(t, b)
	}
	require.NoError(t, b.NominateChancellor(hitler))
	require.NoError(t, b.InstallChancellor())

	assert.Equal(t, engine.SideFascist, b.Winner())
	assert.Equal(t, engine.OutcomeHitlerElected, b.Outcome())
	assert.Equal(t, "Fascist", b.ExtractUpdates()["winner"])
	require.ErrorIs(t, b.DrawThree(), engine.ErrGameOver)
}

func TestHitlerExecutedEndsGame(t *testing.T) {
	b := newTestBoard(t, 6)
	require.NoError(t, b.BeginGame())

	liberal := findRole(t, b, engine.RoleLiberal)
	require.NoError(t, b.EliminatePlayer(liberal))
	assert.Equal(t, engine.SideNone, b.Winner())

	require.NoError(t, b.EliminatePlayer(findRole(t, b, engine.RoleHitler)))
	assert.Equal(t, engine.SideLiberal, b.Winner())
	assert.Equal(t, engine.OutcomeHitlerExecuted, b.Outcome())

	err := b.EliminatePlayer(b.Players()[0])
	require.ErrorIs(t, err, engine.ErrGameOver)
	assert.True(t, errors.Is(err, engine.ErrGameOver))
}

func TestPeekThree(t *testing.T) {
	F := engine.TileFascist
	b := newTestBoard(t, 5, engine.WithTiles(fascistRun()))

	_, err := b.PeekThree()
	require.ErrorIs(t, err, engine.ErrPowerUnavailable)

	require.NoError(t, b.BeginGame())
	for i := 0; i < 2; i++ {
		enactFascist(t, b)
		_, err := b.PeekThree()
		require.ErrorIs(t, err, engine.ErrPowerUnavailable)
	}
	enactFascist(t, b)
	require.Equal(t, engine.PowerPolicyPeek, b.CurrentPresidentialPower())

	before := b.TileCounts()
	tiles, err := b.PeekThree()
	require.NoError(t, err)
	assert.Equal(t, []engine.Tile{F, F, F}, tiles)
	assert.Equal(t, before, b.TileCounts())

	require.NoError(t, b.DrawThree())
	assert.Equal(t, tiles, b.DrawnTiles())
}

func TestPeekThreeAfterGameOver(t *testing.T) {
	b := newTestBoard(t, 5, engine.WithTiles(fascistRun()))
	require.NoError(t, b.BeginGame())
	for i := 0; i < 3; i++ {
		enactFascist(t, b)
	}
	require.NoError(t, b.EliminatePlayer(findRole(t, b, engine.RoleHitler)))
	require.Equal(t, engine.SideLiberal, b.Winner())

	_, err := b.PeekThree()
	require.ErrorIs(t, err, engine.ErrGameOver)
}
