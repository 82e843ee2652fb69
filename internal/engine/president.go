package engine

// president returns the current president, or nil with no active players.
func (b *Board) president() *Player {
	if len(b.roster.active) == 0 {
		return nil
	}
	return b.roster.active[b.presidentIdx]
}

// President returns the current president, or nil with no active players.
func (b *Board) President() *Player {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.president()
}

// AdvancePresident passes the presidency to the next active seat. The seat
// count is read from the live roster so eliminations are accounted for.
// Eligibility rules beyond seat order belong to the election layer.
func (b *Board) AdvancePresident() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkNotOver(); err != nil {
		return err
	}
	n := len(b.roster.active)
	if n == 0 {
		return newError(KindNoPlayers, 0)
	}
	b.prevPresident = b.president()
	b.presidentIdx = (b.presidentIdx + 1) % n
	b.dirty.mark(FieldPresident, FieldPreviousPresident)
	return nil
}

// CurrentPresidentialPower returns the power unlocked by the latest
// enactment, or PowerNone if it was not fascist.
func (b *Board) CurrentPresidentialPower() PresidentialPower {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentPower()
}

func (b *Board) currentPower() PresidentialPower {
	if !b.hasLatest || b.latestPolicy != TileFascist || b.fascistProgress == 0 {
		return PowerNone
	}
	if b.fascistProgress > len(b.powers) {
		return PowerNone
	}
	return b.powers[b.fascistProgress-1]
}

// NominateChancellor records the president's nominee. Vote counting and
// term limits are decided by the caller.
func (b *Board) NominateChancellor(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkNotOver(); err != nil {
		return err
	}
	p, err := b.roster.get(name)
	if err != nil {
		return err
	}
	b.nominee = p
	b.dirty.mark(FieldNominatedChancellor)
	return nil
}

// InstallChancellor puts the nominee in office after a successful vote.
// Electing Hitler once the fascist track reaches the threshold ends the
// game.
func (b *Board) InstallChancellor() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkNotOver(); err != nil {
		return err
	}
	if b.nominee == nil {
		return newError(KindNoNominee, nil)
	}
	b.prevChancellor = b.chancellor
	b.chancellor = b.nominee
	b.nominee = nil
	b.dirty.mark(FieldChancellor, FieldPreviousChancellor, FieldNominatedChancellor)

	if b.chancellor.Role == RoleHitler && b.fascistProgress >= HitlerChancellorThreshold {
		b.forced = OutcomeHitlerElected
		b.dirty.mark(FieldWinner)
	}
	return nil
}

// EliminatePlayer removes an active player from the seating order, keeping
// the presidency with the same player where possible. Eliminating Hitler
// ends the game.
func (b *Board) EliminatePlayer(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkNotOver(); err != nil {
		return err
	}
	i := b.roster.index(name)
	if i < 0 {
		return newError(KindUnknownPlayer, name)
	}
	p := b.roster.remove(i)

	switch {
	case i < b.presidentIdx:
		b.presidentIdx--
	case b.presidentIdx >= len(b.roster.active):
		b.presidentIdx = 0
	}
	if b.nominee == p {
		b.nominee = nil
		b.dirty.mark(FieldNominatedChancellor)
	}
	b.dirty.mark(FieldPlayers, FieldEliminatedPlayers, FieldPresident)

	if p.Role == RoleHitler {
		b.forced = OutcomeHitlerExecuted
		b.dirty.mark(FieldWinner)
	}
	return nil
}
