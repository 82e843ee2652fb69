package engine

// Winner evaluates the policy tracks. Exact thresholds only: progress never
// exceeds them in play, so anything else is no winner.
func Winner(liberalProgress, fascistProgress int) Side {
	return policyOutcome(liberalProgress, fascistProgress).Side()
}

func policyOutcome(liberalProgress, fascistProgress int) Outcome {
	if liberalProgress == LiberalWinningProgress {
		return OutcomeLiberalPolicies
	}
	if fascistProgress == FascistWinningProgress {
		return OutcomeFascistPolicies
	}
	return OutcomeNone
}

// outcome prefers an ending forced through a hook over the policy tracks.
func (b *Board) outcome() Outcome {
	if b.forced != OutcomeNone {
		return b.forced
	}
	return policyOutcome(b.liberalProgress, b.fascistProgress)
}

func (b *Board) winner() Side {
	return b.outcome().Side()
}

// Winner returns the winning side, or SideNone while the game is running.
func (b *Board) Winner() Side {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.winner()
}

// Outcome reports how the game ended, or OutcomeNone.
func (b *Board) Outcome() Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.outcome()
}

func (b *Board) checkNotOver() error {
	if w := b.winner(); w != SideNone {
		return newError(KindGameOver, w)
	}
	return nil
}
