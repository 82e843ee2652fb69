package engine

const (
	MinPlayers = 5
	MaxPlayers = 10

	LiberalWinningProgress = 5
	FascistWinningProgress = 6

	// HitlerChancellorThreshold is the fascist progress from which electing
	// Hitler as chancellor ends the game.
	HitlerChancellorThreshold = 3
)

// BoardConfig holds the setup for one supported player count.
type BoardConfig struct {
	Liberals int
	Fascists int                 // excluding Hitler
	Powers   []PresidentialPower // one slot per fascist track position
}

var boardConfigs = map[int]BoardConfig{
	5: {3, 1, []PresidentialPower{PowerNone, PowerNone, PowerPolicyPeek, PowerExecution, PowerExecution, PowerNone}},
	6: {4, 1, []PresidentialPower{PowerNone, PowerNone, PowerPolicyPeek, PowerExecution, PowerExecution, PowerNone}},
	7: {4, 2, []PresidentialPower{PowerNone, PowerInvestigateLoyalty, PowerCallSpecialElection, PowerExecution, PowerExecution, PowerNone}},
	8: {5, 2, []PresidentialPower{PowerNone, PowerInvestigateLoyalty, PowerCallSpecialElection, PowerExecution, PowerExecution, PowerNone}},
	9: {5, 3, []PresidentialPower{PowerInvestigateLoyalty, PowerInvestigateLoyalty, PowerCallSpecialElection, PowerExecution, PowerExecution, PowerNone}},
	10: {6, 3, []PresidentialPower{PowerInvestigateLoyalty, PowerInvestigateLoyalty, PowerCallSpecialElection, PowerExecution, PowerExecution, PowerNone}},
}

// ConfigFor returns the board setup for numPlayers. The returned power
// track is a copy.
func ConfigFor(numPlayers int) (BoardConfig, bool) {
	c, ok := boardConfigs[numPlayers]
	if !ok {
		return BoardConfig{}, false
	}
	powers := make([]PresidentialPower, len(c.Powers))
	copy(powers, c.Powers)
	c.Powers = powers
	return c, true
}

// Roles returns the unshuffled role multiset: liberals, fascists, one Hitler.
func (c BoardConfig) Roles() []Role {
	roles := make([]Role, 0, c.Liberals+c.Fascists+1)
	for i := 0; i < c.Liberals; i++ {
		roles = append(roles, RoleLiberal)
	}
	for i := 0; i < c.Fascists; i++ {
		roles = append(roles, RoleFascist)
	}
	return append(roles, RoleHitler)
}
