package engine

// GamePhase is the coarse lifecycle state of a board.
type GamePhase int

const (
	PhaseLobby    GamePhase = iota // accepting players
	PhaseInGame                    // roles assigned, legislating
	PhaseGameOver                  // a side has won
)

var phaseNames = map[GamePhase]string{
	PhaseLobby:    "Lobby",
	PhaseInGame:   "InGame",
	PhaseGameOver: "GameOver",
}

func (p GamePhase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}

// Outcome explains how a game ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeLiberalPolicies
	OutcomeFascistPolicies
	OutcomeHitlerElected
	OutcomeHitlerExecuted
)

var outcomeNames = map[Outcome]string{
	OutcomeNone:            "",
	OutcomeLiberalPolicies: "LiberalPolicies",
	OutcomeFascistPolicies: "FascistPolicies",
	OutcomeHitlerElected:   "HitlerElected",
	OutcomeHitlerExecuted:  "HitlerExecuted",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return "Unknown"
}

// Side returns the winning side for the outcome.
func (o Outcome) Side() Side {
	switch o {
	case OutcomeLiberalPolicies, OutcomeHitlerExecuted:
		return SideLiberal
	case OutcomeFascistPolicies, OutcomeHitlerElected:
		return SideFascist
	default:
		return SideNone
	}
}
