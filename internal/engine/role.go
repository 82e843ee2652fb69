package engine

// Role is a player's secret identity.
type Role int

const (
	RoleUnassigned Role = iota
	RoleLiberal
	RoleFascist
	RoleHitler
)

var roleNames = map[Role]string{
	RoleUnassigned: "Unassigned",
	RoleLiberal:    "Liberal",
	RoleFascist:    "Fascist",
	RoleHitler:     "Hitler",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "Unknown"
}

// PresidentialPower is the special action unlocked on the fascist track.
type PresidentialPower int

const (
	PowerNone PresidentialPower = iota
	PowerInvestigateLoyalty
	PowerCallSpecialElection
	PowerPolicyPeek
	PowerExecution
)

var powerNames = map[PresidentialPower]string{
	PowerNone:                "None",
	PowerInvestigateLoyalty:  "InvestigateLoyalty",
	PowerCallSpecialElection: "CallSpecialElection",
	PowerPolicyPeek:          "PolicyPeek",
	PowerExecution:           "Execution",
}

func (p PresidentialPower) String() string {
	if s, ok := powerNames[p]; ok {
		return s
	}
	return "Unknown"
}

// Side identifies a winning team.
type Side int

const (
	SideNone Side = iota
	SideLiberal
	SideFascist
)

var sideNames = map[Side]string{
	SideNone:    "",
	SideLiberal: "Liberal",
	SideFascist: "Fascist",
}

func (s Side) String() string {
	if n, ok := sideNames[s]; ok {
		return n
	}
	return "Unknown"
}
