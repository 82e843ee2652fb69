package protocol

// Message types: Server → Client
const (
	MsgLobbyUpdate = "lobby_update"
	MsgFullState   = "full_state"
	MsgStateDelta  = "state_delta"
	MsgPower       = "power"
	MsgPeekResult  = "peek_result"
	MsgGameOver    = "game_over"
	MsgError       = "error"
)

// Message types: Client → Server
const (
	MsgJoin              = "join"
	MsgReady             = "ready"
	MsgStartGame         = "start_game"
	MsgDrawThree         = "draw_three"
	MsgDiscard           = "discard"
	MsgAdvancePresident  = "advance_president"
	MsgNominate          = "nominate"
	MsgInstallChancellor = "install_chancellor"
	MsgEliminate         = "eliminate"
	MsgPeek              = "peek"
)

// LobbyUpdate is sent to all clients when seating changes.
type LobbyUpdate struct {
	Players []LobbyPlayer `json:"players"`
	Started bool          `json:"started"`
}

type LobbyPlayer struct {
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
}

// JoinMsg is sent by a client to take a seat.
type JoinMsg struct {
	Name string `json:"name"`
}

// ReadyMsg is sent by a player to toggle ready state.
type ReadyMsg struct {
	Ready bool `json:"ready"`
}

// DiscardMsg names the kind of tile to discard.
type DiscardMsg struct {
	Tile string `json:"tile"`
}

// TargetMsg names a player for nominate and eliminate.
type TargetMsg struct {
	Name string `json:"name"`
}

// PowerMsg announces a presidential power unlocked by the latest policy.
type PowerMsg struct {
	Power     string `json:"power"`
	President string `json:"president"`
}

// PeekResult carries the next three tile kinds to the requester only.
type PeekResult struct {
	Tiles []string `json:"tiles"`
}

// GameOver is broadcast once a side wins.
type GameOver struct {
	Winner  string `json:"winner"`
	Outcome string `json:"outcome"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
