package engine

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine failures. All kinds are caller or invariant
// violations; none is retriable.
type ErrorKind int

const (
	KindDuplicateName ErrorKind = iota + 1
	KindUnknownPlayer
	KindInvalidPlayerCount
	KindUnknownTile
	KindInsufficientTiles
	KindGameStarted
	KindGameOver
	KindNoNominee
	KindNoPlayers
	KindPowerUnavailable
)

var kindCodes = map[ErrorKind]string{
	KindDuplicateName:      "DUPLICATE_NAME",
	KindUnknownPlayer:      "UNKNOWN_PLAYER",
	KindInvalidPlayerCount: "INVALID_PLAYER_COUNT",
	KindUnknownTile:        "UNKNOWN_TILE",
	KindInsufficientTiles:  "INSUFFICIENT_TILES",
	KindGameStarted:        "GAME_STARTED",
	KindGameOver:           "GAME_OVER",
	KindNoNominee:          "NO_NOMINEE",
	KindNoPlayers:          "NO_PLAYERS",
	KindPowerUnavailable:   "POWER_UNAVAILABLE",
}

// Code returns the machine-readable wire code for the kind.
func (k ErrorKind) Code() string {
	if s, ok := kindCodes[k]; ok {
		return s
	}
	return "UNKNOWN"
}

func (k ErrorKind) String() string { return k.Code() }

// Error is the single engine error type. Value carries the offending
// name, tile or count.
type Error struct {
	Kind  ErrorKind
	Value any
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindDuplicateName:
		return fmt.Sprintf("duplicate name not allowed: %v", e.Value)
	case KindUnknownPlayer:
		return fmt.Sprintf("nonexistent player: %v", e.Value)
	case KindInvalidPlayerCount:
		return fmt.Sprintf("invalid number of players %v (min %d, max %d)", e.Value, MinPlayers, MaxPlayers)
	case KindUnknownTile:
		return fmt.Sprintf("cannot discard tile not in drawn set: %v", e.Value)
	case KindInsufficientTiles:
		return fmt.Sprintf("insufficient tiles to draw: %v available", e.Value)
	case KindGameStarted:
		return "game already started"
	case KindGameOver:
		return fmt.Sprintf("game is over: %v won", e.Value)
	case KindNoNominee:
		return "no chancellor nominated"
	case KindNoPlayers:
		return "no active players"
	case KindPowerUnavailable:
		return fmt.Sprintf("presidential power not available: %v", e.Value)
	default:
		return "engine error"
	}
}

// Is matches any *Error of the same kind, so sentinels compare by kind
// regardless of payload.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind ErrorKind, value any) *Error {
	return &Error{Kind: kind, Value: value}
}

var (
	ErrDuplicateName      = &Error{Kind: KindDuplicateName}
	ErrUnknownPlayer      = &Error{Kind: KindUnknownPlayer}
	ErrInvalidPlayerCount = &Error{Kind: KindInvalidPlayerCount}
	ErrUnknownTile        = &Error{Kind: KindUnknownTile}
	ErrInsufficientTiles  = &Error{Kind: KindInsufficientTiles}
	ErrGameStarted        = &Error{Kind: KindGameStarted}
	ErrGameOver           = &Error{Kind: KindGameOver}
	ErrNoNominee          = &Error{Kind: KindNoNominee}
	ErrNoPlayers          = &Error{Kind: KindNoPlayers}
	ErrPowerUnavailable   = &Error{Kind: KindPowerUnavailable}
)

// KindOf returns the kind of an engine error, or 0 for foreign errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
