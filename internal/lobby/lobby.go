package lobby

import (
	"errors"
	"sync"

	"secrethitler/internal/engine"
)

var (
	ErrStarted     = errors.New("game already started")
	ErrFull        = errors.New("lobby is full")
	ErrNotSeated   = errors.New("not seated")
	ErrNotEnough   = errors.New("not enough players")
	ErrNotAllReady = errors.New("not all players ready")
)

// Seat binds a client session to a player name.
type Seat struct {
	SessionID string
	Name      string
	Ready     bool
}

// Lobby tracks who is seated before the game starts. Name uniqueness is
// left to the board.
type Lobby struct {
	mu         sync.Mutex
	seats      []*Seat
	MaxPlayers int
	MinPlayers int
	Started    bool
}

// New creates an empty lobby sized for the supported player counts.
func New() *Lobby {
	return &Lobby{
		MaxPlayers: engine.MaxPlayers,
		MinPlayers: engine.MinPlayers,
	}
}

// Join seats a session under name. A session that is already seated keeps
// its original name and rejoined is true.
func (l *Lobby) Join(sessionID, name string) (rejoined bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, s := range l.seats {
		if s.SessionID == sessionID {
			return true, nil
		}
	}
	if l.Started {
		return false, ErrStarted
	}
	if len(l.seats) >= l.MaxPlayers {
		return false, ErrFull
	}
	l.seats = append(l.seats, &Seat{SessionID: sessionID, Name: name})
	return false, nil
}

// Leave removes a session's seat. Only valid before the game starts.
func (l *Lobby) Leave(sessionID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return
	}
	for i, s := range l.seats {
		if s.SessionID == sessionID {
			l.seats = append(l.seats[:i], l.seats[i+1:]...)
			return
		}
	}
}

// NameOf returns the player name seated for a session.
func (l *Lobby) NameOf(sessionID string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, s := range l.seats {
		if s.SessionID == sessionID {
			return s.Name, true
		}
	}
	return "", false
}

// SetReady sets a seated player's ready state.
func (l *Lobby) SetReady(sessionID string, ready bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, s := range l.seats {
		if s.SessionID == sessionID {
			s.Ready = ready
			return nil
		}
	}
	return ErrNotSeated
}

// CanStart returns nil if enough players are seated and all are ready.
func (l *Lobby) CanStart() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.canStart()
}

func (l *Lobby) canStart() error {
	if l.Started {
		return ErrStarted
	}
	if len(l.seats) < l.MinPlayers {
		return ErrNotEnough
	}
	for _, s := range l.seats {
		if !s.Ready {
			return ErrNotAllReady
		}
	}
	return nil
}

// Start marks the lobby as started.
func (l *Lobby) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.canStart(); err != nil {
		return err
	}
	l.Started = true
	return nil
}

// Seats returns a copy of the seating list.
func (l *Lobby) Seats() []Seat {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Seat, len(l.seats))
	for i, s := range l.seats {
		out[i] = *s
	}
	return out
}
