package engine

// Player holds one player's identity. Role is secret and never leaves the
// engine through the state channel.
type Player struct {
	ID   int
	Name string
	Role Role
}

// roster owns the active players in seating order and the eliminated set.
type roster struct {
	active     []*Player
	eliminated []*Player
}

// has reports whether name is taken by an active or eliminated player.
func (r *roster) has(name string) bool {
	for _, p := range r.active {
		if p.Name == name {
			return true
		}
	}
	for _, p := range r.eliminated {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (r *roster) add(name string) (*Player, error) {
	if r.has(name) {
		return nil, newError(KindDuplicateName, name)
	}
	p := &Player{ID: len(r.active), Name: name}
	r.active = append(r.active, p)
	return p, nil
}

// index returns the seat of the active player with name, or -1.
func (r *roster) index(name string) int {
	for i, p := range r.active {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func (r *roster) get(name string) (*Player, error) {
	i := r.index(name)
	if i < 0 {
		return nil, newError(KindUnknownPlayer, name)
	}
	return r.active[i], nil
}

// remove moves the active player at seat i to the eliminated set.
func (r *roster) remove(i int) *Player {
	p := r.active[i]
	r.active = append(r.active[:i], r.active[i+1:]...)
	r.eliminated = append(r.eliminated, p)
	return p
}

func playerNames(players []*Player) []string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return names
}

func nameOf(p *Player) string {
	if p == nil {
		return ""
	}
	return p.Name
}
