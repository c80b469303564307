package ecs

// entityStore hands out entity slots and recycles them with a bumped
// epoch so stale handles stop resolving.
type entityStore struct {
	epochs []epoch
	alive  []bool
	free   []slotIndex
	live   int
}

func (s *entityStore) create() Entity {
	var id slotIndex
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.epochs = append(s.epochs, 0)
		s.alive = append(s.alive, false)
		id = slotIndex(len(s.epochs))
	}
	s.alive[id-1] = true
	s.live++
	return packEntity(id, s.epochs[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.slot() - 1
	s.alive[idx] = false
	s.epochs[idx]++
	s.free = append(s.free, e.slot())
	s.live--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.slot()
	if id == 0 || int(id) > len(s.epochs) {
		return false
	}
	return s.alive[id-1] && s.epochs[id-1] == e.epoch()
}

func (s *entityStore) list() []Entity {
	out := make([]Entity, 0, s.live)
	for i, ok := range s.alive {
		if ok {
			out = append(out, packEntity(slotIndex(i+1), s.epochs[i]))
		}
	}
	return out
}
