package ecs

// store is the type-erased view the world keeps of every component table so
// destroying an entity can strip it from all of them.
type store interface {
	has(e Entity) bool
	remove(e Entity) bool
}

// sparseSet keeps components densely packed and indexed by entity slot.
type sparseSet[T any] struct {
	dense  []Entity
	values []*T
	sparse []int
}

func newSparseSet[T any]() *sparseSet[T] {
	return &sparseSet[T]{}
}

func (s *sparseSet[T]) has(e Entity) bool {
	id := int(e.slot())
	if id <= 0 || id-1 >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.dense) && s.dense[idx] == e
}

func (s *sparseSet[T]) get(e Entity) (*T, bool) {
	if !s.has(e) {
		return nil, false
	}
	return s.values[s.sparse[int(e.slot())-1]], true
}

func (s *sparseSet[T]) set(e Entity, v *T) {
	id := int(e.slot())
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	if s.has(e) {
		s.values[s.sparse[id-1]] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
}

func (s *sparseSet[T]) remove(e Entity) bool {
	if !s.has(e) {
		return false
	}
	id := int(e.slot())
	idx := s.sparse[id-1]
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[int(moved.slot())-1] = idx

	s.dense[last] = 0
	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[id-1] = -1
	return true
}

// snapshot copies the dense entity list so callers may mutate the world
// while iterating.
func (s *sparseSet[T]) snapshot() []Entity {
	if s == nil || len(s.dense) == 0 {
		return nil
	}
	return append([]Entity(nil), s.dense...)
}

func (s *sparseSet[T]) len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}
