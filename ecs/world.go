package ecs

import (
	"time"

	"github.com/milk9111/character2d/ecs/component"
)

var (
	ErrEntityNotAlive       = component.ErrEntityNotAlive
	ErrNilComponent         = component.ErrNilComponent
	ErrInvalidComponentKind = component.ErrInvalidComponentKind
)

// Time is the tick clock the scheduler maintains on a world.
type Time struct {
	Delta   time.Duration
	Elapsed time.Duration
	Frame   uint64
}

// World owns entities, component tables, the parent/child graph and the
// per-tick event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	parents  map[Entity]Entity
	children map[Entity][]Entity
	events   EventQueue
	time     Time
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:   make(map[component.ComponentID]store),
		parents:  make(map[Entity]Entity),
		children: make(map[Entity][]Entity),
	}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity destroys e together with all of its descendants and strips
// their components. It reports whether e was alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, child := range Children(w, e) {
		DestroyEntity(w, child)
	}
	delete(w.children, e)
	detach(w, e)
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities lists every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.list()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Time returns the clock of the tick in progress (or the last one).
func (w *World) Time() Time {
	if w == nil {
		return Time{}
	}
	return w.time
}

func (w *World) advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	w.time.Delta = dt
	w.time.Elapsed += dt
	w.time.Frame++
}
