package ecs

import (
	"errors"
	"fmt"
)

// ErrHierarchyCycle is returned when attaching would make an entity its own
// ancestor.
var ErrHierarchyCycle = errors.New("ecs: hierarchy cycle")

// AttachChildren parents children under parent in the given order. A child
// that already has a parent is moved.
func AttachChildren(w *World, parent Entity, children ...Entity) error {
	if !IsAlive(w, parent) {
		return fmt.Errorf("attach to %s: %w", parent, ErrEntityNotAlive)
	}
	for _, child := range children {
		if !IsAlive(w, child) {
			return fmt.Errorf("attach %s: %w", child, ErrEntityNotAlive)
		}
		if child == parent || isAncestor(w, child, parent) {
			return fmt.Errorf("attach %s under %s: %w", child, parent, ErrHierarchyCycle)
		}
	}
	for _, child := range children {
		detach(w, child)
		w.parents[child] = parent
		w.children[parent] = append(w.children[parent], child)
	}
	return nil
}

// Children returns a copy of e's children in attach order.
func Children(w *World, e Entity) []Entity {
	if w == nil {
		return nil
	}
	kids := w.children[e]
	if len(kids) == 0 {
		return nil
	}
	return append([]Entity(nil), kids...)
}

// Parent returns e's parent, if any.
func Parent(w *World, e Entity) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	p, ok := w.parents[e]
	return p, ok
}

func isAncestor(w *World, candidate, e Entity) bool {
	for {
		p, ok := w.parents[e]
		if !ok {
			return false
		}
		if p == candidate {
			return true
		}
		e = p
	}
}

func detach(w *World, child Entity) {
	parent, ok := w.parents[child]
	if !ok {
		return
	}
	delete(w.parents, child)
	kids := w.children[parent]
	for i, k := range kids {
		if k == child {
			kids = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	if len(kids) == 0 {
		delete(w.children, parent)
		return
	}
	w.children[parent] = kids
}
