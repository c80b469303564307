package ecs

import "fmt"

// Entity is a handle into the world's slot arena.
//
//	bits 0-31   slot, 1-based; slot 0 is never handed out
//	bits 32-63  epoch of the slot when the handle was issued
//
// Destroying an entity bumps its slot's epoch, so a handle kept past its
// entity's death no longer matches and every lookup through it misses.
type Entity uint64

type slotIndex uint32
type epoch uint32

const slotBits = 32

func packEntity(slot slotIndex, ep epoch) Entity {
	return Entity(uint64(ep)<<slotBits | uint64(slot))
}

func (e Entity) slot() slotIndex {
	return slotIndex(e & (1<<slotBits - 1))
}

func (e Entity) epoch() epoch {
	return epoch(e >> slotBits)
}

// String renders as slot:epoch, e.g. "12:3".
func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.slot(), e.epoch())
}

// Valid reports whether e names a slot at all. It says nothing about
// liveness; use IsAlive for that.
func (e Entity) Valid() bool {
	return e.slot() != 0
}
