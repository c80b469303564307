package ecs

import "time"

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) {
	f(w)
}

// Stage is one barrier-separated phase of a tick. Every system of a stage
// finishes its pass over all entities before any system of the next stage
// runs.
type Stage int

const (
	// StageUpdate runs gameplay and construction work.
	StageUpdate Stage = iota
	// StageSync propagates requests that StageAdvance must observe.
	StageSync
	// StageAdvance moves clocks forward and resolves frames.
	StageAdvance

	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageUpdate:
		return "update"
	case StageSync:
		return "sync"
	case StageAdvance:
		return "advance"
	default:
		return "unknown"
	}
}

type Scheduler struct {
	stages [stageCount][]System
}

// NewScheduler creates a scheduler with systems registered in StageUpdate.
func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(StageUpdate, system)
	}
	return s
}

func (s *Scheduler) Add(stage Stage, system System) {
	if s == nil || system == nil || stage < 0 || stage >= stageCount {
		return
	}
	s.stages[stage] = append(s.stages[stage], system)
}

// Tick advances the world clock by dt and runs every stage in order. Events
// left over from the previous tick are dropped first.
func (s *Scheduler) Tick(w *World, dt time.Duration) {
	if s == nil || w == nil {
		return
	}
	w.events.flush()
	w.advance(dt)
	for _, systems := range s.stages {
		for _, system := range systems {
			system.Update(w)
		}
	}
}

func (s *Scheduler) Systems(stage Stage) []System {
	if s == nil || stage < 0 || stage >= stageCount {
		return nil
	}
	systems := make([]System, 0, len(s.stages[stage]))
	return append(systems, s.stages[stage]...)
}
