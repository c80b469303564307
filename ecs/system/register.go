package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/character2d/atlas"
	"github.com/milk9111/character2d/ecs"
	"github.com/milk9111/character2d/prefabs"
)

// CharacterSystems is everything the character pipeline needs from its
// host.
type CharacterSystems struct {
	Library    *prefabs.Library
	Atlases    atlas.Provider
	Logger     *log.Logger
	LoadScript func(name string) ([]byte, error)
}

// RegisterCharacterSystems wires the pipeline into s: scripted requests and
// assembly in StageUpdate, the layer sync in StageSync, frame advance in
// StageAdvance. The stage barrier guarantees every layer sees this tick's
// request before any clock moves.
func RegisterCharacterSystems(s *ecs.Scheduler, cfg CharacterSystems) {
	s.Add(ecs.StageUpdate, NewAnimationDirectorSystem(cfg.LoadScript, cfg.Logger))
	s.Add(ecs.StageUpdate, NewCharacterAssemblySystem(cfg.Library, cfg.Atlases, cfg.Logger))
	s.Add(ecs.StageSync, NewAnimationSyncSystem())
	s.Add(ecs.StageAdvance, NewAnimationSystem(cfg.Logger))
	s.Add(ecs.StageAdvance, NewSingleAnimationSystem(cfg.Logger))
}
