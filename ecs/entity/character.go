package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/character2d/atlas"
	"github.com/milk9111/character2d/ecs"
	"github.com/milk9111/character2d/ecs/component"
	"github.com/milk9111/character2d/prefabs"
)

// CharacterOptions customises a spawned character root. Zero values pick
// the defaults: the "default" animation, a 100ms frame period and the
// origin.
type CharacterOptions struct {
	Animation   string
	FramePeriod time.Duration
	Transform   component.Transform
	Script      string
}

// SpawnCharacter creates a character root. Its layers are built later by
// the assembly system once the descriptor behind spec has loaded.
func SpawnCharacter(w *ecs.World, spec prefabs.CharacterHandle, opts CharacterOptions) (ecs.Entity, error) {
	if opts.Animation == "" {
		opts.Animation = component.DefaultTrack
	}
	if opts.FramePeriod <= 0 {
		opts.FramePeriod = component.DefaultFramePeriod
	}

	e := ecs.CreateEntity(w)
	clock := component.NewFrameClock(opts.FramePeriod)
	transform := opts.Transform

	steps := []func() error{
		func() error {
			return ecs.Add(w, e, component.CharacterComponent.Kind(), &component.Character{Spec: spec, InstanceID: uuid.New()})
		},
		func() error {
			return ecs.Add(w, e, component.AnimationRequestComponent.Kind(), &component.AnimationRequest{Name: opts.Animation})
		},
		func() error { return ecs.Add(w, e, component.FrameClockComponent.Kind(), &clock) },
		func() error { return ecs.Add(w, e, component.TransformComponent.Kind(), &transform) },
	}
	if opts.Script != "" {
		steps = append(steps, func() error {
			return ecs.Add(w, e, component.AnimationScriptComponent.Kind(), &component.AnimationScript{Path: opts.Script})
		})
	}
	if err := runSteps(steps); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("character: spawn %s: %w", spec, err)
	}
	return e, nil
}

// LayerOptions describes one composited layer of a character.
type LayerOptions struct {
	Atlas     atlas.Handle
	Offset    prefabs.Vec3
	Animation *component.MultiAnimation
	Index     int
}

// SpawnCharacterLayer creates an unparented layer entity.
func SpawnCharacterLayer(w *ecs.World, opts LayerOptions) (ecs.Entity, error) {
	if opts.Animation == nil {
		return 0, fmt.Errorf("character: layer %d: %w", opts.Index, ecs.ErrNilComponent)
	}
	e := ecs.CreateEntity(w)
	err := runSteps([]func() error{
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: opts.Offset.X, Y: opts.Offset.Y, Z: opts.Offset.Z})
		},
		func() error { return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Atlas: opts.Atlas}) },
		func() error { return ecs.Add(w, e, component.MultiAnimationComponent.Kind(), opts.Animation) },
		func() error { return ecs.Add(w, e, component.CharacterLayerComponent.Kind(), &component.CharacterLayer{}) },
		func() error { return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: opts.Index}) },
	})
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("character: layer %d: %w", opts.Index, err)
	}
	return e, nil
}

// runSteps runs steps in order and stops at the first error.
func runSteps(steps []func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
