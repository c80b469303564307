package entity

import (
	"fmt"
	"time"

	"github.com/milk9111/character2d/atlas"
	"github.com/milk9111/character2d/ecs"
	"github.com/milk9111/character2d/ecs/component"
)

// SpawnAnimatedSprite creates a standalone sprite that cycles through
// frames. Pass a nil clock to have one created on its first tick.
func SpawnAnimatedSprite(w *ecs.World, h atlas.Handle, frames []uint32, frameDuration time.Duration, clock *component.FrameClock, transform component.Transform) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	steps := []func() error{
		func() error { return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Atlas: h}) },
		func() error {
			return ecs.Add(w, e, component.SingleAnimationComponent.Kind(), &component.SingleAnimation{
				Frames:        append([]uint32(nil), frames...),
				FrameDuration: frameDuration,
			})
		},
		func() error { return ecs.Add(w, e, component.TransformComponent.Kind(), &transform) },
	}
	if clock != nil {
		steps = append(steps, func() error { return ecs.Add(w, e, component.FrameClockComponent.Kind(), clock) })
	}
	if err := runSteps(steps); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("sprite: spawn: %w", err)
	}
	return e, nil
}
