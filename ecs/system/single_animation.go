package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/character2d/ecs"
	"github.com/milk9111/character2d/ecs/component"
	"github.com/milk9111/character2d/logging"
)

// SingleAnimationSystem cycles standalone sprites. An entity without a
// FrameClock gets one on its first tick, built from its frame duration.
type SingleAnimationSystem struct {
	log   *log.Logger
	empty map[ecs.Entity]struct{}
}

func NewSingleAnimationSystem(logger *log.Logger) *SingleAnimationSystem {
	return &SingleAnimationSystem{log: logging.Or(logger), empty: make(map[ecs.Entity]struct{})}
}

func (s *SingleAnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Time().Delta
	ecs.ForEach2(w, component.SingleAnimationComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, anim *component.SingleAnimation, sprite *component.Sprite) {
		clock, ok := ecs.Get(w, e, component.FrameClockComponent.Kind())
		if !ok {
			fresh := component.NewFrameClock(anim.Period())
			clock = &fresh
			if err := ecs.Add(w, e, component.FrameClockComponent.Kind(), clock); err != nil {
				s.log.Error("attach frame clock", "entity", e, "err", err)
				return
			}
		}
		if !clock.Advance(dt) {
			return
		}
		next, ok := anim.Step(sprite.Index)
		if !ok {
			if _, seen := s.empty[e]; !seen {
				s.empty[e] = struct{}{}
				s.log.Warn("sprite animation has no frames", "entity", e)
			}
			return
		}
		sprite.Index = next
	})
}
