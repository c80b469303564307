package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/character2d/ecs"
	"github.com/milk9111/character2d/ecs/component"
	"github.com/milk9111/character2d/logging"
)

// EventAnimationResolution is raised for every fire that did not take the
// normal path.
const EventAnimationResolution = "animation.resolution"

type AnimationResolvedEvent struct {
	Entity     ecs.Entity
	Resolution component.Resolution
}

// AnimationSystem advances every MultiAnimation by the tick delta and
// writes resolved frames into the entity's Sprite.
type AnimationSystem struct {
	log *log.Logger
}

func NewAnimationSystem(logger *log.Logger) *AnimationSystem {
	return &AnimationSystem{log: logging.Or(logger)}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Time().Delta
	ecs.ForEach(w, component.MultiAnimationComponent.Kind(), func(e ecs.Entity, anim *component.MultiAnimation) {
		res := anim.Tick(dt)
		if !res.Fired() {
			return
		}
		if res.HasFrame() {
			if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
				sprite.Index = res.Frame
			}
		}
		if res.Kind == component.Resolved {
			return
		}
		w.Events().Push(ecs.Event{Type: EventAnimationResolution, Data: AnimationResolvedEvent{Entity: e, Resolution: res}})
		if res.Notify {
			a.diagnose(w, e, anim, res)
		}
	})
}

func (a *AnimationSystem) diagnose(w *ecs.World, e ecs.Entity, anim *component.MultiAnimation, res component.Resolution) {
	fields := []any{"entity", e, "track", res.Track}
	if parent, ok := ecs.Parent(w, e); ok {
		if ch, ok := ecs.Get(w, parent, component.CharacterComponent.Kind()); ok {
			fields = append(fields, "character", ch.InstanceID)
		}
	}

	switch res.Kind {
	case component.FellBackToDefault:
		a.log.Warn("animation does not exist for sprite, falling back to default", fields...)
	case component.PinnedToZero:
		if anim.HasTrack(res.Track) {
			a.log.Warn("animation has no frames, showing frame 0", fields...)
			return
		}
		a.log.Warn("animation does not exist for sprite and there is no default, showing frame 0", fields...)
	case component.Clamped:
		a.log.Warn("animation cursor out of bounds, restarting track", fields...)
	}
}
