package system

import (
	"github.com/milk9111/character2d/ecs"
	"github.com/milk9111/character2d/ecs/component"
)

// AnimationSyncSystem copies each character's AnimationRequest onto every
// layer child. A layer without the requested track is asked for the
// default track instead.
type AnimationSyncSystem struct{}

func NewAnimationSyncSystem() *AnimationSyncSystem {
	return &AnimationSyncSystem{}
}

func (s *AnimationSyncSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.AnimationRequestComponent.Kind(), func(e ecs.Entity, _ *component.Character, req *component.AnimationRequest) {
		for _, child := range ecs.Children(w, e) {
			if !ecs.Has(w, child, component.CharacterLayerComponent.Kind()) {
				continue
			}
			anim, ok := ecs.Get(w, child, component.MultiAnimationComponent.Kind())
			if !ok {
				continue
			}
			syncLayer(anim, req.Name)
		}
	})
}

func syncLayer(anim *component.MultiAnimation, name string) bool {
	if anim.HasTrack(name) {
		return anim.Request(name)
	}
	return anim.Request(component.DefaultTrack)
}
