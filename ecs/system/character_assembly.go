package system

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/milk9111/character2d/atlas"
	"github.com/milk9111/character2d/ecs"
	"github.com/milk9111/character2d/ecs/component"
	"github.com/milk9111/character2d/ecs/entity"
	"github.com/milk9111/character2d/logging"
	"github.com/milk9111/character2d/prefabs"
)

// CharacterAssemblySystem builds the layer children of every character root
// that is not yet Assembled. Roots whose descriptor is still loading, or
// whose atlases fail to resolve, are retried on the next tick.
type CharacterAssemblySystem struct {
	library *prefabs.Library
	atlases atlas.Provider
	log     *log.Logger

	// last failure logged per root, so a stuck root logs once
	reported map[ecs.Entity]string
}

func NewCharacterAssemblySystem(library *prefabs.Library, atlases atlas.Provider, logger *log.Logger) *CharacterAssemblySystem {
	return &CharacterAssemblySystem{
		library:  library,
		atlases:  atlases,
		log:      logging.Or(logger),
		reported: make(map[ecs.Entity]string),
	}
}

func (s *CharacterAssemblySystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.library == nil || s.atlases == nil {
		return
	}
	for e := range s.reported {
		if !ecs.IsAlive(w, e) {
			delete(s.reported, e)
		}
	}

	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.AnimationRequestComponent.Kind(), func(e ecs.Entity, ch *component.Character, req *component.AnimationRequest) {
		if ecs.Has(w, e, component.AssembledComponent.Kind()) {
			return
		}
		built, err := s.assemble(w, e, ch, req)
		if err != nil {
			s.report(e, ch, err)
			return
		}
		if built {
			delete(s.reported, e)
			s.log.Debug("character assembled", "entity", e, "character", ch.InstanceID, "spec", ch.Spec)
		}
	})
}

func (s *CharacterAssemblySystem) report(e ecs.Entity, ch *component.Character, err error) {
	msg := err.Error()
	if s.reported[e] == msg {
		return
	}
	s.reported[e] = msg
	s.log.Warn("character assembly deferred", "entity", e, "character", ch.InstanceID, "spec", ch.Spec, "err", err)
}

// assemble reports whether the root was built. A descriptor that is still
// loading is neither built nor an error.
func (s *CharacterAssemblySystem) assemble(w *ecs.World, root ecs.Entity, ch *component.Character, req *component.AnimationRequest) (bool, error) {
	spec, state, err := s.library.Get(ch.Spec)
	switch state {
	case prefabs.Loading:
		return false, nil
	case prefabs.Loaded:
	default:
		return false, err
	}

	// Every atlas is resolved before the world is touched, so a failing
	// layer leaves nothing half-built behind for the retry.
	base, err := s.resolve(spec.SpriteSheet)
	if err != nil {
		return false, err
	}
	subs := make([]atlas.Handle, len(spec.Layers))
	for i, layer := range spec.Layers {
		h, err := s.resolve(layer.SpriteSheet)
		if err != nil {
			return false, fmt.Errorf("layer %d: %w", i, err)
		}
		subs[i] = h
	}

	period := component.DefaultFramePeriod
	if clock, ok := ecs.Get(w, root, component.FrameClockComponent.Kind()); ok && clock.Period > 0 {
		period = clock.Period
	}

	layers := make([]ecs.Entity, 0, 1+len(spec.Layers))
	abort := func(err error) (bool, error) {
		for _, l := range layers {
			ecs.DestroyEntity(w, l)
		}
		return false, err
	}

	baseLayer, err := entity.SpawnCharacterLayer(w, entity.LayerOptions{
		Atlas:     base,
		Animation: component.NewMultiAnimation(component.Tracks(spec.Anims).Clone(), req.Name, period),
	})
	if err != nil {
		return abort(err)
	}
	layers = append(layers, baseLayer)

	for i, layer := range spec.Layers {
		// sub-layers start on the default track and pick up the request
		// in the next sync pass
		sub, err := entity.SpawnCharacterLayer(w, entity.LayerOptions{
			Atlas:     subs[i],
			Offset:    layer.Offset,
			Animation: component.NewMultiAnimation(component.Tracks(layer.Anims).Clone(), component.DefaultTrack, period),
			Index:     i + 1,
		})
		if err != nil {
			return abort(err)
		}
		layers = append(layers, sub)
	}

	if err := ecs.AttachChildren(w, root, layers...); err != nil {
		return abort(err)
	}
	if err := ecs.Add(w, root, component.AssembledComponent.Kind(), &component.Assembled{}); err != nil {
		return abort(err)
	}
	return true, nil
}

func (s *CharacterAssemblySystem) resolve(sheet *prefabs.SpriteSheetSpec) (atlas.Handle, error) {
	grid := atlas.NewGrid(sheet.GridSize.X, sheet.GridSize.Y, sheet.Columns, sheet.Rows)
	h, err := s.atlases.Resolve(sheet.Path, grid)
	if err != nil {
		return 0, fmt.Errorf("resolve atlas %s: %w", sheet.Path, err)
	}
	return h, nil
}
