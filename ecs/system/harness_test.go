package system

import (
	"fmt"
	"testing"
	"time"

	"github.com/milk9111/character2d/atlas"
	"github.com/milk9111/character2d/ecs"
	"github.com/milk9111/character2d/ecs/component"
	"github.com/milk9111/character2d/ecs/entity"
	"github.com/milk9111/character2d/logging"
	"github.com/milk9111/character2d/prefabs"
)

const testPeriod = 100 * time.Millisecond

// fakeAtlases hands out one handle per path and fails paths listed in fail.
type fakeAtlases struct {
	handles map[string]atlas.Handle
	fail    map[string]error
	calls   int
}

func newFakeAtlases() *fakeAtlases {
	return &fakeAtlases{handles: make(map[string]atlas.Handle), fail: make(map[string]error)}
}

func (f *fakeAtlases) Resolve(path string, grid atlas.Grid) (atlas.Handle, error) {
	f.calls++
	if err := f.fail[path]; err != nil {
		return 0, err
	}
	if err := grid.Validate(); err != nil {
		return 0, err
	}
	if h, ok := f.handles[path]; ok {
		return h, nil
	}
	h := atlas.Handle(len(f.handles) + 1)
	f.handles[path] = h
	return h, nil
}

func sheet(path string) *prefabs.SpriteSheetSpec {
	return &prefabs.SpriteSheetSpec{Path: path, GridSize: prefabs.Vec2{X: 8, Y: 8}, Rows: 2, Columns: 4}
}

type harness struct {
	t       *testing.T
	w       *ecs.World
	sched   *ecs.Scheduler
	lib     *prefabs.Library
	atlases *fakeAtlases
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:       t,
		w:       ecs.NewWorld(),
		sched:   ecs.NewScheduler(),
		lib:     prefabs.NewLibrary(func(name string) ([]byte, error) { return nil, fmt.Errorf("%s: not found", name) }),
		atlases: newFakeAtlases(),
	}
	RegisterCharacterSystems(h.sched, CharacterSystems{
		Library: h.lib,
		Atlases: h.atlases,
		Logger:  logging.Discard(),
		LoadScript: func(name string) ([]byte, error) {
			return nil, fmt.Errorf("%s: not found", name)
		},
	})
	return h
}

func (h *harness) insert(name string, spec *prefabs.CharacterSpec) prefabs.CharacterHandle {
	h.t.Helper()
	handle, err := h.lib.Insert(name, spec)
	if err != nil {
		h.t.Fatalf("insert %s: %v", name, err)
	}
	return handle
}

func (h *harness) spawn(spec prefabs.CharacterHandle, opts entity.CharacterOptions) ecs.Entity {
	h.t.Helper()
	if opts.FramePeriod == 0 {
		opts.FramePeriod = testPeriod
	}
	root, err := entity.SpawnCharacter(h.w, spec, opts)
	if err != nil {
		h.t.Fatalf("spawn: %v", err)
	}
	return root
}

func (h *harness) tick(dt time.Duration) {
	h.sched.Tick(h.w, dt)
}

func (h *harness) request(root ecs.Entity, name string) {
	h.t.Helper()
	req, ok := ecs.Get(h.w, root, component.AnimationRequestComponent.Kind())
	if !ok {
		h.t.Fatalf("root %v has no animation request", root)
	}
	req.Set(name)
}

// layers returns the character layers of root in descriptor order.
func (h *harness) layers(root ecs.Entity) []ecs.Entity {
	var out []ecs.Entity
	for _, child := range ecs.Children(h.w, root) {
		if ecs.Has(h.w, child, component.CharacterLayerComponent.Kind()) {
			out = append(out, child)
		}
	}
	return out
}

func (h *harness) anim(e ecs.Entity) *component.MultiAnimation {
	h.t.Helper()
	anim, ok := ecs.Get(h.w, e, component.MultiAnimationComponent.Kind())
	if !ok {
		h.t.Fatalf("entity %v has no multi animation", e)
	}
	return anim
}

func (h *harness) frame(e ecs.Entity) uint32 {
	h.t.Helper()
	sprite, ok := ecs.Get(h.w, e, component.SpriteComponent.Kind())
	if !ok {
		h.t.Fatalf("entity %v has no sprite", e)
	}
	return sprite.Index
}

func (h *harness) resolutions() []AnimationResolvedEvent {
	var out []AnimationResolvedEvent
	for _, evt := range h.w.Events().Of(EventAnimationResolution) {
		out = append(out, evt.Data.(AnimationResolvedEvent))
	}
	return out
}
