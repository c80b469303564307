package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/character2d/atlas"
	"github.com/milk9111/character2d/config"
	"github.com/milk9111/character2d/ecs"
	"github.com/milk9111/character2d/ecs/component"
	"github.com/milk9111/character2d/ecs/entity"
	"github.com/milk9111/character2d/ecs/system"
	"github.com/milk9111/character2d/prefabs"
	"golang.org/x/image/colornames"
)

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

type viewer struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	library   *prefabs.Library
	log       *log.Logger

	character ecs.Entity
	spec      prefabs.CharacterHandle
	delta     time.Duration

	width  int
	height int
}

func newViewer(cfg config.Viewer, logger *log.Logger) (*viewer, error) {
	if !prefabs.IsCharacterFile(cfg.Character) {
		return nil, fmt.Errorf("%s is not a *.character.yaml file", cfg.Character)
	}

	library := prefabs.NewLibrary(readDescriptor)
	atlases := atlas.NewRegistry(os.DirFS(cfg.AssetsDir))

	scheduler := ecs.NewScheduler()
	system.RegisterCharacterSystems(scheduler, system.CharacterSystems{
		Library: library,
		Atlases: atlases,
		Logger:  logger,
	})

	world := ecs.NewWorld()
	spec := library.Load(cfg.Character)
	character, err := entity.SpawnCharacter(world, spec, entity.CharacterOptions{
		Animation:   cfg.Animation,
		FramePeriod: cfg.FramePeriod,
		Script:      cfg.Script,
	})
	if err != nil {
		return nil, err
	}

	render := system.NewRenderSystem(atlases)
	render.Zoom = cfg.Scale

	return &viewer{
		world:     world,
		scheduler: scheduler,
		render:    render,
		library:   library,
		log:       logger,
		character: character,
		spec:      spec,
		delta:     cfg.TickDelta(),
	}, nil
}

// readDescriptor prefers a path on disk and falls back to the embedded
// prefabs.
func readDescriptor(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return prefabs.Load(name)
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	v.handleInput()
	v.scheduler.Tick(v.world, v.delta)
	return nil
}

func (v *viewer) handleInput() {
	req, ok := ecs.Get(v.world, v.character, component.AnimationRequestComponent.Kind())
	if !ok {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit0) {
		req.Set(component.DefaultTrack)
		return
	}
	names := v.animationNames()
	for i, key := range digitKeys {
		if i >= len(names) {
			break
		}
		if inpututil.IsKeyJustPressed(key) {
			v.log.Info("animation requested", "anim", names[i])
			req.Set(names[i])
			return
		}
	}
}

func (v *viewer) animationNames() []string {
	spec, state, _ := v.library.Get(v.spec)
	if state != prefabs.Loaded {
		return nil
	}
	names := make([]string, 0, len(spec.Anims))
	for name := range spec.Anims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	v.render.OffsetX = float64(v.width) / 2
	v.render.OffsetY = float64(v.height) / 2
	v.render.Draw(v.world, screen)

	ebitenutil.DebugPrint(screen, v.status())
}

func (v *viewer) status() string {
	var b strings.Builder
	_, state, err := v.library.Get(v.spec)
	fmt.Fprintf(&b, "%s [%s]  TPS: %.1f\n", v.spec, state, ebiten.ActualTPS())
	if err != nil {
		fmt.Fprintf(&b, "error: %v\n", err)
	}
	if req, ok := ecs.Get(v.world, v.character, component.AnimationRequestComponent.Kind()); ok {
		fmt.Fprintf(&b, "request: %s\n", req.Name)
	}
	for _, layer := range ecs.Children(v.world, v.character) {
		if anim, ok := ecs.Get(v.world, layer, component.MultiAnimationComponent.Kind()); ok {
			fmt.Fprintf(&b, "  layer %s: %s #%d\n", layer, anim.Current, anim.Cursor)
		}
	}
	for i, name := range v.animationNames() {
		if i >= len(digitKeys) {
			break
		}
		fmt.Fprintf(&b, "[%d] %s  ", i+1, name)
	}
	b.WriteString("[0] default  [esc] quit")
	return b.String()
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.width, v.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
