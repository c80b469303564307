package system

import (
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/character2d/atlas"
	"github.com/milk9111/character2d/ecs"
	"github.com/milk9111/character2d/ecs/component"
)

// FrameSource hands out the image of one atlas cell.
type FrameSource interface {
	Frame(h atlas.Handle, index uint32) (*ebiten.Image, bool)
}

// RenderSystem draws sprites at their world position: the local transform
// composed with every ancestor's transform.
type RenderSystem struct {
	frames FrameSource

	Zoom    float64
	OffsetX float64
	OffsetY float64
}

func NewRenderSystem(frames FrameSource) *RenderSystem {
	return &RenderSystem{frames: frames, Zoom: 1}
}

type placed struct {
	e     ecs.Entity
	layer int
	world component.Transform
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil || r.frames == nil {
		return
	}

	entities := ecs.Query(w, component.TransformComponent.Kind().ID(), component.SpriteComponent.Kind().ID())
	items := make([]placed, 0, len(entities))
	for _, e := range entities {
		li := 0
		if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		items = append(items, placed{e: e, layer: li, world: WorldTransform(w, e)})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer != items[j].layer {
			return items[i].layer < items[j].layer
		}
		if items[i].world.Z != items[j].world.Z {
			return items[i].world.Z < items[j].world.Z
		}
		return uint64(items[i].e) < uint64(items[j].e)
	})

	zoom := r.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	for _, it := range items {
		s, ok := ecs.Get(w, it.e, component.SpriteComponent.Kind())
		if !ok {
			continue
		}
		img, ok := r.frames.Frame(s.Atlas, s.Index)
		if !ok {
			continue
		}
		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)

		sx, sy := it.world.ScaleX, it.world.ScaleY
		if s.FacingLeft {
			sx = -sx
		}
		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(it.world.Rotation)
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate(it.world.X*zoom+r.OffsetX, it.world.Y*zoom+r.OffsetY)
		op.Filter = ebiten.FilterNearest

		screen.DrawImage(img, op)
	}
}

// WorldTransform composes e's Transform with its ancestors'. A local offset
// is scaled and then rotated by everything above it. A zero scale counts
// as 1.
func WorldTransform(w *ecs.World, e ecs.Entity) component.Transform {
	out := component.Transform{ScaleX: 1, ScaleY: 1}
	chain := []ecs.Entity{e}
	for p, ok := ecs.Parent(w, e); ok; p, ok = ecs.Parent(w, p) {
		chain = append(chain, p)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		t, ok := ecs.Get(w, chain[i], component.TransformComponent.Kind())
		if !ok {
			continue
		}
		sx, sy := t.ScaleX, t.ScaleY
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}
		lx, ly := t.X*out.ScaleX, t.Y*out.ScaleY
		sin, cos := math.Sincos(out.Rotation)
		out.X += lx*cos - ly*sin
		out.Y += lx*sin + ly*cos
		out.Z += t.Z
		out.Rotation += t.Rotation
		out.ScaleX *= sx
		out.ScaleY *= sy
	}
	return out
}
