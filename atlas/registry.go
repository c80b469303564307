package atlas

import (
	"fmt"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
)

type sheet struct {
	image  *ebiten.Image
	grid   Grid
	frames []*ebiten.Image
}

// Registry is the ebiten-backed Provider. Each (path, grid) pair is decoded
// once; frames are cut from the sheet on first use. Not safe for concurrent
// use; call it from the update goroutine.
type Registry struct {
	fsys   fs.FS
	byKey  map[key]Handle
	sheets []*sheet
}

func NewRegistry(fsys fs.FS) *Registry {
	return &Registry{fsys: fsys, byKey: make(map[key]Handle)}
}

func (r *Registry) Resolve(path string, grid Grid) (Handle, error) {
	k := key{path: path, grid: grid}
	if h, ok := r.byKey[k]; ok {
		return h, nil
	}
	img, err := loadSheet(r.fsys, path, grid)
	if err != nil {
		return 0, err
	}
	r.sheets = append(r.sheets, &sheet{
		image:  ebiten.NewImageFromImage(img),
		grid:   grid,
		frames: make([]*ebiten.Image, grid.Len()),
	})
	h := Handle(len(r.sheets))
	r.byKey[k] = h
	return h, nil
}

func (r *Registry) lookup(h Handle) (*sheet, error) {
	if !h.Valid() || int(h) > len(r.sheets) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	return r.sheets[h-1], nil
}

// Grid returns the cell layout of h.
func (r *Registry) Grid(h Handle) (Grid, error) {
	s, err := r.lookup(h)
	if err != nil {
		return Grid{}, err
	}
	return s.grid, nil
}

// Frame returns cell index of atlas h, or false when either is out of range.
func (r *Registry) Frame(h Handle, index uint32) (*ebiten.Image, bool) {
	s, err := r.lookup(h)
	if err != nil {
		return nil, false
	}
	rect, ok := s.grid.Rect(index)
	if !ok {
		return nil, false
	}
	if f := s.frames[index]; f != nil {
		return f, true
	}
	sub, ok := s.image.SubImage(rect).(*ebiten.Image)
	if !ok {
		return nil, false
	}
	s.frames[index] = sub
	return sub, true
}

var _ Provider = (*Registry)(nil)
