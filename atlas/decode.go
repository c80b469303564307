package atlas

import (
	"fmt"
	"image"
	_ "image/png"
	"io/fs"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DecodeImage reads a png, bmp or webp sprite sheet from fsys.
func DecodeImage(fsys fs.FS, path string) (image.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("atlas: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("atlas: decode %s: %w", path, err)
	}
	return img, nil
}

// loadSheet decodes path and checks that grid fits inside it.
func loadSheet(fsys fs.FS, path string, grid Grid) (image.Image, error) {
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("atlas: %s: %w", path, err)
	}
	img, err := DecodeImage(fsys, path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	need := grid.Bounds()
	if b.Dx() < need.Dx() || b.Dy() < need.Dy() {
		return nil, fmt.Errorf("%w: %s is %dx%d, grid needs %dx%d", ErrInvalidGrid, path, b.Dx(), b.Dy(), need.Dx(), need.Dy())
	}
	return img, nil
}
