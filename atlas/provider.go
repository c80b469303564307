package atlas

import "errors"

var ErrUnknownHandle = errors.New("atlas: unknown handle")

// Handle refers to a resolved atlas. The zero Handle is never valid.
type Handle uint32

func (h Handle) Valid() bool {
	return h != 0
}

// Provider turns a sprite-sheet reference into a renderable atlas handle.
type Provider interface {
	Resolve(path string, grid Grid) (Handle, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(path string, grid Grid) (Handle, error)

func (f ProviderFunc) Resolve(path string, grid Grid) (Handle, error) {
	return f(path, grid)
}

type key struct {
	path string
	grid Grid
}
