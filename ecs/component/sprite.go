package component

import "github.com/milk9111/character2d/atlas"

// Sprite shows one cell of an atlas.
type Sprite struct {
	Atlas      atlas.Handle
	Index      uint32
	FacingLeft bool
}

var SpriteComponent = NewComponent[Sprite]()
