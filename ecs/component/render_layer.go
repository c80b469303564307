package component

// RenderLayer is used to sort draw order deterministically. Character
// layers use their position in the descriptor: base 0, sub-layers from 1.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
