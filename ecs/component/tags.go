package component

// CharacterLayer tags a composited layer child of a character root.
type CharacterLayer struct{}

var CharacterLayerComponent = NewComponent[CharacterLayer]()
