package component

// Transform is local to the parent entity, if any. Z orders nothing by
// itself; RenderLayer does.
type Transform struct {
	X        float64
	Y        float64
	Z        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
