package component

import (
	"github.com/google/uuid"
	"github.com/milk9111/character2d/prefabs"
)

// Character marks a character root and points at its shared descriptor.
type Character struct {
	Spec       prefabs.CharacterHandle
	InstanceID uuid.UUID
}

var CharacterComponent = NewComponent[Character]()

// AnimationRequest is the animation gameplay wants a character to play.
// The sync pass copies it onto every layer each tick.
type AnimationRequest struct {
	Name string
}

func (r *AnimationRequest) Set(name string) {
	r.Name = name
}

var AnimationRequestComponent = NewComponent[AnimationRequest]()

// Assembled is attached to a character root once its layers exist. Its
// presence alone keeps the root from being built twice.
type Assembled struct{}

var AssembledComponent = NewComponent[Assembled]()

// AnimationScript drives a character's AnimationRequest from a tengo script.
type AnimationScript struct {
	Path string
}

var AnimationScriptComponent = NewComponent[AnimationScript]()
