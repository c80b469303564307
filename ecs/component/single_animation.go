package component

import "time"

// DefaultFramePeriod is how long a frame stays up when nothing says otherwise.
const DefaultFramePeriod = 100 * time.Millisecond

// SingleAnimation cycles a sprite through one fixed frame sequence. The
// clock lives in a separate FrameClock component; when the entity has none,
// one is created from FrameDuration on the first tick.
type SingleAnimation struct {
	Frames        []uint32
	FrameDuration time.Duration
}

// Step returns the sprite index that follows index, wrapping at the number
// of frames. It reports false when there are no frames to cycle.
func (a *SingleAnimation) Step(index uint32) (uint32, bool) {
	if a == nil || len(a.Frames) == 0 {
		return index, false
	}
	return uint32((uint64(index) + 1) % uint64(len(a.Frames))), true
}

// Period is FrameDuration, or DefaultFramePeriod when unset.
func (a *SingleAnimation) Period() time.Duration {
	if a == nil || a.FrameDuration <= 0 {
		return DefaultFramePeriod
	}
	return a.FrameDuration
}

var SingleAnimationComponent = NewComponent[SingleAnimation]()
