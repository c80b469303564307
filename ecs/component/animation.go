package component

import "time"

// DefaultTrack is the track every layer falls back to when it lacks the
// requested one.
const DefaultTrack = "default"

// Tracks maps an animation name to its ordered frame indices.
type Tracks map[string][]uint32

func (t Tracks) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// Clone returns a copy that shares no backing arrays with t.
func (t Tracks) Clone() Tracks {
	if t == nil {
		return Tracks{}
	}
	out := make(Tracks, len(t))
	for name, frames := range t {
		out[name] = append([]uint32(nil), frames...)
	}
	return out
}

// ResolutionKind tells which branch a fire of MultiAnimation.Tick took.
type ResolutionKind uint8

const (
	// Waiting means the clock did not fire this tick.
	Waiting ResolutionKind = iota
	// Resolved is the normal path: Frame is the track frame at the cursor.
	Resolved
	// FellBackToDefault means the current track was missing and Current was
	// switched to DefaultTrack. No frame is produced.
	FellBackToDefault
	// PinnedToZero means neither the current track nor a default track had
	// frames to show; Frame is 0.
	PinnedToZero
	// Clamped means the cursor was outside the current track; Frame is 0 and
	// the cursor restarted.
	Clamped
)

func (k ResolutionKind) String() string {
	switch k {
	case Waiting:
		return "waiting"
	case Resolved:
		return "resolved"
	case FellBackToDefault:
		return "fell_back_to_default"
	case PinnedToZero:
		return "pinned_to_zero"
	case Clamped:
		return "clamped"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of one MultiAnimation.Tick.
type Resolution struct {
	Kind  ResolutionKind
	Frame uint32
	// Track is the track name that was current when the clock fired.
	Track string
	// Notify is set on the first fire that lands in a given abnormal branch
	// for a given track; repeats of the same condition leave it clear.
	Notify bool
}

func (r Resolution) Fired() bool {
	return r.Kind != Waiting
}

// HasFrame reports whether Frame should be applied to the sprite.
func (r Resolution) HasFrame() bool {
	switch r.Kind {
	case Resolved, PinnedToZero, Clamped:
		return true
	default:
		return false
	}
}

type resolutionIssue struct {
	kind  ResolutionKind
	track string
}

// MultiAnimation plays one of several named tracks on a layer. Request
// switches tracks, Tick advances time and resolves frames.
type MultiAnimation struct {
	Tracks  Tracks
	Current string
	Cursor  int
	Clock   FrameClock

	lastIssue resolutionIssue
}

func NewMultiAnimation(tracks Tracks, current string, period time.Duration) *MultiAnimation {
	if current == "" {
		current = DefaultTrack
	}
	if tracks == nil {
		tracks = Tracks{}
	}
	return &MultiAnimation{
		Tracks:  tracks,
		Current: current,
		Clock:   NewFrameClock(period),
	}
}

func (a *MultiAnimation) HasTrack(name string) bool {
	return a != nil && a.Tracks.Has(name)
}

// Request makes name the current track. Switching restarts the track at its
// first frame and primes the clock to fire on the next Tick; requesting the
// current track again does nothing. It reports whether the track changed.
func (a *MultiAnimation) Request(name string) bool {
	if a == nil || name == a.Current {
		return false
	}
	a.Current = name
	a.Cursor = 0
	a.Clock.ResetToPeriod()
	a.lastIssue = resolutionIssue{}
	return true
}

// Tick advances the clock by delta and, when it fires, resolves the frame
// at the cursor and steps the cursor with wrap-around.
func (a *MultiAnimation) Tick(delta time.Duration) Resolution {
	if a == nil || !a.Clock.Advance(delta) {
		return Resolution{}
	}

	name := a.Current
	track, ok := a.Tracks[name]
	switch {
	case !ok:
		if a.Tracks.Has(DefaultTrack) {
			// cursor and clock carry over
			a.Current = DefaultTrack
			return a.abnormal(FellBackToDefault, name)
		}
		return a.abnormal(PinnedToZero, name)
	case len(track) == 0:
		return a.abnormal(PinnedToZero, name)
	case a.Cursor < 0 || a.Cursor >= len(track):
		a.Cursor = 1 % len(track)
		return a.abnormal(Clamped, name)
	}

	frame := track[a.Cursor]
	a.Cursor = (a.Cursor + 1) % len(track)
	a.lastIssue = resolutionIssue{}
	return Resolution{Kind: Resolved, Frame: frame, Track: name}
}

func (a *MultiAnimation) abnormal(kind ResolutionKind, track string) Resolution {
	issue := resolutionIssue{kind: kind, track: track}
	notify := issue != a.lastIssue
	a.lastIssue = issue
	return Resolution{Kind: kind, Track: track, Notify: notify}
}

var MultiAnimationComponent = NewComponent[MultiAnimation]()
