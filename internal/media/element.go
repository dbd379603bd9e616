package media

import (
	"errors"
	"fmt"
)

// SlotState tracks where a media element slot is in its load/play lifecycle.
type SlotState int

const (
	SlotIdle SlotState = iota
	SlotLoading
	SlotReady
	SlotPlaying
	SlotErrored
)

func (s SlotState) String() string {
	switch s {
	case SlotIdle:
		return "idle"
	case SlotLoading:
		return "loading"
	case SlotReady:
		return "ready"
	case SlotPlaying:
		return "playing"
	case SlotErrored:
		return "errored"
	default:
		return fmt.Sprintf("slotstate(%d)", int(s))
	}
}

// Sentinel errors for element failures.
var (
	// ErrMediaLoad marks a source that failed to load or decode.
	ErrMediaLoad = errors.New("media load error")
	// ErrMediaPlayback marks a rejected play call.
	ErrMediaPlayback = errors.New("media playback error")
)

// Element abstracts one host media surface (a video or audio player). Loading
// is asynchronous: SetSource begins a load whose outcome arrives through the
// AwaitReady callback. Registering a new callback replaces any prior one; the
// element invokes it at most once.
//
// Only the Synchronizer may call the mutating methods.
type Element interface {
	Source() string
	SetSource(src string)
	AwaitReady(fn func(err error))
	Seek(offsetSeconds float64)
	Play() error
	Pause()
	SetVolume(volume float64)
	SetMuted(muted bool)
}

// slot pairs an element with its state machine. The generation counter
// invalidates one-shot callbacks from loads that have since been superseded.
type slot struct {
	name  string
	elem  Element
	state SlotState
	gen   uint64
}

func newSlot(name string, elem Element) *slot {
	return &slot{name: name, elem: elem}
}

// invalidate cancels any pending one-shot callback for this slot.
func (s *slot) invalidate() {
	s.gen++
}
