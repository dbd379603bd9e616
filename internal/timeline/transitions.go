package timeline

import (
	"math"
	"strings"
)

// Transition identifies the visual effect applied across a clip boundary. The
// vocabulary is a hard contract with the render service; values outside it are
// invalid configuration and fall back to TransitionNone.
type Transition string

const (
	TransitionNone          Transition = "none"
	TransitionFade          Transition = "fade"
	TransitionFadeSlow      Transition = "fadeSlow"
	TransitionFadeFast      Transition = "fadeFast"
	TransitionReveal        Transition = "reveal"
	TransitionWipeLeft      Transition = "wipeLeft"
	TransitionWipeRight     Transition = "wipeRight"
	TransitionSlideLeft     Transition = "slideLeft"
	TransitionSlideRight    Transition = "slideRight"
	TransitionSlideUp       Transition = "slideUp"
	TransitionSlideDown     Transition = "slideDown"
	TransitionZoomIn        Transition = "zoomIn"
	TransitionZoomOut       Transition = "zoomOut"
	TransitionCarouselLeft  Transition = "carouselLeft"
	TransitionCarouselRight Transition = "carouselRight"
)

// Gap duration bounds in seconds. Requested durations outside this range are
// clamped, never rejected.
const (
	MinGapDuration = 0.2
	MaxGapDuration = 2.0
)

var allTransitions = []Transition{
	TransitionNone,
	TransitionFade,
	TransitionFadeSlow,
	TransitionFadeFast,
	TransitionReveal,
	TransitionWipeLeft,
	TransitionWipeRight,
	TransitionSlideLeft,
	TransitionSlideRight,
	TransitionSlideUp,
	TransitionSlideDown,
	TransitionZoomIn,
	TransitionZoomOut,
	TransitionCarouselLeft,
	TransitionCarouselRight,
}

var transitionSet = func() map[Transition]struct{} {
	set := make(map[Transition]struct{}, len(allTransitions))
	for _, t := range allTransitions {
		set[t] = struct{}{}
	}
	return set
}()

// Transitions returns the full accepted vocabulary in stable order.
func Transitions() []Transition {
	out := make([]Transition, len(allTransitions))
	copy(out, allTransitions)
	return out
}

// ParseTransition maps a persisted string onto the vocabulary. Unknown values
// report ok=false so callers can fall back to TransitionNone.
func ParseTransition(value string) (Transition, bool) {
	t := Transition(strings.TrimSpace(value))
	if _, ok := transitionSet[t]; ok {
		return t, true
	}
	return TransitionNone, false
}

// Valid reports whether the transition belongs to the render-service contract.
func (t Transition) Valid() bool {
	_, ok := transitionSet[t]
	return ok
}

// ClampGapDuration forces a requested transition duration into the supported
// range. NaN counts as malformed numeric input and clamps to the minimum.
func ClampGapDuration(seconds float64) float64 {
	if math.IsNaN(seconds) {
		return MinGapDuration
	}
	if seconds < MinGapDuration {
		return MinGapDuration
	}
	if seconds > MaxGapDuration {
		return MaxGapDuration
	}
	return seconds
}

// VisualDuration returns the on-screen duration of the preview's transition
// window for a boundary whose export-time overlap is exportSeconds. The preview
// deliberately shows a shorter window than the exported overlap so swaps read
// as snappier; the exported composition is unaffected.
func VisualDuration(exportSeconds float64) float64 {
	visual := exportSeconds * 0.6
	if visual < 0.15 {
		visual = 0.15
	}
	if visual > 0.9 {
		visual = 0.9
	}
	return visual
}
