// Package scrub maps timeline pointer gestures onto engine operations: pointer
// x-coordinates to playhead times, drag-reorder gestures to clip permutations,
// and trim-handle drags to clamped trim/length values. Out-of-range input is
// clamped silently, never rejected.
package scrub

import (
	"math"

	"cutline/internal/timeline"
)

// MinClipLength is the shortest placed length a trim handle can leave behind,
// in seconds. The right handle cannot drag a clip shorter than this, and the
// left handle cannot trim past sourceDuration minus this.
const MinClipLength = 0.5

// Controller converts pointer coordinates into timeline times using the
// preview's fixed geometry.
type Controller struct {
	labelColumnWidth float64
	pixelsPerSecond  float64
}

// NewController builds a controller for the given track geometry. A
// non-positive scale falls back to 1px/s so the mapping stays total.
func NewController(labelColumnWidth, pixelsPerSecond float64) *Controller {
	if pixelsPerSecond <= 0 || math.IsNaN(pixelsPerSecond) {
		pixelsPerSecond = 1
	}
	if labelColumnWidth < 0 || math.IsNaN(labelColumnWidth) {
		labelColumnWidth = 0
	}
	return &Controller{
		labelColumnWidth: labelColumnWidth,
		pixelsPerSecond:  pixelsPerSecond,
	}
}

// PointerToTime maps a pointer x-coordinate over the track area to a timeline
// instant, clamped into [0, total]. Pointers inside the label column map to 0.
func (c *Controller) PointerToTime(x, total float64) float64 {
	t := (x - c.labelColumnWidth) / c.pixelsPerSecond
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > total {
		return total
	}
	return t
}

// Reorder returns the permutation produced by dragging the element at index
// from in front of index to. Indices outside the slice leave the order
// untouched; the input slice is never mutated.
func Reorder(order []int64, from, to int) []int64 {
	out := make([]int64, len(order))
	copy(out, order)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	rest := append(out[:to:to], append([]int64{moved}, out[to:]...)...)
	return rest
}

// ClampTrim confines a left trim-handle value so at least MinClipLength of
// source remains after the trim point.
func ClampTrim(trim, sourceDuration float64) float64 {
	if math.IsNaN(trim) || trim < 0 {
		return 0
	}
	max := sourceDuration - MinClipLength
	if max < 0 {
		max = 0
	}
	if trim > max {
		return max
	}
	return trim
}

// ClampLength confines a right trim-handle value to what the source can
// supply past the current trim. The auto sentinel passes through untouched.
func ClampLength(length, trim, sourceDuration float64) float64 {
	if timeline.IsAutoLength(length) {
		return timeline.AutoLength
	}
	if math.IsNaN(length) || length < MinClipLength {
		length = MinClipLength
	}
	max := sourceDuration - trim
	if max < MinClipLength {
		max = MinClipLength
	}
	if length > max {
		return max
	}
	return length
}
