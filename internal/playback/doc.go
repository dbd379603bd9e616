// Package playback owns the preview's single logical clock. A Scheduler
// advances time once per host display frame while playing, detects
// clip-boundary crossings through the timeline index, and commands the media
// synchronizer; it is the only writer of playback state.
//
// The frame loop is a plain timer abstraction decoupled from any view layer.
// Ticks are variable-step (wall-clock delta), and every tick is tagged with a
// run generation so a tick or cleanup from a torn-down loop can never act on a
// newer run — stopping cancels the next tick and invalidates anything still in
// flight.
package playback
