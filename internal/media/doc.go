// Package media keeps the preview's host media elements in lock-step with the
// scheduler's logical clock. A Synchronizer owns one video element slot plus
// voiceover and music slots, and is the only component allowed to mutate their
// playback state; everything else goes through it.
//
// Each slot runs a small Idle→Loading→Ready→Playing→Errored state machine with
// generation-tagged one-shot readiness callbacks, so a "now ready" signal from
// an abandoned load can never seek or resume a newer one. The Synchronizer is
// not safe for concurrent use; the owning session serializes access.
package media
