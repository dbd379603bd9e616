// Package timeline builds and queries the declarative edit document that the
// external render service consumes.
//
// BuildEdit converts the project's generated clips plus the user's transition,
// ordering, and audio configuration into an Edit: one video track whose clip
// starts are computed from clip lengths minus transition overlaps, plus a
// voiceover track and an optional music track. Documents are immutable and
// deterministic; every configuration change produces a fresh Edit rather than
// mutating one in place.
//
// FindClipAtTime resolves a timeline position to the active clip and in-clip
// offset, and is the single source of truth the playback scheduler uses for
// clip-boundary detection.
package timeline
