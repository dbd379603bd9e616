package timeline

// Position resolves a timeline instant to the clip that should be on screen.
type Position struct {
	Clip   Clip
	Index  int
	Offset float64
}

// FindClipAtTime returns the active video clip at time t along with the in-clip
// offset. The clip list is small, so a linear scan is fine.
//
// A time exactly at a clip boundary resolves to the *next* clip at offset 0,
// never the previous clip at offset == length; the scheduler relies on this
// tie-break to swap clips on the frame that crosses a boundary. Times at or
// past the final clip's end clamp to the last clip at offset == length. Any
// accumulated floating-point drift in clip starts is absorbed here by the
// offset clamp rather than corrected in the built document.
func FindClipAtTime(edit Edit, t float64) (Position, bool) {
	track := edit.VideoTrack()
	if track == nil || len(track.Clips) == 0 {
		return Position{Index: -1}, false
	}
	if t < 0 {
		t = 0
	}

	clips := track.Clips
	active := 0
	for i := 1; i < len(clips); i++ {
		if t >= clips[i].Start {
			active = i
			continue
		}
		break
	}

	clip := clips[active]
	offset := t - clip.Start
	if offset < 0 {
		offset = 0
	}
	if offset > clip.Length {
		offset = clip.Length
	}
	return Position{Clip: clip, Index: active, Offset: offset}, true
}
