package timeline_test

import (
	"testing"

	"cutline/internal/timeline"
)

func TestFindClipAtTimeBoundaryResolvesToNextClip(t *testing.T) {
	edit := timeline.BuildEdit(baseInputs(sampleClips(3, 8)))

	pos, ok := timeline.FindClipAtTime(edit, 16.0)
	if !ok {
		t.Fatal("expected a position")
	}
	if pos.Index != 2 {
		t.Fatalf("index = %d, want 2 (boundary belongs to the next clip)", pos.Index)
	}
	if pos.Offset != 0 {
		t.Fatalf("offset = %v, want 0", pos.Offset)
	}
}

func TestFindClipAtTimeOverlapBoundary(t *testing.T) {
	in := baseInputs(sampleClips(2, 8))
	in.Transitions = map[int]timeline.Transition{0: timeline.TransitionFade}
	edit := timeline.BuildEdit(in)

	// Second clip starts at 7s because of the 1s overlap; from that instant
	// onward the second clip is the active one.
	pos, _ := timeline.FindClipAtTime(edit, 7.0)
	if pos.Index != 1 || pos.Offset != 0 {
		t.Fatalf("position at overlap start = {%d, %v}, want {1, 0}", pos.Index, pos.Offset)
	}

	pos, _ = timeline.FindClipAtTime(edit, 6.999)
	if pos.Index != 0 {
		t.Fatalf("index just before overlap = %d, want 0", pos.Index)
	}
}

func TestFindClipAtTimePastEndClampsToLastClip(t *testing.T) {
	edit := timeline.BuildEdit(baseInputs(sampleClips(3, 8)))

	for _, tt := range []float64{24.0, 24.5, 1000} {
		pos, ok := timeline.FindClipAtTime(edit, tt)
		if !ok {
			t.Fatalf("expected a position at t=%v", tt)
		}
		if pos.Index != 2 {
			t.Fatalf("index at t=%v is %d, want last clip", tt, pos.Index)
		}
		if pos.Offset != 8 {
			t.Fatalf("offset at t=%v is %v, want clamp to length", tt, pos.Offset)
		}
	}
}

func TestFindClipAtTimeNegativeClampsToStart(t *testing.T) {
	edit := timeline.BuildEdit(baseInputs(sampleClips(2, 8)))
	pos, _ := timeline.FindClipAtTime(edit, -3)
	if pos.Index != 0 || pos.Offset != 0 {
		t.Fatalf("position = {%d, %v}, want {0, 0}", pos.Index, pos.Offset)
	}
}

func TestFindClipAtTimeEmptyEdit(t *testing.T) {
	if _, ok := timeline.FindClipAtTime(timeline.Edit{}, 1); ok {
		t.Fatal("expected no position for an empty edit")
	}
}

func TestParseTransition(t *testing.T) {
	if _, ok := timeline.ParseTransition("carouselLeft"); !ok {
		t.Fatal("carouselLeft should be accepted")
	}
	if got, ok := timeline.ParseTransition("dissolve"); ok || got != timeline.TransitionNone {
		t.Fatalf("unknown value parsed as %q, want fallback to none", got)
	}
	for _, name := range timeline.Transitions() {
		if !name.Valid() {
			t.Fatalf("vocabulary member %q reports invalid", name)
		}
	}
}

func TestVisualDurationShorterThanExport(t *testing.T) {
	for _, export := range []float64{0.2, 1.0, 2.0} {
		visual := timeline.VisualDuration(export)
		if visual >= export && export > 0.375 {
			t.Fatalf("visual window %v is not shorter than export overlap %v", visual, export)
		}
		if visual < 0.15 || visual > 0.9 {
			t.Fatalf("visual window %v outside sane bounds", visual)
		}
	}
}
