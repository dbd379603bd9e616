package timeline

// AssetType distinguishes the media kind a clip references.
type AssetType string

const (
	AssetVideo AssetType = "video"
	AssetAudio AssetType = "audio"
)

// TrackKind identifies the role of a track inside the edit. The engine supports
// exactly one video track plus up to two audio tracks.
type TrackKind string

const (
	TrackVideo     TrackKind = "video"
	TrackVoiceover TrackKind = "voiceover"
	TrackMusic     TrackKind = "music"
)

// VolumeEffect names the volume envelope applied to a clip's audio.
type VolumeEffect string

const (
	EffectFadeIn        VolumeEffect = "fadeIn"
	EffectFadeOut       VolumeEffect = "fadeOut"
	EffectFadeInFadeOut VolumeEffect = "fadeInFadeOut"
)

// AutoLength is the sentinel meaning "extend to fill the computed total
// timeline duration". It only ever appears in configuration; built documents
// always carry resolved lengths.
const AutoLength float64 = -1

// IsAutoLength reports whether a configured placed length is the auto sentinel.
func IsAutoLength(seconds float64) bool {
	return seconds < 0
}

// Asset references a media source placed on the timeline.
type Asset struct {
	Type         AssetType    `json:"type"`
	Src          string       `json:"src"`
	Volume       float64      `json:"volume"`
	VolumeEffect VolumeEffect `json:"volumeEffect,omitempty"`
}

// ClipTransition tags the effects entering and leaving a clip. The overlap the
// effect consumes is already encoded in clip starts; the tags exist for the
// render service.
type ClipTransition struct {
	In  Transition `json:"in,omitempty"`
	Out Transition `json:"out,omitempty"`
}

// Clip is a placed instance of an asset: it occupies [Start, Start+Length) on
// the edit timeline, optionally skipping Trim seconds into the source first.
type Clip struct {
	Asset      Asset           `json:"asset"`
	Start      float64         `json:"start"`
	Length     float64         `json:"length"`
	Trim       float64         `json:"trim,omitempty"`
	Transition *ClipTransition `json:"transition,omitempty"`

	// SceneID carries clip identity for ordering and audio settings lookups.
	// It is engine-internal and never part of the rendered document.
	SceneID int64 `json:"-"`
}

// End returns the clip's exclusive end time on the edit timeline.
func (c Clip) End() float64 {
	return c.Start + c.Length
}

// Track is an ordered list of clips sharing one role.
type Track struct {
	Clips []Clip    `json:"clips"`
	Kind  TrackKind `json:"-"`
}

// Size is the output frame size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Output describes the requested render target.
type Output struct {
	Format string `json:"format"`
	Size   Size   `json:"size"`
}

// Timeline is the track container of an edit document.
type Timeline struct {
	Background string  `json:"background"`
	Tracks     []Track `json:"tracks"`
}

// Edit is the declarative document handed to the render service. Documents are
// built fresh on every input change and never mutated afterwards.
type Edit struct {
	Timeline Timeline `json:"timeline"`
	Output   Output   `json:"output"`
}

// VideoTrack returns the edit's video track, or nil when the edit is empty.
// Deserialized documents carry no kind tags; BuildEdit's fixed track order
// (video, voiceover, then music) identifies the tracks instead.
func (e Edit) VideoTrack() *Track {
	for i := range e.Timeline.Tracks {
		if e.Timeline.Tracks[i].Kind == TrackVideo {
			return &e.Timeline.Tracks[i]
		}
	}
	if len(e.Timeline.Tracks) > 0 && e.Timeline.Tracks[0].Kind == "" {
		return &e.Timeline.Tracks[0]
	}
	return nil
}

// AudioTrack returns the track of the requested audio kind, or nil.
func (e Edit) AudioTrack(kind TrackKind) *Track {
	for i := range e.Timeline.Tracks {
		if e.Timeline.Tracks[i].Kind == kind {
			return &e.Timeline.Tracks[i]
		}
	}
	index := -1
	switch kind {
	case TrackVoiceover:
		index = 1
	case TrackMusic:
		index = 2
	}
	if index >= 1 && index < len(e.Timeline.Tracks) && e.Timeline.Tracks[index].Kind == "" {
		return &e.Timeline.Tracks[index]
	}
	return nil
}

// Duration returns the total timeline duration: the end of the last video clip,
// which equals the sum of clip lengths minus the sum of boundary overlaps.
func (e Edit) Duration() float64 {
	track := e.VideoTrack()
	if track == nil || len(track.Clips) == 0 {
		return 0
	}
	return track.Clips[len(track.Clips)-1].End()
}
