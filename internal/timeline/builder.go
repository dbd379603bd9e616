package timeline

import "math"

// DefaultClipVolume is the per-clip audio level applied when no setting exists
// for a scene.
const DefaultClipVolume = 0.4

// SourceClip is a generated video clip as delivered by the surrounding
// application: one clip per scene, identified by scene.
type SourceClip struct {
	SceneID  int64
	VideoURL string
	Duration float64
}

// AudioSource references a generated narration or music asset.
type AudioSource struct {
	URL           string
	TotalDuration float64
}

// ClipAudio holds the per-clip audio settings for one video clip.
type ClipAudio struct {
	Volume  float64
	FadeIn  bool
	FadeOut bool
}

// DefaultClipAudio returns the setting applied to clips without one.
func DefaultClipAudio() ClipAudio {
	return ClipAudio{Volume: DefaultClipVolume}
}

// AudioTrackConfig places an audio source on its track: track volume, an
// in-point into the source, and a placed length (AutoLength extends to the
// computed total video duration).
type AudioTrackConfig struct {
	Volume float64
	Trim   float64
	Length float64
}

// Inputs is the full snapshot BuildEdit consumes. Boundary-indexed maps are
// keyed by the boundary between ordered clips i and i+1.
type Inputs struct {
	Clips []SourceClip

	Transitions        map[int]Transition
	GapDurations       map[int]float64
	DefaultGapDuration float64

	ClipAudio map[int64]ClipAudio
	Order     []int64

	Voiceover       AudioSource
	VoiceoverConfig AudioTrackConfig

	Music       *AudioSource
	MusicConfig AudioTrackConfig

	Background string
	Output     Output
}

// BuildEdit derives a complete edit document from one input snapshot. It never
// fails: malformed numeric inputs are clamped to the nearest valid value and
// invalid orderings or transition names fall back to their defaults, so the
// engine stays usable with partially-invalid persisted state. Identical inputs
// always produce structurally identical documents.
func BuildEdit(in Inputs) Edit {
	ordered := ResolveOrder(in.Clips, in.Order)
	defaultGap := ClampGapDuration(in.DefaultGapDuration)

	clips := make([]Clip, 0, len(ordered))
	start := 0.0
	for i, src := range ordered {
		length := clampPositive(src.Duration)
		audio := DefaultClipAudio()
		if setting, ok := in.ClipAudio[src.SceneID]; ok {
			audio = setting
		}

		clip := Clip{
			SceneID: src.SceneID,
			Start:   start,
			Length:  length,
			Asset: Asset{
				Type:         AssetVideo,
				Src:          src.VideoURL,
				Volume:       clampVolume(audio.Volume),
				VolumeEffect: volumeEffect(audio.FadeIn, audio.FadeOut),
			},
		}

		inbound := boundaryTransition(in.Transitions, i-1)
		outbound := boundaryTransition(in.Transitions, i)
		if inbound != TransitionNone || outbound != TransitionNone {
			clip.Transition = &ClipTransition{In: inbound, Out: outbound}
		}

		clips = append(clips, clip)

		// Next clip starts early by the boundary overlap so the transition
		// has material on both sides.
		start += length - boundaryOverlap(outbound, in.GapDurations, i, defaultGap)
		if start < 0 {
			start = 0
		}
	}

	total := 0.0
	if len(clips) > 0 {
		total = clips[len(clips)-1].End()
	}

	tracks := []Track{{Kind: TrackVideo, Clips: clips}}
	tracks = append(tracks, Track{
		Kind:  TrackVoiceover,
		Clips: []Clip{audioClip(in.Voiceover, in.VoiceoverConfig, total)},
	})
	if in.Music != nil {
		tracks = append(tracks, Track{
			Kind:  TrackMusic,
			Clips: []Clip{audioClip(*in.Music, in.MusicConfig, total)},
		})
	}

	return Edit{
		Timeline: Timeline{
			Background: in.Background,
			Tracks:     tracks,
		},
		Output: in.Output,
	}
}

// BoundaryOverlap returns the overlap in seconds consumed by the boundary
// between ordered clips index and index+1 under the given inputs.
func BoundaryOverlap(in Inputs, index int) float64 {
	return boundaryOverlap(
		boundaryTransition(in.Transitions, index),
		in.GapDurations,
		index,
		ClampGapDuration(in.DefaultGapDuration),
	)
}

func boundaryTransition(transitions map[int]Transition, index int) Transition {
	if index < 0 {
		return TransitionNone
	}
	t, ok := transitions[index]
	if !ok || !t.Valid() {
		return TransitionNone
	}
	return t
}

func boundaryOverlap(t Transition, durations map[int]float64, index int, defaultGap float64) float64 {
	if t == TransitionNone {
		return 0
	}
	if override, ok := durations[index]; ok {
		return ClampGapDuration(override)
	}
	return defaultGap
}

// audioClip places one audio source at the head of its track. An auto length
// extends to the total video duration regardless of the source's own duration;
// a finite length is bounded by what remains of the source past the trim point
// (length yields to trim when the two together would overrun the source).
func audioClip(src AudioSource, cfg AudioTrackConfig, total float64) Clip {
	trim := clampPositive(cfg.Trim)
	if src.TotalDuration > 0 && trim > src.TotalDuration {
		trim = src.TotalDuration
	}

	length := total
	if !IsAutoLength(cfg.Length) {
		length = clampPositive(cfg.Length)
		if src.TotalDuration > 0 && trim+length > src.TotalDuration {
			length = src.TotalDuration - trim
		}
	}
	if length < 0 {
		length = 0
	}

	clip := Clip{
		Start:  0,
		Length: length,
		Asset: Asset{
			Type:   AssetAudio,
			Src:    src.URL,
			Volume: clampVolume(cfg.Volume),
		},
	}
	if trim > 0 {
		clip.Trim = trim
	}
	return clip
}

func volumeEffect(fadeIn, fadeOut bool) VolumeEffect {
	switch {
	case fadeIn && fadeOut:
		return EffectFadeInFadeOut
	case fadeIn:
		return EffectFadeIn
	case fadeOut:
		return EffectFadeOut
	default:
		return ""
	}
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampPositive(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
