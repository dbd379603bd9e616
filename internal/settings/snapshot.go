package settings

import (
	"math"

	"cutline/internal/timeline"
)

// ClipAudioSetting is the persisted per-video-clip audio configuration.
type ClipAudioSetting struct {
	Volume  float64 `json:"volume"`
	FadeIn  bool    `json:"fade_in,omitempty"`
	FadeOut bool    `json:"fade_out,omitempty"`
}

// TrackSetting is the persisted placement of one audio track. A nil Volume
// falls back to the configured default; a nil Length means auto (fill the
// total video duration).
type TrackSetting struct {
	Volume *float64 `json:"volume,omitempty"`
	Trim   float64  `json:"trim,omitempty"`
	Length *float64 `json:"length,omitempty"`
}

// Snapshot is the loosely-shaped configuration blob exchanged with the
// settings store. Absent fields default during Normalized.
type Snapshot struct {
	GapTransitions     map[int]string             `json:"gap_transitions,omitempty"`
	GapDurations       map[int]float64            `json:"gap_durations,omitempty"`
	DefaultGapDuration float64                    `json:"default_gap_duration,omitempty"`
	ClipAudio          map[int64]ClipAudioSetting `json:"clip_audio,omitempty"`
	ClipOrder          []int64                    `json:"clip_order,omitempty"`
	Voiceover          TrackSetting               `json:"voiceover"`
	Music              TrackSetting               `json:"music"`
	Muted              bool                       `json:"muted,omitempty"`
}

// Defaults supplies the fallback values applied while normalizing a snapshot.
type Defaults struct {
	GapDuration     float64
	VoiceoverVolume float64
	MusicVolume     float64
}

// Normalized returns a copy with every field clamped into its valid range and
// unknown transition names dropped. Validation happens here, once, rather than
// scattered through consumers; partially-invalid persisted state never makes
// the engine unusable.
func (s Snapshot) Normalized(d Defaults) Snapshot {
	out := Snapshot{
		DefaultGapDuration: timeline.ClampGapDuration(orDefault(s.DefaultGapDuration, d.GapDuration)),
		Muted:              s.Muted,
	}

	if len(s.GapTransitions) > 0 {
		out.GapTransitions = make(map[int]string, len(s.GapTransitions))
		for boundary, name := range s.GapTransitions {
			if boundary < 0 {
				continue
			}
			t, ok := timeline.ParseTransition(name)
			if !ok || t == timeline.TransitionNone {
				continue
			}
			out.GapTransitions[boundary] = string(t)
		}
		if len(out.GapTransitions) == 0 {
			out.GapTransitions = nil
		}
	}

	if len(s.GapDurations) > 0 {
		out.GapDurations = make(map[int]float64, len(s.GapDurations))
		for boundary, duration := range s.GapDurations {
			if boundary < 0 {
				continue
			}
			out.GapDurations[boundary] = timeline.ClampGapDuration(duration)
		}
	}

	if len(s.ClipAudio) > 0 {
		out.ClipAudio = make(map[int64]ClipAudioSetting, len(s.ClipAudio))
		for id, setting := range s.ClipAudio {
			out.ClipAudio[id] = ClipAudioSetting{
				Volume:  clampVolume(setting.Volume, timeline.DefaultClipVolume),
				FadeIn:  setting.FadeIn,
				FadeOut: setting.FadeOut,
			}
		}
	}

	if len(s.ClipOrder) > 0 {
		out.ClipOrder = append([]int64{}, s.ClipOrder...)
	}

	out.Voiceover = normalizeTrack(s.Voiceover, d.VoiceoverVolume)
	out.Music = normalizeTrack(s.Music, d.MusicVolume)
	return out
}

// MinPlacedLength is the smallest non-auto audio placement in seconds.
const MinPlacedLength = 0.1

func normalizeTrack(t TrackSetting, defaultVolume float64) TrackSetting {
	out := TrackSetting{Trim: clampNonNegative(t.Trim)}
	volume := defaultVolume
	if t.Volume != nil {
		volume = clampVolume(*t.Volume, defaultVolume)
	}
	out.Volume = &volume
	if t.Length != nil {
		length := clampNonNegative(*t.Length)
		if length < MinPlacedLength {
			length = MinPlacedLength
		}
		out.Length = &length
	}
	return out
}

// TrackConfig converts a normalized track setting into builder configuration.
func (t TrackSetting) TrackConfig() timeline.AudioTrackConfig {
	cfg := timeline.AudioTrackConfig{Trim: t.Trim, Length: timeline.AutoLength}
	if t.Volume != nil {
		cfg.Volume = *t.Volume
	}
	if t.Length != nil {
		cfg.Length = *t.Length
	}
	return cfg
}

// Transitions converts the persisted boundary map into builder vocabulary.
func (s Snapshot) Transitions() map[int]timeline.Transition {
	if len(s.GapTransitions) == 0 {
		return nil
	}
	out := make(map[int]timeline.Transition, len(s.GapTransitions))
	for boundary, name := range s.GapTransitions {
		if t, ok := timeline.ParseTransition(name); ok {
			out[boundary] = t
		}
	}
	return out
}

// ClipAudioInputs converts the persisted per-clip settings for the builder.
func (s Snapshot) ClipAudioInputs() map[int64]timeline.ClipAudio {
	if len(s.ClipAudio) == 0 {
		return nil
	}
	out := make(map[int64]timeline.ClipAudio, len(s.ClipAudio))
	for id, setting := range s.ClipAudio {
		out[id] = timeline.ClipAudio{
			Volume:  setting.Volume,
			FadeIn:  setting.FadeIn,
			FadeOut: setting.FadeOut,
		}
	}
	return out
}

func orDefault(value, fallback float64) float64 {
	if value <= 0 || math.IsNaN(value) {
		return fallback
	}
	return value
}

func clampVolume(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampNonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
