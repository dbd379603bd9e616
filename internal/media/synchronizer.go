package media

import (
	"fmt"
	"log/slog"

	"cutline/internal/logging"
	"cutline/internal/timeline"
)

// AudioTrackState is the slice of the current edit one audio slot needs: the
// source, its trim into the source, the timeline instant past which it falls
// silent, and its track volume.
type AudioTrackState struct {
	Src    string
	Trim   float64
	End    float64
	Volume float64
}

// Synchronizer drives the three media element slots from scheduler commands.
type Synchronizer struct {
	logger *slog.Logger

	video *slot
	voice *slot
	music *slot

	voiceState AudioTrackState
	musicState AudioTrackState

	clipVolume   float64
	muted        bool
	audioStarted bool

	onFault func(error)
}

// New wires a synchronizer around the host elements. The music element may be
// nil when the project has no music track.
func New(video, voice, music Element, logger *slog.Logger) *Synchronizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Synchronizer{
		logger:     logger.With(logging.String(logging.FieldComponent, "media")),
		video:      newSlot("video", video),
		voice:      newSlot("voiceover", voice),
		clipVolume: timeline.DefaultClipVolume,
	}
	if music != nil {
		s.music = newSlot("music", music)
	}
	return s
}

// SetFaultHandler registers the scheduler's halt callback. Faults are reported
// at most once per failing operation and never panic through the tick loop.
func (s *Synchronizer) SetFaultHandler(fn func(error)) {
	s.onFault = fn
}

// ConfigureAudio updates the audio slots' view of the current edit. Called by
// the session after every rebuild.
func (s *Synchronizer) ConfigureAudio(voice AudioTrackState, music *AudioTrackState) {
	s.voiceState = voice
	if music != nil {
		s.musicState = *music
	} else {
		s.musicState = AudioTrackState{}
	}
	s.applyGain(s.voice, s.voiceState.Volume)
	if s.music != nil {
		s.applyGain(s.music, s.musicState.Volume)
	}
}

// SwapClip runs the clip-swap protocol for the video slot. When the
// destination clip's source matches the element's current source only a seek
// (and resume while playing) happens; otherwise the new source is assigned and
// the seek/play continuation waits on the element's one-shot ready signal. A
// load fault aborts the swap and reports upward without retry.
func (s *Synchronizer) SwapClip(clip timeline.Clip, offset float64, playing bool) {
	sl := s.video
	s.clipVolume = clip.Asset.Volume
	src := clip.Asset.Src

	if sl.elem.Source() == src {
		sl.elem.Seek(clip.Trim + offset)
		s.applyGain(sl, s.clipVolume)
		if playing {
			s.play(sl)
		} else {
			sl.elem.Pause()
			if sl.state == SlotPlaying {
				sl.state = SlotReady
			}
		}
		return
	}

	sl.invalidate()
	gen := sl.gen
	sl.state = SlotLoading
	sl.elem.SetSource(src)
	sl.elem.AwaitReady(func(err error) {
		if sl.gen != gen {
			// A newer swap or a pause superseded this load.
			return
		}
		if err != nil {
			s.fault(sl, fmt.Errorf("%w: %s: %v", ErrMediaLoad, src, err))
			return
		}
		sl.state = SlotReady
		sl.elem.Seek(clip.Trim + offset)
		s.applyGain(sl, s.clipVolume)
		if playing {
			s.play(sl)
		}
	})
}

// ScrubTo positions the video slot while playback is not running: the element
// stays paused and the swap protocol's play step is skipped entirely.
func (s *Synchronizer) ScrubTo(clip timeline.Clip, offset float64) {
	s.SwapClip(clip, offset, false)
}

// StartAudio begins the audio session. The scheduler calls it exactly once per
// Stopped→Playing transition; clip swaps never restart the audio tracks.
func (s *Synchronizer) StartAudio(t float64) {
	if s.audioStarted {
		return
	}
	s.audioStarted = true
	s.startAudioSlot(s.voice, s.voiceState, t)
	if s.music != nil {
		s.startAudioSlot(s.music, s.musicState, t)
	}
}

func (s *Synchronizer) startAudioSlot(sl *slot, state AudioTrackState, t float64) {
	if state.Src == "" {
		return
	}
	seekTo := t + state.Trim

	if sl.elem.Source() == state.Src {
		sl.elem.Seek(seekTo)
		s.applyGain(sl, state.Volume)
		sl.elem.SetMuted(s.pastEnd(state, t))
		s.play(sl)
		return
	}

	sl.invalidate()
	gen := sl.gen
	sl.state = SlotLoading
	sl.elem.SetSource(state.Src)
	sl.elem.AwaitReady(func(err error) {
		if sl.gen != gen {
			return
		}
		if err != nil {
			s.fault(sl, fmt.Errorf("%w: %s: %v", ErrMediaLoad, state.Src, err))
			return
		}
		sl.state = SlotReady
		sl.elem.Seek(seekTo)
		s.applyGain(sl, state.Volume)
		sl.elem.SetMuted(s.pastEnd(state, t))
		s.play(sl)
	})
}

// SyncAudio enforces finite-length muting each tick: an audio element whose
// placed length has elapsed is muted rather than stopped, because it may stay
// loaded for scrubbing.
func (s *Synchronizer) SyncAudio(t float64) {
	s.voice.elem.SetMuted(s.pastEnd(s.voiceState, t))
	if s.music != nil {
		s.music.elem.SetMuted(s.pastEnd(s.musicState, t))
	}
}

// PauseAll pauses every element and ends the audio session.
func (s *Synchronizer) PauseAll() {
	for _, sl := range s.slots() {
		sl.invalidate()
		sl.elem.Pause()
		if sl.state == SlotPlaying {
			sl.state = SlotReady
		}
	}
	s.audioStarted = false
}

// SetMuted applies the global mute flag: muted elements keep their position
// but play at zero gain.
func (s *Synchronizer) SetMuted(muted bool) {
	s.muted = muted
	s.applyGain(s.video, s.clipVolume)
	s.applyGain(s.voice, s.voiceState.Volume)
	if s.music != nil {
		s.applyGain(s.music, s.musicState.Volume)
	}
}

// Muted reports the global mute flag.
func (s *Synchronizer) Muted() bool {
	return s.muted
}

// VideoState exposes the video slot's lifecycle state for status reporting.
func (s *Synchronizer) VideoState() SlotState {
	return s.video.state
}

func (s *Synchronizer) slots() []*slot {
	out := []*slot{s.video, s.voice}
	if s.music != nil {
		out = append(out, s.music)
	}
	return out
}

func (s *Synchronizer) pastEnd(state AudioTrackState, t float64) bool {
	return state.End > 0 && t > state.End
}

func (s *Synchronizer) applyGain(sl *slot, volume float64) {
	if s.muted {
		sl.elem.SetVolume(0)
		return
	}
	sl.elem.SetVolume(volume)
}

func (s *Synchronizer) play(sl *slot) {
	if err := sl.elem.Play(); err != nil {
		s.fault(sl, fmt.Errorf("%w: %v", ErrMediaPlayback, err))
		return
	}
	sl.state = SlotPlaying
}

func (s *Synchronizer) fault(sl *slot, err error) {
	sl.state = SlotErrored
	s.logger.Error("media element fault",
		logging.String("slot", sl.name),
		logging.Error(err))
	if s.onFault != nil {
		s.onFault(err)
	}
}
