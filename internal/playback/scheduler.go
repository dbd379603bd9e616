package playback

import (
	"sync"
	"time"

	"log/slog"

	"cutline/internal/logging"
	"cutline/internal/media"
	"cutline/internal/timeline"
)

// State is the scheduler's transport mode.
type State string

const (
	StateStopped   State = "stopped"
	StatePlaying   State = "playing"
	StateScrubbing State = "scrubbing"
)

// Window describes an open visual transition at a clip boundary.
type Window struct {
	Effect   timeline.Transition
	Duration float64
	opened   time.Time
}

// Scheduler is the single writer of playback state. It owns the media
// synchronizer exclusively; every other component reaches the elements through
// the scheduler's methods, so state, position and element commands can never
// race each other.
type Scheduler struct {
	mu     sync.Mutex
	logger *slog.Logger
	sync   *media.Synchronizer
	loop   FrameLoop

	edit        timeline.Edit
	state       State
	t           float64
	run         uint64
	lastTick    time.Time
	activeIndex int
	window      *Window

	faultMu sync.Mutex
	faultEr error
}

// NewScheduler wires a scheduler over the synchronizer and a frame source.
func NewScheduler(synchronizer *media.Synchronizer, loop FrameLoop, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Scheduler{
		logger:      logger.With(logging.String(logging.FieldComponent, "playback")),
		sync:        synchronizer,
		loop:        loop,
		state:       StateStopped,
		activeIndex: -1,
	}
	// Faults can fire synchronously from inside a scheduler call that already
	// holds the state lock, so the handler only records; the calling entry
	// point performs the halt.
	synchronizer.SetFaultHandler(func(err error) {
		s.faultMu.Lock()
		if s.faultEr == nil {
			s.faultEr = err
		}
		s.faultMu.Unlock()
	})
	return s
}

// SetEdit replaces the composition under playback. The playhead clamps into
// the new duration and the video element is repositioned immediately so the
// frame on screen always comes from the current document.
func (s *Scheduler) SetEdit(edit timeline.Edit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edit = edit
	total := edit.Duration()
	if s.t > total {
		s.t = total
	}
	pos, ok := timeline.FindClipAtTime(edit, s.t)
	if !ok {
		s.activeIndex = -1
		return
	}
	s.activeIndex = pos.Index
	if s.state == StatePlaying {
		s.sync.SwapClip(pos.Clip, pos.Offset, true)
	} else {
		s.sync.ScrubTo(pos.Clip, pos.Offset)
	}
	s.collectFaultLocked()
}

// ConfigureAudio forwards the rebuilt audio track state to the synchronizer.
func (s *Scheduler) ConfigureAudio(voice media.AudioTrackState, music *media.AudioTrackState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync.ConfigureAudio(voice, music)
}

// Play starts playback from the current playhead, rewinding first when the
// playhead sits at the end. The initial clip swap and the audio session start
// run synchronously inside this call so they stay within the host's
// user-gesture window. A prior fault is cleared: pressing play is the retry.
func (s *Scheduler) Play(now time.Time) error {
	s.faultMu.Lock()
	s.faultEr = nil
	s.faultMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StatePlaying {
		return nil
	}
	return s.startLocked(now)
}

func (s *Scheduler) startLocked(now time.Time) error {
	total := s.edit.Duration()
	if total <= 0 {
		return nil
	}
	if s.t >= total {
		s.t = 0
	}
	pos, ok := timeline.FindClipAtTime(s.edit, s.t)
	if !ok {
		return nil
	}
	s.activeIndex = pos.Index
	s.sync.SwapClip(pos.Clip, pos.Offset, true)
	s.sync.StartAudio(s.t)
	if err := s.collectFaultLocked(); err != nil {
		s.sync.PauseAll()
		return err
	}

	s.state = StatePlaying
	s.lastTick = now
	s.run++
	run := s.run
	s.loop.Start(func(frameNow time.Time) {
		s.tick(run, frameNow)
	})
	s.logger.Info("playback started", logging.Float64("position", s.t))
	return nil
}

// Pause halts playback in place. The playhead keeps its position.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return
	}
	s.haltLocked()
	s.logger.Info("playback paused", logging.Float64("position", s.t))
}

// BeginScrub enters scrub mode. Playback, if running, pauses first.
func (s *Scheduler) BeginScrub() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateScrubbing {
		return
	}
	if s.state == StatePlaying {
		s.haltLocked()
	}
	s.state = StateScrubbing
}

// ScrubTo moves the playhead while scrubbed or stopped. The video element
// follows the playhead but never plays.
func (s *Scheduler) ScrubTo(t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StatePlaying {
		return
	}
	s.seekLocked(t)
}

// EndScrub leaves scrub mode. Release always lands in Stopped, even when
// scrubbing interrupted playback; resuming takes an explicit Play.
func (s *Scheduler) EndScrub() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateScrubbing {
		return
	}
	s.state = StateStopped
}

// SeekTo jumps the playhead in any state. While playing the audio session is
// restarted at the new position so voiceover and music stay aligned.
func (s *Scheduler) SeekTo(t float64, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		s.seekLocked(t)
		return nil
	}
	s.haltLocked()
	s.t = s.clamp(t)
	return s.startLocked(now)
}

func (s *Scheduler) seekLocked(t float64) {
	s.t = s.clamp(t)
	pos, ok := timeline.FindClipAtTime(s.edit, s.t)
	if !ok {
		return
	}
	s.activeIndex = pos.Index
	s.sync.ScrubTo(pos.Clip, pos.Offset)
	s.collectFaultLocked()
}

// SetMuted toggles the global audio mute.
func (s *Scheduler) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync.SetMuted(muted)
}

// Muted reports the global audio mute.
func (s *Scheduler) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sync.Muted()
}

// State reports the current transport mode.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Position reports the playhead in timeline seconds.
func (s *Scheduler) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t
}

// ActiveClip reports the index of the clip under the playhead, or -1 when the
// edit is empty.
func (s *Scheduler) ActiveClip() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeIndex
}

// TransitionActive reports the open visual window, if any.
func (s *Scheduler) TransitionActive() (Window, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.window == nil {
		return Window{}, false
	}
	return *s.window, true
}

// Fault reports the media error that halted playback, if one has occurred
// since the last Play.
func (s *Scheduler) Fault() error {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	return s.faultEr
}

// tick advances the playhead by the wall-clock delta since the previous frame.
// Frames from a superseded run are discarded by the generation check.
func (s *Scheduler) tick(run uint64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if run != s.run || s.state != StatePlaying {
		return
	}

	dt := now.Sub(s.lastTick).Seconds()
	if dt < 0 {
		dt = 0
	}
	s.lastTick = now
	s.t += dt

	total := s.edit.Duration()
	if s.t >= total {
		s.t = total
		s.haltLocked()
		s.logger.Info("playback reached end", logging.Float64("position", s.t))
		return
	}

	pos, ok := timeline.FindClipAtTime(s.edit, s.t)
	if ok && pos.Index != s.activeIndex {
		s.openWindowLocked(pos, now)
		s.activeIndex = pos.Index
		s.sync.SwapClip(pos.Clip, pos.Offset, true)
	}

	if s.window != nil && now.Sub(s.window.opened).Seconds() >= s.window.Duration {
		s.window = nil
	}

	s.sync.SyncAudio(s.t)

	if err := s.collectFaultLocked(); err != nil {
		s.haltLocked()
		s.logger.Error("playback halted", logging.Error(err))
	}
}

// openWindowLocked opens a visual window when the incoming clip carries an
// entry effect. Its duration derives from the boundary's geometric overlap,
// read back from the built document rather than recomputed from settings.
func (s *Scheduler) openWindowLocked(pos timeline.Position, now time.Time) {
	if pos.Clip.Transition == nil || pos.Clip.Transition.In == timeline.TransitionNone || pos.Clip.Transition.In == "" {
		return
	}
	track := s.edit.VideoTrack()
	if track == nil || pos.Index <= 0 || pos.Index >= len(track.Clips) {
		return
	}
	overlap := track.Clips[pos.Index-1].End() - pos.Clip.Start
	if overlap <= 0 {
		return
	}
	s.window = &Window{
		Effect:   pos.Clip.Transition.In,
		Duration: timeline.VisualDuration(overlap),
		opened:   now,
	}
}

// haltLocked stops the frame loop, invalidates in-flight ready callbacks and
// pauses every element. Stale frames from the old run are fenced off by the
// generation bump.
func (s *Scheduler) haltLocked() {
	s.run++
	s.loop.Stop()
	s.sync.PauseAll()
	s.state = StateStopped
	s.window = nil
}

func (s *Scheduler) clamp(t float64) float64 {
	if t < 0 {
		return 0
	}
	if total := s.edit.Duration(); t > total {
		return total
	}
	return t
}

// collectFaultLocked picks up any fault the synchronizer recorded during the
// preceding element commands.
func (s *Scheduler) collectFaultLocked() error {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	return s.faultEr
}
