// Package session is the engine facade: it owns one project's inputs and
// settings snapshot, rebuilds the edit document on every mutation, and wires
// the playback scheduler, media synchronizer, scrub controller and persistence
// adapter together. Documents are built fresh and replaced wholesale; nothing
// ever mutates a built edit in place.
package session

import (
	"errors"
	"reflect"
	"sync"
	"time"

	"log/slog"

	"cutline/internal/config"
	"cutline/internal/logging"
	"cutline/internal/media"
	"cutline/internal/playback"
	"cutline/internal/project"
	"cutline/internal/scrub"
	"cutline/internal/services"
	"cutline/internal/settings"
	"cutline/internal/timeline"
)

// Options carries everything a session needs at construction.
type Options struct {
	Config  *config.Config
	Project *project.Project

	// Host media elements. Music may be nil when the project has no music
	// track; it is ignored in that case regardless.
	Video media.Element
	Voice media.Element
	Music media.Element

	// Loop drives playback frames. Nil gets a ticker at the configured rate.
	Loop playback.FrameLoop

	// Adapter receives debounced snapshot writes. Nil disables persistence.
	Adapter *settings.Adapter

	// Snapshot is the persisted state loaded for this project, zero when none.
	Snapshot settings.Snapshot

	Logger *slog.Logger
}

// Session hosts one project's preview: composition state, transport and
// persistence behind a single mutex.
type Session struct {
	mu sync.Mutex

	logger  *slog.Logger
	cfg     *config.Config
	proj    *project.Project
	snap    settings.Snapshot
	adapter *settings.Adapter

	sched    *playback.Scheduler
	scrubber *scrub.Controller

	edit       timeline.Edit
	lastInputs timeline.Inputs
}

// Status is the transport and composition summary exposed over the control
// surfaces.
type Status struct {
	ProjectID  string         `json:"project_id"`
	State      playback.State `json:"state"`
	Position   float64        `json:"position"`
	Duration   float64        `json:"duration"`
	ActiveClip int            `json:"active_clip"`
	Muted      bool           `json:"muted"`
	Fault      string         `json:"fault,omitempty"`
}

// New builds a session and performs the initial edit build.
func New(opts Options) (*Session, error) {
	if opts.Config == nil || opts.Project == nil {
		return nil, services.Wrap(services.ErrValidation, "session", "new", "config and project are required", nil)
	}
	if opts.Video == nil || opts.Voice == nil {
		return nil, services.Wrap(services.ErrValidation, "session", "new", "video and voiceover elements are required", nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	loop := opts.Loop
	if loop == nil {
		loop = playback.NewTickerLoop(opts.Config.Preview.FrameRate)
	}

	music := opts.Music
	if opts.Project.Music == nil {
		music = nil
	}

	s := &Session{
		logger:  logger.With(logging.String(logging.FieldComponent, "session"), logging.String(logging.FieldProjectID, opts.Project.ID)),
		cfg:     opts.Config,
		proj:    opts.Project,
		snap:    opts.Snapshot.Normalized(defaultsFrom(opts.Config)),
		adapter: opts.Adapter,
		scrubber: scrub.NewController(
			opts.Config.Preview.LabelColumnWidth,
			opts.Config.Preview.PixelsPerSecond,
		),
	}
	s.sched = playback.NewScheduler(media.New(opts.Video, opts.Voice, music, logger), loop, logger)
	s.sched.SetMuted(s.snap.Muted)
	s.rebuildLocked(false)
	return s, nil
}

func defaultsFrom(cfg *config.Config) settings.Defaults {
	return settings.Defaults{
		GapDuration:     cfg.Preview.DefaultGapDuration,
		VoiceoverVolume: cfg.Preview.VoiceoverVolume,
		MusicVolume:     cfg.Preview.MusicVolume,
	}
}

// Close flushes pending persistence and stops playback.
func (s *Session) Close() {
	s.sched.Pause()
	if s.adapter != nil {
		s.adapter.Close()
	}
}

// Edit returns the current built document.
func (s *Session) Edit() timeline.Edit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edit
}

// Snapshot returns the current normalized settings state.
func (s *Session) Snapshot() settings.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Project returns the project under preview.
func (s *Session) Project() *project.Project {
	return s.proj
}

// Status reports the transport summary.
func (s *Session) Status() Status {
	s.mu.Lock()
	duration := s.edit.Duration()
	projectID := s.proj.ID
	s.mu.Unlock()

	st := Status{
		ProjectID:  projectID,
		State:      s.sched.State(),
		Position:   s.sched.Position(),
		Duration:   duration,
		ActiveClip: s.sched.ActiveClip(),
		Muted:      s.sched.Muted(),
	}
	if err := s.sched.Fault(); err != nil {
		st.Fault = err.Error()
	}
	return st
}

// Fault reports the scheduler's halting media error, if any.
func (s *Session) Fault() error {
	return s.sched.Fault()
}

// Play starts playback.
func (s *Session) Play() error {
	return s.sched.Play(time.Now())
}

// Pause stops playback in place.
func (s *Session) Pause() {
	s.sched.Pause()
}

// SeekTo jumps the playhead.
func (s *Session) SeekTo(t float64) error {
	return s.sched.SeekTo(t, time.Now())
}

// BeginScrub enters scrub mode, pausing playback if running.
func (s *Session) BeginScrub() {
	s.sched.BeginScrub()
}

// EndScrub leaves scrub mode. The transport stays stopped at the scrub
// position; playback never resumes on release.
func (s *Session) EndScrub() {
	s.sched.EndScrub()
}

// PointerScrub maps a pointer x-coordinate to a timeline instant and positions
// the playhead there. Playback, if running, drops to scrubbing first.
func (s *Session) PointerScrub(x float64) float64 {
	s.mu.Lock()
	total := s.edit.Duration()
	s.mu.Unlock()

	t := s.scrubber.PointerToTime(x, total)
	s.sched.BeginScrub()
	s.sched.ScrubTo(t)
	return t
}

// SetMuted applies the global mute and persists it.
func (s *Session) SetMuted(muted bool) {
	s.sched.SetMuted(muted)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Muted = muted
	s.queueSaveLocked()
}

// ReorderClip applies a drag gesture moving the clip at position from in front
// of position to. A gesture that does not produce a valid permutation leaves
// the order untouched.
func (s *Session) ReorderClip(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.effectiveOrderLocked()
	if from < 0 || from >= len(order) || to < 0 || to >= len(order) {
		return services.Wrap(services.ErrValidation, "session", "reorder", "clip index out of range", nil)
	}
	s.snap.ClipOrder = scrub.Reorder(order, from, to)
	s.rebuildLocked(true)
	return nil
}

// SetGapTransition assigns the visual effect at the boundary between ordered
// clips index and index+1. TransitionNone removes the assignment.
func (s *Session) SetGapTransition(boundary int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if boundary < 0 || boundary >= len(s.proj.Scenes)-1 {
		return services.Wrap(services.ErrValidation, "session", "set transition", "boundary out of range", nil)
	}
	t, ok := timeline.ParseTransition(name)
	if !ok {
		return services.Wrap(services.ErrValidation, "session", "set transition", "unknown transition "+name, nil)
	}
	if t == timeline.TransitionNone {
		delete(s.snap.GapTransitions, boundary)
	} else {
		if s.snap.GapTransitions == nil {
			s.snap.GapTransitions = make(map[int]string)
		}
		s.snap.GapTransitions[boundary] = string(t)
	}
	s.rebuildLocked(true)
	return nil
}

// SetGapDuration overrides the transition duration at one boundary. The value
// clamps into the supported range silently.
func (s *Session) SetGapDuration(boundary int, seconds float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if boundary < 0 || boundary >= len(s.proj.Scenes)-1 {
		return services.Wrap(services.ErrValidation, "session", "set gap duration", "boundary out of range", nil)
	}
	if s.snap.GapDurations == nil {
		s.snap.GapDurations = make(map[int]float64)
	}
	s.snap.GapDurations[boundary] = timeline.ClampGapDuration(seconds)
	s.rebuildLocked(true)
	return nil
}

// SetDefaultGapDuration changes the fallback transition duration.
func (s *Session) SetDefaultGapDuration(seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.DefaultGapDuration = timeline.ClampGapDuration(seconds)
	s.rebuildLocked(true)
}

// SetClipAudio stores the per-clip audio setting for a scene.
func (s *Session) SetClipAudio(sceneID int64, setting settings.ClipAudioSetting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.sceneExistsLocked(sceneID) {
		return services.Wrap(services.ErrNotFound, "session", "set clip audio", "unknown scene", nil)
	}
	if s.snap.ClipAudio == nil {
		s.snap.ClipAudio = make(map[int64]settings.ClipAudioSetting)
	}
	s.snap.ClipAudio[sceneID] = setting
	s.snap = s.snap.Normalized(defaultsFrom(s.cfg))
	s.logger.Debug("clip audio updated", logging.Int64(logging.FieldSceneID, sceneID))
	s.rebuildLocked(true)
	return nil
}

// SetTrackVolume changes an audio track's volume.
func (s *Session) SetTrackVolume(kind timeline.TrackKind, volume float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	setting, _, err := s.trackSettingLocked(kind)
	if err != nil {
		return err
	}
	setting.Volume = &volume
	s.snap = s.snap.Normalized(defaultsFrom(s.cfg))
	s.rebuildLocked(true)
	return nil
}

// SetAudioTrim moves an audio track's in-point into its source.
func (s *Session) SetAudioTrim(kind timeline.TrackKind, trim float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	setting, source, err := s.trackSettingLocked(kind)
	if err != nil {
		return err
	}
	setting.Trim = scrub.ClampTrim(trim, source)
	s.rebuildLocked(true)
	return nil
}

// SetAudioLength changes an audio track's placed length. timeline.AutoLength
// restores the fill-to-video behavior.
func (s *Session) SetAudioLength(kind timeline.TrackKind, length float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	setting, source, err := s.trackSettingLocked(kind)
	if err != nil {
		return err
	}
	if timeline.IsAutoLength(length) {
		setting.Length = nil
	} else {
		clamped := scrub.ClampLength(length, setting.Trim, source)
		setting.Length = &clamped
	}
	s.rebuildLocked(true)
	return nil
}

// AdoptSnapshot replaces local settings with a remotely produced snapshot.
// The next queued save is swallowed so the adoption does not echo back to the
// store it came from.
func (s *Session) AdoptSnapshot(snap settings.Snapshot) {
	if s.adapter != nil {
		s.adapter.AdoptRemote()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap.Normalized(defaultsFrom(s.cfg))
	s.sched.SetMuted(s.snap.Muted)
	s.rebuildLocked(true)
	s.logger.Info("adopted remote snapshot")
}

func (s *Session) sceneExistsLocked(sceneID int64) bool {
	for _, scene := range s.proj.Scenes {
		if scene.SceneID == sceneID {
			return true
		}
	}
	return false
}

func (s *Session) effectiveOrderLocked() []int64 {
	ids := s.proj.SceneIDs()
	if len(s.snap.ClipOrder) != len(ids) {
		return ids
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range s.snap.ClipOrder {
		seen[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			return ids
		}
	}
	out := make([]int64, len(s.snap.ClipOrder))
	copy(out, s.snap.ClipOrder)
	return out
}

func (s *Session) trackSettingLocked(kind timeline.TrackKind) (*settings.TrackSetting, float64, error) {
	switch kind {
	case timeline.TrackVoiceover:
		return &s.snap.Voiceover, s.proj.Voiceover.TotalDuration, nil
	case timeline.TrackMusic:
		if s.proj.Music == nil {
			return nil, 0, services.Wrap(services.ErrNotFound, "session", "track setting", "project has no music track", nil)
		}
		return &s.snap.Music, s.proj.Music.TotalDuration, nil
	default:
		return nil, 0, services.Wrap(services.ErrValidation, "session", "track setting", "unknown audio track "+string(kind), nil)
	}
}

func (s *Session) inputsLocked() timeline.Inputs {
	return assembleInputs(s.cfg, s.proj, s.snap)
}

func assembleInputs(cfg *config.Config, proj *project.Project, snap settings.Snapshot) timeline.Inputs {
	in := timeline.Inputs{
		Clips:              proj.SourceClips(),
		Transitions:        snap.Transitions(),
		GapDurations:       snap.GapDurations,
		DefaultGapDuration: snap.DefaultGapDuration,
		ClipAudio:          snap.ClipAudioInputs(),
		Order:              snap.ClipOrder,
		Voiceover: timeline.AudioSource{
			URL:           proj.Voiceover.URL,
			TotalDuration: proj.Voiceover.TotalDuration,
		},
		VoiceoverConfig: snap.Voiceover.TrackConfig(),
		Background:      cfg.Render.Background,
		Output: timeline.Output{
			Format: cfg.Render.Format,
			Size: timeline.Size{
				Width:  cfg.Render.Width,
				Height: cfg.Render.Height,
			},
		},
	}
	if proj.Music != nil {
		in.Music = &timeline.AudioSource{
			URL:           proj.Music.URL,
			TotalDuration: proj.Music.TotalDuration,
		}
		in.MusicConfig = snap.Music.TrackConfig()
	}
	return in
}

// Compose builds the edit document for a project and a stored settings
// snapshot without hosting a playback session. The CLI uses it to inspect and
// export timelines while no daemon is running.
func Compose(cfg *config.Config, proj *project.Project, snap settings.Snapshot) (timeline.Edit, error) {
	if cfg == nil || proj == nil {
		return timeline.Edit{}, errors.New("compose requires config and project")
	}
	normalized := snap.Normalized(defaultsFrom(cfg))
	return timeline.BuildEdit(assembleInputs(cfg, proj, normalized)), nil
}

// rebuildLocked derives a fresh edit from the current inputs and hands it to
// the scheduler. Identical inputs skip the rebuild, so no-op mutations cost
// nothing downstream.
func (s *Session) rebuildLocked(queueSave bool) {
	in := s.inputsLocked()
	if !reflect.DeepEqual(in, s.lastInputs) {
		s.lastInputs = in
		s.edit = timeline.BuildEdit(in)
		s.sched.SetEdit(s.edit)
		s.sched.ConfigureAudio(s.audioStatesLocked())
		s.logger.Debug("edit rebuilt", logging.Float64("duration", s.edit.Duration()))
	}
	if queueSave {
		s.queueSaveLocked()
	}
}

// audioStatesLocked reads the audio slots' runtime state back out of the built
// document rather than recomputing it from settings, so preview and export can
// never disagree about audio placement.
func (s *Session) audioStatesLocked() (media.AudioTrackState, *media.AudioTrackState) {
	voice := audioState(s.edit.AudioTrack(timeline.TrackVoiceover))
	var music *media.AudioTrackState
	if track := s.edit.AudioTrack(timeline.TrackMusic); track != nil {
		m := audioState(track)
		music = &m
	}
	return voice, music
}

func audioState(track *timeline.Track) media.AudioTrackState {
	if track == nil || len(track.Clips) == 0 {
		return media.AudioTrackState{}
	}
	clip := track.Clips[0]
	return media.AudioTrackState{
		Src:    clip.Asset.Src,
		Trim:   clip.Trim,
		End:    clip.End(),
		Volume: clip.Asset.Volume,
	}
}

func (s *Session) queueSaveLocked() {
	if s.adapter == nil {
		return
	}
	s.adapter.Queue(s.snap)
}
