package session_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"cutline/internal/config"
	"cutline/internal/playback"
	"cutline/internal/project"
	"cutline/internal/services"
	"cutline/internal/session"
	"cutline/internal/settings"
	"cutline/internal/testsupport"
	"cutline/internal/timeline"
)

type harness struct {
	cfg   *config.Config
	proj  *project.Project
	video *testsupport.FakeElement
	voice *testsupport.FakeElement
	music *testsupport.FakeElement
	loop  *playback.ManualLoop
	sess  *session.Session
}

func newHarness(t *testing.T, opts ...func(*session.Options)) *harness {
	t.Helper()
	h := &harness{
		cfg:   testsupport.NewConfig(t),
		video: &testsupport.FakeElement{AutoReady: true},
		voice: &testsupport.FakeElement{AutoReady: true},
		music: &testsupport.FakeElement{AutoReady: true},
		loop:  &playback.ManualLoop{},
	}
	h.proj = testsupport.NewProject(t, 3, 8)

	o := session.Options{
		Config:  h.cfg,
		Project: h.proj,
		Video:   h.video,
		Voice:   h.voice,
		Music:   h.music,
		Loop:    h.loop,
	}
	for _, opt := range opts {
		opt(&o)
	}
	sess, err := session.New(o)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	t.Cleanup(sess.Close)
	h.sess = sess
	return h
}

func videoSceneIDs(edit timeline.Edit) []int64 {
	track := edit.VideoTrack()
	ids := make([]int64, 0, len(track.Clips))
	for _, clip := range track.Clips {
		ids = append(ids, clip.SceneID)
	}
	return ids
}

func TestNewBuildsInitialEdit(t *testing.T) {
	h := newHarness(t)
	edit := h.sess.Edit()

	if got := edit.Duration(); got != 24 {
		t.Errorf("duration = %v, want 24", got)
	}
	if got := videoSceneIDs(edit); !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Errorf("clip order = %v, want ascending scene ids", got)
	}
	vo := edit.AudioTrack(timeline.TrackVoiceover)
	if vo == nil || len(vo.Clips) != 1 {
		t.Fatal("voiceover track missing")
	}
	if got := vo.Clips[0].Length; got != 24 {
		t.Errorf("voiceover length = %v, want auto fill to 24", got)
	}
	if edit.AudioTrack(timeline.TrackMusic) == nil {
		t.Error("music track missing for a project with music")
	}
}

func TestProjectWithoutMusicHasNoMusicTrack(t *testing.T) {
	h := newHarness(t, func(o *session.Options) {
		o.Project.Music = nil
	})
	if h.sess.Edit().AudioTrack(timeline.TrackMusic) != nil {
		t.Error("music track present for a project without music")
	}
}

func TestSetGapTransitionShortensTimeline(t *testing.T) {
	h := newHarness(t)
	if err := h.sess.SetGapTransition(0, "fade"); err != nil {
		t.Fatalf("SetGapTransition: %v", err)
	}

	edit := h.sess.Edit()
	clips := edit.VideoTrack().Clips
	if got := clips[1].Start; got != 7 {
		t.Errorf("second clip start = %v, want 7 (1s overlap)", got)
	}
	if got := edit.Duration(); got != 23 {
		t.Errorf("duration = %v, want 23", got)
	}
	if clips[1].Transition == nil || clips[1].Transition.In != timeline.TransitionFade {
		t.Error("incoming transition tag missing on the second clip")
	}
	vo := edit.AudioTrack(timeline.TrackVoiceover)
	if got := vo.Clips[0].Length; got != 23 {
		t.Errorf("voiceover auto length = %v, want to track the new total", got)
	}
}

func TestSetGapTransitionValidation(t *testing.T) {
	h := newHarness(t)
	if err := h.sess.SetGapTransition(5, "fade"); !errors.Is(err, services.ErrValidation) {
		t.Errorf("out-of-range boundary error = %v, want validation", err)
	}
	if err := h.sess.SetGapTransition(0, "sparkle"); !errors.Is(err, services.ErrValidation) {
		t.Errorf("unknown transition error = %v, want validation", err)
	}
}

func TestSetGapTransitionNoneRemovesOverlap(t *testing.T) {
	h := newHarness(t)
	if err := h.sess.SetGapTransition(0, "fade"); err != nil {
		t.Fatalf("SetGapTransition: %v", err)
	}
	if err := h.sess.SetGapTransition(0, "none"); err != nil {
		t.Fatalf("SetGapTransition(none): %v", err)
	}
	if got := h.sess.Edit().Duration(); got != 24 {
		t.Errorf("duration = %v, want overlap removed", got)
	}
}

func TestSetGapDurationClamped(t *testing.T) {
	h := newHarness(t)
	if err := h.sess.SetGapTransition(0, "fade"); err != nil {
		t.Fatalf("SetGapTransition: %v", err)
	}
	if err := h.sess.SetGapDuration(0, 99); err != nil {
		t.Fatalf("SetGapDuration: %v", err)
	}
	clips := h.sess.Edit().VideoTrack().Clips
	if got := clips[1].Start; got != 6 {
		t.Errorf("second clip start = %v, want 6 (overlap clamped to 2s)", got)
	}
}

func TestReorderClip(t *testing.T) {
	h := newHarness(t)
	if err := h.sess.ReorderClip(0, 2); err != nil {
		t.Fatalf("ReorderClip: %v", err)
	}
	if got := videoSceneIDs(h.sess.Edit()); !reflect.DeepEqual(got, []int64{2, 3, 1}) {
		t.Errorf("clip order = %v, want [2 3 1]", got)
	}

	if err := h.sess.ReorderClip(7, 0); !errors.Is(err, services.ErrValidation) {
		t.Errorf("out-of-range reorder error = %v, want validation", err)
	}
}

func TestSetAudioTrimAndLength(t *testing.T) {
	h := newHarness(t)
	if err := h.sess.SetAudioTrim(timeline.TrackVoiceover, 2); err != nil {
		t.Fatalf("SetAudioTrim: %v", err)
	}
	if err := h.sess.SetAudioLength(timeline.TrackVoiceover, 10); err != nil {
		t.Fatalf("SetAudioLength: %v", err)
	}

	clip := h.sess.Edit().AudioTrack(timeline.TrackVoiceover).Clips[0]
	if clip.Trim != 2 {
		t.Errorf("trim = %v, want 2", clip.Trim)
	}
	if clip.Length != 10 {
		t.Errorf("length = %v, want 10", clip.Length)
	}

	if err := h.sess.SetAudioLength(timeline.TrackVoiceover, timeline.AutoLength); err != nil {
		t.Fatalf("SetAudioLength(auto): %v", err)
	}
	clip = h.sess.Edit().AudioTrack(timeline.TrackVoiceover).Clips[0]
	if clip.Length != 24 {
		t.Errorf("length = %v, want auto fill to 24", clip.Length)
	}
}

func TestSetTrackVolumeOnMissingMusic(t *testing.T) {
	h := newHarness(t, func(o *session.Options) {
		o.Project.Music = nil
	})
	if err := h.sess.SetTrackVolume(timeline.TrackMusic, 0.5); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestSetClipAudio(t *testing.T) {
	h := newHarness(t)
	if err := h.sess.SetClipAudio(2, settings.ClipAudioSetting{Volume: 0.9, FadeIn: true}); err != nil {
		t.Fatalf("SetClipAudio: %v", err)
	}
	clips := h.sess.Edit().VideoTrack().Clips
	if got := clips[1].Asset.Volume; got != 0.9 {
		t.Errorf("scene 2 volume = %v, want 0.9", got)
	}
	if got := clips[1].Asset.VolumeEffect; got != timeline.EffectFadeIn {
		t.Errorf("scene 2 effect = %q, want fadeIn", got)
	}
	if got := clips[0].Asset.Volume; got != timeline.DefaultClipVolume {
		t.Errorf("scene 1 volume = %v, want default", got)
	}

	if err := h.sess.SetClipAudio(99, settings.ClipAudioSetting{}); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("unknown scene error = %v, want not found", err)
	}
}

func TestSetMutedReflectsInStatus(t *testing.T) {
	h := newHarness(t)
	h.sess.SetMuted(true)
	if !h.sess.Status().Muted {
		t.Error("status does not report mute")
	}
	if h.voice.Volume != 0 {
		t.Errorf("voiceover gain = %v, want 0 under mute", h.voice.Volume)
	}
}

func TestPointerScrub(t *testing.T) {
	h := newHarness(t)
	x := h.cfg.Preview.LabelColumnWidth + 5*h.cfg.Preview.PixelsPerSecond

	got := h.sess.PointerScrub(x)
	if got != 5 {
		t.Errorf("PointerScrub = %v, want 5", got)
	}
	if st := h.sess.Status(); st.State != playback.StateScrubbing || st.Position != 5 {
		t.Errorf("status = %+v, want scrubbing at 5", st)
	}
	if h.video.IsPlay {
		t.Error("pointer scrub started playback")
	}
}

type countingSaver struct {
	mu    sync.Mutex
	saves []settings.Snapshot
}

func (s *countingSaver) Save(_ context.Context, _ string, snap settings.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, snap)
	return nil
}

func (s *countingSaver) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saves)
}

func TestMutationsDebounceIntoOneSave(t *testing.T) {
	saver := &countingSaver{}
	h := newHarness(t, func(o *session.Options) {
		o.Adapter = settings.NewAdapter(saver, "test-project", 30*time.Millisecond, nil)
	})

	if err := h.sess.SetGapTransition(0, "fade"); err != nil {
		t.Fatalf("SetGapTransition: %v", err)
	}
	if err := h.sess.SetGapTransition(1, "zoomIn"); err != nil {
		t.Fatalf("SetGapTransition: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for saver.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := saver.count(); got != 1 {
		t.Fatalf("saves = %d, want mutations coalesced into 1", got)
	}
	saver.mu.Lock()
	saved := saver.saves[0]
	saver.mu.Unlock()
	if saved.GapTransitions[0] != "fade" || saved.GapTransitions[1] != "zoomIn" {
		t.Errorf("saved snapshot = %+v, want both transitions", saved.GapTransitions)
	}
}

func TestAdoptSnapshotSwallowsEcho(t *testing.T) {
	saver := &countingSaver{}
	h := newHarness(t, func(o *session.Options) {
		o.Adapter = settings.NewAdapter(saver, "test-project", 20*time.Millisecond, nil)
	})

	h.sess.AdoptSnapshot(settings.Snapshot{
		GapTransitions: map[int]string{0: "slideLeft"},
		Muted:          true,
	})
	time.Sleep(80 * time.Millisecond)
	if got := saver.count(); got != 0 {
		t.Fatalf("saves = %d, want the adoption echo swallowed", got)
	}

	clips := h.sess.Edit().VideoTrack().Clips
	if clips[1].Transition == nil || clips[1].Transition.In != timeline.TransitionSlideLeft {
		t.Error("adopted transition not applied to the edit")
	}
	if !h.sess.Status().Muted {
		t.Error("adopted mute not applied")
	}

	if err := h.sess.SetGapDuration(0, 0.5); err != nil {
		t.Fatalf("SetGapDuration: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for saver.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := saver.count(); got != 1 {
		t.Errorf("saves = %d, want the next local edit persisted", got)
	}
}

func TestSnapshotRoundTripRebuildsIdenticalEdit(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	h := newHarness(t)
	if err := h.sess.SetGapTransition(0, "fade"); err != nil {
		t.Fatalf("SetGapTransition: %v", err)
	}
	if err := h.sess.ReorderClip(0, 1); err != nil {
		t.Fatalf("ReorderClip: %v", err)
	}
	if err := h.sess.SetAudioTrim(timeline.TrackVoiceover, 1.5); err != nil {
		t.Fatalf("SetAudioTrim: %v", err)
	}
	if err := store.Save(ctx, h.proj.ID, h.sess.Snapshot()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, ok, err := store.Load(ctx, h.proj.ID)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	restored, err := session.New(session.Options{
		Config:   h.cfg,
		Project:  h.proj,
		Video:    &testsupport.FakeElement{AutoReady: true},
		Voice:    &testsupport.FakeElement{AutoReady: true},
		Music:    &testsupport.FakeElement{AutoReady: true},
		Loop:     &playback.ManualLoop{},
		Snapshot: loaded,
	})
	if err != nil {
		t.Fatalf("restore session: %v", err)
	}
	defer restored.Close()

	if !reflect.DeepEqual(restored.Edit(), h.sess.Edit()) {
		t.Errorf("restored edit differs:\n got %+v\nwant %+v", restored.Edit(), h.sess.Edit())
	}
}

func TestPlayPauseTransport(t *testing.T) {
	h := newHarness(t)
	if err := h.sess.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if st := h.sess.Status(); st.State != playback.StatePlaying {
		t.Fatalf("state = %q, want playing", st.State)
	}
	h.sess.Pause()
	if st := h.sess.Status(); st.State != playback.StateStopped {
		t.Errorf("state = %q, want stopped", st.State)
	}
}
