package settings_test

import (
	"context"
	"reflect"
	"testing"

	"cutline/internal/settings"
	"cutline/internal/testsupport"
)

func TestStoreRoundTrip(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	volume := 0.7
	snap := settings.Snapshot{
		GapTransitions:     map[int]string{0: "fade", 2: "slideUp"},
		GapDurations:       map[int]float64{0: 0.5},
		DefaultGapDuration: 1.2,
		ClipAudio:          map[int64]settings.ClipAudioSetting{7: {Volume: 0.4, FadeOut: true}},
		ClipOrder:          []int64{3, 1, 2},
		Voiceover:          settings.TrackSetting{Volume: &volume, Trim: 1.5},
		Muted:              true,
	}

	if err := store.Save(ctx, "project-a", snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok, err := store.Load(ctx, "project-a")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("Load reported no snapshot after Save")
	}
	if !reflect.DeepEqual(got, snap) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, snap)
	}
}

func TestStoreLoadMissingProject(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	_, ok, err := store.Load(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Error("Load reported a snapshot for an unknown project")
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if err := store.Save(ctx, "p", settings.Snapshot{DefaultGapDuration: 0.5}); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := store.Save(ctx, "p", settings.Snapshot{DefaultGapDuration: 1.5}); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, ok, err := store.Load(ctx, "p")
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if got.DefaultGapDuration != 1.5 {
		t.Errorf("DefaultGapDuration = %v, want latest write 1.5", got.DefaultGapDuration)
	}
}

func TestStoreSaveRequiresProjectID(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	if err := store.Save(context.Background(), "", settings.Snapshot{}); err == nil {
		t.Error("Save accepted an empty project id")
	}
}

func TestStoreDelete(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if err := store.Save(ctx, "p", settings.Snapshot{Muted: true}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "p"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, ok, err := store.Load(ctx, "p")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Error("snapshot survived Delete")
	}
}
