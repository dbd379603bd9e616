package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"cutline/internal/project"
)

func TestLoadValidProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")
	payload := `{
		"id": "proj-1",
		"title": "launch teaser",
		"scenes": [
			{"scene_id": 2, "video_url": "https://cdn.example.com/2.mp4", "duration_seconds": 8},
			{"scene_id": 1, "video_url": "https://cdn.example.com/1.mp4", "duration_seconds": 6}
		],
		"voiceover": {"url": "https://cdn.example.com/voice.mp3", "total_duration": 14},
		"music": {"url": "https://cdn.example.com/music.mp3", "total_duration": 120}
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write project: %v", err)
	}

	p, err := project.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	clips := p.SourceClips()
	if len(clips) != 2 || clips[0].SceneID != 1 || clips[1].SceneID != 2 {
		t.Fatalf("source clips not sorted by identity: %+v", clips)
	}
	if ids := p.SceneIDs(); ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("scene ids = %v", ids)
	}
}

func TestValidateRejectsMissingVoiceover(t *testing.T) {
	p := project.Project{
		ID:     "proj-1",
		Scenes: []project.Scene{{SceneID: 1, VideoURL: "https://cdn.example.com/1.mp4", DurationSeconds: 5}},
	}
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for missing voiceover")
	}
}

func TestValidateRejectsDuplicateScenes(t *testing.T) {
	p := project.Project{
		ID: "proj-1",
		Scenes: []project.Scene{
			{SceneID: 1, VideoURL: "https://cdn.example.com/1.mp4", DurationSeconds: 5},
			{SceneID: 1, VideoURL: "https://cdn.example.com/1b.mp4", DurationSeconds: 5},
		},
		Voiceover: project.AudioAsset{URL: "https://cdn.example.com/voice.mp3"},
	}
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for duplicate scene ids")
	}
}

func TestValidateClampsNegativeDurations(t *testing.T) {
	p := project.Project{
		ID:        "proj-1",
		Scenes:    []project.Scene{{SceneID: 1, VideoURL: "https://cdn.example.com/1.mp4", DurationSeconds: -3}},
		Voiceover: project.AudioAsset{URL: "https://cdn.example.com/voice.mp3", TotalDuration: -1},
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if p.Scenes[0].DurationSeconds != 0 {
		t.Fatalf("scene duration = %v, want clamp to 0", p.Scenes[0].DurationSeconds)
	}
	if p.Voiceover.TotalDuration != 0 {
		t.Fatalf("voiceover duration = %v, want clamp to 0", p.Voiceover.TotalDuration)
	}
}

func TestValidateDropsEmptyMusic(t *testing.T) {
	p := project.Project{
		ID:        "proj-1",
		Scenes:    []project.Scene{{SceneID: 1, VideoURL: "https://cdn.example.com/1.mp4", DurationSeconds: 5}},
		Voiceover: project.AudioAsset{URL: "https://cdn.example.com/voice.mp3"},
		Music:     &project.AudioAsset{URL: "   "},
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if p.Music != nil {
		t.Fatal("blank music asset should be dropped")
	}
}
