package testsupport

import (
	"fmt"
	"testing"

	"cutline/internal/project"
)

// NewProject builds a valid in-memory project with the requested number of
// scenes, each clipLength seconds long.
func NewProject(t testing.TB, sceneCount int, clipLength float64) *project.Project {
	t.Helper()

	scenes := make([]project.Scene, 0, sceneCount)
	for i := 0; i < sceneCount; i++ {
		scenes = append(scenes, project.Scene{
			SceneID:         int64(i + 1),
			VideoURL:        fmt.Sprintf("https://cdn.example.com/scene-%d.mp4", i+1),
			DurationSeconds: clipLength,
		})
	}
	p := &project.Project{
		ID:        "test-project",
		Title:     "test project",
		Scenes:    scenes,
		Voiceover: project.AudioAsset{URL: "https://cdn.example.com/voice.mp3", TotalDuration: clipLength * float64(sceneCount)},
		Music:     &project.AudioAsset{URL: "https://cdn.example.com/music.mp3", TotalDuration: 120},
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("fixture project invalid: %v", err)
	}
	return p
}
