package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"cutline/internal/timeline"
)

// Scene is one generated video clip.
type Scene struct {
	SceneID         int64   `json:"scene_id"`
	VideoURL        string  `json:"video_url"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// AudioAsset references a generated narration or music file.
type AudioAsset struct {
	URL           string  `json:"url"`
	TotalDuration float64 `json:"total_duration"`
}

// Project is the engine's view of one content-pipeline project.
type Project struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Scenes    []Scene     `json:"scenes"`
	Voiceover AudioAsset  `json:"voiceover"`
	Music     *AudioAsset `json:"music,omitempty"`
}

// Load reads and validates a project document from disk.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the structural requirements and clamps malformed numerics.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("project id is required")
	}
	if len(p.Scenes) == 0 {
		return errors.New("project has no scenes")
	}
	seen := make(map[int64]struct{}, len(p.Scenes))
	for i := range p.Scenes {
		scene := &p.Scenes[i]
		if strings.TrimSpace(scene.VideoURL) == "" {
			return fmt.Errorf("scene %d has no video url", scene.SceneID)
		}
		if _, dup := seen[scene.SceneID]; dup {
			return fmt.Errorf("duplicate scene id %d", scene.SceneID)
		}
		seen[scene.SceneID] = struct{}{}
		if math.IsNaN(scene.DurationSeconds) || scene.DurationSeconds < 0 {
			scene.DurationSeconds = 0
		}
	}
	if strings.TrimSpace(p.Voiceover.URL) == "" {
		return errors.New("project has no voiceover asset")
	}
	clampAudio(&p.Voiceover)
	if p.Music != nil {
		if strings.TrimSpace(p.Music.URL) == "" {
			p.Music = nil
		} else {
			clampAudio(p.Music)
		}
	}
	return nil
}

func clampAudio(a *AudioAsset) {
	if math.IsNaN(a.TotalDuration) || a.TotalDuration < 0 {
		a.TotalDuration = 0
	}
}

// SourceClips converts the scenes into the builder's clip representation,
// sorted ascending by scene identity.
func (p *Project) SourceClips() []timeline.SourceClip {
	clips := make([]timeline.SourceClip, 0, len(p.Scenes))
	for _, scene := range p.Scenes {
		clips = append(clips, timeline.SourceClip{
			SceneID:  scene.SceneID,
			VideoURL: scene.VideoURL,
			Duration: scene.DurationSeconds,
		})
	}
	sort.Slice(clips, func(i, j int) bool { return clips[i].SceneID < clips[j].SceneID })
	return clips
}

// SceneIDs returns the clip identity set in ascending order.
func (p *Project) SceneIDs() []int64 {
	ids := make([]int64, 0, len(p.Scenes))
	for _, scene := range p.Scenes {
		ids = append(ids, scene.SceneID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
