package timeline_test

import (
	"encoding/json"
	"testing"

	"cutline/internal/timeline"
)

func TestTrackLookupSurvivesSerialization(t *testing.T) {
	built := timeline.BuildEdit(timeline.Inputs{
		Clips: []timeline.SourceClip{
			{SceneID: 1, VideoURL: "a.mp4", Duration: 4},
			{SceneID: 2, VideoURL: "b.mp4", Duration: 6},
		},
		Voiceover:          timeline.AudioSource{URL: "voice.mp3", TotalDuration: 10},
		Music:              &timeline.AudioSource{URL: "music.mp3", TotalDuration: 60},
		DefaultGapDuration: 1,
	})

	data, err := json.Marshal(built)
	if err != nil {
		t.Fatalf("marshal edit: %v", err)
	}
	var decoded timeline.Edit
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal edit: %v", err)
	}

	video := decoded.VideoTrack()
	if video == nil || len(video.Clips) != 2 {
		t.Fatal("expected video track with two clips after the round trip")
	}
	if voice := decoded.AudioTrack(timeline.TrackVoiceover); voice == nil || voice.Clips[0].Asset.Src != "voice.mp3" {
		t.Fatal("expected voiceover track after the round trip")
	}
	if music := decoded.AudioTrack(timeline.TrackMusic); music == nil || music.Clips[0].Asset.Src != "music.mp3" {
		t.Fatal("expected music track after the round trip")
	}
	if got, want := decoded.Duration(), built.Duration(); got != want {
		t.Errorf("duration = %v, want %v", got, want)
	}
}

func TestAudioTrackAbsentMusic(t *testing.T) {
	built := timeline.BuildEdit(timeline.Inputs{
		Clips:     []timeline.SourceClip{{SceneID: 1, VideoURL: "a.mp4", Duration: 4}},
		Voiceover: timeline.AudioSource{URL: "voice.mp3", TotalDuration: 4},
	})
	if built.AudioTrack(timeline.TrackMusic) != nil {
		t.Fatal("expected no music track")
	}

	data, _ := json.Marshal(built)
	var decoded timeline.Edit
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal edit: %v", err)
	}
	if decoded.AudioTrack(timeline.TrackMusic) != nil {
		t.Fatal("expected no music track after the round trip")
	}
}
