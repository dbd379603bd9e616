package render

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cutline/internal/services"
	"cutline/internal/timeline"
)

func testEdit() timeline.Edit {
	return timeline.BuildEdit(timeline.Inputs{
		Clips: []timeline.SourceClip{
			{SceneID: 1, VideoURL: "https://cdn.example.com/a.mp4", Duration: 8},
			{SceneID: 2, VideoURL: "https://cdn.example.com/b.mp4", Duration: 8},
		},
		Voiceover:       timeline.AudioSource{URL: "https://cdn.example.com/voice.mp3", TotalDuration: 16},
		VoiceoverConfig: timeline.AudioTrackConfig{Volume: 1, Length: timeline.AutoLength},
		Background:      "#000000",
		Output:          timeline.Output{Format: "mp4", Size: timeline.Size{Width: 1080, Height: 1920}},
	})
}

func TestSubmit(t *testing.T) {
	var gotAuth, gotCorrelation string
	var gotEdit timeline.Edit
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/renders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotCorrelation = r.Header.Get("X-Correlation-ID")
		if err := json.NewDecoder(r.Body).Decode(&gotEdit); err != nil {
			t.Errorf("decode edit: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Job{ID: "job-1", Status: StatusQueued})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	job, err := client.Submit(context.Background(), testEdit())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if job.ID != "job-1" || job.Status != StatusQueued {
		t.Errorf("job = %+v", job)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotCorrelation == "" {
		t.Error("correlation id header missing")
	}
	if len(gotEdit.Timeline.Tracks) == 0 {
		t.Error("edit document did not arrive intact")
	}
}

func TestSubmitRejectsEmptyEdit(t *testing.T) {
	client := NewClient("https://render.example.com", "")
	_, err := client.Submit(context.Background(), timeline.Edit{})
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("err = %v, want validation", err)
	}
}

func TestSubmitServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k").Submit(context.Background(), testEdit())
	if !errors.Is(err, services.ErrExternalService) {
		t.Errorf("err = %v, want external service", err)
	}
}

func TestStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/renders/job-9" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(Job{ID: "job-9", Status: StatusRendering, Progress: 0.4})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	job, err := client.Status(context.Background(), "job-9")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if job.Status != StatusRendering || job.Progress != 0.4 {
		t.Errorf("job = %+v", job)
	}

	_, err = client.Status(context.Background(), "missing")
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("missing job err = %v, want not found", err)
	}
}

func TestAwaitPollsToCompletion(t *testing.T) {
	var polls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		polls++
		status := StatusRendering
		if polls >= 3 {
			status = StatusDone
		}
		json.NewEncoder(w).Encode(Job{ID: "job-2", Status: status, OutputURL: "https://cdn.example.com/out.mp4"})
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	job, err := NewClient(srv.URL, "").Await(ctx, "job-2", 5*time.Millisecond)
	if err != nil {
		t.Fatalf("Await: %v", err)
	}
	if !job.Done() || job.OutputURL == "" {
		t.Errorf("job = %+v, want terminal with output", job)
	}
	if polls < 3 {
		t.Errorf("polls = %d, want at least 3", polls)
	}
}
