package ipc

import (
	"cutline/internal/daemon"
	"cutline/internal/render"
	"cutline/internal/timeline"
)

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse carries the daemon runtime summary.
type StatusResponse struct {
	Status daemon.Status `json:"status"`
}

// EditRequest fetches the current built document.
type EditRequest struct{}

// EditResponse carries the edit document.
type EditResponse struct {
	Edit timeline.Edit `json:"edit"`
}

// PlayRequest starts playback.
type PlayRequest struct{}

// PlayResponse reports the transport state after the request.
type PlayResponse struct {
	State    string  `json:"state"`
	Position float64 `json:"position"`
	Message  string  `json:"message,omitempty"`
}

// PauseRequest halts playback in place.
type PauseRequest struct{}

// PauseResponse reports the transport state after the request.
type PauseResponse struct {
	State    string  `json:"state"`
	Position float64 `json:"position"`
}

// SeekRequest jumps the playhead to a timeline position in seconds.
type SeekRequest struct {
	Position float64 `json:"position"`
}

// SeekResponse reports the clamped playhead position.
type SeekResponse struct {
	State    string  `json:"state"`
	Position float64 `json:"position"`
}

// ReorderRequest moves the clip at index From in front of index To.
type ReorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// ReorderResponse carries the new clip order as scene ids.
type ReorderResponse struct {
	Order []int64 `json:"order"`
}

// RenderRequest submits the current edit to the render service.
type RenderRequest struct{}

// RenderResponse carries the created render job.
type RenderResponse struct {
	Job render.Job `json:"job"`
}

// StopRequest asks the daemon process to shut down.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}
