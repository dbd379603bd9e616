package testsupport

import "errors"

// FakeElement is a scripted media element for synchronizer and scheduler
// tests. Loads stay pending until the test delivers readiness, so stale
// one-shot callbacks can be exercised deliberately.
type FakeElement struct {
	Src     string
	Offset  float64
	Volume  float64
	Muted   bool
	IsPlay  bool
	Seeks   []float64
	Sources []string

	// AutoReady delivers readiness synchronously inside AwaitReady.
	AutoReady bool
	// LoadErr is delivered instead of readiness when set.
	LoadErr error
	// PlayErr is returned from Play when set.
	PlayErr error

	ready func(error)
}

func (e *FakeElement) Source() string { return e.Src }

func (e *FakeElement) SetSource(src string) {
	e.Src = src
	e.Sources = append(e.Sources, src)
	e.IsPlay = false
}

func (e *FakeElement) AwaitReady(fn func(error)) {
	if e.AutoReady {
		if e.LoadErr != nil {
			fn(e.LoadErr)
			return
		}
		fn(nil)
		return
	}
	e.ready = fn
}

// DeliverReady fires the pending one-shot readiness callback, if any.
func (e *FakeElement) DeliverReady() {
	fn := e.ready
	e.ready = nil
	if fn == nil {
		return
	}
	if e.LoadErr != nil {
		fn(e.LoadErr)
		return
	}
	fn(nil)
}

func (e *FakeElement) Seek(offsetSeconds float64) {
	e.Offset = offsetSeconds
	e.Seeks = append(e.Seeks, offsetSeconds)
}

func (e *FakeElement) Play() error {
	if e.PlayErr != nil {
		return e.PlayErr
	}
	e.IsPlay = true
	return nil
}

func (e *FakeElement) Pause() { e.IsPlay = false }

func (e *FakeElement) SetVolume(volume float64) { e.Volume = volume }

func (e *FakeElement) SetMuted(muted bool) { e.Muted = muted }

// ErrScriptedFailure is a convenient cause for LoadErr/PlayErr scripts.
var ErrScriptedFailure = errors.New("scripted failure")
