package media

// HeadlessElement is an Element with no attached player surface. The daemon
// uses it so a preview session can run (and be driven over the API) before a
// player connects; sources become ready immediately and playback state is
// tracked but produces no output.
type HeadlessElement struct {
	src     string
	offset  float64
	volume  float64
	muted   bool
	playing bool
	ready   func(error)
}

// NewHeadlessElement returns an element that is always ready.
func NewHeadlessElement() *HeadlessElement {
	return &HeadlessElement{volume: 1}
}

func (e *HeadlessElement) Source() string { return e.src }

func (e *HeadlessElement) SetSource(src string) {
	e.src = src
	e.offset = 0
	e.playing = false
	if fn := e.ready; fn != nil {
		e.ready = nil
		fn(nil)
	}
}

func (e *HeadlessElement) AwaitReady(fn func(error)) {
	if e.src != "" {
		fn(nil)
		return
	}
	e.ready = fn
}

func (e *HeadlessElement) Seek(offsetSeconds float64) { e.offset = offsetSeconds }

func (e *HeadlessElement) Play() error {
	e.playing = true
	return nil
}

func (e *HeadlessElement) Pause() { e.playing = false }

func (e *HeadlessElement) SetVolume(volume float64) { e.volume = volume }

func (e *HeadlessElement) SetMuted(muted bool) { e.muted = muted }

// Offset reports the last seek position.
func (e *HeadlessElement) Offset() float64 { return e.offset }

// Playing reports whether the element believes it is playing.
func (e *HeadlessElement) Playing() bool { return e.playing }
