package playback

import (
	"sync"
	"time"
)

// FrameLoop delivers one callback per host display frame. Start replaces any
// running loop; Stop is safe to call from inside a frame callback and never
// blocks on one.
type FrameLoop interface {
	Start(onFrame func(now time.Time))
	Stop()
}

// TickerLoop drives frames from a time.Ticker at a fixed target rate.
type TickerLoop struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

// NewTickerLoop targets the given frame rate, with a 60fps fallback for
// nonsense values.
func NewTickerLoop(frameRate int) *TickerLoop {
	if frameRate <= 0 || frameRate > 240 {
		frameRate = 60
	}
	return &TickerLoop{interval: time.Second / time.Duration(frameRate)}
}

func (l *TickerLoop) Start(onFrame func(now time.Time)) {
	l.mu.Lock()
	if l.stop != nil {
		close(l.stop)
	}
	stop := make(chan struct{})
	l.stop = stop
	l.mu.Unlock()

	go func() {
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				onFrame(now)
			}
		}
	}()
}

func (l *TickerLoop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stop != nil {
		close(l.stop)
		l.stop = nil
	}
}

// ManualLoop is a FrameLoop scripted by tests: frames fire only when the test
// calls Step.
type ManualLoop struct {
	mu      sync.Mutex
	onFrame func(time.Time)
}

func (l *ManualLoop) Start(onFrame func(now time.Time)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onFrame = onFrame
}

func (l *ManualLoop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onFrame = nil
}

// Step delivers one frame at the given instant, if a loop is running.
func (l *ManualLoop) Step(now time.Time) {
	l.mu.Lock()
	fn := l.onFrame
	l.mu.Unlock()
	if fn != nil {
		fn(now)
	}
}

// Running reports whether a frame callback is installed.
func (l *ManualLoop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.onFrame != nil
}
