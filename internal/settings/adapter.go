package settings

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cutline/internal/logging"
)

// Saver is the destination of debounced snapshot writes.
type Saver interface {
	Save(ctx context.Context, projectID string, snap Snapshot) error
}

// Adapter debounces snapshot persistence. Writes are fire-and-forget: a failed
// save is logged and dropped, never surfaced to the preview loop.
type Adapter struct {
	saver     Saver
	logger    *slog.Logger
	projectID string
	delay     time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	pending  *Snapshot
	skipNext bool
	closed   bool
}

// NewAdapter wires a debounced persistence adapter for one project.
func NewAdapter(saver Saver, projectID string, delay time.Duration, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = logging.NewNop()
	}
	if delay <= 0 {
		delay = 600 * time.Millisecond
	}
	return &Adapter{
		saver:     saver,
		logger:    logger.With(logging.String(logging.FieldComponent, "settings")),
		projectID: projectID,
		delay:     delay,
	}
}

// Queue schedules a save of the snapshot after the debounce window. Each call
// restarts the window. The first call after AdoptRemote is swallowed so a
// remote reset does not echo straight back to the store.
func (a *Adapter) Queue(snap Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	if a.skipNext {
		a.skipNext = false
		a.logger.Debug("skipping save cycle after remote snapshot")
		return
	}
	a.pending = &snap
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.flushPending)
}

// AdoptRemote discards any pending write and arms the skip-one-save flag.
// Callers invoke it when a remote configuration snapshot replaces local state.
func (a *Adapter) AdoptRemote() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = nil
	a.skipNext = true
}

// Flush writes any pending snapshot immediately.
func (a *Adapter) Flush(ctx context.Context) error {
	a.mu.Lock()
	snap := a.pending
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()

	if snap == nil {
		return nil
	}
	return a.saver.Save(ctx, a.projectID, *snap)
}

// Close stops the adapter and flushes any pending write.
func (a *Adapter) Close() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := a.Flush(ctx); err != nil {
		a.logger.Warn("final settings flush failed", logging.Error(err))
	}
}

func (a *Adapter) flushPending() {
	a.mu.Lock()
	snap := a.pending
	a.pending = nil
	a.timer = nil
	closed := a.closed
	a.mu.Unlock()

	if snap == nil || closed {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.saver.Save(ctx, a.projectID, *snap); err != nil {
		a.logger.Warn("settings save failed",
			logging.String(logging.FieldProjectID, a.projectID),
			logging.Error(err))
	}
}
