package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"log/slog"

	"github.com/gofrs/flock"

	"cutline/internal/config"
	"cutline/internal/logging"
	"cutline/internal/media"
	"cutline/internal/project"
	"cutline/internal/render"
	"cutline/internal/session"
	"cutline/internal/settings"
	"cutline/internal/timeline"
)

// Daemon owns the preview session, its settings store and the render client,
// and enforces single-instance execution.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *settings.Store
	sess     *session.Session
	renderer *render.Client

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
}

// Status is the daemon runtime summary served over IPC and HTTP.
type Status struct {
	Running        bool           `json:"running"`
	PID            int            `json:"pid"`
	LockPath       string         `json:"lock_path"`
	SettingsDBPath string         `json:"settings_db_path"`
	Session        session.Status `json:"session"`
}

// New constructs a daemon around an already-open settings store. The session
// runs on headless media elements; hosts with real playback surfaces drive the
// engine through a session of their own instead.
func New(cfg *config.Config, proj *project.Project, store *settings.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || proj == nil || store == nil {
		return nil, errors.New("daemon requires config, project, and store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	snap, _, err := store.Load(context.Background(), proj.ID)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	adapter := settings.NewAdapter(store, proj.ID,
		time.Duration(cfg.Preview.SaveDebounceMillis)*time.Millisecond, logger)
	sess, err := session.New(session.Options{
		Config:   cfg,
		Project:  proj,
		Video:    media.NewHeadlessElement(),
		Voice:    media.NewHeadlessElement(),
		Music:    media.NewHeadlessElement(),
		Adapter:  adapter,
		Snapshot: snap,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:      cfg,
		logger:   logger.With(logging.String(logging.FieldComponent, "daemon")),
		store:    store,
		sess:     sess,
		renderer: render.NewClient(cfg.Render.BaseURL, cfg.Render.APIKey, render.WithTimeout(time.Duration(cfg.Render.TimeoutSeconds)*time.Second)),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the singleton lock. A second daemon against the same data
// directory fails here instead of corrupting the settings store.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another cutline daemon is already running")
	}
	d.running.Store(true)
	d.logger.Info("daemon started",
		logging.String("lock", d.lockPath),
		logging.String(logging.FieldProjectID, d.sess.Project().ID))
	return nil
}

// Stop halts playback and releases the singleton lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	d.sess.Pause()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("daemon stopped")
}

// Close stops the daemon, flushes the session and closes the store.
func (d *Daemon) Close() error {
	d.Stop()
	d.sess.Close()
	return d.store.Close()
}

// Running reports whether the daemon holds the singleton lock.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// Session exposes the hosted preview session.
func (d *Daemon) Session() *session.Session {
	return d.sess
}

// Status assembles the runtime summary.
func (d *Daemon) Status() Status {
	return Status{
		Running:        d.running.Load(),
		PID:            os.Getpid(),
		LockPath:       d.lockPath,
		SettingsDBPath: d.store.Path(),
		Session:        d.sess.Status(),
	}
}

// SubmitRender posts the current edit to the render service.
func (d *Daemon) SubmitRender(ctx context.Context) (render.Job, error) {
	edit := d.sess.Edit()
	job, err := d.renderer.Submit(ctx, edit)
	if err != nil {
		return render.Job{}, err
	}
	d.logger.Info("render submitted",
		logging.String("job_id", job.ID),
		logging.Float64("duration", edit.Duration()))
	return job, nil
}

// RenderStatus fetches the state of a submitted render job.
func (d *Daemon) RenderStatus(ctx context.Context, jobID string) (render.Job, error) {
	return d.renderer.Status(ctx, jobID)
}

// Edit returns the current built document.
func (d *Daemon) Edit() timeline.Edit {
	return d.sess.Edit()
}
