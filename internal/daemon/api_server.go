package daemon

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"cutline/internal/logging"
	"cutline/internal/settings"
)

// APIServer serves the daemon's HTTP control surface.
type APIServer struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewAPIServer builds the HTTP server on the configured bind address.
func NewAPIServer(d *Daemon, logger *slog.Logger) *APIServer {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(logging.String(logging.FieldComponent, "api"))
	return &APIServer{
		httpServer: &http.Server{
			Addr:         d.cfg.Paths.APIBind,
			Handler:      NewRouter(d, logger),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Start blocks serving requests until Shutdown.
func (s *APIServer) Start() error {
	s.logger.Info("api server listening", logging.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("api server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Addr reports the configured bind address.
func (s *APIServer) Addr() string {
	return s.httpServer.Addr
}

// NewRouter assembles the daemon's API routes.
func NewRouter(d *Daemon, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = logging.NewNop()
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware())
	r.Use(recoveryMiddleware(logger))
	r.Use(loggingMiddleware(logger))

	r.Get("/api/status", statusHandler(d))
	r.Get("/api/edit", editHandler(d))
	r.Post("/api/transport/play", playHandler(d))
	r.Post("/api/transport/pause", pauseHandler(d))
	r.Post("/api/transport/seek", seekHandler(d))
	r.Post("/api/clips/reorder", reorderHandler(d))
	r.Patch("/api/settings", settingsHandler(d))
	r.Post("/api/render", renderHandler(d))
	r.Get("/api/render/{id}", renderStatusHandler(d))

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func statusHandler(d *Daemon) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, d.Status())
	}
}

func editHandler(d *Daemon) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, d.Edit())
	}
}

func playHandler(d *Daemon) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if err := d.Session().Play(); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, d.Session().Status())
	}
}

func pauseHandler(d *Daemon) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		d.Session().Pause()
		writeJSON(w, http.StatusOK, d.Session().Status())
	}
}

type seekRequest struct {
	Position float64 `json:"position"`
}

func seekHandler(d *Daemon) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req seekRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid seek request: "+err.Error())
			return
		}
		if err := d.Session().SeekTo(req.Position); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, d.Session().Status())
	}
}

type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func reorderHandler(d *Daemon) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reorderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid reorder request: "+err.Error())
			return
		}
		if err := d.Session().ReorderClip(req.From, req.To); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, d.Edit())
	}
}

// settingsHandler adopts a remotely produced snapshot. The session arms its
// skip-one-save flag so the adoption does not echo back into the store.
func settingsHandler(d *Daemon) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var snap settings.Snapshot
		if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
			writeError(w, http.StatusBadRequest, "invalid settings snapshot: "+err.Error())
			return
		}
		d.Session().AdoptSnapshot(snap)
		writeJSON(w, http.StatusOK, d.Session().Snapshot())
	}
}

func renderHandler(d *Daemon) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, err := d.SubmitRender(r.Context())
		if err != nil {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeJSON(w, http.StatusAccepted, job)
	}
}

func renderStatusHandler(d *Daemon) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, err := d.RenderStatus(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, job)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

func requestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()[:8]
			ctx := context.WithValue(r.Context(), requestIDKey, requestID)
			w.Header().Set("X-Request-ID", requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func recoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					requestID, _ := r.Context().Value(requestIDKey).(string)
					logger.Error("panic recovered",
						logging.Any("error", err),
						logging.String(logging.FieldCorrelationID, requestID))
					writeError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrapped, r)
			requestID, _ := r.Context().Value(requestIDKey).(string)
			logger.Info("http request",
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", wrapped.status),
				logging.Int64("duration_ms", time.Since(start).Milliseconds()),
				logging.String(logging.FieldCorrelationID, requestID))
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
