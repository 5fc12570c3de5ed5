// Package web serves a read-mostly status page of the store.
//
// Routes:
//   - GET /            HTML page of notifications and reminders
//   - GET /api/status  the same data as JSON
//   - GET /live        liveness probe
//
// When configured with a cron spec the server also fires due reminders
// periodically, as checkout would.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/roach88/tore/internal/domain"
	"github.com/roach88/tore/internal/logger"
	"github.com/roach88/tore/internal/store"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = "127.0.0.1:6969"

const shutdownTimeout = 5 * time.Second

//go:embed templates/index.html
var templates embed.FS

var indexPage = template.Must(template.ParseFS(templates, "templates/index.html"))

// Store is the part of the store the server reads and fires.
type Store interface {
	LoadActiveGrouped(ctx context.Context) ([]domain.Group, error)
	ListActiveReminders(ctx context.Context) ([]domain.Reminder, error)
	FireDueReminders(ctx context.Context, today time.Time) (store.FireResult, error)
}

// Options configures a Server.
type Options struct {
	Clock    domain.Clock
	FireSpec string // cron spec; empty disables firing
	Version  string
	Logger   *logrus.Entry
}

// Server serves the status page.
type Server struct {
	store   Store
	clock   domain.Clock
	version string
	log     *logrus.Entry
	cron    *cron.Cron
}

// Status is the payload of the page and of /api/status.
type Status struct {
	Notifications []domain.Group    `json:"notifications"`
	Reminders     []domain.Reminder `json:"reminders"`
	Version       string            `json:"version"`
}

// NewServer creates a server over st. An unparsable FireSpec is an error.
func NewServer(st Store, opts Options) (*Server, error) {
	s := &Server{
		store:   st,
		clock:   opts.Clock,
		version: opts.Version,
		log:     opts.Logger,
	}
	if s.clock == nil {
		s.clock = domain.SystemClock
	}
	if s.log == nil {
		s.log = logger.Log.WithField("component", "web")
	}

	if opts.FireSpec != "" {
		s.cron = cron.New(cron.WithLocation(time.Local))
		if _, err := s.cron.AddFunc(opts.FireSpec, s.fireJob); err != nil {
			return nil, fmt.Errorf("invalid fire spec %q: %w", opts.FireSpec, err)
		}
	}

	return s, nil
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/live", s.handleLive)
	r.Get("/api/status", s.handleStatus)

	return r
}

// Serve serves on ln until ctx is done, then shuts down gracefully and stops
// the firing schedule.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cron != nil {
		s.cron.Start()
		defer func() { <-s.cron.Stop().Done() }()
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", ln.Addr().String()).Info("status page listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info("status page stopped")
	return nil
}

// FireDue fires the reminders due on the clock's current day.
func (s *Server) FireDue(ctx context.Context) (store.FireResult, error) {
	return s.store.FireDueReminders(ctx, s.clock.Now())
}

func (s *Server) fireJob() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := s.FireDue(ctx); err != nil {
		s.log.WithError(err).Error("scheduled firing failed")
	}
}

func (s *Server) status(ctx context.Context) (Status, error) {
	groups, err := s.store.LoadActiveGrouped(ctx)
	if err != nil {
		return Status{}, err
	}
	reminders, err := s.store.ListActiveReminders(ctx)
	if err != nil {
		return Status{}, err
	}
	return Status{Notifications: groups, Reminders: reminders, Version: s.version}, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	st, err := s.status(r.Context())
	if err != nil {
		s.log.WithError(err).Error("load status")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexPage.Execute(w, st); err != nil {
		s.log.WithError(err).Error("render index page")
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.status(r.Context())
	if err != nil {
		s.log.WithError(err).Error("load status")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
			"request_id": chimiddleware.GetReqID(r.Context()),
		}).Debug("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
