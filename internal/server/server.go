// Package server exposes the filtered view over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/KaramelBytes/sectorlens/internal/analysis"
	"github.com/KaramelBytes/sectorlens/internal/app"
	"github.com/KaramelBytes/sectorlens/internal/columns"
	"github.com/KaramelBytes/sectorlens/internal/logging"
	"github.com/KaramelBytes/sectorlens/internal/render"
)

// Server serves the page, the chart images and a small JSON API.
type Server struct {
	router *chi.Mux
	ctrl   *app.Controller
	title  string
}

// New wires routes for ctrl. The controller should already be loaded; a
// failed load is reported by every route.
func New(ctrl *app.Controller, title string) *Server {
	if title == "" {
		title = "Subsectores por grupo"
	}
	s := &Server{router: chi.NewRouter(), ctrl: ctrl, title: title}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/chart.svg", s.handleChart(render.SVG))
	s.router.Get("/chart.png", s.handleChart(render.PNG))
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/view", s.handleView)
		r.Get("/groups", s.handleGroups)
		r.Get("/columns", s.handleColumns)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logging.Logger().Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) selectionFrom(r *http.Request) analysis.Selection {
	return s.ctrl.Selection(r.URL.Query().Get("group"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := render.NewPage(s.title, func(sel analysis.Selection) string {
		if sel.IsAll() {
			return "/"
		}
		return "/?group=" + url.QueryEscape(sel.Group)
	})
	if err := s.ctrl.Render(page, s.selectionFrom(r)); err != nil {
		logging.Logger().Error("render page", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := page.Write(&buf); err != nil {
		logging.Logger().Error("write page", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleChart(f render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sel := s.selectionFrom(r)
		v, err := s.ctrl.View(sel)
		if err != nil {
			s.unavailable(w, err)
			return
		}
		if len(v.Counts) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		etag := fmt.Sprintf(`"%s-%s-%s"`, v.DatasetID, f, url.QueryEscape(sel.Group))
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		var buf bytes.Buffer
		if err := render.Donut(&buf, s.ctrl.Chart(v), f); err != nil {
			logging.Logger().Error("render chart", "format", f, "err", err)
			http.Error(w, "chart failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", f.ContentType())
		_, _ = buf.WriteTo(w)
	}
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	v, err := s.ctrl.View(s.selectionFrom(r))
	if err != nil {
		s.unavailable(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	st, err := s.ctrl.State()
	if err != nil {
		s.unavailable(w, err)
		return
	}
	groups := st.Groups
	if groups == nil {
		groups = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"field":     st.Group.Header,
		"resolved":  st.Group.Found,
		"all_label": s.ctrl.Options().AllLabel,
		"groups":    groups,
	})
}

type columnJSON struct {
	Field    string   `json:"field"`
	Patterns []string `json:"patterns"`
	Required bool     `json:"required"`
	Header   string   `json:"header,omitempty"`
	Found    bool     `json:"found"`
}

func bindingJSON(b columns.Binding) columnJSON {
	return columnJSON{
		Field:    b.Field.Name,
		Patterns: b.Field.Patterns,
		Required: b.Field.Required,
		Header:   b.Header,
		Found:    b.Found,
	}
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	st, err := s.ctrl.State()
	if err != nil {
		s.unavailable(w, err)
		return
	}
	fields := []columnJSON{bindingJSON(st.Group), bindingJSON(st.Subsector)}
	writeJSON(w, http.StatusOK, map[string]any{
		"dataset_id": st.Dataset.ID.String(),
		"headers":    st.Dataset.Headers,
		"fields":     fields,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.ctrl.State(); err != nil {
		s.unavailable(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) unavailable(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": app.StatusMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logging.Logger().Error("encode json", "err", err)
	}
}
