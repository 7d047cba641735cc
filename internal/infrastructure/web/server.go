package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"LaunchDashboard/internal/domain"
	"LaunchDashboard/internal/ports"
	"LaunchDashboard/internal/reactive"
)

// ServerDeps wires the page layout, callbacks and renderer into the HTTP surface.
type ServerDeps struct {
	Layout   domain.Layout
	Registry *reactive.Registry
	Renderer ports.FigureRenderer
	Defaults reactive.Inputs
	Records  int
	Logger   *slog.Logger
}

// Server serves the dashboard page, figure data and chart images.
type Server struct {
	layout   domain.Layout
	registry *reactive.Registry
	renderer ports.FigureRenderer
	defaults reactive.Inputs
	records  int
	logger   *slog.Logger
	page     *template.Template
	mux      *http.ServeMux
}

type figureResponse struct {
	Output string            `json:"output"`
	Kind   domain.FigureKind `json:"kind"`
	Figure domain.Figure     `json:"figure"`
}

// NewServer parses the page template and registers routes.
func NewServer(deps ServerDeps) (*Server, error) {
	if deps.Registry == nil || deps.Renderer == nil {
		return nil, fmt.Errorf("web server needs a registry and a renderer")
	}

	page, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	s := &Server{
		layout:   deps.Layout,
		registry: deps.Registry,
		renderer: deps.Renderer,
		defaults: deps.Defaults,
		records:  deps.Records,
		logger:   deps.Logger,
		page:     page,
		mux:      http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /{$}", s.handlePage)
	s.mux.HandleFunc("GET /_dash-dependencies", s.handleDependencies)
	s.mux.HandleFunc("GET /_dash-update/{output}", s.handleUpdate)
	s.mux.HandleFunc("GET /charts/{file}", s.handleChart)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	return s, nil
}

// Handler returns the routed handler wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		s.mux.ServeHTTP(rec, r)
		s.debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Layout:       s.layout,
		Format:       s.renderer.Format(),
		Dependencies: s.registry.Dependencies(),
		PieSrc:       s.chartURL(s.layout.PieGraph.ID, s.defaults),
		ScatterSrc:   s.chartURL(s.layout.ScatterGraph.ID, s.defaults),
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.fail(w, http.StatusInternalServerError, fmt.Errorf("render page: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleDependencies(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.registry.Dependencies())
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	output := r.PathValue("output")
	fig, err := s.registry.Dispatch(r.Context(), output, reactive.Inputs(r.URL.Query()))
	if err != nil {
		s.fail(w, statusFor(err), err)
		return
	}

	s.writeJSON(w, figureResponse{Output: output, Kind: fig.Kind(), Figure: fig})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	output, ext, ok := strings.Cut(r.PathValue("file"), ".")
	if !ok || ext != s.renderer.Format() {
		s.fail(w, http.StatusNotFound, fmt.Errorf("unsupported chart file %q", r.PathValue("file")))
		return
	}

	fig, err := s.registry.Dispatch(r.Context(), output, reactive.Inputs(r.URL.Query()))
	if err != nil {
		s.fail(w, statusFor(err), err)
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, fig); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprintf(w, "ok records=%d\n", s.records)
}

func (s *Server) chartURL(output string, in reactive.Inputs) string {
	cb, err := s.registry.Resolve(output)
	if err != nil {
		return ""
	}
	query := url.Values{}
	for _, id := range cb.Inputs {
		query[id] = in[id]
	}
	return fmt.Sprintf("/charts/%s.%s?%s", output, s.renderer.Format(), query.Encode())
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, fmt.Errorf("encode response: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError && s.logger != nil {
		s.logger.Error("request failed", "status", status, "error", err)
	} else {
		s.debug("request rejected", "status", status, "error", err)
	}
	http.Error(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, reactive.ErrUnknownOutput):
		return http.StatusNotFound
	case errors.Is(err, reactive.ErrBadInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
