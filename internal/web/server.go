package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"formbench/internal/model"
	"formbench/internal/render"
)

//go:embed templates/*.html
var assetsFS embed.FS

// Loader reads the saved editor state. *store.Gateway satisfies it.
type Loader interface {
	Load(ctx context.Context) (model.PersistedState, bool, error)
}

type ServerConfig struct {
	Addr      string
	Title     string
	Workspace string
	Loader    Loader
	Logger    *slog.Logger

	// Poll is how often the saved state is checked for live updates (default 1s).
	Poll time.Duration
}

// Server is a read-only preview of the saved form. It never writes to the store;
// edits happen in the TUI or CLI and show up here on the next poll.
type Server struct {
	cfg  ServerConfig
	tmpl *template.Template
	log  *slog.Logger
	bc   *stateBroadcaster
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	cfg.Title = strings.TrimSpace(cfg.Title)
	cfg.Workspace = strings.TrimSpace(cfg.Workspace)
	if cfg.Addr == "" {
		return nil, errors.New("web: addr is empty")
	}
	if cfg.Loader == nil {
		return nil, errors.New("web: no state loader")
	}
	if cfg.Title == "" {
		cfg.Title = "Form preview"
	}
	if cfg.Poll <= 0 {
		cfg.Poll = time.Second
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	tmpl, err := template.New("base").ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	srv := &Server{cfg: cfg, tmpl: tmpl, log: log}
	srv.bc = newStateBroadcaster(cfg.Loader, cfg.Poll, log)
	go srv.bc.watchLoop()
	return srv, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

// Close stops the live-update poller.
func (s *Server) Close() {
	s.bc.Stop()
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /form.json", s.handleFormJSON)
	mux.HandleFunc("GET /form.md", s.handleFormMarkdown)
	mux.HandleFunc("GET /preview", s.handleMarkdownPreview)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /{$}", s.handleHome)
	return mux
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	hs := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- hs.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return hs.Shutdown(shutdownCtx)
}

// loadState returns the saved state, or an empty form with default settings when
// nothing usable is saved.
func (s *Server) loadState(ctx context.Context) (model.PersistedState, bool, error) {
	st, ok, err := s.cfg.Loader.Load(ctx)
	if err != nil {
		return model.PersistedState{}, false, err
	}
	if !ok {
		def := model.DefaultCanvasSettings()
		return model.PersistedState{Items: model.Form{}, BackgroundColor: def.BackgroundColor, Layout: def.Layout}, false, nil
	}
	if st.Items == nil {
		st.Items = model.Form{}
	}
	return st, true, nil
}

type canvasVM struct {
	Title     string
	Workspace string
	Empty     bool
	Form      template.HTML
}

func (s *Server) canvasVM(st model.PersistedState, saved bool) (canvasVM, error) {
	frag, err := render.HTMLFragment(st)
	if err != nil {
		return canvasVM{}, err
	}
	return canvasVM{
		Title:     s.cfg.Title,
		Workspace: s.cfg.Workspace,
		Empty:     !saved,
		// HTMLFragment output is sanitized.
		Form: template.HTML(frag),
	}, nil
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	st, saved, err := s.loadState(r.Context())
	if err != nil {
		s.log.Error("load state", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	vm, err := s.canvasVM(st, saved)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeHTMLTemplate(w, "preview", vm)
}

func (s *Server) handleFormJSON(w http.ResponseWriter, r *http.Request) {
	st, _, err := s.loadState(r.Context())
	if err != nil {
		s.log.Error("load state", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(st)
}

func (s *Server) handleFormMarkdown(w http.ResponseWriter, r *http.Request) {
	st, _, err := s.loadState(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = io.WriteString(w, render.Markdown(st))
}

func (s *Server) handleMarkdownPreview(w http.ResponseWriter, r *http.Request) {
	st, _, err := s.loadState(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeHTMLTemplate(w, "markdown", map[string]any{
		"Title": s.cfg.Title,
		"Body":  renderFormPreview(st),
	})
}
