// Package httpapi exposes the list and detail view-models over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"nytviewer/internal/domain"
	"nytviewer/internal/viewmodel"
)

const maxBodyBytes = 64 << 10

// HistorySource reads what the archive recorded for a list.
type HistorySource interface {
	History(ctx context.Context, listID string) (*domain.ListHistory, error)
}

type Deps struct {
	List    *viewmodel.ListViewModel
	Repo    viewmodel.Repository
	Nav     *viewmodel.Navigator
	Theme   *viewmodel.ThemeProvider
	History HistorySource // optional
}

type Server struct {
	list    *viewmodel.ListViewModel
	repo    viewmodel.Repository
	nav     *viewmodel.Navigator
	theme   *viewmodel.ThemeProvider
	history HistorySource
	logger  *slog.Logger
	router  chi.Router
}

func New(deps Deps, logger *slog.Logger) *Server {
	s := &Server{
		list:    deps.List,
		repo:    deps.Repo,
		nav:     deps.Nav,
		theme:   deps.Theme,
		history: deps.History,
		logger:  logger.With("component", "httpapi"),
	}
	s.setupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/list", s.handleGetList)
		r.Post("/list/select", s.handleSelectList)
		r.Post("/list/refresh", s.handleRefreshArticles)
		r.Post("/list/more", s.handleLoadMore)
		r.Post("/list/scroll", s.handleScroll)
		r.Post("/list/brief", s.handleSelectBrief)
		r.Post("/sections/refresh", s.handleRefreshSections)

		r.Get("/article", s.handleGetArticle)
		r.Post("/article/visit", s.handleVisitArticle)
		r.Post("/back", s.handleBack)
		r.Post("/home", s.handleHome)

		r.Get("/theme", s.handleGetTheme)
		r.Post("/theme", s.handleSetTheme)

		if s.history != nil {
			r.Get("/archive/{listID}", s.handleArchive)
		}
	})

	s.router = r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// --- List ---

type listResponse struct {
	State      viewmodel.ListState `json:"state"`
	Error      string              `json:"error,omitempty"`
	Refreshing bool                `json:"refreshing"`
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse{
		State:      s.list.State().Get(),
		Error:      s.list.Errors().Get(),
		Refreshing: s.list.Refreshing().Get(),
	})
}

type selectRequest struct {
	List    string `json:"list"`
	Section string `json:"section"`
	Label   string `json:"label"`
}

func (r selectRequest) listDef() (domain.ListDef, error) {
	if r.Section != "" {
		label := r.Label
		if label == "" {
			label = r.Section
		}
		return domain.SectionList(domain.SectionRef{ID: r.Section, Label: label}), nil
	}
	return domain.PopularList(r.List)
}

func (s *Server) handleSelectList(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !decode(w, r, &req) {
		return
	}

	list, err := req.listDef()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrUnknownList) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	s.list.SelectList(list)
	writeJSON(w, http.StatusAccepted, map[string]string{"list_id": list.ID()})
}

func (s *Server) handleRefreshArticles(w http.ResponseWriter, r *http.Request) {
	s.list.RefreshArticles()
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleRefreshSections(w http.ResponseWriter, r *http.Request) {
	s.list.RefreshSections()
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleLoadMore(w http.ResponseWriter, r *http.Request) {
	s.list.LoadMoreArticles()
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleScroll(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int `json:"index"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Index < 0 {
		writeError(w, http.StatusBadRequest, "index must not be negative")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"load_requested": s.list.ScrollChange(req.Index)})
}

func (s *Server) handleSelectBrief(w http.ResponseWriter, r *http.Request) {
	var brief viewmodel.BriefDisplay
	if !decode(w, r, &brief) {
		return
	}
	if brief.URI == "" {
		writeError(w, http.StatusBadRequest, "uri is required")
		return
	}

	s.list.SelectBrief(brief)
	w.WriteHeader(http.StatusAccepted)
}

// --- Detail ---

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	uri := r.URL.Query().Get("uri")
	if uri == "" {
		writeError(w, http.StatusBadRequest, "uri is required")
		return
	}

	detail := viewmodel.NewDetailViewModel(uri, s.repo, s.nav)
	detail.Reload(r.Context())

	if msg := detail.Errors().Get(); msg != "" {
		writeError(w, http.StatusNotFound, msg)
		return
	}
	writeJSON(w, http.StatusOK, detail.Data().Get())
}

func (s *Server) handleVisitArticle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URI string `json:"uri"`
		URL string `json:"url"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	viewmodel.NewDetailViewModel(req.URI, s.repo, s.nav).VisitArticle(req.URL)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	s.nav.Handle(viewmodel.Back{})
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.nav.Handle(viewmodel.Home{})
	w.WriteHeader(http.StatusAccepted)
}

// --- Theme ---

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]viewmodel.ColorTheme{"theme": s.theme.Theme().Get()})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if !decode(w, r, &req) {
		return
	}

	theme, err := viewmodel.ParseColorTheme(req.Theme)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.list.SetTheme(theme)
	writeJSON(w, http.StatusOK, map[string]viewmodel.ColorTheme{"theme": theme})
}

// --- Archive ---

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	history, err := s.history.History(r.Context(), chi.URLParam(r, "listID"))
	if err != nil {
		s.logger.Error("failed to read archive", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read archive")
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
