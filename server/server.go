package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"autonomous_newsroom/newsroom"
)

//go:embed web web/*
var embeddedStatic embed.FS

// Server exposes the newsroom cycle over HTTP: trigger a cycle, poll the
// latest result, preview the final article as HTML.
type Server struct {
	orchestrator  *newsroom.Orchestrator
	store         *resultStore
	maxIterations int
	logger        *slog.Logger
	staticFS      http.Handler
}

// resultStore is the single "most recent cycle result" slot. Writes are
// last-writer-wins; the core stays stateless between cycles and only the
// server owns this slot.
type resultStore struct {
	mu     sync.Mutex
	id     string
	result *newsroom.CycleResult
}

func newStore() *resultStore {
	return &resultStore{}
}

func (s *resultStore) set(id string, result newsroom.CycleResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
	s.result = &result
}

func (s *resultStore) latest() (string, *newsroom.CycleResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.result
}

func New(orchestrator *newsroom.Orchestrator, maxIterations int, logger *slog.Logger) (*Server, error) {
	if orchestrator == nil {
		return nil, errors.New("orchestrator required")
	}
	if maxIterations < 1 {
		maxIterations = 2
	}
	if logger == nil {
		logger = slog.Default()
	}

	sub, err := fs.Sub(embeddedStatic, "web")
	if err != nil {
		return nil, err
	}

	return &Server{
		orchestrator:  orchestrator,
		store:         newStore(),
		maxIterations: maxIterations,
		logger:        logger.With("component", "server"),
		staticFS:      http.FileServer(http.FS(sub)),
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/cycles", s.handleCycleStart)
	mux.HandleFunc("/api/cycles/latest", s.handleLatest)
	mux.HandleFunc("/api/cycles/latest/article", s.handleLatestArticle)
	mux.Handle("/", s.staticHandler())
	return s.logMiddleware(mux)
}

func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upath := r.URL.Path
		if upath == "/" || !strings.HasPrefix(upath, "/api/") {
			if upath == "/" {
				r.URL.Path = "/index.html"
			}
			s.staticFS.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// --- Handlers ---

type cycleRequest struct {
	Topic         string `json:"topic"`
	MaxIterations int    `json:"max_iterations"`
}

type cycleAck struct {
	CycleID string `json:"cycle_id"`
	Topic   string `json:"topic"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "active", "system": "newsroom"})
}

// handleCycleStart accepts a cycle order and acknowledges immediately;
// the agents do their work in the background and callers poll
// /api/cycles/latest for the outcome.
func (s *Server) handleCycleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req cycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}
	if req.MaxIterations < 1 {
		req.MaxIterations = s.maxIterations
	}

	id := uuid.NewString()
	s.logger.Info("cycle accepted", "cycle_id", id, "topic", req.Topic, "max_iterations", req.MaxIterations)
	go s.runCycle(id, req.Topic, req.MaxIterations)

	writeJSON(w, http.StatusAccepted, cycleAck{
		CycleID: id,
		Topic:   req.Topic,
		Status:  "processing",
		Message: "cycle accepted, agents are working",
	})
}

func (s *Server) runCycle(id, topic string, maxIterations int) {
	// The cycle deliberately runs without a deadline; bounding a hung
	// generation call is the backend's responsibility.
	result := s.orchestrator.Run(context.Background(), topic, maxIterations)
	s.store.set(id, result)
	s.logger.Info("cycle stored", "cycle_id", id, "status", result.Status, "iterations", result.Iterations)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id, result := s.store.latest()
	if result == nil {
		writeError(w, http.StatusNotFound, "no result yet")
		return
	}
	report := result.Report()
	report.CycleID = id
	writeJSON(w, http.StatusOK, report)
}

// handleLatestArticle renders the latest final draft as an HTML page with
// the full body, complementing the truncated JSON projection.
func (s *Server) handleLatestArticle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	_, result := s.store.latest()
	if result == nil || result.FinalDraft == nil {
		writeError(w, http.StatusNotFound, "no article yet")
		return
	}
	draft := result.FinalDraft

	var body bytes.Buffer
	if err := goldmark.Convert([]byte(draft.Body), &body); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!doctype html><html><head><meta charset=\"utf-8\"><title>%s</title></head><body>",
		html.EscapeString(draft.Title))
	fmt.Fprintf(w, "<h1>%s</h1>", html.EscapeString(draft.Title))
	fmt.Fprintf(w, "<p><em>%s</em></p>", html.EscapeString(draft.Lead))
	w.Write(body.Bytes())
	fmt.Fprintf(w, "<p><small>version %d, %d words, tags: %s</small></p>",
		draft.Version, draft.WordCount, html.EscapeString(strings.Join(draft.Tags, ", ")))
	fmt.Fprint(w, "</body></html>")
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
