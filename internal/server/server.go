package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"introscore/internal/domain"
)

// Server exposes the scoring engine over HTTP.
type Server struct {
	scorer domain.Scorer
	log    *slog.Logger
}

// New creates a Server around an assembled scorer.
func New(scorer domain.Scorer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{scorer: scorer, log: log}
}

// Router builds the chi router with all API routes mounted under /api.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/rubric", s.handleRubric)
		r.Post("/score", s.handleScore)
		r.Post("/batch-score", s.handleBatchScore)
	})
	return r
}

type envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Count     int    `json:"count,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, env envelope) {
	env.Timestamp = timestamp()
	render.Status(r, status)
	render.JSON(w, r, env)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.log.Error("request failed", "path", r.URL.Path, "status", status, "error", err)
	s.respond(w, r, status, envelope{Success: false, Error: err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, envelope{
		Success: true,
		Data:    map[string]string{"status": "healthy", "service": "introscore"},
	})
}

func (s *Server) handleRubric(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, envelope{Success: true, Data: s.scorer.RubricInfo()})
}

type scoreRequest struct {
	Transcript string `json:"transcript"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, r, http.StatusBadRequest, errors.New("missing or malformed transcript in request body"))
		return
	}
	report, err := s.scorer.Score(r.Context(), req.Transcript)
	if err != nil {
		if domain.IsValidation(err) {
			s.fail(w, r, http.StatusBadRequest, err)
			return
		}
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.log.Info("transcript scored", "overall", report.OverallScore, "words", report.WordCount)
	s.respond(w, r, http.StatusOK, envelope{Success: true, Data: report})
}

type batchScoreRequest struct {
	Transcripts []string `json:"transcripts"`
}

// batchEntry is the wire form of one batch result; exactly one of report and
// error is set.
type batchEntry struct {
	Index  int                 `json:"index"`
	Report *domain.ScoreReport `json:"report,omitempty"`
	Error  string              `json:"error,omitempty"`
}

func (s *Server) handleBatchScore(w http.ResponseWriter, r *http.Request) {
	var req batchScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, r, http.StatusBadRequest, errors.New("missing or malformed transcripts array in request body"))
		return
	}
	items := s.scorer.BatchScore(r.Context(), req.Transcripts)
	entries := make([]batchEntry, 0, len(items))
	for _, it := range items {
		entry := batchEntry{Index: it.Index, Report: it.Report}
		if it.Err != nil {
			entry.Error = it.Err.Error()
		}
		entries = append(entries, entry)
	}
	s.log.Info("batch scored", "transcripts", len(entries))
	s.respond(w, r, http.StatusOK, envelope{Success: true, Data: entries, Count: len(entries)})
}
